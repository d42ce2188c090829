package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyEscape
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// PointerSource tells which device produced a pointer event.
type PointerSource uint8

const (
	PointerMouse PointerSource = iota + 1
	PointerTouch
)

func (s PointerSource) String() string {
	switch s {
	case PointerMouse:
		return "mouse"
	case PointerTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// PointerKind is the phase of a pointer event.
type PointerKind uint8

const (
	PointerDown PointerKind = iota + 1
	PointerMove
	PointerUp
	PointerCancel
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is a mouse or touch sample in framebuffer coordinates.
//
// ID distinguishes touch contacts; it is always 0 for the mouse.
type PointerEvent struct {
	Kind   PointerKind
	Source PointerSource
	ID     int
	X      int
	Y      int
}

// Ends reports whether the event finishes a contact. Such events are never
// dropped by the host, so a stroke always sees its end.
func (ev PointerEvent) Ends() bool {
	return ev.Kind == PointerUp || ev.Kind == PointerCancel
}

// EventKind tells which field of an Event is set.
type EventKind uint8

const (
	EventKey EventKind = iota + 1
	EventPointer
)

// Event is one sample from the keyboard, mouse or touch screen.
type Event struct {
	Kind    EventKind
	Key     KeyEvent
	Pointer PointerEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input delivers events from every input device on one channel, in the
// order the devices produced them.
type Input interface {
	Events() <-chan Event
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined; higher-level timers live in userland.
type Time interface {
	Ticks() <-chan uint64
}

// Storage receives files handed to the user, such as captured images.
type Storage interface {
	WriteFile(name string, data []byte) error
}

// HAL provides the only contact point between the app and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
	Storage() Storage
}
