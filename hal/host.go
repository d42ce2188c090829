package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// HostConfig sizes the host framebuffer and picks where output goes.
type HostConfig struct {
	Width  int
	Height int

	// OutDir receives captured files. Empty means the working directory.
	OutDir string

	// Log receives log lines. Nil means stdout.
	Log io.Writer
}

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Host  HostConfig
	Title string
	Scale int
	TPS   int
}

// Host is the desktop/headless HAL implementation.
type Host struct {
	logger  *hostLogger
	fb      *hostFramebuffer
	in      *hostInput
	t       *hostTime
	storage *dirStorage
}

// NewHost returns a host HAL implementation.
func NewHost(cfg HostConfig) *Host {
	if cfg.Width <= 0 {
		cfg.Width = 320
	}
	if cfg.Height <= 0 {
		cfg.Height = 320
	}
	w := cfg.Log
	if w == nil {
		w = os.Stdout
	}
	return &Host{
		logger:  &hostLogger{w: w},
		fb:      newHostFramebuffer(cfg.Width, cfg.Height),
		in:      newHostInput(),
		t:       newHostTime(),
		storage: &dirStorage{dir: cfg.OutDir},
	}
}

func (h *Host) Logger() Logger   { return h.logger }
func (h *Host) Display() Display { return hostDisplay{fb: h.fb} }
func (h *Host) Input() Input     { return h.in }
func (h *Host) Time() Time       { return h.t }
func (h *Host) Storage() Storage { return h.storage }

// InjectPointer queues a pointer event as if a device had produced it.
// It reports false when the event was dropped because the queue is full;
// PointerUp and PointerCancel are always kept.
func (h *Host) InjectPointer(ev PointerEvent) bool {
	return h.in.pointer(ev)
}

// InjectKey queues a key event as if the keyboard had produced it.
// It reports false when the event was dropped because the queue is full.
func (h *Host) InjectKey(ev KeyEvent) bool {
	return h.in.key(ev)
}

// DroppedInput reports how many input events were discarded on a full queue.
func (h *Host) DroppedInput() uint64 {
	return h.in.Dropped()
}

// Snapshot copies the current framebuffer contents into dst (RGB565, little-endian).
func (h *Host) Snapshot(dst []byte) {
	h.fb.snapshotRGB565(dst)
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
