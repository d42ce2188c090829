package canvas

import (
	"fmt"

	"pixelpad/hal"
	captureclient "pixelpad/studio/client/capture"
	logclient "pixelpad/studio/client/logger"
	"pixelpad/studio/kernel"
	"pixelpad/studio/paint"
	"pixelpad/studio/proto"
)

// Config sizes the drawing model.
type Config struct {
	Rows        int
	ColumnWidth int // px per column when deriving the column count
	CellSize    int // px edge of a drawn cell
	SwatchSize  int // layout units
	Bases       []paint.Base
	Initial     paint.Color
	Color1      paint.Color
	Color2      paint.Color
}

// Caps are the endpoints the canvas talks to.
type Caps struct {
	In      kernel.Capability // pointer, key and capture replies
	Reply   kernel.Capability // send right on In, handed out with capture requests
	Capture kernel.Capability
	Log     kernel.Capability
}

type damage struct {
	full    bool
	palette bool
	grid    bool
	cells   []paint.CellRef
}

func (d *damage) any() bool { return d.full || d.palette || d.grid || len(d.cells) > 0 }

// Task owns the drawing surface. It consumes input strictly in delivery
// order, so every paint sees the colour selected by the events before it.
type Task struct {
	cfg     Config
	disp    hal.Display
	surface *Surface
	shared  *kernel.SharedBuffer
	caps    Caps

	r       *renderer
	sess    *paint.Session
	palette *paint.Palette
	grid    *paint.Grid
	hit     *paint.GridHitTester
	gest    *paint.Gestures
	mouse   *paint.MouseAdapter
	touch   *paint.TouchAdapter

	paletteRect  Rect
	variantsRect Rect
	previewRect  Rect
	captureRect  Rect
	gridRect     Rect
	swatchPx     int
	booted       bool

	mousePress   string
	mousePressed bool
	touchPress   map[int]string

	dmg         damage
	nextRequest uint32
	lastCapture string
}

func New(disp hal.Display, surface *Surface, shared *kernel.SharedBuffer, caps Caps, cfg Config) *Task {
	t := &Task{
		cfg:        cfg,
		disp:       disp,
		surface:    surface,
		shared:     shared,
		caps:       caps,
		touchPress: map[int]string{},
		swatchPx:   SwatchPx(cfg.SwatchSize),
	}
	if disp != nil {
		t.r = newRenderer(disp.Framebuffer())
	}
	t.sess = paint.NewSession(cfg.Initial)
	t.palette = paint.NewPalette(cfg.Bases, cfg.SwatchSize, t.sess)
	t.grid = paint.NewGrid(cfg.Rows, cfg.ColumnWidth, func() int { return t.gridRect.W })
	t.hit = &paint.GridHitTester{Grid: t.grid, CellSize: cfg.CellSize}
	t.gest = paint.NewGestures(t.sess, t.grid, func(ref paint.CellRef, _ paint.Color) {
		t.dmg.cells = append(t.dmg.cells, ref)
	})
	t.mouse = paint.NewMouseAdapter(t.gest, t.hit)
	t.touch = paint.NewTouchAdapter(t.gest, t.hit)
	return t
}

// Boot resolves the surface regions and renders the initial state: the
// capture trigger first, then the palette, then the drawing grid. A missing
// region aborts the boot.
func (t *Task) Boot() error {
	if t.booted {
		return nil
	}
	var err error
	if t.captureRect, err = t.surface.Lookup(RegionCapture); err != nil {
		return fmt.Errorf("canvas boot: %w", err)
	}

	if t.paletteRect, err = t.surface.Lookup(RegionPalette); err != nil {
		return fmt.Errorf("canvas boot: %w", err)
	}
	if t.variantsRect, err = t.surface.Lookup(RegionVariants); err != nil {
		return fmt.Errorf("canvas boot: %w", err)
	}
	if t.previewRect, err = t.surface.Lookup(RegionPreview); err != nil {
		return fmt.Errorf("canvas boot: %w", err)
	}
	t.palette.RenderBaseSwatches()

	if t.gridRect, err = t.surface.Lookup(RegionGrid); err != nil {
		return fmt.Errorf("canvas boot: %w", err)
	}
	t.buildGrid()

	t.booted = true
	t.dmg.full, t.dmg.palette, t.dmg.grid = true, true, true
	return nil
}

func (t *Task) buildGrid() {
	t.grid.Build(t.cfg.Color1, t.cfg.Color2)
	t.hit.X, t.hit.Y = t.gridRect.X, t.gridRect.Y
	t.hit.W = t.grid.Cols() * t.cfg.CellSize
	t.hit.H = t.grid.Rows() * t.cfg.CellSize
	t.dmg.grid = true
	t.dmg.cells = t.dmg.cells[:0]
}

func (t *Task) Run(ctx *kernel.Context) {
	if err := t.Boot(); err != nil {
		logclient.Logf(ctx, t.caps.Log, "canvas: %v", err)
		return
	}
	t.flush()
	logclient.Logf(ctx, t.caps.Log, "canvas: %dx%d grid, colour %s", t.grid.Cols(), t.grid.Rows(), t.sess.Color())

	for {
		msg, ok := ctx.Recv(t.caps.In)
		if !ok {
			return
		}
		t.Handle(ctx, msg)
	}
}

// Handle applies one inbound message and redraws what it changed.
func (t *Task) Handle(ctx *kernel.Context, msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgPointer:
		kind, src, id, x, y, ok := proto.DecodePointerPayload(msg.Payload())
		if !ok {
			return
		}
		t.pointer(ctx, hal.PointerEvent{
			Kind:   hal.PointerKind(kind),
			Source: hal.PointerSource(src),
			ID:     int(id),
			X:      int(x),
			Y:      int(y),
		})
	case proto.MsgKey:
		code, press, r, ok := proto.DecodeKeyPayload(msg.Payload())
		if !ok {
			return
		}
		t.key(ctx, hal.KeyCode(code), press, r)
	case proto.MsgCaptureDone, proto.MsgError:
		if out, ok := captureclient.DecodeReply(msg); ok && out.Err == nil {
			t.lastCapture = out.Name
		}
	}
	t.flush()
}

func (t *Task) pointer(ctx *kernel.Context, ev hal.PointerEvent) {
	switch ev.Source {
	case hal.PointerMouse:
		switch ev.Kind {
		case hal.PointerDown:
			t.mousePress, t.mousePressed = t.surface.RegionAt(ev.X, ev.Y)
			t.mouse.Down(ev.X, ev.Y)
		case hal.PointerMove:
			t.mouse.Move(ev.X, ev.Y)
		case hal.PointerUp:
			t.mouse.Up()
			if t.mousePressed {
				t.release(ctx, t.mousePress, ev.X, ev.Y)
			}
			t.mousePressed = false
		case hal.PointerCancel:
			t.mouse.Up()
			t.mousePressed = false
		}
	case hal.PointerTouch:
		switch ev.Kind {
		case hal.PointerDown:
			if name, ok := t.surface.RegionAt(ev.X, ev.Y); ok {
				t.touchPress[ev.ID] = name
			}
			t.touch.Start(ev.ID, ev.X, ev.Y)
		case hal.PointerMove:
			t.touch.Move(ev.ID, ev.X, ev.Y)
		case hal.PointerUp:
			t.touch.End(ev.ID)
			if name, ok := t.touchPress[ev.ID]; ok {
				delete(t.touchPress, ev.ID)
				t.release(ctx, name, ev.X, ev.Y)
			}
		case hal.PointerCancel:
			t.touch.End(ev.ID)
			delete(t.touchPress, ev.ID)
		}
	}
}

// release turns a press and release over the same region into a click.
func (t *Task) release(ctx *kernel.Context, pressed string, x, y int) {
	if name, ok := t.surface.RegionAt(x, y); ok && name == pressed {
		t.click(ctx, name, x, y)
	}
}

func (t *Task) click(ctx *kernel.Context, region string, x, y int) {
	switch region {
	case RegionPalette:
		if i, ok := swatchAt(t.paletteRect, t.swatchPx, x, y, len(t.palette.Swatches())); ok {
			t.palette.SelectBase(i)
			t.dmg.palette = true
		}
	case RegionVariants:
		if i, ok := swatchAt(t.variantsRect, t.swatchPx, x, y, len(t.palette.Variants())); ok {
			t.palette.SelectVariant(i)
			t.dmg.palette = true
		}
	case RegionCapture:
		t.capture(ctx)
	}
}

func (t *Task) key(ctx *kernel.Context, code hal.KeyCode, press bool, r rune) {
	if !press {
		return
	}
	switch {
	case code == hal.KeyEnter || r == 's' || r == 'S':
		t.capture(ctx)
	case code == hal.KeyEscape:
		t.gest.End()
	case r == 'c' || r == 'C':
		t.buildGrid()
		logclient.Logf(ctx, t.caps.Log, "canvas: grid rebuilt (%s/%s)", t.cfg.Color1, t.cfg.Color2)
	case r >= '1' && r <= '9':
		if t.palette.SelectBase(int(r - '1')) {
			t.dmg.palette = true
		}
	}
}

// capture hands an immutable snapshot to the capture service. It never
// waits for the result.
func (t *Task) capture(ctx *kernel.Context) {
	t.nextRequest++
	if err := captureclient.Request(ctx, t.caps.Capture, t.shared, t.nextRequest, t.grid.Snapshot(), t.caps.Reply); err != nil {
		logclient.Logf(ctx, t.caps.Log, "canvas: %v", err)
	}
}

// flush draws pending damage into the framebuffer.
func (t *Task) flush() {
	if t.r != nil && t.r.fb != nil && t.dmg.any() {
		t.draw()
		t.r.present()
	}
	t.dmg = damage{cells: t.dmg.cells[:0]}
}

func (t *Task) draw() {
	unlock := t.r.lock()
	defer unlock()

	if t.dmg.full {
		t.r.fill(Rect{W: t.surface.Width(), H: t.gridRect.Y}, colorBackground)
	}
	if t.dmg.palette {
		t.r.strip(t.paletteRect, t.swatchPx, t.palette.Swatches())
		t.r.strip(t.variantsRect, t.swatchPx, t.palette.Variants())
		t.r.styled(t.previewRect, t.palette.Preview())
		t.r.button(t.captureRect, captureLabel)
	}
	if t.dmg.grid {
		t.r.grid(t.gridRect, t.grid, t.cfg.CellSize)
		return
	}
	for _, ref := range t.dmg.cells {
		if c, ok := t.grid.ColorAt(ref.Col, ref.Row); ok && t.grid.Owns(ref) {
			t.r.cell(t.gridRect, ref.Col, ref.Row, t.cfg.CellSize, c)
		}
	}
}

func (t *Task) Session() *paint.Session { return t.sess }
func (t *Task) Palette() *paint.Palette { return t.palette }
func (t *Task) Grid() *paint.Grid       { return t.grid }

// LastCapture is the file name of the most recent confirmed capture.
func (t *Task) LastCapture() string { return t.lastCapture }
