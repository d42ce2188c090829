package app

import (
	"errors"
	"fmt"

	"pixelpad/hal"
	"pixelpad/internal/config"
	"pixelpad/studio/kernel"
	capturesvc "pixelpad/studio/services/capture"
	"pixelpad/studio/services/input"
	"pixelpad/studio/services/logger"
	"pixelpad/studio/tasks/canvas"
)

const canvasSlots = 64

var ErrNoDisplay = errors.New("no display")

// System is a running pixelpad instance.
type System struct {
	k      *kernel.Kernel
	ticks  <-chan uint64
	canvas *canvas.Task
}

// Surface returns the standard surface layout for cfg.
func Surface(cfg config.Config) *canvas.Surface {
	return canvas.Layout(canvas.LayoutConfig{
		Width:      cfg.Window.Width,
		Rows:       cfg.Grid.Rows,
		CellSize:   cfg.Grid.CellSize,
		SwatchSize: cfg.Palette.SwatchSize,
		Swatches:   len(cfg.Palette.Colors),
	})
}

// New boots pixelpad on h with the standard surface.
func New(h hal.HAL, cfg config.Config) (*System, error) {
	return NewWithSurface(h, cfg, Surface(cfg))
}

// NewWithSurface boots pixelpad on an explicit surface. The canvas is
// booted before any task starts, so a surface missing a region fails here
// and nothing is left running.
func NewWithSurface(h hal.HAL, cfg config.Config, surface *canvas.Surface) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bases, _ := cfg.Bases()
	initial, _ := cfg.InitialColor()
	c1, c2, _ := cfg.GridColors()

	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return nil, ErrNoDisplay
	}
	fb := disp.Framebuffer()
	if fb.Width() < surface.Width() || fb.Height() < surface.Height() {
		return nil, fmt.Errorf("framebuffer %dx%d is smaller than the %dx%d surface", fb.Width(), fb.Height(), surface.Width(), surface.Height())
	}

	k := kernel.New()
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	canvasEP := k.NewEndpointSlots(kernel.RightSend|kernel.RightRecv, canvasSlots)
	captureEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	shared := &kernel.SharedBuffer{}

	task := canvas.New(disp, surface, shared, canvas.Caps{
		In:      canvasEP.Restrict(kernel.RightRecv),
		Reply:   canvasEP.Restrict(kernel.RightSend),
		Capture: captureEP.Restrict(kernel.RightSend),
		Log:     logEP.Restrict(kernel.RightSend),
	}, canvas.Config{
		Rows:        cfg.Grid.Rows,
		ColumnWidth: cfg.Grid.ColumnWidth,
		CellSize:    cfg.Grid.CellSize,
		SwatchSize:  cfg.Palette.SwatchSize,
		Bases:       bases,
		Initial:     initial,
		Color1:      c1,
		Color2:      c2,
	})
	if err := task.Boot(); err != nil {
		return nil, err
	}

	installPanicHandler(k, h)

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(capturesvc.New(captureEP.Restrict(kernel.RightRecv), shared, h.Storage(), logEP.Restrict(kernel.RightSend), capturesvc.Config{
		Prefix:    cfg.Capture.Prefix,
		NameRange: cfg.Capture.NameRange,
		CellPx:    cfg.Grid.CellSize,
	}))
	k.AddTask(task)
	k.AddTask(input.New(h.Input(), canvasEP.Restrict(kernel.RightSend), logEP.Restrict(kernel.RightSend)))

	s := &System{k: k, canvas: task}
	if t := h.Time(); t != nil {
		s.ticks = t.Ticks()
	}
	return s, nil
}

// Step forwards pending HAL ticks to the kernel. The host calls it once per
// frame. After a task panic the kernel clock stops and the panic screen stays
// up.
func (s *System) Step() error {
	if s.ticks == nil {
		return nil
	}
	var last uint64
	for {
		select {
		case seq := <-s.ticks:
			last = seq
		default:
			if last > 0 && !s.k.Panicked() {
				s.k.TickTo(last)
			}
			return nil
		}
	}
}

// Stop shuts the kernel down and waits for every task to return.
func (s *System) Stop() {
	s.k.Shutdown()
	s.k.Wait()
}

// Builder adapts New to the host runners.
func Builder(cfg config.Config, started func(*System)) func(hal.HAL) (func() error, error) {
	return func(h hal.HAL) (func() error, error) {
		s, err := New(h, cfg)
		if err != nil {
			return nil, err
		}
		if started != nil {
			started(s)
		}
		return s.Step, nil
	}
}
