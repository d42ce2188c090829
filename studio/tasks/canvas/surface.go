package canvas

import (
	"errors"
	"fmt"

	pperr "pixelpad/internal/errors"
)

// Region names the canvas looks up at boot.
const (
	RegionPalette  = "palette"
	RegionVariants = "palette-variants"
	RegionPreview  = "palette-preview"
	RegionCapture  = "capture-button"
	RegionGrid     = "drawing-grid"
)

// ErrMissingElement reports a region the canvas needs but the surface lacks.
var ErrMissingElement = errors.New("missing surface element")

const (
	margin     = 8
	gap        = 4
	unitPx     = 4
	buttonW    = 64
	previewGap = 16
)

// Rect is a pixel rectangle.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Surface is the set of named regions drawn into the framebuffer.
type Surface struct {
	width, height int
	regions       map[string]Rect
}

// NewSurface builds a surface from explicit regions.
func NewSurface(width, height int, regions map[string]Rect) *Surface {
	s := &Surface{width: width, height: height, regions: make(map[string]Rect, len(regions))}
	for name, r := range regions {
		s.regions[name] = r
	}
	return s
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Lookup returns the named region.
func (s *Surface) Lookup(name string) (Rect, error) {
	r, ok := s.regions[name]
	if !ok {
		return Rect{}, fmt.Errorf("%w: %w", ErrMissingElement, pperr.ElementNotFound(name))
	}
	return r, nil
}

// Regions returns a copy of every region.
func (s *Surface) Regions() map[string]Rect {
	out := make(map[string]Rect, len(s.regions))
	for name, r := range s.regions {
		out[name] = r
	}
	return out
}

// RegionAt returns the name of the top-level region under (x, y).
func (s *Surface) RegionAt(x, y int) (string, bool) {
	for _, name := range []string{RegionCapture, RegionPreview, RegionPalette, RegionVariants, RegionGrid} {
		if r, ok := s.regions[name]; ok && r.Contains(x, y) {
			return name, true
		}
	}
	return "", false
}

// LayoutConfig sizes the standard surface.
type LayoutConfig struct {
	Width      int // px
	Rows       int
	CellSize   int // px
	SwatchSize int // layout units
	Swatches   int
}

// SwatchPx is the pixel edge of a swatch of the given size in layout units.
func SwatchPx(size int) int { return size * unitPx }

// Layout places the toolbar on top and the drawing grid below it. The grid
// spans the full width; its height fits Rows cells.
//
//	palette  preview            capture-button
//	palette-variants
//	drawing-grid
func Layout(cfg LayoutConfig) *Surface {
	sw := SwatchPx(cfg.SwatchSize)
	stripW := func(n int) int {
		if n <= 0 {
			return 0
		}
		return n*(sw+gap) - gap
	}

	palette := Rect{X: margin, Y: margin, W: stripW(cfg.Swatches), H: sw}
	preview := Rect{X: palette.X + palette.W + previewGap, Y: margin, W: sw, H: sw}
	capture := Rect{X: cfg.Width - margin - buttonW, Y: margin, W: buttonW, H: sw}
	if left := preview.X + preview.W + previewGap; capture.X < left {
		capture.X = left
	}
	variants := Rect{X: margin, Y: palette.Y + sw + gap, W: stripW(7), H: sw}

	width := cfg.Width
	if right := capture.X + capture.W + margin; right > width {
		width = right
	}
	if right := variants.X + variants.W + margin; right > width {
		width = right
	}

	top := variants.Y + variants.H + margin
	grid := Rect{X: 0, Y: top, W: width, H: cfg.Rows * cfg.CellSize}

	return NewSurface(width, grid.Y+grid.H, map[string]Rect{
		RegionPalette:  palette,
		RegionVariants: variants,
		RegionPreview:  preview,
		RegionCapture:  capture,
		RegionGrid:     grid,
	})
}

// swatchAt maps x inside a strip region to a swatch index.
func swatchAt(r Rect, sw, x, y, n int) (int, bool) {
	if !r.Contains(x, y) || sw <= 0 {
		return 0, false
	}
	dx := x - r.X
	i := dx / (sw + gap)
	if i >= n || dx-i*(sw+gap) >= sw {
		return 0, false
	}
	return i, true
}
