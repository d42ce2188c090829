package canvas

import (
	"image/color"
	"sync"

	"pixelpad/hal"
	"pixelpad/studio/paint"

	"tinygo.org/x/tinyfont"
)

var (
	colorBackground = color.RGBA{R: 0xF3, G: 0xF4, B: 0xF6, A: 0xFF}
	colorBorder     = color.RGBA{A: 0xFF}
	colorButton     = color.RGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xFF}
	colorLabel      = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

const captureLabel = "SAVE"

type renderer struct {
	fb   hal.Framebuffer
	font tinyfont.Fonter
}

func newRenderer(fb hal.Framebuffer) *renderer {
	return &renderer{fb: fb, font: &tinyfont.TomThumb}
}

// lock serializes drawing with framebuffer readers when the framebuffer
// supports it.
func (r *renderer) lock() func() {
	if l, ok := r.fb.(sync.Locker); ok {
		l.Lock()
		return l.Unlock
	}
	return func() {}
}

func (r *renderer) present() {
	if r.fb != nil {
		_ = r.fb.Present()
	}
}

func (r *renderer) fill(rect Rect, c color.RGBA) {
	hal.FillRect(r.fb, rect.X, rect.Y, rect.W, rect.H, c)
}

// styled draws a chip from its style tags: the background colour, then a
// 1px outline when the style carries "border".
func (r *renderer) styled(rect Rect, st paint.Style) {
	bg, ok := st.Background()
	if !ok {
		bg = paint.MustColor("white")
	}
	r.fill(rect, bg.RGBA())
	if st.Has("border") {
		hal.StrokeRect(r.fb, rect.X, rect.Y, rect.W, rect.H, colorBorder)
	}
}

// strip redraws a row of swatches inside rect.
func (r *renderer) strip(rect Rect, sw int, swatches []paint.Swatch) {
	r.fill(rect, colorBackground)
	for i, s := range swatches {
		x := rect.X + i*(sw+gap)
		if x+sw > rect.X+rect.W {
			return
		}
		r.styled(Rect{X: x, Y: rect.Y, W: sw, H: sw}, s.Style)
	}
}

func (r *renderer) button(rect Rect, label string) {
	r.fill(rect, colorButton)
	_, w := tinyfont.LineWidth(r.font, label)
	x := rect.X + (rect.W-int(w))/2
	y := rect.Y + rect.H/2 + 3
	tinyfont.WriteLine(hal.Displayer{FB: r.fb}, r.font, int16(x), int16(y), label, colorLabel)
}

// grid redraws every cell; the slack right of the last column is background.
func (r *renderer) grid(rect Rect, g *paint.Grid, cell int) {
	r.fill(rect, colorBackground)
	for col := 0; col < g.Cols(); col++ {
		for row := 0; row < g.Rows(); row++ {
			c, _ := g.ColorAt(col, row)
			r.cell(rect, col, row, cell, c)
		}
	}
}

func (r *renderer) cell(rect Rect, col, row, cell int, c paint.Color) {
	r.fill(Rect{X: rect.X + col*cell, Y: rect.Y + row*cell, W: cell, H: cell}, c.RGBA())
}
