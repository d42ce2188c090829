package hal

import (
	"image/color"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = Displayer{}

// Displayer adapts a Framebuffer to the tinygo driver interface so tinyfont
// can draw into it.
type Displayer struct {
	FB Framebuffer
}

func (d Displayer) Size() (x, y int16) {
	if d.FB == nil {
		return 0, 0
	}
	return int16(d.FB.Width()), int16(d.FB.Height())
}

func (d Displayer) SetPixel(x, y int16, c color.RGBA) {
	FillRect(d.FB, int(x), int(y), 1, 1, c)
}

func (d Displayer) Display() error {
	if d.FB == nil {
		return nil
	}
	return d.FB.Present()
}
