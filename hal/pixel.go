package hal

import "image/color"

// RGB565 packs an 8-bit-per-channel colour into 16bpp.
func RGB565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// RGB888From565 expands a 16bpp pixel back to 8 bits per channel.
func RGB888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// FillRect paints a clipped rectangle into an RGB565 framebuffer.
func FillRect(fb Framebuffer, x0, y0, w, h int, c color.RGBA) {
	if fb == nil || fb.Format() != PixelFormatRGB565 {
		return
	}
	buf := fb.Buffer()
	if buf == nil {
		return
	}

	fw, fh := fb.Width(), fb.Height()
	x1, y1 := x0+w, y0+h
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > fw {
		x1 = fw
	}
	if y1 > fh {
		y1 = fh
	}
	if x0 >= x1 || y0 >= y1 {
		return
	}

	pixel := RGB565(c.R, c.G, c.B)
	lo, hi := byte(pixel), byte(pixel>>8)
	stride := fb.StrideBytes()
	for y := y0; y < y1; y++ {
		row := y * stride
		for x := x0; x < x1; x++ {
			off := row + x*2
			if off+1 >= len(buf) {
				return
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

// StrokeRect draws a 1px rectangle outline.
func StrokeRect(fb Framebuffer, x0, y0, w, h int, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	FillRect(fb, x0, y0, w, 1, c)
	FillRect(fb, x0, y0+h-1, w, 1, c)
	FillRect(fb, x0, y0, 1, h, c)
	FillRect(fb, x0+w-1, y0, 1, h, c)
}

// PixelAt reads back one pixel; ok is false outside the framebuffer.
func PixelAt(fb Framebuffer, x, y int) (c color.RGBA, ok bool) {
	if fb == nil || fb.Format() != PixelFormatRGB565 {
		return color.RGBA{}, false
	}
	if x < 0 || y < 0 || x >= fb.Width() || y >= fb.Height() {
		return color.RGBA{}, false
	}
	buf := fb.Buffer()
	off := y*fb.StrideBytes() + x*2
	if off+1 >= len(buf) {
		return color.RGBA{}, false
	}
	r, g, b := RGB888From565(uint16(buf[off]) | uint16(buf[off+1])<<8)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, true
}
