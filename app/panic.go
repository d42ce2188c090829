package app

import (
	"fmt"
	"image/color"
	"strings"
	"sync"
	"unicode/utf8"

	"pixelpad/hal"
	"pixelpad/studio/kernel"

	"tinygo.org/x/tinyfont"
)

// installPanicHandler logs a task panic and paints it over the surface. The
// surface stays frozen afterwards; the host keeps presenting it.
func installPanicHandler(k *kernel.Kernel, h hal.HAL) {
	k.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil || disp.Framebuffer() == nil {
			return
		}
		fb := disp.Framebuffer()

		font := &tinyfont.TomThumb
		const lineHeight = 7
		_, glyphW := tinyfont.LineWidth(font, "0")
		if glyphW == 0 {
			return
		}
		cols := fb.Width() / int(glyphW)
		if cols <= 0 {
			cols = 1
		}

		if l, ok := fb.(sync.Locker); ok {
			l.Lock()
			defer l.Unlock()
		}
		hal.FillRect(fb, 0, 0, fb.Width(), fb.Height(), color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})

		d := hal.Displayer{FB: fb}
		fg := color.RGBA{A: 0xFF}
		y := lineHeight
		for _, line := range lines {
			for len(line) > 0 {
				if y > fb.Height() {
					_ = fb.Present()
					return
				}
				chunk, rest := takeRunes(line, cols)
				tinyfont.WriteLine(d, font, 0, int16(y), chunk, fg)
				y += lineHeight
				line = strings.TrimLeft(rest, " ")
			}
		}
		_ = fb.Present()
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"pixelpad panic:",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
	}
	return lines
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
