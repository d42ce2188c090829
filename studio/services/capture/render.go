package capture

import (
	"bytes"
	"fmt"

	"pixelpad/studio/paint"

	"github.com/gogpu/gg"
)

// Render rasterizes a snapshot with one filled square of cellPx pixels per
// cell and returns the PNG encoding.
func Render(snap paint.Snapshot, cellPx int) ([]byte, error) {
	if snap.Cols <= 0 || snap.Rows <= 0 || cellPx <= 0 {
		return nil, fmt.Errorf("render %dx%d cells at %dpx: %w", snap.Cols, snap.Rows, cellPx, ErrEmptySnapshot)
	}

	dc := gg.NewContext(snap.Cols*cellPx, snap.Rows*cellPx)
	defer dc.Close()

	size := float64(cellPx)
	for col := 0; col < snap.Cols; col++ {
		for row := 0; row < snap.Rows; row++ {
			dc.SetColor(snap.At(col, row).RGBA())
			dc.DrawRectangle(float64(col)*size, float64(row)*size, size, size)
			if err := dc.Fill(); err != nil {
				return nil, fmt.Errorf("fill cell (%d,%d): %w", col, row, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
