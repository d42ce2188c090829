package paint

import (
	"fmt"

	pperr "pixelpad/internal/errors"
)

// ColumnsFor derives the column count from the available width, leaving one
// column of slack. It never returns less than 1.
func ColumnsFor(widthPx, columnWidthPx int) int {
	if columnWidthPx <= 0 {
		return 1
	}
	n := widthPx/columnWidthPx - 1
	if n < 1 {
		return 1
	}
	return n
}

// CellRef addresses one cell of one build of a grid.
type CellRef struct {
	grid *Grid
	gen  uint32
	Col  int
	Row  int
}

// Grid is the drawing matrix, stored column-major.
type Grid struct {
	rows     int
	colWidth int
	avail    func() int

	cols  int
	gen   uint32
	cells [][]Color
}

// NewGrid creates an empty grid. avail reports the display width in pixels
// at build time.
func NewGrid(rows, columnWidthPx int, avail func() int) *Grid {
	return &Grid{rows: rows, colWidth: columnWidthPx, avail: avail}
}

// Build discards every cell and lays out a fresh checkerboard: (col+row)
// even gets c1, odd gets c2. References from earlier builds go stale.
func (g *Grid) Build(c1, c2 Color) {
	width := 0
	if g.avail != nil {
		width = g.avail()
	}
	g.cols = ColumnsFor(width, g.colWidth)
	g.gen++

	g.cells = make([][]Color, g.cols)
	for col := range g.cells {
		column := make([]Color, g.rows)
		for row := range column {
			if (col+row)%2 == 0 {
				column[row] = c1
			} else {
				column[row] = c2
			}
		}
		g.cells[col] = column
	}
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// Generation counts builds; 0 means never built.
func (g *Grid) Generation() uint32 { return g.gen }

// Cell returns a reference to (col, row) of the current build.
func (g *Grid) Cell(col, row int) (CellRef, bool) {
	if !g.inBounds(col, row) {
		return CellRef{}, false
	}
	return CellRef{grid: g, gen: g.gen, Col: col, Row: row}, true
}

// ColorAt returns the colour of (col, row).
func (g *Grid) ColorAt(col, row int) (Color, bool) {
	if !g.inBounds(col, row) {
		return Color{}, false
	}
	return g.cells[col][row], true
}

// Owns reports whether ref points at a live cell of this grid.
func (g *Grid) Owns(ref CellRef) bool {
	return ref.grid == g && ref.gen == g.gen && g.inBounds(ref.Col, ref.Row)
}

// Paint overwrites the referenced cell. Refs from another grid, an older
// build, or outside the bounds are ignored.
func (g *Grid) Paint(ref CellRef, c Color) bool {
	if !g.Owns(ref) {
		return false
	}
	g.cells[ref.Col][ref.Row] = c
	return true
}

func (g *Grid) inBounds(col, row int) bool {
	return g.gen != 0 && col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// Snapshot copies the current colours.
func (g *Grid) Snapshot() Snapshot {
	s := Snapshot{Cols: g.cols, Rows: g.rows, Cells: make([]Color, 0, g.cols*g.rows)}
	for _, column := range g.cells {
		s.Cells = append(s.Cells, column...)
	}
	return s
}

// Snapshot is an immutable, column-major copy of grid colours.
type Snapshot struct {
	Cols  int
	Rows  int
	Cells []Color
}

// At returns the colour of (col, row).
func (s Snapshot) At(col, row int) Color {
	return s.Cells[col*s.Rows+row]
}

// Encode packs the cells one byte each, column-major.
func (s Snapshot) Encode() []byte {
	out := make([]byte, len(s.Cells))
	for i, c := range s.Cells {
		out[i] = c.Code()
	}
	return out
}

// DecodeSnapshot reverses Encode.
func DecodeSnapshot(cols, rows int, data []byte) (Snapshot, error) {
	if cols <= 0 || rows <= 0 || len(data) != cols*rows {
		return Snapshot{}, pperr.InvalidField("snapshot", fmt.Sprintf("%d bytes for %dx%d cells", len(data), cols, rows))
	}
	s := Snapshot{Cols: cols, Rows: rows, Cells: make([]Color, len(data))}
	for i, b := range data {
		c, ok := ColorFromCode(b)
		if !ok {
			return Snapshot{}, pperr.InvalidField("snapshot", fmt.Sprintf("bad color code %#x at %d", b, i))
		}
		s.Cells[i] = c
	}
	return s, nil
}
