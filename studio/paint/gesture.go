package paint

// StrokeState is the gesture state shared by every input modality.
type StrokeState uint8

const (
	StrokeIdle StrokeState = iota
	StrokeDrawing
)

func (s StrokeState) String() string {
	if s == StrokeDrawing {
		return "drawing"
	}
	return "idle"
}

// HitTester resolves surface coordinates to grid cells.
type HitTester interface {
	// Contains reports whether (x, y) is over the grid area.
	Contains(x, y int) bool
	// HitTest returns the cell under (x, y), if any.
	HitTest(x, y int) (CellRef, bool)
}

// GridHitTester maps pixels to cells of a grid drawn at (X, Y) with square
// cells of CellSize pixels. W and H bound the grid area.
type GridHitTester struct {
	Grid     *Grid
	X, Y     int
	W, H     int
	CellSize int
}

func (h GridHitTester) Contains(x, y int) bool {
	return x >= h.X && y >= h.Y && x < h.X+h.W && y < h.Y+h.H
}

func (h GridHitTester) HitTest(x, y int) (CellRef, bool) {
	if h.Grid == nil || h.CellSize <= 0 || !h.Contains(x, y) {
		return CellRef{}, false
	}
	return h.Grid.Cell((x-h.X)/h.CellSize, (y-h.Y)/h.CellSize)
}

// Gestures is the stroke engine. Modality adapters resolve coordinates and
// call Start, Enter and End; Gestures owns the state transitions and the
// single paint entry point.
type Gestures struct {
	sess    *Session
	grid    *Grid
	onPaint func(CellRef, Color)
}

// NewGestures binds the engine to a session and grid. onPaint, if non-nil,
// is called after every successful cell paint.
func NewGestures(sess *Session, grid *Grid, onPaint func(CellRef, Color)) *Gestures {
	return &Gestures{sess: sess, grid: grid, onPaint: onPaint}
}

// State mirrors the session's drawing flag.
func (g *Gestures) State() StrokeState {
	if g.sess.Drawing() {
		return StrokeDrawing
	}
	return StrokeIdle
}

// Start begins a stroke and paints the cell under the pointer, if any.
func (g *Gestures) Start(ref CellRef, ok bool) {
	g.sess.BeginStroke()
	if ok {
		g.Paint(ref)
	}
}

// Enter handles the pointer reaching a cell; it paints only mid-stroke.
func (g *Gestures) Enter(ref CellRef, ok bool) {
	if !ok || !g.sess.Drawing() {
		return
	}
	g.Paint(ref)
}

// End finishes the stroke. It is safe to call in any state.
func (g *Gestures) End() {
	g.sess.EndStroke()
}

// Paint applies the session colour to ref. Cells the grid does not own are
// ignored.
func (g *Gestures) Paint(ref CellRef) bool {
	c := g.sess.Color()
	if !g.grid.Paint(ref, c) {
		return false
	}
	if g.onPaint != nil {
		g.onPaint(ref, c)
	}
	return true
}

// MouseAdapter turns cursor samples into pointer-enters-cell events.
type MouseAdapter struct {
	g   *Gestures
	hit HitTester

	last    CellRef
	hasLast bool
}

func NewMouseAdapter(g *Gestures, hit HitTester) *MouseAdapter {
	return &MouseAdapter{g: g, hit: hit}
}

// Down starts a stroke when the button goes down over the grid. It reports
// whether the press was consumed by the grid.
func (m *MouseAdapter) Down(x, y int) bool {
	if !m.hit.Contains(x, y) {
		return false
	}
	ref, ok := m.hit.HitTest(x, y)
	m.last, m.hasLast = ref, ok
	m.g.Start(ref, ok)
	return true
}

// Move fires Enter only when the cursor crosses into a different cell.
func (m *MouseAdapter) Move(x, y int) {
	ref, ok := m.hit.HitTest(x, y)
	if !ok {
		m.hasLast = false
		return
	}
	if m.hasLast && sameCell(ref, m.last) {
		return
	}
	m.last, m.hasLast = ref, true
	m.g.Enter(ref, true)
}

// Up ends the stroke wherever the button is released.
func (m *MouseAdapter) Up() {
	m.g.End()
}

type contact struct {
	id   int
	x, y int
}

// TouchAdapter hit-tests the first active contact on every sample.
type TouchAdapter struct {
	g   *Gestures
	hit HitTester

	active []contact
}

func NewTouchAdapter(g *Gestures, hit HitTester) *TouchAdapter {
	return &TouchAdapter{g: g, hit: hit}
}

// Start registers a contact. Over the grid it starts a stroke and paints
// under the first active contact; the return value says so.
func (t *TouchAdapter) Start(id, x, y int) bool {
	t.active = append(t.active, contact{id: id, x: x, y: y})
	if !t.hit.Contains(x, y) {
		return false
	}
	first := t.active[0]
	ref, ok := t.hit.HitTest(first.x, first.y)
	t.g.Start(ref, ok)
	return true
}

// Move updates a contact and paints under the first active contact while drawing.
func (t *TouchAdapter) Move(id, x, y int) {
	for i := range t.active {
		if t.active[i].id == id {
			t.active[i].x, t.active[i].y = x, y
			break
		}
	}
	if len(t.active) == 0 || !t.g.sess.Drawing() {
		return
	}
	first := t.active[0]
	ref, ok := t.hit.HitTest(first.x, first.y)
	t.g.Enter(ref, ok)
}

// End handles a contact lifting or being cancelled anywhere; the stroke ends.
func (t *TouchAdapter) End(id int) {
	for i := range t.active {
		if t.active[i].id == id {
			t.active = append(t.active[:i], t.active[i+1:]...)
			break
		}
	}
	t.g.End()
}

// Contacts returns the number of active touch contacts.
func (t *TouchAdapter) Contacts() int { return len(t.active) }

func sameCell(a, b CellRef) bool {
	return a.grid == b.grid && a.gen == b.gen && a.Col == b.Col && a.Row == b.Row
}
