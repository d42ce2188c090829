package paint

// Session is the selection state of one drawing surface: the colour that
// strokes paint with and whether a stroke is in progress.
//
// A Session belongs to the goroutine that dispatches input events; it is
// not safe for concurrent use.
type Session struct {
	color   Color
	drawing bool
}

// NewSession starts with the given colour selected and no stroke.
func NewSession(initial Color) *Session {
	return &Session{color: initial}
}

func (s *Session) Color() Color { return s.color }

// SetColor accepts any valid colour; consumers refresh their own views.
func (s *Session) SetColor(c Color) { s.color = c }

func (s *Session) Drawing() bool { return s.drawing }

func (s *Session) BeginStroke() { s.drawing = true }

func (s *Session) EndStroke() { s.drawing = false }
