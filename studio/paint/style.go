package paint

import "strings"

const bgPrefix = "bg-"

// Style is an ordered set of presentation tags, e.g. "bg-red-400", "border".
//
// Styles are values: every method returns a new Style and leaves the
// receiver untouched.
type Style []string

// NewStyle builds a style with a background followed by extra tags.
func NewStyle(bg Color, tags ...string) Style {
	return Style(tags).WithBackground(bg)
}

// WithBackground drops every background tag and appends the one for c.
func (s Style) WithBackground(c Color) Style {
	out := make(Style, 0, len(s)+1)
	for _, tag := range s {
		if strings.HasPrefix(tag, bgPrefix) {
			continue
		}
		out = append(out, tag)
	}
	return append(out, bgPrefix+c.String())
}

// Background returns the colour named by the background tag.
func (s Style) Background() (Color, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		name, ok := strings.CutPrefix(s[i], bgPrefix)
		if !ok {
			continue
		}
		c, err := ParseColor(name)
		if err != nil {
			return Color{}, false
		}
		return c, true
	}
	return Color{}, false
}

// Has reports whether tag is present.
func (s Style) Has(tag string) bool {
	for _, t := range s {
		if t == tag {
			return true
		}
	}
	return false
}

func (s Style) String() string {
	return strings.Join(s, " ")
}
