package paint

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	pperr "pixelpad/internal/errors"

	"github.com/gogpu/gg"
)

// Base is a top-level palette colour.
type Base uint8

const (
	Black Base = iota
	White
	Red
	Blue
	Green
	Orange
	Pink
	baseCount
)

var baseNames = [baseCount]string{"black", "white", "red", "blue", "green", "orange", "pink"}

// Bases lists every known base colour in palette order.
func Bases() []Base {
	out := make([]Base, 0, baseCount)
	for b := Base(0); b < baseCount; b++ {
		out = append(out, b)
	}
	return out
}

func (b Base) String() string {
	if b >= baseCount {
		return "unknown"
	}
	return baseNames[b]
}

// ParseBase resolves a base colour name.
func ParseBase(s string) (Base, error) {
	for b := Base(0); b < baseCount; b++ {
		if baseNames[b] == s {
			return b, nil
		}
	}
	return 0, pperr.InvalidField("color", fmt.Sprintf("unknown base color %q", s))
}

// HasVariants reports whether the base expands into shade variants.
// Black and white do not.
func (b Base) HasVariants() bool {
	return b < baseCount && b != Black && b != White
}

// Variants returns {base}-100 … {base}-700, or nil for bases without variants.
func (b Base) Variants() []Color {
	if !b.HasVariants() {
		return nil
	}
	out := make([]Color, 0, VariantCount)
	for i := 1; i <= VariantCount; i++ {
		out = append(out, Color{base: b, shade: Shade(i * 100)})
	}
	return out
}

// Default is what selecting the base swatch resolves to.
func (b Base) Default() Color {
	if !b.HasVariants() {
		return Color{base: b}
	}
	return Color{base: b, shade: DefaultShade}
}

// Shade is a variant step: 0 for none, else 100..700.
type Shade uint16

const (
	ShadeNone    Shade = 0
	DefaultShade Shade = 400
	VariantCount       = 7
)

func (s Shade) valid() bool {
	return s >= 100 && s <= VariantCount*100 && s%100 == 0
}

// Color is a validated colour identifier: a base with an optional shade.
//
// The zero value is black.
type Color struct {
	base  Base
	shade Shade
}

// NewColor validates a base/shade pair.
func NewColor(b Base, s Shade) (Color, error) {
	if b >= baseCount {
		return Color{}, pperr.InvalidField("color", fmt.Sprintf("unknown base color %d", b))
	}
	if s == ShadeNone {
		return Color{base: b}, nil
	}
	if !b.HasVariants() {
		return Color{}, pperr.InvalidField("color", fmt.Sprintf("%s has no shade variants", b))
	}
	if !s.valid() {
		return Color{}, pperr.InvalidField("color", fmt.Sprintf("unknown shade %d", s))
	}
	return Color{base: b, shade: s}, nil
}

// ParseColor parses "red" or "red-400".
func ParseColor(s string) (Color, error) {
	name, step, hasStep := strings.Cut(s, "-")
	b, err := ParseBase(name)
	if err != nil {
		return Color{}, err
	}
	if !hasStep {
		return Color{base: b}, nil
	}
	n, err := strconv.Atoi(step)
	if err != nil || n <= 0 {
		return Color{}, pperr.InvalidField("color", fmt.Sprintf("bad shade in %q", s))
	}
	return NewColor(b, Shade(n))
}

// MustColor is ParseColor for identifiers known at compile time.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) Base() Base   { return c.base }
func (c Color) Shade() Shade { return c.shade }

// IsVariant reports whether c carries a shade suffix.
func (c Color) IsVariant() bool { return c.shade != ShadeNone }

func (c Color) String() string {
	if c.shade == ShadeNone {
		return c.base.String()
	}
	return c.base.String() + "-" + strconv.Itoa(int(c.shade))
}

// Code packs the colour into one byte for transfer: base<<3 | shade/100.
func (c Color) Code() uint8 {
	return uint8(c.base)<<3 | uint8(c.shade/100)
}

// ColorFromCode reverses Code.
func ColorFromCode(code uint8) (Color, bool) {
	c, err := NewColor(Base(code>>3), Shade(code&0x07)*100)
	if err != nil {
		return Color{}, false
	}
	return c, true
}

// RGBA resolves the colour to concrete channels.
func (c Color) RGBA() color.RGBA {
	if c.base >= baseCount {
		return color.RGBA{A: 0xFF}
	}
	return rgbaTable[c.base][c.shade/100]
}

// Hex values per base: index 0 is the bare base, 1..7 the shades.
var hexTable = [baseCount][VariantCount + 1]string{
	Black:  {"#000000"},
	White:  {"#ffffff"},
	Red:    {"#ef4444", "#fee2e2", "#fecaca", "#fca5a5", "#f87171", "#ef4444", "#dc2626", "#b91c1c"},
	Blue:   {"#3b82f6", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa", "#3b82f6", "#2563eb", "#1d4ed8"},
	Green:  {"#22c55e", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80", "#22c55e", "#16a34a", "#15803d"},
	Orange: {"#f97316", "#ffedd5", "#fed7aa", "#fdba74", "#fb923c", "#f97316", "#ea580c", "#c2410c"},
	Pink:   {"#ec4899", "#fce7f3", "#fbcfe8", "#f9a8d4", "#f472b6", "#ec4899", "#db2777", "#be185d"},
}

var rgbaTable = buildRGBATable()

func buildRGBATable() (t [baseCount][VariantCount + 1]color.RGBA) {
	for b := range hexTable {
		for i, hex := range hexTable[b] {
			if hex == "" {
				continue
			}
			t[b][i] = color.RGBAModel.Convert(gg.Hex(hex).Color()).(color.RGBA)
		}
	}
	return t
}
