package paint

import "strconv"

// SwatchKind separates parent swatches from shade variants.
type SwatchKind uint8

const (
	SwatchBase SwatchKind = iota + 1
	SwatchVariant
)

// Swatch is one selectable colour chip.
type Swatch struct {
	Kind  SwatchKind
	Color Color
	Style Style
}

// Palette presents base swatches, the variant strip of the last selected
// base, and a preview of the session colour.
type Palette struct {
	bases []Base
	size  int
	sess  *Session

	swatches []Swatch
	variants []Swatch
	strip    Base
	hasStrip bool

	preview Style
}

// NewPalette creates a palette over the given bases. size is the swatch edge
// in layout units, used for the size tags.
func NewPalette(bases []Base, size int, sess *Session) *Palette {
	p := &Palette{
		bases: append([]Base(nil), bases...),
		size:  size,
		sess:  sess,
	}
	p.preview = NewStyle(sess.Color(), p.sizeTags("border", "border-black")...)
	return p
}

func (p *Palette) sizeTags(extra ...string) []string {
	n := strconv.Itoa(p.size)
	return append([]string{"w-" + n, "h-" + n}, extra...)
}

// RenderBaseSwatches replaces the palette content with one swatch per base.
// Bases with variants display their default shade; others display as-is.
func (p *Palette) RenderBaseSwatches() {
	swatches := make([]Swatch, 0, len(p.bases))
	for _, b := range p.bases {
		swatches = append(swatches, Swatch{
			Kind:  SwatchBase,
			Color: Color{base: b},
			Style: NewStyle(b.Default(), p.sizeTags("border", "border-black", "cursor-pointer")...),
		})
	}
	p.swatches = swatches
}

// RenderVariantStrip replaces the strip with the 7 shades of base.
// Bases without variants leave the strip untouched.
func (p *Palette) RenderVariantStrip(base Base) {
	vs := base.Variants()
	if vs == nil {
		return
	}
	variants := make([]Swatch, 0, len(vs))
	for _, c := range vs {
		variants = append(variants, Swatch{
			Kind:  SwatchVariant,
			Color: c,
			Style: NewStyle(c, p.sizeTags("border", "border-black", "cursor-pointer")...),
		})
	}
	p.variants = variants
	p.strip = base
	p.hasStrip = true
}

// Select applies a swatch: base swatches with variants resolve to their
// default shade and expand the strip, everything else is selected verbatim.
// The preview always follows the session colour.
func (p *Palette) Select(sw Swatch) Color {
	c := sw.Color
	expand := sw.Kind == SwatchBase && c.Base().HasVariants()
	if expand {
		c = c.Base().Default()
	}

	p.sess.SetColor(c)
	p.preview = p.preview.WithBackground(c)

	if expand {
		p.RenderVariantStrip(c.Base())
	}
	return c
}

// SelectBase selects the i-th base swatch.
func (p *Palette) SelectBase(i int) bool {
	if i < 0 || i >= len(p.swatches) {
		return false
	}
	p.Select(p.swatches[i])
	return true
}

// SelectVariant selects the i-th swatch of the current strip.
func (p *Palette) SelectVariant(i int) bool {
	if i < 0 || i >= len(p.variants) {
		return false
	}
	p.Select(p.variants[i])
	return true
}

// Swatches and Variants return the current render. A later render builds
// new slices, so a result stays valid as a record of what was shown.
func (p *Palette) Swatches() []Swatch { return p.swatches[:len(p.swatches):len(p.swatches)] }
func (p *Palette) Variants() []Swatch { return p.variants[:len(p.variants):len(p.variants)] }
func (p *Palette) Preview() Style     { return p.preview }

// StripBase reports which base the variant strip currently shows.
func (p *Palette) StripBase() (Base, bool) { return p.strip, p.hasStrip }
