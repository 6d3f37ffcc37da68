package tex

import (
	"fmt"
	"strings"
)

// Color is one named palette entry. Name is the LaTeX macro name without the
// leading backslash (e.g. "ConvColor"); Mix is a TikZ color mix expression
// (e.g. "rgb:yellow,5;red,2.5;white,5").
type Color struct {
	Name string
	Mix  string
}

// Palette is an ordered list of color definitions emitted into the document
// preamble. Order is preserved so renders are byte-stable.
type Palette []Color

// DefaultPalette returns the base palette: one color per classic layer kind.
// The mix values are fixed constants; changing them breaks visual parity with
// previously rendered diagrams.
func DefaultPalette() Palette {
	return Palette{
		{"ConvColor", "rgb:yellow,5;red,2.5;white,5"},
		{"ConvReluColor", "rgb:yellow,5;red,5;white,5"},
		{"PoolColor", "rgb:red,1;black,0.3"},
		{"UnpoolColor", "rgb:blue,2;green,1;black,0.3"},
		{"FcColor", "rgb:blue,5;red,2.5;white,5"},
		{"FcReluColor", "rgb:blue,5;red,5;white,4"},
		{"SoftmaxColor", "rgb:magenta,5;black,7"},
		{"SumColor", "rgb:blue,5;green,15"},
	}
}

// ExtendedPalette returns the base palette plus entries for the extended
// layer family (activations, normalization, recurrent cells, generic boxes,
// depthwise/separable/transpose convolutions, flatten, squeeze-excitation
// and transformer components).
func ExtendedPalette() Palette {
	return append(DefaultPalette(),
		Color{"ActivationColor", "rgb:orange,5;yellow,2;white,4"},
		Color{"NormColor", "rgb:green,2;white,5;black,0.3"},
		Color{"RnnColor", "rgb:cyan,5;blue,2;white,4"},
		Color{"GenericColor", "rgb:white,4;black,1"},
		Color{"DepthwiseColor", "rgb:yellow,5;green,2.5;white,5"},
		Color{"SeparableColor", "rgb:yellow,5;blue,2.5;white,5"},
		Color{"TransposeConvColor", "rgb:blue,2;green,1;white,3"},
		Color{"FlattenColor", "rgb:white,5;black,2"},
		Color{"SqueezeColor", "rgb:red,3;yellow,2;white,4"},
		Color{"TransformerColor", "rgb:violet,5;blue,2;white,5"},
	)
}

// Definitions renders the palette as a block of \def lines, framed by blank
// lines the way the preamble expects.
func (p Palette) Definitions() string {
	var b strings.Builder
	b.WriteString("\n")
	for _, c := range p {
		fmt.Fprintf(&b, "\\def\\%s{%s}\n", c.Name, c.Mix)
	}
	return b.String()
}

// Lookup returns the mix for a named color and whether it exists.
func (p Palette) Lookup(name string) (string, bool) {
	for _, c := range p {
		if c.Name == name {
			return c.Mix, true
		}
	}
	return "", false
}

// Override returns a copy of the palette with the named color replaced.
// Unknown names are appended, so config-file palettes can both re-tint
// existing kinds and introduce new macros.
func (p Palette) Override(name, mix string) Palette {
	out := make(Palette, len(p))
	copy(out, p)
	for i, c := range out {
		if c.Name == name {
			out[i].Mix = mix
			return out
		}
	}
	return append(out, Color{Name: name, Mix: mix})
}
