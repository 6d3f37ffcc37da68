package diagram

import (
	"fmt"
	"strconv"
	"strings"
)

// Element is a single diagram entity. Build returns the element's TikZ
// fragments in emission order. Build must be pure: no I/O, no mutation, and
// repeated calls yield identical output.
type Element interface {
	Build() []string
}

// Anchored is implemented by elements that define a named placement anchor
// which later elements can reference.
type Anchored interface {
	Element
	AnchorName() string
}

// Linker is implemented by elements that connect two anchors.
type Linker interface {
	Element
	Endpoints() (of, to string)
}

// Composite is implemented by elements that expand to a fixed sequence of
// child elements.
type Composite interface {
	Element
	Children() []Element
}

// attrs is the shared attribute set for box-shaped layers. Constructors fill
// in per-kind defaults before applying options.
type attrs struct {
	name    string
	caption string
	offset  string
	to      string
	width   float64
	height  float64
	depth   float64
	opacity float64
	filters []int
	spatial string
	widths  []float64
	pos     float64
	radius  float64
	logo    string
}

// Option adjusts a layer's attributes before validation. Options are shared
// across all layer constructors; an option that has no meaning for a given
// kind (e.g. WithRadius on a Conv) is simply ignored by its Build.
type Option func(*attrs)

// WithCaption sets the caption rendered under the element.
func WithCaption(caption string) Option {
	return func(a *attrs) { a.caption = caption }
}

// WithOffset sets the raw TikZ shift expression, e.g. "(1,0,0)".
func WithOffset(offset string) Option {
	return func(a *attrs) { a.offset = offset }
}

// WithTo sets the raw placement expression, e.g. "(pool1-east)".
func WithTo(to string) Option {
	return func(a *attrs) { a.to = to }
}

// After places the element at the east anchor of a previously added element.
// After("pool1") is shorthand for WithTo("(pool1-east)").
func After(anchor string) Option {
	return func(a *attrs) { a.to = "(" + anchor + "-east)" }
}

// WithShape sets width, height and depth. For banded layers the width applies
// to each slab unless WithWidths overrides it.
func WithShape(width, height, depth float64) Option {
	return func(a *attrs) {
		a.width = width
		a.height = height
		a.depth = depth
	}
}

// WithWidths sets per-slab widths for banded layers (ConvConvRelu,
// SeparableConv, MultiHeadAttention, FeedForward).
func WithWidths(widths ...float64) Option {
	return func(a *attrs) { a.widths = widths }
}

// WithOpacity sets the fill opacity.
func WithOpacity(opacity float64) Option {
	return func(a *attrs) { a.opacity = opacity }
}

// WithFilters sets the channel-count labels (xlabel). Banded layers take one
// count per slab. An empty call leaves the kind's default counts in place;
// Build indexes the filter list, so it must never become empty.
func WithFilters(filters ...int) Option {
	return func(a *attrs) {
		if len(filters) == 0 {
			return
		}
		a.filters = filters
	}
}

// WithSpatial sets the spatial-size label (zlabel).
func WithSpatial(spatial int) Option {
	return func(a *attrs) { a.spatial = strconv.Itoa(spatial) }
}

// WithSpatialLabel sets the spatial-size label to an arbitrary string, for
// labels like "H/4".
func WithSpatialLabel(label string) Option {
	return func(a *attrs) { a.spatial = label }
}

// WithPos sets the vertical detour position for Skip connections.
func WithPos(pos float64) Option {
	return func(a *attrs) { a.pos = pos }
}

// WithRadius sets the radius for ball-shaped elements (Sum, Add, Concat, Split).
func WithRadius(radius float64) Option {
	return func(a *attrs) { a.radius = radius }
}

// WithName overrides the anchor name for elements with a defaulted name
// (Input).
func WithName(name string) Option {
	return func(a *attrs) { a.name = name }
}

func (a *attrs) apply(opts []Option) {
	for _, o := range opts {
		o(a)
	}
}

// slabWidths returns the per-slab widths for banded layers, falling back to
// the scalar width when none were set.
func (a *attrs) slabWidths() []float64 {
	if len(a.widths) > 0 {
		return a.widths
	}
	return []float64{a.width}
}

// baseAttrs returns the attribute defaults shared by all box layers.
func baseAttrs(name string) attrs {
	return attrs{
		name:    name,
		caption: " ",
		offset:  "(0,0,0)",
		to:      "(0,0,0)",
	}
}

// num formats a dimension the shortest way that round-trips, so integral
// values emit without a decimal point.
func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// kv is one key=value line inside a pic body.
type kv struct {
	k, v string
}

// pic renders a \pic fragment invoking one of the bundled TikZ pictures
// (Box, RightBandedBox, Ball) with the given ordered key list.
func pic(kind string, a *attrs, pairs []kv) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\pic[shift={%s}] at %s\n    {%s={\n", a.offset, a.to, kind)
	for i, p := range pairs {
		fmt.Fprintf(&b, "        %s=%s", p.k, p.v)
		if i < len(pairs)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("        }\n    };")
	return b.String()
}

// xlabelSingle renders an xlabel for a one-slab box: "{{ 64, }}".
func xlabelSingle(n int) string {
	return fmt.Sprintf("{{ %d, }}", n)
}

// xlabelPair renders an xlabel for a two-slab banded box:
// "{ { 64 }, { 64 } }".
func xlabelPair(a, b int) string {
	return fmt.Sprintf("{ { %d }, { %d } }", a, b)
}

// xlabelBanded renders an xlabel listing one count per slab.
func xlabelBanded(filters []int) string {
	parts := make([]string, len(filters))
	for i, n := range filters {
		parts[i] = fmt.Sprintf("{ %d }", n)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// widthList renders a width list for banded boxes: "{ 2 , 2 }".
func widthList(widths []float64) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = num(w)
	}
	return "{ " + strings.Join(parts, " , ") + " }"
}
