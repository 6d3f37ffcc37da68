// Package diagram provides the declarative element model for neural-network
// architecture diagrams.
//
// # Overview
//
// A diagram is an ordered list of elements. Each element knows how to emit
// its own TikZ fragments; the diagram concatenates them in insertion order.
// Insertion order is semantically significant: it is the only thing
// controlling the spatial chain of "(prev-east)" placements, so the list is
// append-only.
//
//	d := diagram.New()
//	conv, _ := diagram.NewConv("c1", diagram.WithFilters(32), diagram.WithShape(2, 16, 16))
//	pool, _ := diagram.NewPool("p1", diagram.After("c1"))
//	d.Add(conv, pool, diagram.NewConnection("c1", "p1"))
//	d.RenderPNG("out/net.png")
//
// # Elements
//
// Leaf elements cover the classic convolutional vocabulary (Input, Conv,
// ConvConvRelu, Pool, UnPool, ConvRes, ConvSoftMax, SoftMax, Sum, Dense,
// Connection, Skip) and an extended family for modern architectures
// (activations, normalization, recurrent cells, depthwise/separable/
// transpose convolutions, squeeze-excitation, and the transformer
// components from TokenEmbedding through OutputProjection).
//
// Constructors share a single functional-option vocabulary ([WithShape],
// [WithFilters], [WithOffset], [After], ...) and validate geometry: width
// and height must be positive. Everything else is deliberately permissive —
// anchor names are not checked for uniqueness and connections are not
// checked against previously added elements; a dangling reference surfaces
// as a LaTeX compile error, not here.
//
// # Blocks
//
// Composite blocks bundle several elements into one reusable macro-layer:
// [TwoConvPoolBlock] (encoder stage), [UnconvBlock] (decoder stage) and
// [ResBlock] (residual chain). A block's Build is exactly the concatenation
// of its children's fragments in construction order.
//
// # Purity
//
// Build performs no I/O and never mutates the diagram: calling it twice
// yields byte-identical fragments, and rendering is repeatable. The one
// deliberate exception to "no external references" is [Input], which embeds
// a caller-supplied image path verbatim for LaTeX to resolve.
package diagram
