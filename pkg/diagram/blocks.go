package diagram

import (
	"fmt"
	"math"

	"github.com/matzehuels/netsketch/pkg/errors"
)

// blockAttrs holds the parameterization shared by the composite blocks.
// Within a block, WithShape(w, h, d) reads as: w is the width of each
// convolution slab, h and d the face size of the stage.
func blockAttrs(opts []Option) attrs {
	a := attrs{
		offset:  "(1,0,0)",
		width:   3.5,
		height:  32,
		depth:   32,
		opacity: 0.5,
		filters: []int{64},
		spatial: "256",
	}
	a.apply(opts)
	return a
}

// TwoConvPoolBlock is an encoder stage: a two-convolution banded box
// followed by a pooling layer, wired to its predecessor.
type TwoConvPoolBlock struct {
	name     string
	children []Element
}

// NewTwoConvPoolBlock creates an encoder stage. bottom is the anchor the
// stage attaches to; top is the anchor name the stage's pooling layer
// exposes for the next stage.
func NewTwoConvPoolBlock(name, bottom, top string, opts ...Option) (*TwoConvPoolBlock, error) {
	a := blockAttrs(opts)
	n := a.filters[0]
	spatial := a.spatial

	ccrName := "ccr_" + name
	ccr, err := newConvConvReluFor(ccrName, a, n, spatial, bottom)
	if err != nil {
		return nil, err
	}

	shrink := math.Floor(a.height / 4)
	pool, err := NewPool(top,
		WithOffset("(0,0,0)"),
		After(ccrName),
		WithShape(1, a.height-shrink, a.depth-shrink),
		WithOpacity(a.opacity),
	)
	if err != nil {
		return nil, err
	}

	return &TwoConvPoolBlock{
		name:     name,
		children: []Element{ccr, pool, NewConnection(bottom, ccrName)},
	}, nil
}

func newConvConvReluFor(name string, a attrs, n int, spatial, bottom string) (*ConvConvRelu, error) {
	return NewConvConvRelu(name,
		WithFilters(n, n),
		WithSpatialLabel(spatial),
		WithOffset(a.offset),
		After(bottom),
		WithWidths(a.width, a.width),
		WithShape(a.width, a.height, a.depth),
	)
}

// Children returns the block's fixed child sequence.
func (b *TwoConvPoolBlock) Children() []Element { return b.children }

// Build concatenates the children's fragments in construction order.
func (b *TwoConvPoolBlock) Build() []string { return buildChildren(b.children) }

// UnconvBlock is a decoder stage: unpool, residual conv, conv, residual
// conv, conv, wired to its predecessor.
type UnconvBlock struct {
	name     string
	children []Element
}

// NewUnconvBlock creates a decoder stage. bottom is the anchor the stage
// attaches to; top is the anchor name of the stage's final convolution.
func NewUnconvBlock(name, bottom, top string, opts ...Option) (*UnconvBlock, error) {
	a := blockAttrs(opts)
	n := a.filters[0]

	unpoolName := "unpool_" + name
	resName := "ccr_res_" + name
	ccrName := "ccr_" + name
	resCName := "ccr_res_c_" + name

	unpool, err := NewUnPool(unpoolName,
		WithOffset(a.offset),
		After(bottom),
		WithShape(1, a.height, a.depth),
		WithOpacity(a.opacity),
	)
	if err != nil {
		return nil, err
	}

	res, err := NewConvRes(resName,
		WithOffset("(0,0,0)"),
		After(unpoolName),
		WithFilters(n),
		WithSpatialLabel(a.spatial),
		WithShape(a.width, a.height, a.depth),
		WithOpacity(a.opacity),
	)
	if err != nil {
		return nil, err
	}

	ccr, err := NewConv(ccrName,
		WithOffset("(0,0,0)"),
		After(resName),
		WithFilters(n),
		WithSpatialLabel(a.spatial),
		WithShape(a.width, a.height, a.depth),
	)
	if err != nil {
		return nil, err
	}

	resC, err := NewConvRes(resCName,
		WithOffset("(0,0,0)"),
		After(ccrName),
		WithFilters(n),
		WithSpatialLabel(a.spatial),
		WithShape(a.width, a.height, a.depth),
		WithOpacity(a.opacity),
	)
	if err != nil {
		return nil, err
	}

	topConv, err := NewConv(top,
		WithOffset("(0,0,0)"),
		After(resCName),
		WithFilters(n),
		WithSpatialLabel(a.spatial),
		WithShape(a.width, a.height, a.depth),
	)
	if err != nil {
		return nil, err
	}

	return &UnconvBlock{
		name: name,
		children: []Element{
			unpool, res, ccr, resC, topConv,
			NewConnection(bottom, unpoolName),
		},
	}, nil
}

// Children returns the block's fixed child sequence.
func (b *UnconvBlock) Children() []Element { return b.children }

// Build concatenates the children's fragments in construction order.
func (b *UnconvBlock) Build() []string { return buildChildren(b.children) }

// ResBlock is a chain of convolutions with a skip connection bridging the
// interior of the chain.
type ResBlock struct {
	name     string
	children []Element
}

// NewResBlock creates a residual chain of num convolutions ending at the
// anchor named top. num must be at least 2.
func NewResBlock(num int, name, bottom, top string, opts ...Option) (*ResBlock, error) {
	if num < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "residual block needs at least 2 layers, got %d", num)
	}

	a := blockAttrs(opts)
	if a.offset == "(1,0,0)" {
		a.offset = "(0,0,0)"
	}
	n := a.filters[0]

	names := make([]string, 0, num)
	for i := 0; i < num-1; i++ {
		names = append(names, fmt.Sprintf("%s_%d", name, i))
	}
	names = append(names, top)

	var children []Element
	prev := bottom
	for _, ly := range names {
		conv, err := NewConv(ly,
			WithOffset(a.offset),
			After(prev),
			WithFilters(n),
			WithSpatialLabel(a.spatial),
			WithShape(a.width, a.height, a.depth),
		)
		if err != nil {
			return nil, err
		}
		children = append(children, conv, NewConnection(prev, ly))
		prev = ly
	}

	children = append(children, NewSkip(names[1], names[len(names)-2], WithPos(1.25)))

	return &ResBlock{name: name, children: children}, nil
}

// Children returns the block's fixed child sequence.
func (b *ResBlock) Children() []Element { return b.children }

// Build concatenates the children's fragments in construction order.
func (b *ResBlock) Build() []string { return buildChildren(b.children) }

func buildChildren(children []Element) []string {
	var frags []string
	for _, c := range children {
		frags = append(frags, c.Build()...)
	}
	return frags
}
