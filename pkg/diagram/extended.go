package diagram

import (
	"github.com/matzehuels/netsketch/pkg/errors"
)

// boxParts selects which optional keys a plain box emits.
type boxParts struct {
	xlabel  bool
	zlabel  bool
	opacity bool
}

func boxFragment(a *attrs, fill string, p boxParts) []string {
	pairs := []kv{
		{"name", a.name},
		{"caption", a.caption},
	}
	if p.xlabel {
		pairs = append(pairs, kv{"xlabel", xlabelSingle(a.filters[0])})
	}
	if p.zlabel {
		pairs = append(pairs, kv{"zlabel", a.spatial})
	}
	pairs = append(pairs, kv{"fill", fill})
	if p.opacity {
		pairs = append(pairs, kv{"opacity", num(a.opacity)})
	}
	pairs = append(pairs,
		kv{"height", num(a.height)},
		kv{"width", num(a.width)},
		kv{"depth", num(a.depth)},
	)
	return []string{pic("Box", a, pairs)}
}

func bandedFragment(a *attrs, fill, band string) []string {
	pairs := []kv{
		{"name", a.name},
		{"caption", a.caption},
		{"xlabel", xlabelBanded(a.filters)},
		{"zlabel", a.spatial},
		{"fill", fill},
		{"bandfill", band},
		{"height", num(a.height)},
		{"width", widthList(a.slabWidths())},
		{"depth", num(a.depth)},
	}
	return []string{pic("RightBandedBox", a, pairs)}
}

func ballFragment(a *attrs, fill string) []string {
	return []string{pic("Ball", a, []kv{
		{"name", a.name},
		{"fill", fill},
		{"opacity", num(a.opacity)},
		{"radius", num(a.radius)},
		{"logo", a.logo},
	})}
}

// newShapedBox is the common constructor body for extended box layers.
// Defaults go in before options so an explicit WithOpacity(0) survives; kinds
// whose Build never emits opacity pass 0.
func newShapedBox(name string, w, h, d, opacity float64, opts []Option) (attrs, error) {
	a := baseAttrs(name)
	a.width, a.height, a.depth = w, h, d
	a.opacity = opacity
	a.apply(opts)
	if err := errors.ValidateShape(a.width, a.height); err != nil {
		return attrs{}, err
	}
	return a, nil
}

// Activation is a thin activation-function box.
type Activation struct{ attrs }

// NewActivation creates an activation layer. Set the function name via
// WithCaption (e.g. "ReLU").
func NewActivation(name string, opts ...Option) (*Activation, error) {
	a, err := newShapedBox(name, 1, 40, 40, 0.8, opts)
	if err != nil {
		return nil, err
	}
	return &Activation{a}, nil
}

func (e *Activation) AnchorName() string { return e.name }
func (e *Activation) Build() []string {
	return boxFragment(&e.attrs, `\ActivationColor`, boxParts{opacity: true})
}

// Normalization is a thin normalization box (batch norm, instance norm, ...).
type Normalization struct{ attrs }

// NewNormalization creates a normalization layer.
func NewNormalization(name string, opts ...Option) (*Normalization, error) {
	a, err := newShapedBox(name, 1, 40, 40, 0.8, opts)
	if err != nil {
		return nil, err
	}
	return &Normalization{a}, nil
}

func (e *Normalization) AnchorName() string { return e.name }
func (e *Normalization) Build() []string {
	return boxFragment(&e.attrs, `\NormColor`, boxParts{opacity: true})
}

// RNNCell is a recurrent cell box (LSTM, GRU, vanilla RNN).
type RNNCell struct{ attrs }

// NewRNNCell creates a recurrent cell. Defaults: 256 units, shape 4x20x20.
func NewRNNCell(name string, opts ...Option) (*RNNCell, error) {
	a, err := newShapedBox(name, 4, 20, 20, 0, opts)
	if err != nil {
		return nil, err
	}
	if a.filters == nil {
		a.filters = []int{256}
	}
	if a.spatial == "" {
		a.spatial = "1"
	}
	return &RNNCell{a}, nil
}

func (e *RNNCell) AnchorName() string { return e.name }
func (e *RNNCell) Build() []string {
	return boxFragment(&e.attrs, `\RnnColor`, boxParts{xlabel: true, zlabel: true})
}

// GenericBox is a neutral caption-driven box for layers without a dedicated
// kind.
type GenericBox struct{ attrs }

// NewGenericBox creates a generic box. Defaults: shape 4x20x20.
func NewGenericBox(name string, opts ...Option) (*GenericBox, error) {
	a, err := newShapedBox(name, 4, 20, 20, 0, opts)
	if err != nil {
		return nil, err
	}
	return &GenericBox{a}, nil
}

func (e *GenericBox) AnchorName() string { return e.name }
func (e *GenericBox) Build() []string {
	return boxFragment(&e.attrs, `\GenericColor`, boxParts{})
}

// Concat is a concatenation junction ball.
type Concat struct{ attrs }

// NewConcat creates a concatenation node. Defaults: radius 2.5, opacity 0.6.
func NewConcat(name string, opts ...Option) (*Concat, error) {
	a := baseAttrs(name)
	a.radius = 2.5
	a.opacity = 0.6
	a.logo = `$\|$`
	a.apply(opts)
	return &Concat{a}, nil
}

func (e *Concat) AnchorName() string { return e.name }
func (e *Concat) Build() []string    { return ballFragment(&e.attrs, `\GenericColor`) }

// Split is a tensor-split junction ball.
type Split struct{ attrs }

// NewSplit creates a split node. Defaults: radius 2.5, opacity 0.6.
func NewSplit(name string, opts ...Option) (*Split, error) {
	a := baseAttrs(name)
	a.radius = 2.5
	a.opacity = 0.6
	a.logo = `$<$`
	a.apply(opts)
	return &Split{a}, nil
}

func (e *Split) AnchorName() string { return e.name }
func (e *Split) Build() []string    { return ballFragment(&e.attrs, `\GenericColor`) }

// Add is an elementwise-add junction ball, the residual counterpart of Sum.
type Add struct{ attrs }

// NewAdd creates an add node. Defaults: radius 2.5, opacity 0.6.
func NewAdd(name string, opts ...Option) (*Add, error) {
	a := baseAttrs(name)
	a.radius = 2.5
	a.opacity = 0.6
	a.logo = `$\oplus$`
	a.apply(opts)
	return &Add{a}, nil
}

func (e *Add) AnchorName() string { return e.name }
func (e *Add) Build() []string    { return ballFragment(&e.attrs, `\SumColor`) }

// DepthwiseConv is a depthwise convolution box.
type DepthwiseConv struct{ attrs }

// NewDepthwiseConv creates a depthwise convolution. Defaults: 64 channels,
// spatial size 256, shape 1x40x40.
func NewDepthwiseConv(name string, opts ...Option) (*DepthwiseConv, error) {
	a, err := newShapedBox(name, 1, 40, 40, 0, opts)
	if err != nil {
		return nil, err
	}
	if a.filters == nil {
		a.filters = []int{64}
	}
	if a.spatial == "" {
		a.spatial = "256"
	}
	return &DepthwiseConv{a}, nil
}

func (e *DepthwiseConv) AnchorName() string { return e.name }
func (e *DepthwiseConv) Build() []string {
	return boxFragment(&e.attrs, `\DepthwiseColor`, boxParts{xlabel: true, zlabel: true})
}

// SeparableConv is a depthwise-separable convolution: a banded box whose band
// marks the pointwise stage.
type SeparableConv struct{ attrs }

// NewSeparableConv creates a separable convolution. Defaults: filters
// (64,64), spatial size 256, slab widths (2,2), height and depth 40.
func NewSeparableConv(name string, opts ...Option) (*SeparableConv, error) {
	a := baseAttrs(name)
	a.filters = []int{64, 64}
	a.spatial = "256"
	a.widths = []float64{2, 2}
	a.width, a.height, a.depth = 2, 40, 40
	a.apply(opts)
	for _, w := range a.slabWidths() {
		if err := errors.ValidateShape(w, a.height); err != nil {
			return nil, err
		}
	}
	return &SeparableConv{a}, nil
}

func (e *SeparableConv) AnchorName() string { return e.name }
func (e *SeparableConv) Build() []string {
	return bandedFragment(&e.attrs, `\SeparableColor`, `\ConvReluColor`)
}

// TransposeConv is a transposed (up-sampling) convolution box.
type TransposeConv struct{ attrs }

// NewTransposeConv creates a transposed convolution. Defaults: 64 filters,
// spatial size 256, shape 1x40x40.
func NewTransposeConv(name string, opts ...Option) (*TransposeConv, error) {
	a, err := newShapedBox(name, 1, 40, 40, 0, opts)
	if err != nil {
		return nil, err
	}
	if a.filters == nil {
		a.filters = []int{64}
	}
	if a.spatial == "" {
		a.spatial = "256"
	}
	return &TransposeConv{a}, nil
}

func (e *TransposeConv) AnchorName() string { return e.name }
func (e *TransposeConv) Build() []string {
	return boxFragment(&e.attrs, `\TransposeConvColor`, boxParts{xlabel: true, zlabel: true})
}

// Flatten is a thin box marking the transition from spatial tensors to
// vectors.
type Flatten struct{ attrs }

// NewFlatten creates a flatten layer. Defaults: shape 1x30x2.
func NewFlatten(name string, opts ...Option) (*Flatten, error) {
	a, err := newShapedBox(name, 1, 30, 2, 0, opts)
	if err != nil {
		return nil, err
	}
	return &Flatten{a}, nil
}

func (e *Flatten) AnchorName() string { return e.name }
func (e *Flatten) Build() []string {
	return boxFragment(&e.attrs, `\FlattenColor`, boxParts{})
}

// SqueezeExcitation is a squeeze-and-excitation attention box.
type SqueezeExcitation struct{ attrs }

// NewSqueezeExcitation creates a squeeze-excitation block. Defaults: shape
// 2x15x15, opacity 0.7.
func NewSqueezeExcitation(name string, opts ...Option) (*SqueezeExcitation, error) {
	a, err := newShapedBox(name, 2, 15, 15, 0.7, opts)
	if err != nil {
		return nil, err
	}
	return &SqueezeExcitation{a}, nil
}

func (e *SqueezeExcitation) AnchorName() string { return e.name }
func (e *SqueezeExcitation) Build() []string {
	return boxFragment(&e.attrs, `\SqueezeColor`, boxParts{opacity: true})
}

// TransformerBlock is a translucent enclosing box drawn around one
// attention-plus-feedforward stage.
type TransformerBlock struct{ attrs }

// NewTransformerBlock creates a transformer block outline. Defaults: shape
// 8x45x45, opacity 0.3.
func NewTransformerBlock(name string, opts ...Option) (*TransformerBlock, error) {
	a, err := newShapedBox(name, 8, 45, 45, 0.3, opts)
	if err != nil {
		return nil, err
	}
	return &TransformerBlock{a}, nil
}

func (e *TransformerBlock) AnchorName() string { return e.name }
func (e *TransformerBlock) Build() []string {
	return boxFragment(&e.attrs, `\TransformerColor`, boxParts{opacity: true})
}

// TokenEmbedding is the input embedding table of a sequence model.
type TokenEmbedding struct{ attrs }

// NewTokenEmbedding creates a token embedding layer. Defaults: 512
// dimensions over a vocabulary label of 32000, shape 2x30x6.
func NewTokenEmbedding(name string, opts ...Option) (*TokenEmbedding, error) {
	a, err := newShapedBox(name, 2, 30, 6, 0, opts)
	if err != nil {
		return nil, err
	}
	if a.filters == nil {
		a.filters = []int{512}
	}
	if a.spatial == "" {
		a.spatial = "32000"
	}
	return &TokenEmbedding{a}, nil
}

func (e *TokenEmbedding) AnchorName() string { return e.name }
func (e *TokenEmbedding) Build() []string {
	return boxFragment(&e.attrs, `\FcColor`, boxParts{xlabel: true, zlabel: true})
}

// PositionalEncoding is the positional-signal slab added after embedding.
type PositionalEncoding struct{ attrs }

// NewPositionalEncoding creates a positional encoding layer. Defaults:
// shape 1x30x6, opacity 0.6.
func NewPositionalEncoding(name string, opts ...Option) (*PositionalEncoding, error) {
	a, err := newShapedBox(name, 1, 30, 6, 0.6, opts)
	if err != nil {
		return nil, err
	}
	return &PositionalEncoding{a}, nil
}

func (e *PositionalEncoding) AnchorName() string { return e.name }
func (e *PositionalEncoding) Build() []string {
	return boxFragment(&e.attrs, `\ActivationColor`, boxParts{opacity: true})
}

// MultiHeadAttention is a banded attention box; the band marks the output
// projection.
type MultiHeadAttention struct{ attrs }

// NewMultiHeadAttention creates a multi-head attention layer. Defaults:
// filters (512,512), spatial label "L", slab widths (3,3), height 30,
// depth 6.
func NewMultiHeadAttention(name string, opts ...Option) (*MultiHeadAttention, error) {
	a := baseAttrs(name)
	a.filters = []int{512, 512}
	a.spatial = "L"
	a.widths = []float64{3, 3}
	a.width, a.height, a.depth = 3, 30, 6
	a.apply(opts)
	for _, w := range a.slabWidths() {
		if err := errors.ValidateShape(w, a.height); err != nil {
			return nil, err
		}
	}
	return &MultiHeadAttention{a}, nil
}

func (e *MultiHeadAttention) AnchorName() string { return e.name }
func (e *MultiHeadAttention) Build() []string {
	return bandedFragment(&e.attrs, `\TransformerColor`, `\FcReluColor`)
}

// FeedForward is the position-wise feed-forward stage of a transformer.
type FeedForward struct{ attrs }

// NewFeedForward creates a feed-forward layer. Defaults: filters
// (2048,512), spatial label "L", slab widths (2,2), height 30, depth 6.
func NewFeedForward(name string, opts ...Option) (*FeedForward, error) {
	a := baseAttrs(name)
	a.filters = []int{2048, 512}
	a.spatial = "L"
	a.widths = []float64{2, 2}
	a.width, a.height, a.depth = 2, 30, 6
	a.apply(opts)
	for _, w := range a.slabWidths() {
		if err := errors.ValidateShape(w, a.height); err != nil {
			return nil, err
		}
	}
	return &FeedForward{a}, nil
}

func (e *FeedForward) AnchorName() string { return e.name }
func (e *FeedForward) Build() []string {
	return bandedFragment(&e.attrs, `\FcColor`, `\FcReluColor`)
}

// LayerNorm is a thin layer-normalization slab.
type LayerNorm struct{ attrs }

// NewLayerNorm creates a layer normalization layer. Defaults: shape 1x30x6,
// opacity 0.8.
func NewLayerNorm(name string, opts ...Option) (*LayerNorm, error) {
	a, err := newShapedBox(name, 1, 30, 6, 0.8, opts)
	if err != nil {
		return nil, err
	}
	return &LayerNorm{a}, nil
}

func (e *LayerNorm) AnchorName() string { return e.name }
func (e *LayerNorm) Build() []string {
	return boxFragment(&e.attrs, `\NormColor`, boxParts{opacity: true})
}

// OutputProjection is the final vocabulary projection of a sequence model.
type OutputProjection struct{ attrs }

// NewOutputProjection creates an output projection layer. Defaults: 32000
// outputs, spatial label "L", shape 2x30x6.
func NewOutputProjection(name string, opts ...Option) (*OutputProjection, error) {
	a, err := newShapedBox(name, 2, 30, 6, 0, opts)
	if err != nil {
		return nil, err
	}
	if a.filters == nil {
		a.filters = []int{32000}
	}
	if a.spatial == "" {
		a.spatial = "L"
	}
	return &OutputProjection{a}, nil
}

func (e *OutputProjection) AnchorName() string { return e.name }
func (e *OutputProjection) Build() []string {
	return boxFragment(&e.attrs, `\SoftmaxColor`, boxParts{xlabel: true, zlabel: true})
}

// Dropout is a translucent dropout slab.
type Dropout struct{ attrs }

// NewDropout creates a dropout layer. Defaults: shape 1x30x6, opacity 0.4.
func NewDropout(name string, opts ...Option) (*Dropout, error) {
	a, err := newShapedBox(name, 1, 30, 6, 0.4, opts)
	if err != nil {
		return nil, err
	}
	return &Dropout{a}, nil
}

func (e *Dropout) AnchorName() string { return e.name }
func (e *Dropout) Build() []string {
	return boxFragment(&e.attrs, `\PoolColor`, boxParts{opacity: true})
}
