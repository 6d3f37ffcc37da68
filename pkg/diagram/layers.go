package diagram

import (
	"fmt"

	"github.com/matzehuels/netsketch/pkg/errors"
)

// Input embeds an external image file at the start of the diagram. The path
// is emitted verbatim; it is resolved by LaTeX at compile time, not checked
// here.
type Input struct {
	attrs
	path string
}

// NewInput creates an input image element. The default anchor name is "temp"
// (override with WithName), the default placement is "(-3,0,0)" and the
// default size is 8x8cm.
func NewInput(path string, opts ...Option) (*Input, error) {
	a := baseAttrs("temp")
	a.to = "(-3,0,0)"
	a.width = 8
	a.height = 8
	a.apply(opts)
	if err := errors.ValidateShape(a.width, a.height); err != nil {
		return nil, err
	}
	return &Input{attrs: a, path: path}, nil
}

// AnchorName returns the element's anchor name.
func (e *Input) AnchorName() string { return e.name }

// Build emits the image node plus the four cardinal coordinates other
// elements use to attach to it.
func (e *Input) Build() []string {
	halfW := e.width / 2
	halfH := e.height / 2
	frag := fmt.Sprintf(
		`\node[canvas is zy plane at x=0] (%[1]s) at %[2]s {\includegraphics[width=%[3]scm,height=%[4]scm]{%[5]s}};`+
			`\coordinate (%[1]s-east) at ($(%[1]s.center)+(%[6]scm,0,0)$);`+
			`\coordinate (%[1]s-west) at ($(%[1]s.center)-(%[6]scm,0,0)$);`+
			`\coordinate (%[1]s-north) at ($(%[1]s.center)+(0,%[7]scm,0)$);`+
			`\coordinate (%[1]s-south) at ($(%[1]s.center)-(0,%[7]scm,0)$);`,
		e.name, e.to, num(e.width), num(e.height), e.path, num(halfW), num(halfH))
	return []string{frag}
}

// Conv is a convolution box.
type Conv struct{ attrs }

// NewConv creates a convolution layer. Defaults: 64 filters, spatial size
// 256, shape 1x40x40.
func NewConv(name string, opts ...Option) (*Conv, error) {
	a := baseAttrs(name)
	a.filters = []int{64}
	a.spatial = "256"
	a.width, a.height, a.depth = 1, 40, 40
	a.apply(opts)
	if err := errors.ValidateShape(a.width, a.height); err != nil {
		return nil, err
	}
	return &Conv{a}, nil
}

func (e *Conv) AnchorName() string { return e.name }

func (e *Conv) Build() []string {
	return []string{pic("Box", &e.attrs, []kv{
		{"name", e.name},
		{"caption", e.caption},
		{"xlabel", xlabelSingle(e.filters[0])},
		{"zlabel", e.spatial},
		{"fill", `\ConvColor`},
		{"height", num(e.height)},
		{"width", num(e.width)},
		{"depth", num(e.depth)},
	})}
}

// ConvConvRelu is a pair of convolutions with a ReLU band, drawn as one
// right-banded box with two slabs.
type ConvConvRelu struct{ attrs }

// NewConvConvRelu creates a conv-conv-relu layer. Defaults: filters (64,64),
// spatial size 256, slab widths (2,2), height and depth 40.
func NewConvConvRelu(name string, opts ...Option) (*ConvConvRelu, error) {
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
	return &ConvConvRelu{a}, nil
}

func (e *ConvConvRelu) AnchorName() string { return e.name }

func (e *ConvConvRelu) Build() []string {
	f := e.filters
	if len(f) == 1 {
		f = []int{f[0], f[0]}
	}
	return []string{pic("RightBandedBox", &e.attrs, []kv{
		{"name", e.name},
		{"caption", e.caption},
		{"xlabel", xlabelPair(f[0], f[1])},
		{"zlabel", e.spatial},
		{"fill", `\ConvColor`},
		{"bandfill", `\ConvReluColor`},
		{"height", num(e.height)},
		{"width", widthList(e.slabWidths())},
		{"depth", num(e.depth)},
	})}
}

// Pool is a pooling box.
type Pool struct{ attrs }

// NewPool creates a pooling layer. Defaults: shape 1x32x32, opacity 0.5.
func NewPool(name string, opts ...Option) (*Pool, error) {
	a := baseAttrs(name)
	a.width, a.height, a.depth = 1, 32, 32
	a.opacity = 0.5
	a.apply(opts)
	if err := errors.ValidateShape(a.width, a.height); err != nil {
		return nil, err
	}
	return &Pool{a}, nil
}

func (e *Pool) AnchorName() string { return e.name }

func (e *Pool) Build() []string {
	return []string{pic("Box", &e.attrs, []kv{
		{"name", e.name},
		{"caption", e.caption},
		{"fill", `\PoolColor`},
		{"opacity", num(e.opacity)},
		{"height", num(e.height)},
		{"width", num(e.width)},
		{"depth", num(e.depth)},
	})}
}

// UnPool is an unpooling box.
type UnPool struct{ attrs }

// NewUnPool creates an unpooling layer. Defaults: shape 1x32x32, opacity 0.5.
func NewUnPool(name string, opts ...Option) (*UnPool, error) {
	a := baseAttrs(name)
	a.width, a.height, a.depth = 1, 32, 32
	a.opacity = 0.5
	a.apply(opts)
	if err := errors.ValidateShape(a.width, a.height); err != nil {
		return nil, err
	}
	return &UnPool{a}, nil
}

func (e *UnPool) AnchorName() string { return e.name }

func (e *UnPool) Build() []string {
	return []string{pic("Box", &e.attrs, []kv{
		{"name", e.name},
		{"caption", e.caption},
		{"fill", `\UnpoolColor`},
		{"opacity", num(e.opacity)},
		{"height", num(e.height)},
		{"width", num(e.width)},
		{"depth", num(e.depth)},
	})}
}

// ConvRes is a translucent residual-convolution box used inside decoder
// stages.
type ConvRes struct{ attrs }

// NewConvRes creates a residual convolution layer. Defaults: 64 filters,
// spatial size 256, shape 6x40x40, opacity 0.2.
func NewConvRes(name string, opts ...Option) (*ConvRes, error) {
	a := baseAttrs(name)
	a.filters = []int{64}
	a.spatial = "256"
	a.width, a.height, a.depth = 6, 40, 40
	a.opacity = 0.2
	a.apply(opts)
	if err := errors.ValidateShape(a.width, a.height); err != nil {
		return nil, err
	}
	return &ConvRes{a}, nil
}

func (e *ConvRes) AnchorName() string { return e.name }

func (e *ConvRes) Build() []string {
	return []string{pic("RightBandedBox", &e.attrs, []kv{
		{"name", e.name},
		{"caption", e.caption},
		{"xlabel", fmt.Sprintf("{ { %d }, }", e.filters[0])},
		{"zlabel", e.spatial},
		{"fill", "{rgb:white,1;black,3}"},
		{"bandfill", "{rgb:white,1;black,2}"},
		{"opacity", num(e.opacity)},
		{"height", num(e.height)},
		{"width", num(e.width)},
		{"depth", num(e.depth)},
	})}
}

// ConvSoftMax is a convolution box filled with the softmax color, used for
// dense per-pixel classification heads.
type ConvSoftMax struct{ attrs }

// NewConvSoftMax creates a convolutional softmax layer. Defaults: spatial
// size 40, shape 1x40x40.
func NewConvSoftMax(name string, opts ...Option) (*ConvSoftMax, error) {
	a := baseAttrs(name)
	a.spatial = "40"
	a.width, a.height, a.depth = 1, 40, 40
	a.apply(opts)
	if err := errors.ValidateShape(a.width, a.height); err != nil {
		return nil, err
	}
	return &ConvSoftMax{a}, nil
}

func (e *ConvSoftMax) AnchorName() string { return e.name }

func (e *ConvSoftMax) Build() []string {
	return []string{pic("Box", &e.attrs, []kv{
		{"name", e.name},
		{"caption", e.caption},
		{"zlabel", e.spatial},
		{"fill", `\SoftmaxColor`},
		{"height", num(e.height)},
		{"width", num(e.width)},
		{"depth", num(e.depth)},
	})}
}

// SoftMax is a flat softmax output box.
type SoftMax struct{ attrs }

// NewSoftMax creates a softmax layer. Defaults: spatial size 10, shape
// 2x3x25, opacity 0.8.
func NewSoftMax(name string, opts ...Option) (*SoftMax, error) {
	a := baseAttrs(name)
	a.spatial = "10"
	a.width, a.height, a.depth = 2, 3, 25
	a.opacity = 0.8
	a.apply(opts)
	if err := errors.ValidateShape(a.width, a.height); err != nil {
		return nil, err
	}
	return &SoftMax{a}, nil
}

func (e *SoftMax) AnchorName() string { return e.name }

func (e *SoftMax) Build() []string {
	return []string{pic("Box", &e.attrs, []kv{
		{"name", e.name},
		{"caption", e.caption},
		{"xlabel", `{ " " ,"dummy" }`},
		{"zlabel", e.spatial},
		{"fill", `\SoftmaxColor`},
		{"opacity", num(e.opacity)},
		{"height", num(e.height)},
		{"width", num(e.width)},
		{"depth", num(e.depth)},
	})}
}

// Sum is an elementwise-sum ball.
type Sum struct{ attrs }

// NewSum creates a sum node. Defaults: radius 2.5, opacity 0.6.
func NewSum(name string, opts ...Option) (*Sum, error) {
	a := baseAttrs(name)
	a.radius = 2.5
	a.opacity = 0.6
	a.logo = "$+$"
	a.apply(opts)
	return &Sum{a}, nil
}

func (e *Sum) AnchorName() string { return e.name }

func (e *Sum) Build() []string {
	return []string{pic("Ball", &e.attrs, []kv{
		{"name", e.name},
		{"fill", `\SumColor`},
		{"opacity", num(e.opacity)},
		{"radius", num(e.radius)},
		{"logo", e.logo},
	})}
}

// Dense is a fully-connected box.
type Dense struct{ attrs }

// NewDense creates a fully-connected layer. Defaults: 512 units, spatial
// size 1, shape 2x3x40.
func NewDense(name string, opts ...Option) (*Dense, error) {
	a := baseAttrs(name)
	a.filters = []int{512}
	a.spatial = "1"
	a.width, a.height, a.depth = 2, 3, 40
	a.apply(opts)
	if err := errors.ValidateShape(a.width, a.height); err != nil {
		return nil, err
	}
	return &Dense{a}, nil
}

func (e *Dense) AnchorName() string { return e.name }

func (e *Dense) Build() []string {
	return []string{pic("Box", &e.attrs, []kv{
		{"name", e.name},
		{"caption", e.caption},
		{"xlabel", xlabelSingle(e.filters[0])},
		{"zlabel", e.spatial},
		{"fill", `\FcColor`},
		{"height", num(e.height)},
		{"width", num(e.width)},
		{"depth", num(e.depth)},
	})}
}

// Connection is a directed arrow from one anchor's east side to another's
// west side.
type Connection struct {
	of string
	to string
}

// NewConnection creates a connection between two previously added elements.
// Anchor existence is not verified; a dangling reference surfaces as a LaTeX
// error at compile time.
func NewConnection(of, to string) *Connection {
	return &Connection{of: of, to: to}
}

// Endpoints returns the connected anchor names.
func (e *Connection) Endpoints() (string, string) { return e.of, e.to }

func (e *Connection) Build() []string {
	return []string{fmt.Sprintf(
		`\draw [connection]  (%s-east)    -- node {\midarrow} (%s-west);`,
		e.of, e.to)}
}

// Skip is a copy connection routed over the top of the diagram, used for
// encoder-decoder skip paths.
type Skip struct {
	of  string
	to  string
	pos float64
}

// NewSkip creates a skip connection. The detour height defaults to 1.25
// (override with WithPos).
func NewSkip(of, to string, opts ...Option) *Skip {
	a := attrs{pos: 1.25}
	a.apply(opts)
	return &Skip{of: of, to: to, pos: a.pos}
}

// Endpoints returns the connected anchor names.
func (e *Skip) Endpoints() (string, string) { return e.of, e.to }

func (e *Skip) Build() []string {
	return []string{fmt.Sprintf(
		`\path (%[1]s-southeast) -- (%[1]s-northeast) coordinate[pos=%[3]s] (%[1]s-top) ;
\path (%[2]s-south)  -- (%[2]s-north)  coordinate[pos=%[3]s] (%[2]s-top) ;
\draw [copyconnection]  (%[1]s-northeast)
-- node {\copymidarrow}(%[1]s-top)
-- node {\copymidarrow}(%[2]s-top)
-- node {\copymidarrow} (%[2]s-north);`,
		e.of, e.to, num(e.pos))}
}
