package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/matzehuels/netsketch/pkg/diagram"
	"github.com/matzehuels/netsketch/pkg/errors"
)

// Model is the declarative JSON description of a diagram: an ordered list of
// layers that maps one-to-one onto constructor calls. Order matters; anchors
// referenced by a layer must be declared by an earlier one for the rendered
// geometry to make sense.
type Model struct {
	Layers []Layer `json:"layers"`
}

// Layer is one entry in a model. Kind selects the element constructor; the
// remaining fields cover the union of all constructor parameters and are
// applied only where the kind uses them.
type Layer struct {
	Kind    string    `json:"kind"`
	Name    string    `json:"name,omitempty"`
	Caption string    `json:"caption,omitempty"`
	Path    string    `json:"path,omitempty"`
	Offset  string    `json:"offset,omitempty"`
	At      string    `json:"at,omitempty"`
	After   string    `json:"after,omitempty"`
	Shape   []float64 `json:"shape,omitempty"`
	Widths  []float64 `json:"widths,omitempty"`
	Filters []int     `json:"filters,omitempty"`
	Spatial Scalar    `json:"spatial,omitempty"`
	Opacity float64   `json:"opacity,omitempty"`
	Pos     float64   `json:"pos,omitempty"`
	Radius  float64   `json:"radius,omitempty"`

	// Link endpoints, used by connection and skip kinds.
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	// Block wiring, used by the block kinds.
	Bottom string `json:"bottom,omitempty"`
	Top    string `json:"top,omitempty"`
	Num    int    `json:"num,omitempty"`
}

// Scalar is a string-valued field that also accepts a bare JSON number, so
// spatial sizes can be written as 256 or "L".
type Scalar string

func (s *Scalar) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = Scalar(v)
		return nil
	}
	*s = Scalar(bytes.TrimSpace(b))
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// Diagram instantiates the model's layers in order and returns the assembled
// diagram. Every layer is validated before construction: the kind must be
// known, anchor names must be well formed, and a shape must have exactly
// three components.
func (m *Model) Diagram() (*diagram.Diagram, error) {
	d := diagram.New()
	for i, l := range m.Layers {
		el, err := l.element()
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, l.Kind, err)
		}
		d.Add(el)
	}
	return d, nil
}

func (l *Layer) element() (diagram.Element, error) {
	build, ok := builders[l.Kind]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidModel, "unknown layer kind %q", l.Kind)
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return build(l)
}

// namelessKinds do not require a name: input defaults its anchor name, and
// the link kinds are identified by their endpoints.
var namelessKinds = map[string]bool{"input": true, "connection": true, "skip": true}

func (l *Layer) validate() error {
	if l.Name == "" && !namelessKinds[l.Kind] {
		return errors.New(errors.ErrCodeInvalidModel, "layer needs a name")
	}
	for _, a := range []string{l.Name, l.After, l.From, l.To, l.Bottom, l.Top} {
		if a == "" {
			continue
		}
		if err := errors.ValidateAnchorName(a); err != nil {
			return err
		}
	}
	if n := len(l.Shape); n != 0 && n != 3 {
		return errors.New(errors.ErrCodeInvalidModel, "shape needs 3 components, got %d", n)
	}
	return nil
}

// options maps the layer's populated fields onto constructor options. Zero
// values are skipped so each kind's defaults apply.
func (l *Layer) options() []diagram.Option {
	var opts []diagram.Option
	if l.Caption != "" {
		opts = append(opts, diagram.WithCaption(l.Caption))
	}
	if l.Offset != "" {
		opts = append(opts, diagram.WithOffset(l.Offset))
	}
	if l.At != "" {
		opts = append(opts, diagram.WithTo(l.At))
	}
	if l.After != "" {
		opts = append(opts, diagram.After(l.After))
	}
	if len(l.Shape) == 3 {
		opts = append(opts, diagram.WithShape(l.Shape[0], l.Shape[1], l.Shape[2]))
	}
	if len(l.Widths) > 0 {
		opts = append(opts, diagram.WithWidths(l.Widths...))
	}
	if len(l.Filters) > 0 {
		opts = append(opts, diagram.WithFilters(l.Filters...))
	}
	if l.Spatial != "" {
		opts = append(opts, diagram.WithSpatialLabel(string(l.Spatial)))
	}
	if l.Opacity != 0 {
		opts = append(opts, diagram.WithOpacity(l.Opacity))
	}
	if l.Pos != 0 {
		opts = append(opts, diagram.WithPos(l.Pos))
	}
	if l.Radius != 0 {
		opts = append(opts, diagram.WithRadius(l.Radius))
	}
	return opts
}

type builder func(*Layer) (diagram.Element, error)

// named adapts the common constructor shape New<T>(name, opts...).
func named[T diagram.Element](ctor func(string, ...diagram.Option) (T, error)) builder {
	return func(l *Layer) (diagram.Element, error) {
		return ctor(l.Name, l.options()...)
	}
}

var builders = map[string]builder{
	"input": func(l *Layer) (diagram.Element, error) {
		opts := l.options()
		if l.Name != "" {
			opts = append(opts, diagram.WithName(l.Name))
		}
		return diagram.NewInput(l.Path, opts...)
	},
	"conv":           named(diagram.NewConv),
	"conv_conv_relu": named(diagram.NewConvConvRelu),
	"pool":           named(diagram.NewPool),
	"unpool":         named(diagram.NewUnPool),
	"conv_res":       named(diagram.NewConvRes),
	"conv_softmax":   named(diagram.NewConvSoftMax),
	"softmax":        named(diagram.NewSoftMax),
	"sum":            named(diagram.NewSum),
	"dense":          named(diagram.NewDense),

	"activation":           named(diagram.NewActivation),
	"normalization":        named(diagram.NewNormalization),
	"rnn_cell":             named(diagram.NewRNNCell),
	"generic":              named(diagram.NewGenericBox),
	"concat":               named(diagram.NewConcat),
	"split":                named(diagram.NewSplit),
	"add":                  named(diagram.NewAdd),
	"depthwise_conv":       named(diagram.NewDepthwiseConv),
	"separable_conv":       named(diagram.NewSeparableConv),
	"transpose_conv":       named(diagram.NewTransposeConv),
	"flatten":              named(diagram.NewFlatten),
	"squeeze_excitation":   named(diagram.NewSqueezeExcitation),
	"transformer_block":    named(diagram.NewTransformerBlock),
	"token_embedding":      named(diagram.NewTokenEmbedding),
	"positional_encoding":  named(diagram.NewPositionalEncoding),
	"multi_head_attention": named(diagram.NewMultiHeadAttention),
	"feed_forward":         named(diagram.NewFeedForward),
	"layer_norm":           named(diagram.NewLayerNorm),
	"output_projection":    named(diagram.NewOutputProjection),
	"dropout":              named(diagram.NewDropout),

	"connection": func(l *Layer) (diagram.Element, error) {
		if l.From == "" || l.To == "" {
			return nil, errors.New(errors.ErrCodeInvalidModel, "connection needs from and to")
		}
		return diagram.NewConnection(l.From, l.To), nil
	},
	"skip": func(l *Layer) (diagram.Element, error) {
		if l.From == "" || l.To == "" {
			return nil, errors.New(errors.ErrCodeInvalidModel, "skip needs from and to")
		}
		return diagram.NewSkip(l.From, l.To, l.options()...), nil
	},

	"two_conv_pool": func(l *Layer) (diagram.Element, error) {
		return diagram.NewTwoConvPoolBlock(l.Name, l.Bottom, l.Top, l.options()...)
	},
	"unconv": func(l *Layer) (diagram.Element, error) {
		return diagram.NewUnconvBlock(l.Name, l.Bottom, l.Top, l.options()...)
	},
	"res": func(l *Layer) (diagram.Element, error) {
		return diagram.NewResBlock(l.Num, l.Name, l.Bottom, l.Top, l.options()...)
	},
}

// Kinds lists every layer kind the model format accepts, sorted.
func Kinds() []string {
	names := make([]string, 0, len(builders))
	for k := range builders {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
