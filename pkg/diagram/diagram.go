package diagram

import (
	"github.com/matzehuels/netsketch/pkg/render"
)

// Diagram is the aggregation root: an ordered, append-only collection of
// elements. Insertion order is rendering order; it is what drives the
// left-to-right anchor chain of "(prev-east)" placements, so elements are
// never reordered or removed once added.
//
// A Diagram is not safe for concurrent mutation. Build and the export
// methods do not mutate the diagram and can be called repeatedly.
type Diagram struct {
	elements []Element
}

// New creates an empty diagram.
func New() *Diagram {
	return &Diagram{}
}

// Add appends elements in argument order and returns the diagram for
// chaining. Nil elements are ignored.
func (d *Diagram) Add(elements ...Element) *Diagram {
	for _, e := range elements {
		if e == nil {
			continue
		}
		d.elements = append(d.elements, e)
	}
	return d
}

// Extend appends all elements of the slice in order.
func (d *Diagram) Extend(elements []Element) *Diagram {
	return d.Add(elements...)
}

// Len returns the number of top-level elements (blocks count as one).
func (d *Diagram) Len() int { return len(d.elements) }

// Elements returns a copy of the top-level element list.
func (d *Diagram) Elements() []Element {
	out := make([]Element, len(d.elements))
	copy(out, d.elements)
	return out
}

// Build flattens the diagram to its ordered fragment sequence. Blocks expand
// depth-first in insertion order, preserving their internal child order.
func (d *Diagram) Build() []string {
	var frags []string
	for _, e := range d.elements {
		frags = append(frags, e.Build()...)
	}
	return frags
}

// SaveTeX writes the complete LaTeX document to path, creating parent
// directories as needed, and returns the written path.
func (d *Diagram) SaveTeX(path string, opts ...render.Option) (string, error) {
	return render.NewRenderer().RenderToTeX(d.Build(), path, opts...)
}

// RenderPDF compiles the diagram to a PDF at path and returns the written
// path. Requires latexmk or pdflatex on the search path.
func (d *Diagram) RenderPDF(path string, opts ...render.Option) (string, error) {
	return render.NewRenderer().RenderToPDF(d.Build(), path, opts...)
}

// RenderPNG compiles the diagram and converts the PDF to a PNG at path.
// Requires a LaTeX engine plus pdftocairo, ImageMagick or Ghostscript.
func (d *Diagram) RenderPNG(path string, opts ...render.Option) (string, error) {
	return render.NewRenderer().RenderToPNG(d.Build(), path, opts...)
}

// RenderSVG compiles the diagram and converts the PDF to an SVG at path.
// Requires a LaTeX engine plus pdftocairo.
func (d *Diagram) RenderSVG(path string, opts ...render.Option) (string, error) {
	return render.NewRenderer().RenderToSVG(d.Build(), path, opts...)
}
