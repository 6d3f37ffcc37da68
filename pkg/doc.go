// Package pkg provides the core libraries for Netsketch neural-network
// architecture diagrams.
//
// # Overview
//
// Netsketch turns a declarative description of a network architecture into a
// publication-quality diagram. Layers are typed elements that emit TikZ
// fragments; a diagram is an ordered collection of elements; rendering wraps
// the fragments in a LaTeX document and drives external tools to produce PDF,
// PNG or SVG output. The pkg directory is organized into five main areas:
//
//  1. [diagram] - Domain model (layer elements, composite blocks, the Diagram)
//  2. [tex] - LaTeX document assembly and the bundled TikZ style layers
//  3. [render] - Toolchain orchestration (compile, convert, file output)
//  4. [io] - JSON model import and export
//  5. [preview] - Graphviz structure previews that skip the LaTeX toolchain
//
// # Architecture
//
// The typical data flow through Netsketch:
//
//	Layer constructors / JSON model
//	         ↓
//	    [diagram] package (elements + blocks → TikZ fragments)
//	         ↓
//	    [tex] package (fragments → complete LaTeX document)
//	         ↓
//	    [render] package (latexmk/pdflatex, pdftocairo/magick/gs)
//	         ↓
//	    .tex / PDF / PNG / SVG output
//
// # Quick Start
//
// Build a small network and render it:
//
//	import "github.com/matzehuels/netsketch/pkg/diagram"
//
//	conv, _ := diagram.NewConv("c1", diagram.WithFilters(32))
//	pool, _ := diagram.NewPool("p1", diagram.After("c1"))
//
//	d := diagram.New().Add(conv, pool, diagram.NewConnection("c1", "p1"))
//	d.RenderPDF("net.pdf")
//
// # Main Packages
//
// [diagram] - Layer elements (Conv, Pool, Dense, attention and embedding
// layers, junction balls), connections and skips, composite encoder/decoder
// blocks, and the Diagram aggregation root.
//
// [tex] - Document assembly: preamble, color palettes, external style files,
// and the bundled Box/RightBandedBox/Ball TikZ layers.
//
// [render] - External-tool orchestration with ordered fallbacks: latexmk then
// pdflatex for compilation; pdftocairo, ImageMagick then Ghostscript for PDF
// conversion. Scoped temp dirs hold intermediates unless keep-tex pins them.
//
// [io] - JSON model import/export so diagrams can be defined as data and
// rendered from the command line.
//
// [preview] - DOT generation and in-process Graphviz SVG rendering for fast
// structure checks without a LaTeX installation.
//
// [errors] - Coded errors shared across the module.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/diagram/...  # Specific package
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/netsketch/pkg/diagram
// [tex]: https://pkg.go.dev/github.com/matzehuels/netsketch/pkg/tex
// [render]: https://pkg.go.dev/github.com/matzehuels/netsketch/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/netsketch/pkg/io
// [preview]: https://pkg.go.dev/github.com/matzehuels/netsketch/pkg/preview
// [errors]: https://pkg.go.dev/github.com/matzehuels/netsketch/pkg/errors
package pkg
