package render

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/netsketch/pkg/errors"
	"github.com/matzehuels/netsketch/pkg/tex"
)

// Renderer orchestrates the document, compilation, and conversion stages.
// One renderer is safe for sequential reuse; tool probing happens once at
// construction.
type Renderer struct {
	compiler  *Compiler
	converter *Converter
}

// NewRenderer probes the host toolchain and returns a renderer bound to it.
func NewRenderer() *Renderer {
	return &Renderer{
		compiler:  NewCompiler(),
		converter: NewConverter(),
	}
}

// Compiler exposes the probed compilation stage.
func (r *Renderer) Compiler() *Compiler { return r.compiler }

// Converter exposes the probed conversion stage.
func (r *Renderer) Converter() *Converter { return r.converter }

// RenderToTeX assembles the fragments into a standalone document and writes
// it to path. The write is atomic: the file appears complete or not at all.
// Returns the absolute output path.
func (r *Renderer) RenderToTeX(fragments []string, path string, opts ...Option) (string, error) {
	req := newRequest(opts)
	doc := tex.Document(fragments, req.doc)

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve output path")
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create output directory")
	}
	if err := writeAtomic(abs, []byte(doc)); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "write document")
	}
	return abs, nil
}

// RenderToPDF assembles and compiles the fragments into a PDF at path. The
// intermediate document is discarded unless a keep option was given. Returns
// the absolute output path.
func (r *Renderer) RenderToPDF(fragments []string, path string, opts ...Option) (string, error) {
	req := newRequest(opts)
	doc := tex.Document(fragments, req.doc)
	return r.compiler.CompileToPDF(doc, path, req.texPathFor(path))
}

// RenderToPNG renders the fragments to a PNG at path, going through a
// temporary PDF unless a keep option pins the intermediates next to the
// output. Returns the absolute output path.
func (r *Renderer) RenderToPNG(fragments []string, path string, opts ...Option) (string, error) {
	return r.renderConverted(fragments, path, FormatPNG, opts)
}

// RenderToSVG renders the fragments to an SVG at path. SVG output requires
// pdftocairo. Returns the absolute output path.
func (r *Renderer) RenderToSVG(fragments []string, path string, opts ...Option) (string, error) {
	return r.renderConverted(fragments, path, FormatSVG, opts)
}

func (r *Renderer) renderConverted(fragments []string, path string, format Format, opts []Option) (string, error) {
	req := newRequest(opts)
	doc := tex.Document(fragments, req.doc)

	pdfPath, cleanup, err := r.intermediatePDF(doc, path, &req)
	if err != nil {
		return "", err
	}
	defer cleanup()

	return r.converter.Convert(pdfPath, path, format, req.dpi, req.page)
}

// intermediatePDF compiles the document to the PDF the conversion stage will
// read. With keepTex set the PDF (and document) land next to the final
// output; otherwise they live in a scoped temporary directory removed by the
// returned cleanup.
func (r *Renderer) intermediatePDF(doc, outPath string, req *request) (string, func(), error) {
	if req.keepTex {
		pdfPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".pdf"
		got, err := r.compiler.CompileToPDF(doc, pdfPath, req.texPathFor(outPath))
		if err != nil {
			return "", nil, err
		}
		return got, func() {}, nil
	}

	tmpDir, err := os.MkdirTemp("", "netsketch-pdf-")
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInternal, err, "create work directory")
	}
	pdfPath := filepath.Join(tmpDir, "diagram.pdf")
	got, err := r.compiler.CompileToPDF(doc, pdfPath, "")
	if err != nil {
		os.RemoveAll(tmpDir)
		return "", nil, err
	}
	return got, func() { os.RemoveAll(tmpDir) }, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".netsketch-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return err
	}
	return os.Rename(name, path)
}
