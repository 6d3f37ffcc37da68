package render

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/netsketch/pkg/tex"
)

// DefaultDPI is the raster resolution used when no WithDPI option is given.
const DefaultDPI = 300

// Option configures a single render request.
type Option func(*request)

// request collects the document configuration and pipeline settings for one
// render call.
type request struct {
	doc         tex.Config
	keepTex     bool
	keepTexPath string
	dpi         int
	page        int
}

func newRequest(opts []Option) request {
	req := request{
		doc:  tex.DefaultConfig(),
		dpi:  DefaultDPI,
		page: 1,
	}
	for _, o := range opts {
		o(&req)
	}
	return req
}

// texPathFor resolves where the intermediate document should be persisted for
// the artifact at outPath: the explicit keep path when one was given, a
// sibling sharing outPath's base name when keeping was requested without a
// path, and empty when the document is to be discarded.
func (r *request) texPathFor(outPath string) string {
	if !r.keepTex {
		return ""
	}
	if r.keepTexPath != "" {
		return r.keepTexPath
	}
	return strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".tex"
}

// WithExternalStyles emits a header referencing dir for the bundled style
// resources instead of inlining them. The directory must exist at compile
// time; see tex.WriteStyleAssets.
func WithExternalStyles(dir string) Option {
	return func(r *request) {
		r.doc.InlineStyles = false
		r.doc.StyleDir = dir
	}
}

// WithoutColors omits the palette definition block from the document.
func WithoutColors() Option {
	return func(r *request) { r.doc.IncludeColors = false }
}

// WithPalette substitutes the color palette emitted into the document.
func WithPalette(p tex.Palette) Option {
	return func(r *request) { r.doc.Palette = p }
}

// WithKeepTeX persists the intermediate LaTeX document next to the output
// artifact, sharing its base name.
func WithKeepTeX() Option {
	return func(r *request) { r.keepTex = true }
}

// WithKeepTeXAt persists the intermediate LaTeX document at the given path.
func WithKeepTeXAt(path string) Option {
	return func(r *request) {
		r.keepTex = true
		r.keepTexPath = path
	}
}

// WithDPI sets the raster resolution for PNG conversion. Ignored for other
// formats.
func WithDPI(dpi int) Option {
	return func(r *request) { r.dpi = dpi }
}

// WithPage selects which page of the compiled document to convert (1-based).
func WithPage(page int) Option {
	return func(r *request) { r.page = page }
}
