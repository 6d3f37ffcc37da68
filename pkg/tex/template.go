package tex

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed assets/init.tex assets/Box.sty assets/RightBandedBox.sty assets/Ball.sty
var assets embed.FS

// styleFiles lists the bundled TikZ style resources in inclusion order.
// init.tex must come first: the .sty picture definitions reference the edge
// color and libraries it sets up.
var styleFiles = []string{"Box.sty", "RightBandedBox.sty", "Ball.sty"}

// Config controls document assembly.
type Config struct {
	// InlineStyles embeds the bundled style resources directly in the
	// preamble. When false the header references StyleDir instead, which
	// must contain the files written by WriteStyleAssets.
	InlineStyles bool

	// IncludeColors emits the palette definition block. Disable only when
	// equivalent \def lines are supplied by other means.
	IncludeColors bool

	// Palette is the color table to emit. Nil means ExtendedPalette.
	Palette Palette

	// StyleDir is the directory referenced by the external-styles header.
	StyleDir string
}

// DefaultConfig returns the configuration used by Diagram's convenience
// methods: self-contained documents with the extended palette.
func DefaultConfig() Config {
	return Config{
		InlineStyles:  true,
		IncludeColors: true,
		Palette:       ExtendedPalette(),
		StyleDir:      "layers",
	}
}

// Document assembles a complete LaTeX document from an ordered fragment
// sequence: header, optional colors, begin wrapper, fragments, end wrapper.
func Document(fragments []string, cfg Config) string {
	var b strings.Builder

	if cfg.InlineStyles {
		b.WriteString(HeaderInline())
	} else {
		b.WriteString(HeaderExternal(cfg.StyleDir))
	}

	if cfg.IncludeColors {
		p := cfg.Palette
		if p == nil {
			p = ExtendedPalette()
		}
		b.WriteString(p.Definitions())
	}

	b.WriteString(Begin())
	for _, f := range fragments {
		b.WriteString(f)
		b.WriteString("\n")
	}
	b.WriteString(End())

	return b.String()
}

// HeaderInline returns the document header with all bundled style resources
// embedded. The result is self-contained: no external files are needed at
// compile time.
func HeaderInline() string {
	return `\documentclass[border=8pt, multi, tikz]{standalone}
\usetikzlibrary{positioning}
\usetikzlibrary{3d}
\usetikzlibrary{calc}
` + inlineStyles()
}

// HeaderExternal returns the document header referencing styleDir for the
// bundled resources. The directory must exist at compile time; use
// WriteStyleAssets to materialize it.
func HeaderExternal(styleDir string) string {
	dir := filepath.ToSlash(styleDir)
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	return fmt.Sprintf(`\documentclass[border=8pt, multi, tikz]{standalone}
\usepackage{import}
\subimport{%s}{init}
\usetikzlibrary{positioning}
\usetikzlibrary{3d}
\usetikzlibrary{calc}
`, dir)
}

// Begin returns the section between the preamble and the first fragment:
// the copy-arrow macro, document/tikzpicture openers and connection styles.
func Begin() string {
	return `
\newcommand{\copymidarrow}{\tikz \draw[-Stealth,line width=0.8mm,draw={rgb:blue,4;red,1;green,1;black,3}] (-0.3,0) -- ++(0.3,0);}

\begin{document}
\begin{tikzpicture}
\tikzstyle{connection}=[ultra thick,every node/.style={sloped,allow upside down},draw=\edgecolor,opacity=0.7]
\tikzstyle{copyconnection}=[ultra thick,every node/.style={sloped,allow upside down},draw={rgb:blue,4;red,1;green,1;black,3},opacity=0.7]
`
}

// End closes the tikzpicture and the document.
func End() string {
	return `
\end{tikzpicture}
\end{document}
`
}

// inlineStyles concatenates the bundled resources for the inline header.
// Provider boilerplate is stripped: \usepackage lines from init.tex (the
// standalone class already loads tikz) and \ProvidesPackage lines from the
// .sty files (they are no longer packages once inlined).
func inlineStyles() string {
	var parts []string

	init := mustAsset("init.tex")
	parts = append(parts, stripPrefixedLines(init, `\usepackage`))

	for _, name := range styleFiles {
		parts = append(parts, stripPrefixedLines(mustAsset(name), `\ProvidesPackage`))
	}

	return strings.Join(parts, "\n") + "\n"
}

func mustAsset(name string) string {
	data, err := assets.ReadFile("assets/" + name)
	if err != nil {
		// The assets are compiled into the binary; a missing one is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("tex: missing embedded asset %s: %v", name, err))
	}
	return string(data)
}

// stripPrefixedLines removes every line whose trimmed form starts with prefix.
func stripPrefixedLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, ln := range lines {
		if strings.HasPrefix(strings.TrimSpace(ln), prefix) {
			continue
		}
		kept = append(kept, ln)
	}
	return strings.Join(kept, "\n")
}

// StyleAssetNames returns the names of the bundled style resources, init.tex
// first, in the order WriteStyleAssets writes them.
func StyleAssetNames() []string {
	return append([]string{"init.tex"}, styleFiles...)
}

// WriteStyleAssets materializes the bundled style resources into dir so that
// externally-referencing documents (Config.InlineStyles=false) can compile.
// The directory is created if needed; existing files are overwritten.
func WriteStyleAssets(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create style dir %s: %w", dir, err)
	}
	for _, name := range StyleAssetNames() {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(mustAsset(name)), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
