// Package tex assembles complete LaTeX documents from diagram fragments.
//
// # Overview
//
// A diagram produces an ordered sequence of TikZ fragments; this package
// wraps that sequence with everything a standalone LaTeX document needs:
//
//	document = header + [colors] + begin + fragments + end
//
// The header comes in two flavors, selected by [Config.InlineStyles]:
//
//   - Inline: the bundled style resources (init.tex, Box.sty,
//     RightBandedBox.sty, Ball.sty) are embedded verbatim in the preamble,
//     so the document compiles with no files besides itself.
//   - External: the header references a style directory via \subimport.
//     Use [WriteStyleAssets] to materialize the bundled resources there.
//
// # Colors
//
// Every layer kind fills with a named color macro (\ConvColor, \PoolColor,
// ...). [DefaultPalette] carries the classic eight-entry table and
// [ExtendedPalette] adds the extended layer family. Palettes are plain
// values, so callers and tests can substitute alternates via [Config.Palette]
// or derive one with [Palette.Override].
//
// # Usage
//
//	doc := tex.Document(fragments, tex.DefaultConfig())
//
//	cfg := tex.DefaultConfig()
//	cfg.InlineStyles = false
//	cfg.StyleDir = "build/layers"
//	doc = tex.Document(fragments, cfg)
package tex
