// Package preview renders quick structural previews of diagrams.
//
// Unlike the full LaTeX pipeline, a preview needs no external toolchain: the
// diagram's elements and connections are projected onto a plain directed
// graph and laid out in-process with Graphviz. This is useful for checking
// wiring before paying for a LaTeX compile.
package preview
