package preview

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/netsketch/pkg/diagram"
	"github.com/matzehuels/netsketch/pkg/errors"
)

// Options configures structural preview rendering.
type Options struct {
	// Detailed includes the element kind in node labels.
	// When false, only the anchor name is shown.
	Detailed bool
}

// ToDOT converts a diagram to Graphviz DOT format for a structural preview:
// anchored elements become nodes and connections become edges, ignoring all
// 3D geometry. The resulting DOT string can be rendered with [RenderSVG].
//
// Blocks are flattened; their children appear as individual nodes wired by
// the block's internal connections.
func ToDOT(d *diagram.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var nodes, edges []string
	collect(d.Elements(), opts, &nodes, &edges)

	for _, n := range nodes {
		buf.WriteString(n)
	}
	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func collect(elems []diagram.Element, opts Options, nodes, edges *[]string) {
	for _, el := range elems {
		switch v := el.(type) {
		case diagram.Composite:
			collect(v.Children(), opts, nodes, edges)
		case diagram.Linker:
			from, to := v.Endpoints()
			*edges = append(*edges, fmt.Sprintf("  %q -> %q;\n", from, to))
		case diagram.Anchored:
			label := v.AnchorName()
			if opts.Detailed {
				label += "\n" + kindOf(el)
			}
			*nodes = append(*nodes, fmt.Sprintf("  %q [label=%q];\n", v.AnchorName(), label))
		}
	}
}

// kindOf derives a human-readable element kind from its concrete type.
func kindOf(el diagram.Element) string {
	name := fmt.Sprintf("%T", el)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// RenderSVG renders a DOT graph to SVG using Graphviz. No external tools are
// required; rendering happens in-process.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
