package preview

import (
	"strings"
	"testing"

	"github.com/matzehuels/netsketch/pkg/diagram"
)

func buildDiagram(t *testing.T) *diagram.Diagram {
	t.Helper()
	c1, err := diagram.NewConv("c1")
	if err != nil {
		t.Fatalf("NewConv: %v", err)
	}
	p1, err := diagram.NewPool("p1")
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	return diagram.New().Add(c1, p1, diagram.NewConnection("c1", "p1"))
}

func TestToDOTNodesAndEdges(t *testing.T) {
	dot := ToDOT(buildDiagram(t), Options{})

	for _, want := range []string{
		"digraph G {",
		`"c1" [label="c1"];`,
		`"p1" [label="p1"];`,
		`"c1" -> "p1";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(buildDiagram(t), Options{Detailed: true})
	if !strings.Contains(dot, `label="c1\nConv"`) {
		t.Errorf("detailed label missing element kind:\n%s", dot)
	}
}

func TestToDOTFlattensBlocks(t *testing.T) {
	b, err := diagram.NewTwoConvPoolBlock("enc1", "input", "pool_enc1")
	if err != nil {
		t.Fatalf("NewTwoConvPoolBlock: %v", err)
	}
	dot := ToDOT(diagram.New().Add(b), Options{})

	if !strings.Contains(dot, `"ccr_enc1"`) {
		t.Errorf("block children should become nodes:\n%s", dot)
	}
	if !strings.Contains(dot, `"input" -> "ccr_enc1";`) {
		t.Errorf("block connection should become an edge:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(buildDiagram(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, "<svg") {
		t.Fatal("output is not an SVG")
	}
	if !strings.Contains(s, `viewBox="0 0 `) {
		t.Error("viewBox not normalized to the origin")
	}
	for _, want := range []string{"c1", "p1"} {
		if !strings.Contains(s, want) {
			t.Errorf("SVG missing node %q", want)
		}
	}
}

func TestRenderSVGBadDOT(t *testing.T) {
	if _, err := RenderSVG("not a graph"); err == nil {
		t.Fatal("expected error for invalid DOT")
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	in := []byte("<svg>no viewbox</svg>")
	if got := normalizeViewBox(in); string(got) != string(in) {
		t.Errorf("svg without viewBox should pass through, got %s", got)
	}
}
