package tex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDocumentInlineIsSelfContained(t *testing.T) {
	doc := Document([]string{`\pic at (0,0,0) {Box={name=c1}};`}, DefaultConfig())

	if strings.Contains(doc, `\subimport`) {
		t.Error("inline document references an external style directory")
	}
	if strings.Contains(doc, `\ProvidesPackage`) {
		t.Error("inline document still carries \\ProvidesPackage boilerplate")
	}
	for _, want := range []string{
		`\documentclass[border=8pt, multi, tikz]{standalone}`,
		`\tikzset{Box/.pic=`,
		`\tikzset{RightBandedBox/.pic=`,
		`\tikzset{Ball/.pic=`,
		`\begin{document}`,
		`\begin{tikzpicture}`,
		`\end{tikzpicture}`,
		`\end{document}`,
		`\pic at (0,0,0) {Box={name=c1}};`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestDocumentExternalReferencesStyleDirOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InlineStyles = false
	cfg.StyleDir = "build/layers"

	doc := Document(nil, cfg)

	if got := strings.Count(doc, `\subimport{build/layers/}{init}`); got != 1 {
		t.Errorf("subimport reference count = %d, want 1", got)
	}
	if strings.Contains(doc, `\tikzset{Box/.pic=`) {
		t.Error("external document must not inline style bodies")
	}
}

func TestDocumentColorsToggle(t *testing.T) {
	frags := []string{"fragment-a", "fragment-b"}

	with := Document(frags, DefaultConfig())
	cfg := DefaultConfig()
	cfg.IncludeColors = false
	without := Document(frags, cfg)

	if !strings.Contains(with, `\def\ConvColor{rgb:yellow,5;red,2.5;white,5}`) {
		t.Error("colors document missing ConvColor definition")
	}
	if strings.Contains(without, `\def\ConvColor`) {
		t.Error("colorless document still defines ConvColor")
	}

	// Removing the color block must leave every other section untouched.
	colors := ExtendedPalette().Definitions()
	if got := strings.Replace(with, colors, "", 1); got != without {
		t.Error("documents differ beyond the color block")
	}
}

func TestDocumentIsDeterministic(t *testing.T) {
	frags := []string{"a", "b", "c"}
	if Document(frags, DefaultConfig()) != Document(frags, DefaultConfig()) {
		t.Error("Document is not deterministic")
	}
}

func TestDefaultPaletteTable(t *testing.T) {
	p := DefaultPalette()

	want := []Color{
		{"ConvColor", "rgb:yellow,5;red,2.5;white,5"},
		{"ConvReluColor", "rgb:yellow,5;red,5;white,5"},
		{"PoolColor", "rgb:red,1;black,0.3"},
		{"UnpoolColor", "rgb:blue,2;green,1;black,0.3"},
		{"FcColor", "rgb:blue,5;red,2.5;white,5"},
		{"FcReluColor", "rgb:blue,5;red,5;white,4"},
		{"SoftmaxColor", "rgb:magenta,5;black,7"},
		{"SumColor", "rgb:blue,5;green,15"},
	}

	if len(p) != len(want) {
		t.Fatalf("palette size = %d, want %d", len(p), len(want))
	}
	for i := range want {
		if p[i] != want[i] {
			t.Errorf("palette[%d] = %+v, want %+v", i, p[i], want[i])
		}
	}
}

func TestExtendedPaletteSupersetOfDefault(t *testing.T) {
	ext := ExtendedPalette()
	for _, c := range DefaultPalette() {
		mix, ok := ext.Lookup(c.Name)
		if !ok || mix != c.Mix {
			t.Errorf("extended palette changed or dropped %s", c.Name)
		}
	}
	for _, name := range []string{
		"ActivationColor", "NormColor", "RnnColor", "GenericColor",
		"DepthwiseColor", "SeparableColor", "TransposeConvColor",
		"FlattenColor", "SqueezeColor", "TransformerColor",
	} {
		if _, ok := ext.Lookup(name); !ok {
			t.Errorf("extended palette missing %s", name)
		}
	}
}

func TestPaletteOverride(t *testing.T) {
	p := DefaultPalette().Override("ConvColor", "rgb:red,5")
	if mix, _ := p.Lookup("ConvColor"); mix != "rgb:red,5" {
		t.Errorf("override not applied, got %q", mix)
	}
	// Original left intact.
	if mix, _ := DefaultPalette().Lookup("ConvColor"); mix != "rgb:yellow,5;red,2.5;white,5" {
		t.Errorf("DefaultPalette mutated: %q", mix)
	}

	p = p.Override("BrandColor", "rgb:blue,1")
	if mix, ok := p.Lookup("BrandColor"); !ok || mix != "rgb:blue,1" {
		t.Error("unknown color not appended")
	}

	doc := Document(nil, Config{InlineStyles: true, IncludeColors: true, Palette: p})
	if !strings.Contains(doc, `\def\BrandColor{rgb:blue,1}`) {
		t.Error("substituted palette not emitted")
	}
}

func TestWriteStyleAssets(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "layers")
	if err := WriteStyleAssets(dir); err != nil {
		t.Fatalf("WriteStyleAssets: %v", err)
	}

	for _, name := range StyleAssetNames() {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	// The materialized files keep their provider lines so LaTeX can load
	// them as packages.
	box, err := os.ReadFile(filepath.Join(dir, "Box.sty"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(box), `\ProvidesPackage{Box}`) {
		t.Error("Box.sty lost its \\ProvidesPackage line")
	}
}
