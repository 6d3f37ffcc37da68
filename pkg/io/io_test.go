package io

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/matzehuels/netsketch/pkg/errors"
)

const sampleModel = `{
  "layers": [
    {"kind": "input", "path": "cat.png"},
    {"kind": "conv", "name": "c1", "filters": [32], "spatial": 16, "shape": [2, 16, 16]},
    {"kind": "pool", "name": "p1", "after": "c1"},
    {"kind": "connection", "from": "c1", "to": "p1"}
  ]
}`

func TestReadJSON(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(sampleModel))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if d.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", d.Len())
	}

	frags := d.Build()
	joined := strings.Join(frags, "\n")
	for _, want := range []string{"name=c1", "name=p1", "(c1-east)", "(p1-west)"} {
		if !strings.Contains(joined, want) {
			t.Errorf("fragments missing %q", want)
		}
	}
}

func TestReadJSONSpatialForms(t *testing.T) {
	for _, spatial := range []string{`16`, `"16"`} {
		d, err := ReadJSON(strings.NewReader(`{"layers": [{"kind": "conv", "name": "c1", "spatial": ` + spatial + `}]}`))
		if err != nil {
			t.Fatalf("spatial %s: %v", spatial, err)
		}
		if got := d.Build()[0]; !strings.Contains(got, "16") {
			t.Errorf("spatial %s not in fragment: %s", spatial, got)
		}
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{
			name:  "unknown kind",
			input: `{"layers": [{"kind": "warp_drive", "name": "x"}]}`,
			code:  errors.ErrCodeInvalidModel,
		},
		{
			name:  "bad anchor name",
			input: `{"layers": [{"kind": "conv", "name": "a,b"}]}`,
			code:  errors.ErrCodeInvalidAnchor,
		},
		{
			name:  "short shape",
			input: `{"layers": [{"kind": "conv", "name": "c1", "shape": [1, 2]}]}`,
			code:  errors.ErrCodeInvalidModel,
		},
		{
			name:  "zero width",
			input: `{"layers": [{"kind": "conv", "name": "c1", "shape": [0, 2, 2]}]}`,
			code:  errors.ErrCodeInvalidGeometry,
		},
		{
			name:  "connection without endpoints",
			input: `{"layers": [{"kind": "connection", "from": "c1"}]}`,
			code:  errors.ErrCodeInvalidModel,
		},
		{
			name:  "box layer without name",
			input: `{"layers": [{"kind": "conv", "filters": [32]}]}`,
			code:  errors.ErrCodeInvalidModel,
		},
		{
			name:  "block without name",
			input: `{"layers": [{"kind": "two_conv_pool", "bottom": "in", "top": "p1"}]}`,
			code:  errors.ErrCodeInvalidModel,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if errors.GetCode(err) != tt.code {
				t.Fatalf("code = %v, want %v (err: %v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestReadJSONErrorNamesLayer(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"layers": [{"kind": "conv", "name": "c1"}, {"kind": "bogus"}]}`))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "layer 1 (bogus)") {
		t.Errorf("error should name the layer: %v", err)
	}
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"layers": [{"kind": "conv", "name": "c1", "colour": "red"}]}`))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestReadJSONMalformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader(`{"layers": [`)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	m := &Model{Layers: []Layer{
		{Kind: "conv", Name: "c1", Filters: []int{32}, Spatial: "16", Shape: []float64{2, 16, 16}},
		{Kind: "pool", Name: "p1", After: "c1"},
		{Kind: "connection", From: "c1", To: "p1"},
	}}

	path := filepath.Join(t.TempDir(), "model.json")
	if err := ExportJSON(m, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	d, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if d.Len() != 3 {
		t.Errorf("Len() = %d, want 3", d.Len())
	}

	want, err := m.Diagram()
	if err != nil {
		t.Fatalf("Diagram: %v", err)
	}
	got := strings.Join(d.Build(), "\n")
	if got != strings.Join(want.Build(), "\n") {
		t.Error("round trip changed the rendered fragments")
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteJSONOmitsZeroFields(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&Model{Layers: []Layer{{Kind: "pool", Name: "p1"}}}, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	out := buf.String()
	for _, unwanted := range []string{"opacity", "filters", "shape", "from"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output should omit zero field %q:\n%s", unwanted, out)
		}
	}
}

func TestBlockKinds(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(`{"layers": [
		{"kind": "two_conv_pool", "name": "enc1", "bottom": "in", "top": "p1"},
		{"kind": "res", "name": "r", "bottom": "p1", "top": "r_out", "num": 3}
	]}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	joined := strings.Join(d.Build(), "\n")
	for _, want := range []string{"ccr_enc1", "copyconnection"} {
		if !strings.Contains(joined, want) {
			t.Errorf("fragments missing %q", want)
		}
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	if !sort.StringsAreSorted(kinds) {
		t.Error("Kinds() should be sorted")
	}
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	for _, want := range []string{"input", "conv", "connection", "skip", "transformer_block", "res"} {
		if !set[want] {
			t.Errorf("Kinds() missing %q", want)
		}
	}
}

func TestModelKeepsFileUntouchedOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(`{"layers": [{"kind": "bogus"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportJSON(path); err == nil {
		t.Fatal("expected error")
	}
	data, _ := os.ReadFile(path)
	if string(data) != `{"layers": [{"kind": "bogus"}]}` {
		t.Error("import must not modify the input file")
	}
}
