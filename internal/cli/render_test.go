package cli

import (
	"reflect"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"png"}},
		{"pdf", []string{"pdf"}},
		{"tex,pdf,png", []string{"tex", "pdf", "png"}},
		{"pdf, png", []string{"pdf", "png"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"tex", "pdf", "png", "svg"}); err != nil {
		t.Errorf("all supported formats should validate: %v", err)
	}
	if err := validateFormats([]string{"png", "gif"}); err == nil {
		t.Error("gif should be rejected")
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derive from input", "", "models/unet.json", "models/unet"},
		{"strip format extension", "out/net.png", "unet.json", "out/net"},
		{"keep foreign extension", "out/net.special", "unet.json", "out/net.special"},
		{"plain base path", "out/net", "unet.json", "out/net"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestFlagOptions(t *testing.T) {
	tests := []struct {
		name string
		opts renderOpts
		want int
	}{
		{"no flags", renderOpts{}, 0},
		{"dpi only", renderOpts{dpi: 150}, 1},
		{"everything", renderOpts{dpi: 150, page: 2, keepTex: true, texPath: "a.tex", styleDir: "layers", noColors: true}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(flagOptions(&tt.opts)); got != tt.want {
				t.Errorf("len(flagOptions()) = %d, want %d", got, tt.want)
			}
		})
	}
}
