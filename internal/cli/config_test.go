package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
dpi = 150
page = 2
keep_tex = true
no_colors = true

[colors]
ConvColor = "rgb:blue,5;white,5"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.DPI != 150 || cfg.Page != 2 || !cfg.KeepTex || !cfg.NoColors {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Colors["ConvColor"] != "rgb:blue,5;white,5" {
		t.Errorf("color override not loaded: %v", cfg.Colors)
	}
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("explicit missing config should error")
	}
}

func TestLoadConfigMissingDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("missing default config should not error: %v", err)
	}
	if cfg.DPI != 0 {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigRejectsUnknownColor(t *testing.T) {
	path := writeConfig(t, `
[colors]
NotAColor = "rgb:red,1"
`)
	if _, err := loadConfig(path); err == nil {
		t.Fatal("unknown color name should be rejected")
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	for _, content := range []string{"dpi = -1", "page = -3", "dpi = \"high\""} {
		if _, err := loadConfig(writeConfig(t, content)); err == nil {
			t.Errorf("config %q should be rejected", content)
		}
	}
}

func TestConfigRenderOptions(t *testing.T) {
	inline := false
	cfg := &Config{
		DPI:          150,
		Page:         2,
		KeepTex:      true,
		InlineStyles: &inline,
		NoColors:     true,
		Colors:       map[string]string{"ConvColor": "rgb:blue,5;white,5"},
	}
	if got := len(cfg.renderOptions()); got != 6 {
		t.Errorf("len(renderOptions()) = %d, want 6", got)
	}

	if got := len((&Config{}).renderOptions()); got != 0 {
		t.Errorf("zero config should yield no options, got %d", got)
	}
}
