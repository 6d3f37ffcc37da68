package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/netsketch/pkg/render"
	"github.com/matzehuels/netsketch/pkg/tex"
)

// Config holds render defaults loaded from the TOML config file. The zero
// value means "use built-in defaults"; command-line flags override loaded
// values.
//
// Example config (~/.config/netsketch/config.toml):
//
//	dpi = 150
//	keep_tex = true
//
//	[colors]
//	ConvColor = "rgb:blue,5;white,5"
type Config struct {
	DPI          int               `toml:"dpi"`
	Page         int               `toml:"page"`
	KeepTex      bool              `toml:"keep_tex"`
	InlineStyles *bool             `toml:"inline_styles"`
	StyleDir     string            `toml:"style_dir"`
	NoColors     bool              `toml:"no_colors"`
	Colors       map[string]string `toml:"colors"`
}

// loadConfig reads the config file at path. An empty path falls back to the
// default XDG location, where a missing file is not an error; an explicitly
// given path must exist.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return &Config{}, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DPI < 0 {
		return fmt.Errorf("dpi must be positive, got %d", c.DPI)
	}
	if c.Page < 0 {
		return fmt.Errorf("page must be positive, got %d", c.Page)
	}
	palette := tex.ExtendedPalette()
	for name := range c.Colors {
		if _, ok := palette.Lookup(name); !ok {
			return fmt.Errorf("unknown color %q", name)
		}
	}
	return nil
}

// renderOptions maps the config onto render options. Flag-level overrides are
// appended by the caller after these, so flags win.
func (c *Config) renderOptions() []render.Option {
	var opts []render.Option
	if c.DPI > 0 {
		opts = append(opts, render.WithDPI(c.DPI))
	}
	if c.Page > 0 {
		opts = append(opts, render.WithPage(c.Page))
	}
	if c.KeepTex {
		opts = append(opts, render.WithKeepTeX())
	}
	if c.InlineStyles != nil && !*c.InlineStyles {
		dir := c.StyleDir
		if dir == "" {
			dir = "layers"
		}
		opts = append(opts, render.WithExternalStyles(dir))
	}
	if c.NoColors {
		opts = append(opts, render.WithoutColors())
	}
	if len(c.Colors) > 0 {
		palette := tex.ExtendedPalette()
		for _, name := range sortedKeys(c.Colors) {
			palette = palette.Override(name, c.Colors[name])
		}
		opts = append(opts, render.WithPalette(palette))
	}
	return opts
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
