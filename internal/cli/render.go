package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netsketch/pkg/io"
	"github.com/matzehuels/netsketch/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple formats)
	formats  []string // output formats: "tex", "pdf", "png", "svg"
	dpi      int      // raster resolution for PNG output
	page     int      // page of the compiled document to convert
	keepTex  bool     // persist the intermediate LaTeX document
	texPath  string   // explicit path for the persisted document
	styleDir string   // reference styles from this directory instead of inlining
	noColors bool     // omit the palette definition block
	config   string   // config file path (default: XDG location)
}

// newRenderCmd creates the render command for generating diagram outputs.
// It reads a JSON model, assembles the TikZ document, and produces the
// requested formats.
//
// Default settings:
//   - format: png
//   - dpi: 300 (PNG only)
//   - styles inlined into the document
//   - intermediate LaTeX discarded
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [model.json]",
		Short: "Render a diagram model to TeX, PDF, PNG, or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, pdf, tex (comma-separated)")
	cmd.Flags().IntVar(&opts.dpi, "dpi", 0, "raster resolution for PNG output (default 300)")
	cmd.Flags().IntVar(&opts.page, "page", 0, "page of the compiled document to convert (default 1)")
	cmd.Flags().BoolVar(&opts.keepTex, "keep-tex", false, "persist the intermediate LaTeX document next to the output")
	cmd.Flags().StringVar(&opts.texPath, "tex-path", "", "persist the intermediate LaTeX document at this path")
	cmd.Flags().StringVar(&opts.styleDir, "styles", "", "reference style files from this directory instead of inlining them")
	cmd.Flags().BoolVar(&opts.noColors, "no-colors", false, "omit the color palette from the document")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default: ~/.config/netsketch/config.toml)")

	return cmd
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"tex": true, "pdf": true, "png": true, "svg": true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'tex', 'pdf', 'png', or 'svg')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.png, .pdf, etc.), it strips that extension.
// This is used when generating multiple files (e.g., net.pdf, net.png).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads the model from input, builds the diagram, and renders it to
// the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx).With("job", uuid.NewString()[:8])
	logger.Infof("Rendering %s", input)

	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}

	d, err := io.ImportJSON(input)
	if err != nil {
		return err
	}
	fragments := d.Build()
	logger.Infof("Loaded model: %d elements, %d fragments", d.Len(), len(fragments))

	r := render.NewRenderer()
	logger.Debugf("Engines: %v, conversion tools: %v", r.Compiler().Engines(), r.Converter().Tools())

	renderOpts := append(cfg.renderOptions(), flagOptions(opts)...)

	if len(opts.formats) == 1 && opts.output != "" {
		return c.renderOne(ctx, r, fragments, opts.formats[0], opts.output, renderOpts)
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		if err := c.renderOne(ctx, r, fragments, format, base+"."+format, renderOpts); err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
	}
	return nil
}

// renderOne produces a single format at path, with a spinner while the
// external toolchain runs.
func (c *CLI) renderOne(ctx context.Context, r *render.Renderer, fragments []string, format, path string, opts []render.Option) error {
	logger := loggerFromContext(ctx)
	track := newProgress(logger)

	var spin *toolSpinner
	if format != "tex" {
		spin = startSpinner(ctx, path)
	}

	var err error
	switch format {
	case "tex":
		_, err = r.RenderToTeX(fragments, path, opts...)
	case "pdf":
		_, err = r.RenderToPDF(fragments, path, opts...)
	case "png":
		_, err = r.RenderToPNG(fragments, path, opts...)
	case "svg":
		_, err = r.RenderToSVG(fragments, path, opts...)
	}

	if spin != nil {
		if err != nil {
			spin.fail()
		} else {
			spin.stop()
		}
	}
	if err != nil {
		return err
	}

	track.done(fmt.Sprintf("Rendered %s", path))
	printFile(path)
	return nil
}

// flagOptions maps command-line flags onto render options. These come after
// config options so flags take precedence.
func flagOptions(opts *renderOpts) []render.Option {
	var out []render.Option
	if opts.dpi > 0 {
		out = append(out, render.WithDPI(opts.dpi))
	}
	if opts.page > 0 {
		out = append(out, render.WithPage(opts.page))
	}
	if opts.keepTex {
		out = append(out, render.WithKeepTeX())
	}
	if opts.texPath != "" {
		out = append(out, render.WithKeepTeXAt(opts.texPath))
	}
	if opts.styleDir != "" {
		out = append(out, render.WithExternalStyles(opts.styleDir))
	}
	if opts.noColors {
		out = append(out, render.WithoutColors())
	}
	return out
}
