package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netsketch/pkg/io"
	"github.com/matzehuels/netsketch/pkg/preview"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	output   string // output file path
	detailed bool   // include element kinds in node labels
	dotOnly  bool   // emit DOT source instead of rendering SVG
}

// previewCommand creates the preview command for quick structural previews.
// Unlike render, preview needs no LaTeX toolchain: the model's wiring is laid
// out in-process with Graphviz.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview [model.json]",
		Short: "Render a structural preview of a model without LaTeX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: model path with .svg or .dot)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include element kinds in node labels")
	cmd.Flags().BoolVar(&opts.dotOnly, "dot", false, "emit Graphviz DOT source instead of SVG")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, opts *previewOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Previewing %s", input)

	d, err := io.ImportJSON(input)
	if err != nil {
		return err
	}
	dot := preview.ToDOT(d, preview.Options{Detailed: opts.detailed})

	ext := ".svg"
	data := []byte(nil)
	if opts.dotOnly {
		ext = ".dot"
		data = []byte(dot)
	} else {
		svg, err := preview.RenderSVG(dot)
		if err != nil {
			return err
		}
		data = svg
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + ext
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logger.Infof("Generated %s", path)
	printFile(path)
	return nil
}
