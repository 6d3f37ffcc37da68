package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	sketchio "github.com/matzehuels/netsketch/pkg/io"
	"github.com/matzehuels/netsketch/pkg/tex"
)

// stylesCommand creates the styles command for exporting the bundled style
// files. Exported styles pair with `render --styles <dir>`, which references
// them instead of inlining them into every document.
func (c *CLI) stylesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "styles [dir]",
		Short: "Export the bundled TikZ style files to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStyles(cmd.Context(), args[0])
		},
	}
	return cmd
}

func (c *CLI) runStyles(ctx context.Context, dir string) error {
	logger := loggerFromContext(ctx)

	if err := tex.WriteStyleAssets(dir); err != nil {
		return err
	}
	names := tex.StyleAssetNames()
	logger.Infof("Exported %d style files to %s", len(names), dir)

	printSuccess("Exported %s", strings.Join(names, ", "))
	printNextStep("Use them with", fmt.Sprintf("netsketch render model.json --styles %s", dir))
	return nil
}

// kindsCommand creates the kinds command listing every layer kind the model
// format accepts.
func (c *CLI) kindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the layer kinds accepted in model files",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(StyleTitle.Render("Layer kinds"))
			for _, k := range sketchio.Kinds() {
				fmt.Println("  " + StyleValue.Render(k))
			}
		},
	}
}
