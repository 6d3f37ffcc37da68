package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netsketch/pkg/render"
)

// doctorCommand creates the doctor command for checking the external
// toolchain. TeX output always works; PDF needs an engine and PNG/SVG
// additionally need a conversion tool.
func (c *CLI) doctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check which LaTeX engines and conversion tools are installed",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			r := render.NewRenderer()
			engines := r.Compiler().Engines()
			tools := r.Converter().Tools()

			printToolStatus("LaTeX engine", engines, "install latexmk or pdflatex (TeX Live)")
			printToolStatus("PDF converter", tools, "install poppler-utils, ImageMagick, or Ghostscript")

			switch {
			case len(engines) == 0:
				printWarning("only tex output will work")
			case len(tools) == 0:
				printWarning("only tex and pdf output will work")
			default:
				printSuccess("all output formats available")
			}
			if len(tools) > 0 && tools[0] != "pdftocairo" {
				printWarning("svg output requires pdftocairo (poppler-utils)")
			}
		},
	}
}

func printToolStatus(label string, available []string, hint string) {
	if len(available) == 0 {
		printError("%s: none found", label)
		printNextStep("To fix", hint)
		return
	}
	printKeyValue(label, strings.Join(available, ", "))
}
