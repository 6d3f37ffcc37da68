package render

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/netsketch/pkg/errors"
)

// Format is a supported secondary output format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// converterTools lists the conversion candidates in preference order.
// pdftocairo handles both formats; the ImageMagick and Ghostscript fallbacks
// are raster-only.
var converterTools = []string{"pdftocairo", "magick", "convert", "gs"}

// Converter turns a compiled PDF into a PNG or SVG using whichever tool is
// installed. Tool availability is probed once at construction.
type Converter struct {
	available map[string]bool

	lookPath func(string) (string, error)
	run      func(dir, name string, args ...string) error
}

// NewConverter probes the host for conversion tools and returns a converter
// bound to the result.
func NewConverter() *Converter {
	return newConverter(exec.LookPath, runCommand)
}

func newConverter(lookPath func(string) (string, error), run func(dir, name string, args ...string) error) *Converter {
	v := &Converter{
		available: make(map[string]bool, len(converterTools)),
		lookPath:  lookPath,
		run:       run,
	}
	for _, name := range converterTools {
		_, err := v.lookPath(name)
		v.available[name] = err == nil
	}
	return v
}

// Tools reports the probed tool names that are available, in preference
// order.
func (v *Converter) Tools() []string {
	var names []string
	for _, name := range converterTools {
		if v.available[name] {
			names = append(names, name)
		}
	}
	return names
}

// Convert renders page of pdfPath into outPath in the given format. Returns
// the absolute output path.
func (v *Converter) Convert(pdfPath, outPath string, format Format, dpi, page int) (string, error) {
	if err := errors.ValidateOutputFormat(string(format)); err != nil {
		return "", err
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if page <= 0 {
		page = 1
	}

	absOut, err := filepath.Abs(outPath)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve output path")
	}
	if err := os.MkdirAll(filepath.Dir(absOut), 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create output directory")
	}

	switch {
	case v.available["pdftocairo"]:
		err = v.convertCairo(pdfPath, absOut, format, dpi, page)
	case format == FormatSVG:
		return "", errors.New(errors.ErrCodeNoTool, "SVG conversion requires pdftocairo")
	case v.available["magick"]:
		err = v.convertMagick("magick", pdfPath, absOut, dpi, page)
	case v.available["convert"]:
		err = v.convertMagick("convert", pdfPath, absOut, dpi, page)
	case v.available["gs"]:
		err = v.convertGhostscript(pdfPath, absOut, dpi, page)
	default:
		return "", errors.New(errors.ErrCodeNoTool, "no PDF conversion tool found (install poppler-utils, ImageMagick, or Ghostscript)")
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConvertFailed, err, "convert PDF to %s", format)
	}
	if _, err := os.Stat(absOut); err != nil {
		return "", errors.New(errors.ErrCodeConvertFailed, "conversion produced no %s", format)
	}
	return absOut, nil
}

func (v *Converter) convertCairo(pdfPath, outPath string, format Format, dpi, page int) error {
	args := []string{
		"-r", strconv.Itoa(dpi),
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		pdfPath,
		"-singlefile",
	}
	if format == FormatPNG {
		// pdftocairo appends the extension itself in -singlefile mode.
		base := strings.TrimSuffix(outPath, filepath.Ext(outPath))
		return v.run("", "pdftocairo", append([]string{"-png"}, append(args, base)...)...)
	}
	return v.run("", "pdftocairo", append([]string{"-svg"}, append(args, outPath)...)...)
}

func (v *Converter) convertMagick(tool, pdfPath, outPath string, dpi, page int) error {
	return v.run("", tool,
		"-density", strconv.Itoa(dpi),
		fmt.Sprintf("%s[%d]", pdfPath, page-1),
		"-quality", "100",
		outPath,
	)
}

func (v *Converter) convertGhostscript(pdfPath, outPath string, dpi, page int) error {
	return v.run("", "gs",
		"-dSAFER", "-dBATCH", "-dNOPAUSE",
		"-sDEVICE=pngalpha",
		"-r"+strconv.Itoa(dpi),
		"-dFirstPage="+strconv.Itoa(page),
		"-dLastPage="+strconv.Itoa(page),
		"-sOutputFile="+outPath,
		pdfPath,
	)
}
