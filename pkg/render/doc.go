// Package render drives the external toolchain that turns assembled
// documents into artifacts.
//
// # Overview
//
// The pipeline has three stages:
//
//   - [Renderer] assembles diagram fragments into a standalone LaTeX document
//   - [Compiler] produces a PDF via latexmk or pdflatex
//   - [Converter] produces PNG or SVG output via pdftocairo, ImageMagick, or
//     Ghostscript
//
// # Tool Discovery
//
// Tool availability is probed once when a stage is constructed, so a missing
// toolchain surfaces as a typed error before any subprocess runs. Engines and
// conversion tools are each tried in a fixed preference order; SVG output is
// only available through pdftocairo.
//
//	r := render.NewRenderer()
//	path, err := r.RenderToPNG(d.Build(), "net.png", render.WithDPI(150))
//
// # Intermediates
//
// Compilation always runs in a scoped temporary directory so LaTeX
// by-products never land next to the caller's files. The intermediate
// document and PDF are discarded unless [WithKeepTeX] or [WithKeepTeXAt]
// pins them alongside the final output.
package render
