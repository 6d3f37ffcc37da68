// Package io provides JSON import and export for diagram models.
//
// # Overview
//
// This package enables declarative diagram definitions outside Go code. The
// format is designed for:
//
//   - Driving the command-line renderer from a plain JSON file
//   - Integration with tools that generate architectures programmatically
//   - Round-trip preservation: a model can be exported and re-imported
//
// # JSON Format
//
// The format has a single top-level array of layers, instantiated in order:
//
//	{
//	  "layers": [
//	    {"kind": "input", "path": "cat.png"},
//	    {"kind": "conv", "name": "c1", "filters": [64], "spatial": 256},
//	    {"kind": "pool", "name": "p1", "after": "c1"},
//	    {"kind": "connection", "from": "c1", "to": "p1"}
//	  ]
//	}
//
// # Layer Fields
//
// Required:
//   - kind: One of the kinds listed by [Kinds]
//
// Optional, applied only where the kind uses them:
//   - name, caption, path
//   - offset, at, after: 3D placement (after positions east of an anchor)
//   - shape: [width, height, depth], widths, filters, spatial, opacity
//   - from, to: link endpoints for connection and skip
//   - bottom, top, num: block wiring
//
// Omitted fields take the kind's defaults, so a minimal layer is just a kind
// and a name.
//
// # Import
//
// Use [ImportJSON] to read a model from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	d, err := io.ImportJSON("model.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate layer kinds, anchor names, and geometry before any
// element is built. Errors are wrapped with the offending layer's index and
// kind.
//
// # Export
//
// Use [ExportJSON] to write a model to a file, or [WriteJSON] to write to any
// io.Writer. Only zero-valued fields are omitted, so re-importing an exported
// model reproduces the same diagram.
package io
