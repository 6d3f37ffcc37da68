package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/netsketch/pkg/diagram"
)

// ReadJSON decodes a JSON model from r into a diagram.
//
// The input must be a JSON object with a "layers" array:
//
//	{
//	  "layers": [
//	    {"kind": "conv", "name": "c1", "filters": [32], "spatial": 16},
//	    {"kind": "pool", "name": "p1", "after": "c1"},
//	    {"kind": "connection", "from": "c1", "to": "p1"}
//	  ]
//	}
//
// Each layer must have a "kind" field naming one of the kinds listed by
// [Kinds]. The remaining fields cover the union of constructor parameters;
// fields a kind does not use are ignored and omitted fields take the kind's
// defaults.
//
// ReadJSON returns an error if:
//   - The JSON is malformed or invalid
//   - A layer names an unknown kind
//   - An anchor name is empty or contains reserved characters
//   - A layer's geometry is invalid (non-positive width or height)
//
// Errors are wrapped with the offending layer's index and kind. Use
// errors.GetCode to check for specific failure codes.
//
// The returned diagram is independent of r and can be extended safely after
// ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*diagram.Diagram, error) {
	var m Model
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return m.Diagram()
}

// ImportJSON reads a JSON model file at path and returns the assembled
// diagram.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. If the file cannot be opened, or if decoding fails, ImportJSON
// returns an error describing the failure. The error wraps the underlying
// cause with the file path for context.
//
// ImportJSON returns the same validation errors as [ReadJSON] for malformed
// models.
func ImportJSON(path string) (*diagram.Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
