// Package cff provides a format plugin for the Citation File Format
// (CITATION.cff).
package cff

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/iga/format"
	"github.com/lehigh-university-libraries/iga/source"
)

// Filenames lists the spellings of the citation file found in the wild,
// in the order they are tried.
var Filenames = []string{"CITATION.cff", "CITATION.CFF", "citation.cff"}

// Format implements the Citation File Format.
type Format struct{}

var (
	_ format.Format       = (*Format)(nil)
	_ format.SourceParser = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "cff"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Citation File Format (YAML)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"cff"}
}

// Filenames returns the conventional repository file names.
func (f *Format) Filenames() []string {
	return Filenames
}

// CanParse returns true if the input looks like a CFF document.
func (f *Format) CanParse(peek []byte) bool {
	return bytes.Contains(peek, []byte("cff-version"))
}

// ParseSource reads a CITATION.cff document.
func (f *Format) ParseSource(r io.Reader, opts *format.ParseOptions) (*source.Document, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}
	name := opts.SourceName
	if name == "" {
		name = Filenames[0]
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: parsing YAML: %w", name, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%s: document is empty or not a mapping", name)
	}

	return source.NewDocument(f.Name(), normalize(doc).(map[string]any)), nil
}

// normalize converts any map[any]any nested inside the document into
// map[string]any so the rest of the pipeline sees one shape.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}

func init() {
	format.Register(&Format{})
}
