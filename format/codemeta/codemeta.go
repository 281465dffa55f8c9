// Package codemeta provides a format plugin for CodeMeta software
// descriptions (codemeta.json).
package codemeta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/iga/format"
	"github.com/lehigh-university-libraries/iga/source"
	"github.com/lehigh-university-libraries/iga/value"
)

// Filename is the conventional name of the file in a repository.
const Filename = "codemeta.json"

// Format implements the CodeMeta JSON-LD format.
type Format struct{}

var (
	_ format.Format       = (*Format)(nil)
	_ format.SourceParser = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "codemeta"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "CodeMeta software metadata (JSON-LD)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"json", "jsonld"}
}

// Filenames returns the conventional repository file names.
func (f *Format) Filenames() []string {
	return []string{Filename}
}

// CanParse returns true if the input looks like a CodeMeta document.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '{' {
		return false
	}

	patterns := [][]byte{
		[]byte(`codemeta`),
		[]byte(`"SoftwareSourceCode"`),
		[]byte(`"codeRepository"`),
		[]byte(`"programmingLanguage"`),
		[]byte(`"softwareVersion"`),
		[]byte(`"@context"`),
	}

	matchCount := 0
	for _, pattern := range patterns {
		if bytes.Contains(peek, pattern) {
			matchCount++
		}
	}

	return bytes.Contains(peek, []byte(`codemeta`)) || matchCount >= 2
}

// ParseSource reads a codemeta.json document. Unless opts.Strict is set,
// damaged JSON is repaired line by line before giving up.
func (f *Format) ParseSource(r io.Reader, opts *format.ParseOptions) (*source.Document, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: empty document", sourceName(opts))
	}

	var doc map[string]any
	if opts.Strict {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: parsing JSON: %w", sourceName(opts), err)
		}
		if doc == nil {
			return nil, fmt.Errorf("%s: document is not an object", sourceName(opts))
		}
	} else {
		doc, err = value.RepairJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sourceName(opts), err)
		}
	}

	return source.NewDocument(f.Name(), doc), nil
}

func sourceName(opts *format.ParseOptions) string {
	if opts.SourceName != "" {
		return opts.SourceName
	}
	return Filename
}

func init() {
	format.Register(&Format{})
}
