// Package invenio provides a format plugin for InvenioRDM record JSON, the
// output of the crosswalk.
package invenio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/iga/format"
	"github.com/lehigh-university-libraries/iga/hub"
)

// Format implements the InvenioRDM record format.
type Format struct{}

var (
	_ format.Format     = (*Format)(nil)
	_ format.Parser     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// envelope is the enclosing record; only its metadata member is produced.
type envelope struct {
	Metadata *hub.Record `json:"metadata"`
}

// Name returns the format identifier.
func (f *Format) Name() string {
	return "invenio"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "InvenioRDM record metadata (JSON)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"json"}
}

// Filenames returns nil; records are not read from repositories.
func (f *Format) Filenames() []string {
	return nil
}

// CanParse returns true if the input looks like an InvenioRDM record.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || (peek[0] != '{' && peek[0] != '[') {
		return false
	}

	patterns := [][]byte{
		[]byte(`"metadata"`),
		[]byte(`"person_or_org"`),
		[]byte(`"publication_date"`),
		[]byte(`"resource_type"`),
		[]byte(`"related_identifiers"`),
	}

	matchCount := 0
	for _, pattern := range patterns {
		if bytes.Contains(peek, pattern) {
			matchCount++
		}
	}
	return matchCount >= 2
}

// Serialize writes records as {"metadata": ...} objects. A single record is
// written as an object, several as an array.
func (f *Format) Serialize(w io.Writer, records []*hub.Record, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}

	docs := make([]any, 0, len(records))
	for _, record := range records {
		if record == nil {
			return fmt.Errorf("serializing: nil record")
		}
		if opts.Bare {
			docs = append(docs, record)
		} else {
			docs = append(docs, envelope{Metadata: record})
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if opts.Pretty {
		encoder.SetIndent("", "  ")
	}

	if len(docs) == 1 {
		return encoder.Encode(docs[0])
	}
	return encoder.Encode(docs)
}

// Parse reads record JSON. Each record must have a metadata member, unless
// opts.Strict is false and the object is itself the metadata.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*hub.Record, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var raws []json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("parsing JSON array: %w", err)
		}
	case '{':
		raws = []json.RawMessage{data}
	default:
		return nil, fmt.Errorf("invalid JSON: expected { or [")
	}

	records := make([]*hub.Record, 0, len(raws))
	for i, raw := range raws {
		record, err := decodeRecord(raw, opts.Strict)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func decodeRecord(raw json.RawMessage, strict bool) (*hub.Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("parsing JSON object: %w", err)
	}

	body, ok := fields["metadata"]
	if !ok {
		if strict {
			return nil, fmt.Errorf("record lacks a metadata member")
		}
		body = raw
	}

	record := hub.NewRecord()
	if err := json.Unmarshal(body, record); err != nil {
		return nil, fmt.Errorf("decoding metadata: %w", err)
	}
	return record, nil
}

func init() {
	format.Register(&Format{})
}
