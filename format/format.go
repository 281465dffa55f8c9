// Package format defines the interface for metadata format plugins.
//
// Source formats (CodeMeta, CFF) parse a repository file into a
// source.Document for the crosswalk. Record formats (InvenioRDM) read and
// write finished hub.Record values.
package format

import (
	"io"

	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/source"
)

// Format defines the interface that all format plugins must implement.
type Format interface {
	// Name returns the format identifier (e.g., "codemeta", "cff", "invenio")
	Name() string

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string

	// Filenames returns conventional file names for this format in a repository
	Filenames() []string

	// CanParse returns true if this format can parse the given input
	CanParse(peek []byte) bool
}

// SourceParser is a format that reads a repository metadata file.
type SourceParser interface {
	Format

	// ParseSource reads input and returns the parsed document.
	ParseSource(r io.Reader, opts *ParseOptions) (*source.Document, error)
}

// Parser is a format that can parse input into records.
type Parser interface {
	Format

	// Parse reads input and returns records.
	Parse(r io.Reader, opts *ParseOptions) ([]*hub.Record, error)
}

// Serializer is a format that can write records to output.
type Serializer interface {
	Format

	// Serialize writes records to the output.
	Serialize(w io.Writer, records []*hub.Record, opts *SerializeOptions) error
}

// ParseOptions contains options for parsing.
type ParseOptions struct {
	// SourceName is an identifier for the source (for error messages)
	SourceName string

	// Strict fails on damaged input instead of repairing it
	Strict bool
}

// SerializeOptions contains options for serialization.
type SerializeOptions struct {
	// Pretty enables pretty-printing
	Pretty bool

	// Bare writes the metadata object without its enclosing record
	Bare bool
}

// NewParseOptions creates ParseOptions with defaults.
func NewParseOptions() *ParseOptions {
	return &ParseOptions{}
}

// NewSerializeOptions creates SerializeOptions with defaults.
func NewSerializeOptions() *SerializeOptions {
	return &SerializeOptions{
		Pretty: true,
	}
}
