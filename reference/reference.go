// Package reference formats publication identifiers as citation text using
// DOI content negotiation.
package reference

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/lehigh-university-libraries/iga/helpers"
	"github.com/lehigh-university-libraries/iga/httpclient"
	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/lookup"
)

const (
	// DefaultResolver is the DOI resolver queried for citations.
	DefaultResolver = "https://doi.org"

	// DefaultStyle is the CSL style requested from the resolver.
	DefaultStyle = "apa"
)

// Schemes lists the identifier schemes a Formatter accepts.
var Schemes = []hub.Scheme{hub.SchemeArXiv, hub.SchemeDOI, hub.SchemeISBN, hub.SchemePMCID, hub.SchemePMID}

// Formatter turns publication identifiers into formatted references.
type Formatter struct {
	lookup   lookup.Service
	client   *httpclient.Client
	resolver string
	style    string
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithLookup sets the service used to convert non-DOI identifiers.
func WithLookup(s lookup.Service) Option {
	return func(f *Formatter) {
		f.lookup = s
	}
}

// WithClient sets the HTTP client.
func WithClient(c *httpclient.Client) Option {
	return func(f *Formatter) {
		f.client = c
	}
}

// WithResolver sets the DOI resolver base URL.
func WithResolver(u string) Option {
	return func(f *Formatter) {
		if u != "" {
			f.resolver = strings.TrimSuffix(u, "/")
		}
	}
}

// WithStyle sets the citation style name.
func WithStyle(style string) Option {
	return func(f *Formatter) {
		if style != "" {
			f.style = style
		}
	}
}

// NewFormatter creates a Formatter.
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		client:   httpclient.New(httpclient.WithHeader("User-Agent", "iga")),
		resolver: DefaultResolver,
		style:    DefaultStyle,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.lookup == nil {
		f.lookup = lookup.Default()
	}
	return f
}

// Identify returns the scheme and normalized form of a publication id, or
// false when the id is not in one of Schemes.
func Identify(pubID string) (hub.Identifier, bool) {
	id, ok := hub.NewIdentifier(pubID)
	if !ok {
		return hub.Identifier{}, false
	}
	for _, s := range Schemes {
		if id.Scheme == s {
			return id, true
		}
	}
	return hub.Identifier{}, false
}

// Reference returns the formatted citation for pubID. Unrecognized ids,
// ISBNs, ids without a DOI and failed lookups yield "". Only a response that
// is not text is an error.
func (f *Formatter) Reference(ctx context.Context, pubID string) (string, error) {
	id, ok := Identify(pubID)
	if !ok {
		slog.Debug("not a publication identifier", "id", pubID)
		return "", nil
	}
	if id.Scheme == hub.SchemeISBN {
		slog.Debug("cannot format ISBN references", "isbn", id.Identifier)
		return "", nil
	}

	doi := f.lookup.DOIForPublication(ctx, id.Identifier, id.Scheme)
	if doi == "" {
		slog.Debug("no DOI for publication", "id", id.Identifier, "scheme", id.Scheme)
		return "", nil
	}

	text, err := f.format(ctx, doi)
	switch {
	case err == nil:
		return text, nil
	case errors.Is(err, hub.ErrInternal):
		return "", err
	default:
		slog.Warn("unable to format reference", "doi", doi, "error", err)
		return "", nil
	}
}

func (f *Formatter) format(ctx context.Context, doi string) (string, error) {
	var text string
	err := f.client.Cached(ctx, "reference:"+f.style+":"+strings.ToLower(doi), &text, func() error {
		data, err := f.client.GetBytes(ctx, f.resolver+"/"+doi, map[string]string{
			"Accept": "text/x-bibliography; style=" + f.style,
		})
		if errors.Is(err, httpclient.ErrNotFound) {
			text = ""
			return nil
		}
		if err != nil {
			return err
		}
		if !utf8.Valid(data) {
			return &hub.InternalError{Op: "decode reference for " + doi, Err: errors.New("response is not UTF-8 text")}
		}
		text = strings.TrimSpace(helpers.StripHTML(string(data)))
		return nil
	})
	return text, err
}
