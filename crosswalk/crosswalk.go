// Package crosswalk builds an InvenioRDM metadata record for a software
// release from its CodeMeta file, its CITATION.cff file and the platform's
// repository and release data.
//
// Each destination field has a fixed list of candidate sources in priority
// order. Scalar fields take the first usable value; list fields merge
// sources and are deduplicated. Fields are produced in the order given by
// Fields, and the result depends only on the inputs, so building the same
// bundle twice yields identical records.
package crosswalk

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/iga/entity"
	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/reference"
	"github.com/lehigh-university-libraries/iga/source"
	"github.com/lehigh-university-libraries/iga/vocab"
)

// DefaultPublisher is the publisher recorded when none is configured.
const DefaultPublisher = "CaltechDATA"

// ProviderPolicy says what to do with a CodeMeta "provider".
type ProviderPolicy string

const (
	// ProviderIgnore leaves providers out of the record.
	ProviderIgnore ProviderPolicy = "ignore"
	// ProviderContributor lists providers as hosting institutions.
	ProviderContributor ProviderPolicy = "contributor"
)

// ParseProviderPolicy reads a policy name. The empty string means ignore.
func ParseProviderPolicy(s string) (ProviderPolicy, error) {
	switch p := ProviderPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", ProviderIgnore:
		return ProviderIgnore, nil
	case ProviderContributor:
		return p, nil
	default:
		return "", fmt.Errorf("unknown provider policy %q (want %q or %q)", s, ProviderIgnore, ProviderContributor)
	}
}

// Referencer formats a publication identifier as citation text.
type Referencer interface {
	Reference(ctx context.Context, pubID string) (string, error)
}

// Options configures a Crosswalk. Zero values select defaults.
type Options struct {
	// IncludeAll merges less curated platform data into list fields even
	// when CodeMeta or CFF supplied values. It is forced on for releases
	// that have neither file.
	IncludeAll bool

	// ProviderPolicy controls CodeMeta "provider" handling.
	ProviderPolicy ProviderPolicy

	// Publisher is recorded in the publisher field.
	Publisher string

	// Now supplies the publication date of an unpublished release.
	Now func() time.Time

	// Resolver converts people and organizations. Defaults to
	// entity.NewResolver with the bundle's account fetcher.
	Resolver *entity.Resolver

	// Vocabulary validates controlled terms. Defaults to the embedded
	// vocabularies.
	Vocabulary vocab.Provider

	// References formats related publications. Defaults to a
	// reference.Formatter.
	References Referencer
}

// Crosswalk builds records.
type Crosswalk struct {
	opts Options
}

// New creates a Crosswalk.
func New(opts Options) (*Crosswalk, error) {
	if opts.ProviderPolicy == "" {
		opts.ProviderPolicy = ProviderIgnore
	}
	if opts.Publisher == "" {
		opts.Publisher = DefaultPublisher
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Vocabulary == nil {
		v, err := vocab.Default()
		if err != nil {
			return nil, err
		}
		opts.Vocabulary = v
	}
	if opts.References == nil {
		opts.References = reference.NewFormatter()
	}
	return &Crosswalk{opts: opts}, nil
}

// Fields lists the destination fields in the order they are produced.
var Fields = []string{
	"additional_descriptions",
	"additional_titles",
	"contributors",
	"creators",
	"dates",
	"description",
	"formats",
	"funding",
	"identifiers",
	"languages",
	"locations",
	"publication_date",
	"publisher",
	"references",
	"related_identifiers",
	"resource_type",
	"rights",
	"subjects",
	"title",
	"version",
}

var fieldBuilders = map[string]func(*build) error{
	"additional_descriptions": (*build).additionalDescriptions,
	"additional_titles":       (*build).additionalTitles,
	"contributors":            (*build).contributors,
	"creators":                (*build).creators,
	"dates":                   (*build).dates,
	"description":             (*build).description,
	"formats":                 (*build).formats,
	"funding":                 (*build).funding,
	"identifiers":             (*build).identifiers,
	"languages":               (*build).languages,
	"locations":               (*build).locations,
	"publication_date":        (*build).publicationDate,
	"publisher":               (*build).publisher,
	"references":              (*build).references,
	"related_identifiers":     (*build).relatedIdentifiers,
	"resource_type":           (*build).resourceType,
	"rights":                  (*build).rights,
	"subjects":                (*build).subjects,
	"title":                   (*build).title,
	"version":                 (*build).version,
}

// Build produces the metadata record for a bundle. The only fatal
// conditions are a record without creators (hub.MissingDataError) and an
// internal error from a collaborator.
func (c *Crosswalk) Build(ctx context.Context, bundle *source.Bundle) (*hub.Record, error) {
	if bundle == nil {
		bundle = &source.Bundle{}
	}
	b := c.newBuild(ctx, bundle)

	for _, name := range Fields {
		slog.Debug("constructing field", "field", name)
		if err := fieldBuilders[name](b); err != nil {
			return nil, fmt.Errorf("building %s: %w", name, err)
		}
	}
	b.recordUnmapped()
	return b.rec, nil
}

func (c *Crosswalk) newBuild(ctx context.Context, bundle *source.Bundle) *build {
	b := &build{
		ctx:        ctx,
		opts:       c.opts,
		vocab:      c.opts.Vocabulary,
		refs:       c.opts.References,
		bundle:     bundle,
		machine:    bundle.Machine,
		citation:   bundle.Citation,
		release:    bundle.Release,
		rec:        hub.NewRecord(),
		includeAll: c.opts.IncludeAll || !bundle.HasMetadata(),
	}
	if b.release == nil {
		b.release = &source.Release{}
	}
	if bundle.Repo != nil {
		b.info = bundle.Repo.Info()
	}
	b.resolver = c.opts.Resolver
	if b.resolver == nil {
		b.resolver = entity.NewResolver(entity.WithAccounts(bundle.Accounts))
	}
	if b.includeAll && !c.opts.IncludeAll {
		slog.Debug("no CodeMeta or CFF metadata; using all platform data")
	}
	return b
}
