package lookup

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/lehigh-university-libraries/iga/helpers"
	"github.com/lehigh-university-libraries/iga/httpclient"
)

// Endpoints are the registry base URLs.
type Endpoints struct {
	// ORCID is the public API base; the person record is {ORCID}/{id}/person.
	ORCID string
	// ORCIDPublic is the website base; the fallback is {ORCIDPublic}/{id}/public-record.json.
	ORCIDPublic string
	// ROR is the organizations endpoint; records are {ROR}/{id}.
	ROR string
	// IDConv is the NCBI id converter, including its query string.
	IDConv string
}

// DefaultEndpoints returns the production registry URLs.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		ORCID:       "https://pub.orcid.org/v3.0",
		ORCIDPublic: "https://orcid.org",
		ROR:         "https://api.ror.org/organizations",
		IDConv:      "https://www.ncbi.nlm.nih.gov/pmc/utils/idconv/v1.0/?format=json",
	}
}

// SplitFunc splits a full personal name into given and family parts.
type SplitFunc func(name string) (given, family string)

// Registry is the network-backed Service.
type Registry struct {
	client    *httpclient.Client
	endpoints Endpoints
	split     SplitFunc
}

var _ Service = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry)

// WithClient sets the HTTP client.
func WithClient(c *httpclient.Client) Option {
	return func(r *Registry) {
		r.client = c
	}
}

// WithEndpoints overrides the registry URLs. Empty fields keep their defaults.
func WithEndpoints(e Endpoints) Option {
	return func(r *Registry) {
		if e.ORCID != "" {
			r.endpoints.ORCID = strings.TrimSuffix(e.ORCID, "/")
		}
		if e.ORCIDPublic != "" {
			r.endpoints.ORCIDPublic = strings.TrimSuffix(e.ORCIDPublic, "/")
		}
		if e.ROR != "" {
			r.endpoints.ROR = strings.TrimSuffix(e.ROR, "/")
		}
		if e.IDConv != "" {
			r.endpoints.IDConv = e.IDConv
		}
	}
}

// WithSplitter sets the function used to split undifferentiated names
// found in ORCID records.
func WithSplitter(fn SplitFunc) Option {
	return func(r *Registry) {
		r.split = fn
	}
}

// NewRegistry creates a Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		client:    httpclient.New(httpclient.WithHeader("User-Agent", "iga")),
		endpoints: DefaultEndpoints(),
		split:     heuristicSplit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide Registry, creating it on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

func heuristicSplit(name string) (string, string) {
	p := helpers.ParseName(name)
	if p == nil {
		return "", ""
	}
	given := strings.TrimSpace(p.Given + " " + p.Middle)
	return given, p.Family
}

// soft logs a failed lookup. Not-found is expected and logged at debug.
func soft(kind, id string, err error) {
	switch {
	case errors.Is(err, httpclient.ErrNotFound):
		slog.Debug("no registry record", "registry", kind, "id", id)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slog.Debug("registry lookup cancelled", "registry", kind, "id", id)
	default:
		slog.Warn("registry lookup failed", "registry", kind, "id", id, "error", err)
	}
}
