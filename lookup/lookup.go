// Package lookup resolves ORCID and ROR identifiers to names and converts
// publication identifiers to DOIs. Results are cached for the lifetime of
// the process. Lookups never fail the caller: a missing record, a network
// failure or a malformed payload all yield empty values.
package lookup

import (
	"context"
	"strings"

	"github.com/lehigh-university-libraries/iga/hub"
)

// MaxSuccessorHops bounds how many ROR successor links a lookup follows
// when an organization record has been withdrawn.
const MaxSuccessorHops = 4

// Service resolves external identifiers.
type Service interface {
	// NameFromORCID returns the given and family names registered for an ORCID.
	NameFromORCID(ctx context.Context, id string) (given, family string)
	// NameFromROR returns the display name of a ROR organization.
	NameFromROR(ctx context.Context, id string) string
	// DOIForPublication returns the DOI of a publication identified by id.
	// An empty scheme is detected from id.
	DOIForPublication(ctx context.Context, id string, scheme hub.Scheme) string
}

// Name is a split personal name.
type Name struct {
	Given  string
	Family string
}

// Static is an in-memory Service. Keys may be given in any form the
// identifier normalizer accepts.
type Static struct {
	People map[string]Name
	Orgs   map[string]string
	DOIs   map[string]string
}

var _ Service = (*Static)(nil)

func (s *Static) NameFromORCID(_ context.Context, id string) (string, string) {
	n, _ := findKey(s.People, id, hub.SchemeORCID)
	return n.Given, n.Family
}

func (s *Static) NameFromROR(_ context.Context, id string) string {
	name, _ := findKey(s.Orgs, id, hub.SchemeROR)
	return name
}

func (s *Static) DOIForPublication(_ context.Context, id string, scheme hub.Scheme) string {
	if scheme == "" {
		scheme, _ = hub.DetectScheme(id)
	}
	switch scheme {
	case hub.SchemeDOI:
		return hub.NormalizeIdentifier(id, scheme)
	case hub.SchemeArXiv:
		if norm := hub.NormalizeIdentifier(id, scheme); norm != "" {
			return ArXivDOI(norm)
		}
		return ""
	}
	doi, _ := findKey(s.DOIs, id, scheme)
	return doi
}

func findKey[V any](m map[string]V, id string, scheme hub.Scheme) (V, bool) {
	want := canonical(id, scheme)
	for k, v := range m {
		if canonical(k, scheme) == want {
			return v, true
		}
	}
	var zero V
	return zero, false
}

func canonical(id string, scheme hub.Scheme) string {
	if n := hub.NormalizeIdentifier(id, scheme); n != "" {
		return strings.ToLower(n)
	}
	return strings.ToLower(strings.TrimSpace(id))
}
