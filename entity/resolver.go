// Package entity turns the loosely structured people and organizations
// found in CodeMeta, CFF and platform accounts into hub.PersonOrOrg values.
package entity

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/lookup"
	"github.com/lehigh-university-libraries/iga/source"
	"github.com/lehigh-university-libraries/iga/value"
)

// CodeMetaEntity is a schema.org Person or Organization from codemeta.json.
type CodeMetaEntity map[string]any

// CitationEntity is a person or entity object from CITATION.cff.
type CitationEntity map[string]any

// Identifier schemes attached to people.
var personSchemes = map[hub.Scheme]bool{
	hub.SchemeORCID: true,
	hub.SchemeISNI:  true,
	hub.SchemeGND:   true,
}

// Identifier schemes attached to organizations.
var orgSchemes = map[hub.Scheme]bool{
	hub.SchemeROR:  true,
	hub.SchemeISNI: true,
	hub.SchemeGND:  true,
}

var rorScheme = map[hub.Scheme]bool{hub.SchemeROR: true}

// Resolver converts source values into role assignments.
type Resolver struct {
	lookup     lookup.Service
	classifier *Classifier
	splitter   *Splitter
	accounts   source.AccountFetcher
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookup sets the identity lookup service.
func WithLookup(s lookup.Service) Option {
	return func(r *Resolver) {
		r.lookup = s
	}
}

// WithClassifier sets the person/organization classifier.
func WithClassifier(c *Classifier) Option {
	return func(r *Resolver) {
		r.classifier = c
	}
}

// WithSplitter sets the name splitter.
func WithSplitter(s *Splitter) Option {
	return func(r *Resolver) {
		r.splitter = s
	}
}

// WithAccounts enables resolving platform account handles.
func WithAccounts(f source.AccountFetcher) Option {
	return func(r *Resolver) {
		r.accounts = f
	}
}

// NewResolver creates a Resolver. Without WithLookup it uses lookup.Default.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	if r.classifier == nil {
		r.classifier = NewClassifier()
	}
	if r.splitter == nil {
		r.splitter = NewSplitter()
	}
	if r.lookup == nil {
		r.lookup = lookup.Default()
	}
	return r
}

// Splitter returns the resolver's name splitter.
func (r *Resolver) Splitter() *Splitter {
	return r.splitter
}

// Resolve converts v into a role assignment with the given role, which may
// be empty. v may be a string, a CodeMetaEntity, a CitationEntity, a plain
// map, or a source.Account. It reports false when v yields no valid person
// or organization.
func (r *Resolver) Resolve(ctx context.Context, v any, role string) (hub.RoleAssignment, bool) {
	var (
		ra hub.RoleAssignment
		ok bool
	)
	switch val := v.(type) {
	case string:
		ra, ok = r.fromString(ctx, val)
	case CodeMetaEntity:
		ra, ok = r.fromCodeMeta(ctx, val)
	case CitationEntity:
		ra, ok = r.fromCitation(ctx, val)
	case map[string]any:
		if _, typed := val["@type"]; typed {
			ra, ok = r.fromCodeMeta(ctx, val)
		} else {
			ra, ok = r.fromCitation(ctx, val)
		}
	case source.Account:
		ra, ok = r.FromAccount(ctx, val)
	case *source.Account:
		if val != nil {
			ra, ok = r.FromAccount(ctx, *val)
		}
	default:
		slog.Debug("entity value is neither text nor an object", "value", v)
	}
	if !ok {
		return hub.RoleAssignment{}, false
	}
	return ra.WithRole(role), true
}

// ResolveAll resolves a single value or a list of values, skipping
// anything that does not resolve.
func (r *Resolver) ResolveAll(ctx context.Context, v any, role string) []hub.RoleAssignment {
	var out []hub.RoleAssignment
	for _, item := range value.Listify(v) {
		if ra, ok := r.Resolve(ctx, item, role); ok {
			out = append(out, ra)
		}
	}
	return out
}

// fromString tries, in order: an ORCID, a ROR id, a platform account and
// finally a classified name.
func (r *Resolver) fromString(ctx context.Context, text string) (hub.RoleAssignment, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return hub.RoleAssignment{}, false
	}

	if id, ok := hub.NewIdentifier(text); ok {
		switch id.Scheme {
		case hub.SchemeORCID:
			return r.personFromORCID(ctx, id)
		case hub.SchemeROR:
			name := r.lookup.NameFromROR(ctx, id.Identifier)
			org, ok := hub.NewOrganization(name, id)
			return hub.RoleAssignment{PersonOrOrg: org}, ok
		}
	}

	if login := r.accountHandle(text); login != "" {
		if acct, err := r.accounts.Account(ctx, login); err == nil && acct != nil {
			return r.FromAccount(ctx, *acct)
		}
		slog.Debug("text is not a platform account", "text", text)
	}

	if r.classifier.IsPerson(text) {
		given, family := r.splitter.Split(text)
		p, ok := newPerson(given, family)
		if !ok {
			slog.Debug("name classified as a person could not be split", "name", text)
		}
		return hub.RoleAssignment{PersonOrOrg: p}, ok
	}
	org, ok := hub.NewOrganization(text)
	return hub.RoleAssignment{PersonOrOrg: org}, ok
}

func (r *Resolver) personFromORCID(ctx context.Context, id hub.Identifier) (hub.RoleAssignment, bool) {
	given, family := r.lookup.NameFromORCID(ctx, id.Identifier)
	p, ok := newPerson(given, family, id)
	return hub.RoleAssignment{PersonOrOrg: p}, ok
}

var (
	accountURLRegex = regexp.MustCompile(`^https?://(?:www\.)?github\.com/([A-Za-z0-9](?:[A-Za-z0-9-]{0,38}))/?$`)
	loginRegex      = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})$`)
)

func (r *Resolver) accountHandle(text string) string {
	if r.accounts == nil {
		return ""
	}
	if m := accountURLRegex.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if loginRegex.MatchString(text) {
		return text
	}
	return ""
}

func (r *Resolver) fromCodeMeta(ctx context.Context, m map[string]any) (hub.RoleAssignment, bool) {
	kind := strings.ToLower(value.FirstText(m, "@type", "type"))
	switch {
	case kind == "person", kind == "schema:person":
		return r.personFromMap(ctx, m)
	case kind == "" && value.First(m, "familyName", "givenName") != nil:
		return r.personFromMap(ctx, m)
	}
	return r.orgFromMap(ctx, m)
}

func (r *Resolver) fromCitation(ctx context.Context, m map[string]any) (hub.RoleAssignment, bool) {
	if strings.EqualFold(value.FirstText(m, "type", "@type"), "person") ||
		value.First(m, "family-names", "given-names", "familyName", "givenName") != nil {
		return r.personFromMap(ctx, m)
	}
	return r.orgFromMap(ctx, m)
}

// personFromMap reads either naming convention, then falls back to an
// ORCID lookup and finally to splitting a combined name.
func (r *Resolver) personFromMap(ctx context.Context, m map[string]any) (hub.RoleAssignment, bool) {
	family := value.FirstText(m, "family-names", "familyName")
	given := value.FirstText(m, "given-names", "givenName")
	if family != "" {
		if particle := value.FirstText(m, "name-particle"); particle != "" {
			family = particle + " " + family
		}
	}

	id, hasID := entityIdentifier(m, personSchemes, "@id", "orcid", "identifier")
	if family == "" && given == "" && hasID && id.Scheme == hub.SchemeORCID {
		slog.Debug("person has no name fields; asking ORCID", "orcid", id.Identifier)
		given, family = r.lookup.NameFromORCID(ctx, id.Identifier)
	}

	name := flattenedName(m["name"])
	if family == "" && given == "" && name != "" {
		given, family = r.splitter.Split(name)
	}
	if family == "" && given == "" {
		family = name
	}

	var ids []hub.Identifier
	if hasID {
		ids = append(ids, id)
	}
	p, ok := newPerson(given, family, ids...)
	if !ok {
		return hub.RoleAssignment{}, false
	}
	return hub.RoleAssignment{
		PersonOrOrg:  p,
		Affiliations: r.Affiliations(ctx, m["affiliation"]),
	}, true
}

func (r *Resolver) orgFromMap(ctx context.Context, m map[string]any) (hub.RoleAssignment, bool) {
	aff := r.Organization(ctx, m, "@id", "identifier", "ror")
	var ids []hub.Identifier
	if aff.ID != "" {
		ids = append(ids, hub.Identifier{Identifier: aff.ID, Scheme: hub.SchemeROR})
	} else if id, ok := entityIdentifier(m, orgSchemes, "@id", "identifier"); ok {
		ids = append(ids, id)
	}
	org, ok := hub.NewOrganization(aff.Name, ids...)
	return hub.RoleAssignment{PersonOrOrg: org}, ok
}

// Organization reads an organization's name, preferring legalName, and its
// ROR id from the given keys. A ROR id without a name is looked up.
func (r *Resolver) Organization(ctx context.Context, m map[string]any, idKeys ...string) hub.Affiliation {
	var aff hub.Affiliation
	if id, ok := entityIdentifier(m, rorScheme, idKeys...); ok {
		aff.ID = id.Identifier
	}
	aff.Name = flattenedName(value.First(m, "legalName", "name"))
	if aff.Name == "" && aff.ID != "" {
		aff.Name = r.lookup.NameFromROR(ctx, aff.ID)
	}
	return aff
}

// Affiliations parses an affiliation value: text, an organization object,
// or a list of either.
func (r *Resolver) Affiliations(ctx context.Context, v any) []hub.Affiliation {
	var out []hub.Affiliation
	for _, item := range value.Listify(v) {
		switch val := item.(type) {
		case string:
			if name := strings.TrimSpace(val); name != "" {
				out = append(out, hub.Affiliation{Name: name})
			}
		case map[string]any:
			if aff := r.Organization(ctx, val, "@id", "identifier", "ror"); aff.ID != "" || aff.Name != "" {
				out = append(out, aff)
			}
		}
	}
	return out
}

var companyHandleRegex = regexp.MustCompile(`\w[\w-]*`)

// FromAccount converts a platform account. A user without a display name
// is identified by login alone; a company written as @login is replaced by
// that organization's name when it can be fetched.
func (r *Resolver) FromAccount(ctx context.Context, acct source.Account) (hub.RoleAssignment, bool) {
	var ra hub.RoleAssignment
	if !acct.IsUser() {
		name := strings.TrimSpace(acct.Name)
		if name == "" {
			name = acct.Login
		}
		org, ok := hub.NewOrganization(name)
		ra.PersonOrOrg = org
		return ra, ok
	}

	var p hub.PersonOrOrg
	var ok bool
	if name := strings.TrimSpace(acct.Name); name != "" {
		given, family := r.splitter.Split(name)
		p, ok = newPerson(given, family)
	}
	if !ok {
		p, ok = hub.NewPerson("", acct.Login)
	}
	if !ok {
		return ra, false
	}
	ra.PersonOrOrg = p

	company := strings.TrimSpace(acct.Company)
	if company == "" {
		return ra, true
	}
	if strings.HasPrefix(company, "@") {
		company = r.companyName(ctx, company)
	}
	ra.Affiliations = []hub.Affiliation{{Name: company}}
	return ra, true
}

func (r *Resolver) companyName(ctx context.Context, company string) string {
	handle := companyHandleRegex.FindString(company)
	if handle == "" || r.accounts == nil {
		return company
	}
	org, err := r.accounts.Account(ctx, handle)
	if err != nil || org == nil {
		slog.Debug("company handle is not an account", "company", company, "error", err)
		return company
	}
	if name := strings.TrimSpace(org.Name); name != "" {
		return name
	}
	return org.Login
}

// newPerson builds a person, moving a lone given name into the family
// slot so the person stays valid.
func newPerson(given, family string, ids ...hub.Identifier) (hub.PersonOrOrg, bool) {
	if strings.TrimSpace(family) == "" {
		given, family = "", given
	}
	return hub.NewPerson(given, family, ids...)
}

// entityIdentifier returns the first identifier under keys whose scheme is
// in schemes. CodeMeta may give identifiers as PropertyValue objects or lists.
func entityIdentifier(m map[string]any, schemes map[hub.Scheme]bool, keys ...string) (hub.Identifier, bool) {
	for _, k := range keys {
		for _, item := range value.Listify(m[k]) {
			var text string
			switch val := item.(type) {
			case string:
				text = val
			case map[string]any:
				text = value.FirstText(val, "@id", "value", "url")
			}
			if id, ok := hub.NewIdentifier(text); ok && schemes[id.Scheme] {
				return id, true
			}
		}
	}
	return hub.Identifier{}, false
}

// flattenedName joins a list-valued name with spaces.
func flattenedName(v any) string {
	if list, ok := v.([]any); ok {
		var parts []string
		for _, p := range list {
			if s := strings.TrimSpace(value.Text(p)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	}
	if _, isMap := v.(map[string]any); isMap {
		return ""
	}
	return strings.TrimSpace(value.Text(v))
}
