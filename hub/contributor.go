package hub

import (
	"strings"
)

// Entity kinds used in PersonOrOrg.Type.
const (
	Personal       = "personal"
	Organizational = "organizational"
)

// PersonOrOrg is either a person with decomposed names or an organization.
type PersonOrOrg struct {
	Type        string       `json:"type"`
	GivenName   string       `json:"given_name,omitempty"`
	FamilyName  string       `json:"family_name,omitempty"`
	Name        string       `json:"name,omitempty"`
	Identifiers []Identifier `json:"identifiers,omitempty"`
}

// Affiliation is an organization a person belongs to.
type Affiliation struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// RoleAssignment is one entry of a creators or contributors list.
type RoleAssignment struct {
	PersonOrOrg  PersonOrOrg   `json:"person_or_org"`
	Role         *VocabID      `json:"role,omitempty"`
	Affiliations []Affiliation `json:"affiliations,omitempty"`
}

// NewPerson builds a person entity. A person must have a family name.
func NewPerson(given, family string, ids ...Identifier) (PersonOrOrg, bool) {
	given = strings.TrimSpace(given)
	family = strings.TrimSpace(family)
	if family == "" {
		return PersonOrOrg{}, false
	}
	return PersonOrOrg{
		Type:        Personal,
		GivenName:   given,
		FamilyName:  family,
		Identifiers: ids,
	}, true
}

// NewOrganization builds an organization entity. It must have a name.
func NewOrganization(name string, ids ...Identifier) (PersonOrOrg, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return PersonOrOrg{}, false
	}
	return PersonOrOrg{
		Type:        Organizational,
		Name:        name,
		Identifiers: ids,
	}, true
}

// IsPerson reports whether p is a personal entity.
func (p PersonOrOrg) IsPerson() bool {
	return p.Type == Personal
}

// IdentifierOf returns the first identifier with the given scheme, or "".
func (p PersonOrOrg) IdentifierOf(scheme Scheme) string {
	for _, id := range p.Identifiers {
		if id.Scheme == scheme {
			return id.Identifier
		}
	}
	return ""
}

// ORCID returns the person's ORCID, or "".
func (p PersonOrOrg) ORCID() string {
	return p.IdentifierOf(SchemeORCID)
}

// WithRole returns an assignment of r with the given role id. An empty role
// leaves the role unset.
func (r RoleAssignment) WithRole(role string) RoleAssignment {
	if role == "" {
		r.Role = nil
		return r
	}
	r.Role = &VocabID{ID: role}
	return r
}

// RoleID returns the role id or "".
func (r RoleAssignment) RoleID() string {
	if r.Role == nil {
		return ""
	}
	return r.Role.ID
}

// DisplayName returns the best available display name for the entity.
func DisplayName(p PersonOrOrg) string {
	if !p.IsPerson() {
		return p.Name
	}
	return DirectName(p)
}

// InvertedName returns the name in "Family, Given" format if possible.
func InvertedName(p PersonOrOrg) string {
	if !p.IsPerson() {
		return p.Name
	}
	result := p.FamilyName
	if p.GivenName != "" {
		result += ", " + p.GivenName
	}
	return result
}

// DirectName returns the name in "Given Family" format if possible.
func DirectName(p PersonOrOrg) string {
	if !p.IsPerson() {
		return p.Name
	}
	var parts []string
	if p.GivenName != "" {
		parts = append(parts, p.GivenName)
	}
	if p.FamilyName != "" {
		parts = append(parts, p.FamilyName)
	}
	return strings.Join(parts, " ")
}
