// Package dedupe removes duplicates that appear when several sources
// describe the same people, descriptions or links. Matching is
// conservative: an occasional duplicate is preferred over merging two
// different things. Every function keeps the first occurrence and the
// original order.
package dedupe

import (
	"reflect"
	"strings"

	"golang.org/x/text/cases"

	"github.com/lehigh-university-libraries/iga/hub"
)

// Match reports whether two entities are the same person or organization.
// Two ORCIDs decide on their own; otherwise two organization names must be
// equal, or two people must share family and given names. Entities with
// none of these fall back to full equality.
func Match(a, b hub.PersonOrOrg) bool {
	if oa, ob := a.ORCID(), b.ORCID(); oa != "" && ob != "" {
		return oa == ob
	}
	switch {
	case a.Name != "" && b.Name != "":
		return a.Name == b.Name
	case a.FamilyName != "" && b.FamilyName != "":
		return a.FamilyName == b.FamilyName && a.GivenName == b.GivenName
	}
	return reflect.DeepEqual(a, b)
}

// Entities removes entities that Match an earlier one.
func Entities(list []hub.PersonOrOrg) []hub.PersonOrOrg {
	var out []hub.PersonOrOrg
	for _, e := range list {
		if !containsFunc(out, func(seen hub.PersonOrOrg) bool { return Match(seen, e) }) {
			out = append(out, e)
		}
	}
	return out
}

// RoleAssignments removes assignments whose entity and role match an
// earlier one.
func RoleAssignments(list []hub.RoleAssignment) []hub.RoleAssignment {
	var out []hub.RoleAssignment
	for _, ra := range list {
		dup := containsFunc(out, func(seen hub.RoleAssignment) bool {
			return seen.RoleID() == ra.RoleID() && Match(seen.PersonOrOrg, ra.PersonOrOrg)
		})
		if !dup {
			out = append(out, ra)
		}
	}
	return out
}

// Values removes repeated values.
func Values[T comparable](list []T) []T {
	seen := make(map[T]bool, len(list))
	var out []T
	for _, v := range list {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Strings removes blank and repeated strings after trimming.
func Strings(list []string) []string {
	var trimmed []string
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			trimmed = append(trimmed, s)
		}
	}
	return Values(trimmed)
}

// Fold removes strings that are equal under Unicode case folding, keeping
// the first spelling.
func Fold(list []string) []string {
	folder := cases.Fold()
	seen := make(map[string]bool, len(list))
	var out []string
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := folder.String(s)
		if !seen[key] {
			seen[key] = true
			out = append(out, s)
		}
	}
	return out
}

// URLKey reduces a URL to a comparison key that ignores the scheme, a
// leading "www." and a trailing slash.
func URLKey(u string) string {
	u = strings.TrimSpace(u)
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	u = strings.TrimPrefix(strings.ToLower(u[:hostEnd(u)]), "www.") + u[hostEnd(u):]
	return strings.TrimRight(u, "/")
}

func hostEnd(u string) int {
	if i := strings.IndexAny(u, "/?#"); i >= 0 {
		return i
	}
	return len(u)
}

// URLs removes URLs whose URLKey matches an earlier one.
func URLs(list []string) []string {
	seen := make(map[string]bool, len(list))
	var out []string
	for _, u := range list {
		key := URLKey(u)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(u))
	}
	return out
}

// RelatedIdentifiers removes related identifiers that repeat an earlier
// identifier with the same relation. URLs compare by URLKey.
func RelatedIdentifiers(list []hub.RelatedIdentifier) []hub.RelatedIdentifier {
	seen := make(map[string]bool, len(list))
	var out []hub.RelatedIdentifier
	for _, rel := range list {
		id := rel.Identifier
		if rel.Scheme == hub.SchemeURL {
			id = URLKey(id)
		}
		key := string(rel.Scheme) + "\x00" + id + "\x00" + rel.RelationType.ID
		if !seen[key] {
			seen[key] = true
			out = append(out, rel)
		}
	}
	return out
}

func containsFunc[T any](list []T, match func(T) bool) bool {
	for _, v := range list {
		if match(v) {
			return true
		}
	}
	return false
}
