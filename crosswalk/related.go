package crosswalk

import (
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/iga/dedupe"
	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/value"
	"github.com/lehigh-university-libraries/iga/vocab"
)

// related accumulates related identifiers. The direction is always
// "this release <relation> the identified resource".
type related struct {
	b    *build
	list []hub.RelatedIdentifier
}

func (r *related) has(u string) bool {
	key := dedupe.URLKey(u)
	return contains(r.list, func(rel hub.RelatedIdentifier) bool {
		return rel.Scheme == hub.SchemeURL && dedupe.URLKey(rel.Identifier) == key
	})
}

// url adds a URL unless it is unusable. With skipSeen, a URL already
// present under any relation is not added again.
func (r *related) url(u, relation, resourceType, from string, skipSeen bool) {
	u = strings.TrimSpace(u)
	if u == "" {
		return
	}
	if !allowedURL(u) {
		slog.Debug("omitting URL with disallowed scheme", "source", from, "url", u)
		return
	}
	if skipSeen && r.has(u) {
		return
	}
	r.add(hub.Identifier{Identifier: u, Scheme: hub.SchemeURL}, relation, resourceType, from)
}

func (r *related) add(id hub.Identifier, relation, resourceType, from string) {
	if !r.b.vocab.Has(vocab.RelationTypes, relation) {
		slog.Warn("relation missing from vocabulary", "relation", relation, "source", from)
		return
	}
	if resourceType != "" && !r.b.vocab.Has(vocab.ResourceTypes, resourceType) {
		slog.Warn("resource type missing from vocabulary", "type", resourceType, "source", from)
		resourceType = ""
	}
	slog.Debug("adding related identifier", "source", from, "relation", relation, "id", id.Identifier)
	r.list = append(r.list, hub.NewRelatedIdentifier(id, relation, resourceType))
}

// urls returns the URL text of each item; objects contribute their url or
// @id member.
func urls(items []any) []string {
	var out []string
	for _, item := range items {
		switch val := item.(type) {
		case string:
			out = append(out, strings.TrimSpace(val))
		case map[string]any:
			if u := value.FirstText(val, "url", "@id"); isURL(u) {
				out = append(out, u)
			}
		}
	}
	return out
}

func (b *build) relatedIdentifiers() error {
	r := &related{b: b}

	r.url(b.release.HTMLURL, hub.RelationIsIdenticalTo, hub.ResourceSoftware, "release", false)

	codeRepo := firstScalar(b.machine.Get("codeRepository"), b.citation.Get("repository-code"))
	r.url(codeRepo, hub.RelationIsDerivedFrom, hub.ResourceSoftware, "code repository", false)
	if codeRepo == "" || b.includeAll {
		r.url(b.info.HTMLURL, hub.RelationIsDerivedFrom, hub.ResourceSoftware, "repository", false)
	}

	// A releaseNotes URL is not used for the descriptions.
	if notes := scalar(b.machine.Get("releaseNotes")); isURL(notes) {
		r.url(notes, hub.RelationIsDescribedBy, hub.ResourceOther, "codemeta releaseNotes", false)
	}

	homepage := firstScalar(b.machine.Get("url"), b.citation.Get("url"))
	if homepage == "" && b.includeAll {
		homepage = b.info.Homepage
	}
	r.url(homepage, hub.RelationIsDescribedBy, hub.ResourceOther, "homepage", false)

	for _, u := range urls(b.machine.List("sameAs")) {
		r.url(u, hub.RelationIsVersionOf, hub.ResourceSoftware, "codemeta sameAs", false)
	}

	downloads := b.machine.List("downloadUrl")
	if len(downloads) == 0 {
		downloads = b.citation.List("repository-artifact")
	}
	downloads = append(downloads, b.machine.List("installUrl")...)
	for _, u := range urls(downloads) {
		r.url(u, hub.RelationIsVariantFormOf, hub.ResourceSoftware, "download", false)
	}

	for _, u := range urls(b.machine.List("softwareHelp")) {
		r.url(u, hub.RelationIsDocumentedBy, hub.ResourceSoftwareDocs, "codemeta softwareHelp", true)
	}
	if b.includeAll && b.info.HasPages {
		r.url(b.info.PagesURL(), hub.RelationIsDocumentedBy, hub.ResourceSoftwareDocs, "pages", true)
	}

	issues := scalar(b.machine.Get("issueTracker"))
	if issues == "" && b.includeAll && b.info.HasIssues {
		issues = b.info.IssuesURL()
	}
	r.url(issues, hub.RelationIsSupplementedBy, hub.ResourceOther, "issues", false)

	for _, u := range urls(b.machine.List("relatedLink")) {
		r.url(u, hub.RelationReferences, hub.ResourceOther, "codemeta relatedLink", true)
	}

	for _, id := range b.publicationIDs() {
		seen := contains(r.list, func(rel hub.RelatedIdentifier) bool {
			return rel.Scheme == id.Scheme && strings.EqualFold(rel.Identifier, id.Identifier)
		})
		switch {
		case seen:
		case !b.vocab.Has(vocab.IdentifierTypes, string(id.Scheme)):
			slog.Debug("publication identifier scheme not accepted", "scheme", id.Scheme, "id", id.Identifier)
		default:
			r.add(id, hub.RelationIsReferencedBy, "", "publication")
		}
	}

	b.rec.RelatedIdentifiers = dedupe.RelatedIdentifiers(r.list)
	return nil
}
