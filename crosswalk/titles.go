package crosswalk

import (
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/lehigh-university-libraries/iga/helpers"
	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/vocab"
)

const titleSeparator = " – "

// baseTitle is the software name without the release part.
func (b *build) baseTitle() string {
	if name := scalar(b.machine.Get("name")); name != "" {
		return name
	}
	if title := scalar(b.citation.Get("title")); title != "" {
		return title
	}
	return b.info.FullName
}

func (b *build) title() error {
	title := b.baseTitle()
	release := strings.TrimSpace(b.release.Name)
	if release == "" {
		release = strings.TrimSpace(b.release.Tag)
	}
	if release != "" {
		title += titleSeparator + release
	}
	b.rec.Title = helpers.NormalizeWhitespace(title)
	return nil
}

func (b *build) additionalTitles() error {
	name := scalar(b.machine.Get("name"))
	citationTitle := scalar(b.citation.Get("title"))
	base := b.baseTitle()

	var candidates []string
	if name != "" && citationTitle != "" {
		candidates = append(candidates, citationTitle)
	}
	if (name != "" || citationTitle != "") && b.includeAll {
		candidates = append(candidates, b.info.FullName)
	}

	titleType := b.checkedTerm(vocab.TitleTypes, "alternative-title", "other")
	folder := cases.Fold()
	seen := map[string]bool{folder.String(base): true}
	for _, c := range candidates {
		c = helpers.NormalizeWhitespace(c)
		key := folder.String(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		slog.Debug("adding alternative title", "title", c)
		b.rec.AdditionalTitles = append(b.rec.AdditionalTitles, hub.Title{
			Title: c,
			Type:  hub.VocabID{ID: titleType},
			Lang:  &hub.VocabID{ID: "eng"},
		})
	}
	return nil
}

var versionPrefix = regexp.MustCompile(`(?i)^v(?:ersion|er)?[ .]?(\d.*)$`)

// Version strips a leading "v", "ver" or "version" from a release tag when
// a digit follows it.
func Version(tag string) string {
	tag = strings.TrimSpace(tag)
	if m := versionPrefix.FindStringSubmatch(tag); m != nil {
		return strings.TrimSpace(m[1])
	}
	return tag
}

func (b *build) version() error {
	declared := firstScalar(
		b.machine.Get("version"),
		b.machine.Get("softwareVersion"),
		b.citation.Get("version"),
	)
	if v := Version(b.release.Tag); v != "" {
		b.rec.Version = v
		return nil
	}
	b.rec.Version = Version(declared)
	return nil
}
