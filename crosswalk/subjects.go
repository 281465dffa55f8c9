package crosswalk

import (
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/lehigh-university-libraries/iga/dedupe"
	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/value"
)

// Subjects added to every record.
var alwaysSubjects = []string{"GitHub", "IGA"}

// SplitKeywords splits a single keywords string on semicolons, else on
// commas, else on whitespace. Semicolons come first so terms containing
// commas survive.
func SplitKeywords(s string) []string {
	switch {
	case strings.Contains(s, ";"):
		return strings.Split(s, ";")
	case strings.Contains(s, ","):
		return strings.Split(s, ",")
	default:
		return strings.Fields(s)
	}
}

func (b *build) subjects() error {
	var terms []string

	switch kw := b.machine.Get("keywords").(type) {
	case string:
		terms = append(terms, SplitKeywords(kw)...)
	default:
		terms = append(terms, textItems(value.Listify(kw))...)
	}
	terms = append(terms, textItems(b.citation.List("keywords"))...)

	for _, item := range b.machine.List("programmingLanguage") {
		switch val := item.(type) {
		case string:
			terms = append(terms, val)
		case map[string]any:
			terms = append(terms, value.FirstText(val, "name", "@name"))
		}
	}

	if b.includeAll {
		terms = append(terms, b.info.Topics...)
		if b.bundle.Repo != nil {
			langs, err := b.bundle.Repo.Languages(b.ctx)
			if err != nil {
				slog.Warn("unable to list repository languages", "repo", b.info.FullName, "error", err)
			}
			terms = append(terms, langs...)
		}
	}
	terms = append(terms, alwaysSubjects...)

	folded := dedupe.Fold(terms)
	folder := cases.Fold()
	sort.SliceStable(folded, func(i, j int) bool {
		return folder.String(folded[i]) < folder.String(folded[j])
	})
	for _, s := range folded {
		b.rec.Subjects = append(b.rec.Subjects, hub.Subject{Subject: s})
	}
	return nil
}

// textItems keeps the string items of a list.
func textItems(items []any) []string {
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
