package crosswalk

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/vocab"
)

// NoDescription is used when no source has a description.
const NoDescription = "(No description provided.)"

// descriptionText picks the description once.
func (b *build) descriptionText() string {
	if b.mainDescription != nil {
		return *b.mainDescription
	}
	text := b.chooseDescription()
	b.mainDescription = &text
	return text
}

func (b *build) chooseDescription() string {
	if body := strings.TrimSpace(b.release.Body); body != "" {
		slog.Debug("using release notes as description")
		return body
	}
	if notes := scalar(b.machine.Get("releaseNotes")); notes != "" {
		if !isURL(notes) {
			slog.Debug("using codemeta releaseNotes as description")
			return notes
		}
		slog.Debug("codemeta releaseNotes is a URL; not using it as description")
	}
	if text := firstScalar(
		b.machine.Get("description"),
		b.citation.Get("abstract"),
		b.info.Description,
	); text != "" {
		return text
	}
	slog.Debug("no usable description found")
	return NoDescription
}

func (b *build) description() error {
	b.rec.Description = b.descriptionText()
	return nil
}

func (b *build) additionalDescriptions() error {
	seen := []string{strings.ToLower(b.descriptionText())}
	other := b.checkedTerm(vocab.DescriptionTypes, "other", "other")

	add := func(v any, descType, from string) {
		text := scalar(v)
		if text == "" {
			return
		}
		if contains(seen, func(s string) bool { return s == strings.ToLower(text) }) {
			slog.Debug("skipping duplicate description", "source", from)
			return
		}
		seen = append(seen, strings.ToLower(text))
		if isURL(text) {
			if !allowedURL(text) {
				slog.Debug("skipping description URL with disallowed scheme", "source", from, "url", text)
				return
			}
			text = fmt.Sprintf(`Additional information is available at <a href="%s">%s</a>`, text, text)
		}
		b.rec.AdditionalDescriptions = append(b.rec.AdditionalDescriptions, hub.Description{
			Description: text,
			Type:        hub.VocabID{ID: descType},
		})
	}

	add(b.machine.Get("releaseNotes"), other, "codemeta releaseNotes")
	add(b.machine.Get("description"), other, "codemeta description")
	add(b.citation.Get("abstract"), other, "cff abstract")
	if b.includeAll {
		add(b.info.Description, other, "repository description")
	}
	add(b.machine.Get("readme"), b.checkedTerm(vocab.DescriptionTypes, "technical-info", "other"), "codemeta readme")
	return nil
}
