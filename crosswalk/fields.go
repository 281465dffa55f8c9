package crosswalk

import (
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/iga/dedupe"
	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/vocab"
)

// Archive formats of the platform's automatic source downloads.
const (
	zipFormat = "application/zip"
	tarFormat = "application/x-tar-gz"
)

func (b *build) formats() error {
	var formats []string
	if b.release.ZipballURL != "" {
		formats = append(formats, zipFormat)
	}
	if b.release.TarballURL != "" {
		formats = append(formats, tarFormat)
	}
	for _, asset := range b.release.Assets {
		formats = append(formats, asset.ContentType)
	}
	b.rec.Formats = dedupe.Strings(formats)
	return nil
}

// Only English is recorded; the platform says nothing about the human
// language of a release.
func (b *build) languages() error {
	b.rec.Languages = []hub.VocabID{{ID: "eng"}}
	return nil
}

// Locations are never known for software.
func (b *build) locations() error {
	return nil
}

func (b *build) publisher() error {
	b.rec.Publisher = b.opts.Publisher
	return nil
}

func (b *build) resourceType() error {
	id := hub.ResourceSoftware
	if strings.EqualFold(scalar(b.citation.Get("type")), hub.ResourceDataset) {
		id = hub.ResourceDataset
	}
	if !b.vocab.Has(vocab.ResourceTypes, id) {
		slog.Warn("resource type missing from vocabulary", "type", id)
	}
	b.rec.ResourceType = &hub.VocabID{ID: id}
	return nil
}
