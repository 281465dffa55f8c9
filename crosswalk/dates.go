package crosswalk

import (
	"log/slog"

	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/value"
)

// publicationDay resolves the publication date once.
func (b *build) publicationDay() string {
	if b.pubDate != nil {
		return *b.pubDate
	}
	day := b.choosePublicationDate()
	b.pubDate = &day
	return day
}

func (b *build) choosePublicationDate() string {
	candidates := []struct {
		from string
		v    any
	}{
		{"codemeta datePublished", b.machine.Get("datePublished")},
		{"cff date-released", b.citation.Get("date-released")},
	}
	for _, c := range candidates {
		if value.IsEmpty(c.v) {
			continue
		}
		if day := value.ISODate(c.v); day != "" {
			slog.Debug("using publication date", "source", c.from, "date", day)
			return day
		}
		slog.Warn("ignoring unparseable date", "source", c.from, "value", c.v)
	}
	if day := isoDay(b.release.PublishedAt); day != "" {
		return day
	}
	if day := isoDay(b.release.CreatedAt); day != "" {
		return day
	}
	return isoDay(b.opts.Now())
}

func (b *build) publicationDate() error {
	b.rec.PublicationDate = b.publicationDay()
	return nil
}

func (b *build) dates() error {
	var dates []hub.Date

	if available := isoDay(b.release.PublishedAt); available != "" && available != b.publicationDay() {
		dates = append(dates, hub.NewDate(available, hub.DateAvailable))
	}

	created := value.ISODate(b.machine.Get("dateCreated"))
	if created == "" && b.includeAll {
		created = isoDay(b.info.CreatedAt)
	}
	if created != "" {
		dates = append(dates, hub.NewDate(created, hub.DateCreated))
	}

	updated := value.ISODate(b.machine.Get("dateModified"))
	if updated == "" && b.includeAll {
		updated = isoDay(b.info.UpdatedAt)
	}
	if updated != "" {
		dates = append(dates, hub.NewDate(updated, hub.DateUpdated))
	}

	if copyrighted := value.ISODate(b.machine.Get("copyrightYear")); copyrighted != "" {
		dates = append(dates, hub.NewDate(copyrighted, hub.DateCopyrighted))
	}

	b.rec.Dates = dates
	return nil
}
