package crosswalk

import (
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"github.com/lehigh-university-libraries/iga/dedupe"
	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/reference"
	"github.com/lehigh-university-libraries/iga/value"
	"github.com/lehigh-university-libraries/iga/vocab"
)

// sourceIdentifier reads an identifier written as text, a CFF identifier
// object ({type, value}) or a CodeMeta PropertyValue.
func sourceIdentifier(item any) (hub.Identifier, bool) {
	switch val := item.(type) {
	case string:
		return hub.NewIdentifier(val)
	case map[string]any:
		text := value.FirstText(val, "value", "@id", "url")
		if text == "" {
			return hub.Identifier{}, false
		}
		kind := strings.ToLower(value.FirstText(val, "type", "@type"))
		if kind == "propertyvalue" {
			kind = strings.ToLower(value.FirstText(val, "propertyID"))
		}
		scheme := hub.Scheme(kind)
		if hub.IsRecognized(scheme) {
			if norm := hub.NormalizeIdentifier(text, scheme); norm != "" {
				return hub.Identifier{Identifier: norm, Scheme: scheme}, true
			}
		}
		return hub.NewIdentifier(text)
	}
	return hub.Identifier{}, false
}

func (b *build) identifiers() error {
	items := b.machine.List("identifier")
	items = append(items, b.citation.List("identifiers")...)
	items = append(items, b.citation.List("doi")...)

	var ids []hub.Identifier
	for _, item := range items {
		id, ok := sourceIdentifier(item)
		if !ok {
			slog.Debug("skipping unrecognized identifier", "value", item)
			continue
		}
		if id.Scheme == hub.SchemeURL && !allowedURL(id.Identifier) {
			slog.Debug("skipping identifier URL with disallowed scheme", "url", id.Identifier)
			continue
		}
		if !b.vocab.Has(vocab.IdentifierTypes, string(id.Scheme)) {
			slog.Debug("skipping identifier of unsupported type", "scheme", id.Scheme, "id", id.Identifier)
			continue
		}
		ids = append(ids, id)
	}
	b.rec.Identifiers = dedupe.Values(ids)
	return nil
}

// publicationIDs collects the identifiers of publications the software
// cites or is described in: CodeMeta referencePublication, then CFF
// preferred-citation and references.
func (b *build) publicationIDs() []hub.Identifier {
	if b.referenceIDs != nil {
		return *b.referenceIDs
	}
	var ids []hub.Identifier
	add := func(id hub.Identifier, ok bool) bool {
		if ok {
			ids = append(ids, id)
		}
		return ok
	}

	for _, item := range b.machine.List("referencePublication") {
		switch val := item.(type) {
		case string:
			if !add(hub.NewIdentifier(val)) {
				slog.Debug("unrecognized referencePublication", "value", val)
			}
		case map[string]any:
			found := false
			for _, key := range []string{"id", "@id", "identifier", "@identifier"} {
				if found = add(sourceIdentifier(val[key])); found {
					break
				}
			}
			if !found {
				slog.Debug("no identifier in referencePublication", "value", val)
			}
		}
	}

	refs := b.citation.List("preferred-citation")
	refs = append(refs, b.citation.List("references")...)
	for _, item := range refs {
		ref := value.Map(item)
		if ref == nil {
			continue
		}
		if text := value.FirstText(ref, "doi", "pmcid", "isbn"); text != "" {
			add(hub.NewIdentifier(text))
			continue
		}
		for _, idItem := range value.Listify(ref["identifiers"]) {
			m := value.Map(idItem)
			switch strings.ToLower(value.FirstText(m, "type")) {
			case "doi", "other":
				add(hub.NewIdentifier(value.FirstText(m, "value")))
			}
		}
	}

	ids = dedupeFoldedIDs(ids)
	b.referenceIDs = &ids
	return ids
}

// dedupeFoldedIDs removes identifiers that differ only in letter case.
func dedupeFoldedIDs(ids []hub.Identifier) []hub.Identifier {
	folder := cases.Fold()
	seen := make(map[string]bool, len(ids))
	var out []hub.Identifier
	for _, id := range ids {
		key := string(id.Scheme) + ":" + folder.String(id.Identifier)
		if !seen[key] {
			seen[key] = true
			out = append(out, id)
		}
	}
	return out
}

// referenceScheme is the only InvenioRDM reference scheme that fits
// publication identifiers.
const referenceScheme = "other"

func (b *build) references() error {
	for _, id := range b.publicationIDs() {
		if !contains(reference.Schemes, func(s hub.Scheme) bool { return s == id.Scheme }) {
			continue
		}
		text, err := b.refs.Reference(b.ctx, id.Identifier)
		if errors.Is(err, hub.ErrInternal) {
			return err
		}
		if err != nil {
			slog.Warn("unable to format reference", "id", id.Identifier, "error", err)
			continue
		}
		if text == "" {
			slog.Debug("no formatted reference", "id", id.Identifier)
			continue
		}
		b.rec.References = append(b.rec.References, hub.Reference{
			Reference:  text,
			Identifier: id.Identifier,
			Scheme:     referenceScheme,
		})
	}
	return nil
}
