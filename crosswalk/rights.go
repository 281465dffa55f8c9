package crosswalk

import (
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/value"
	"github.com/lehigh-university-libraries/iga/vocab"
)

// Conventional license file names, in the order they are looked for.
var (
	licenseBasenames  = []string{"LICENSE", "License", "license", "LICENCE", "Licence", "licence", "COPYING", "COPYRIGHT", "Copyright", "copyright"}
	licenseExtensions = []string{"", ".txt", ".md", ".html"}
)

// licenseTexts returns the candidate license strings of a license value:
// an SPDX id, a name, a URL, or a CreativeWork object.
func licenseTexts(v any) []string {
	var out []string
	for _, item := range value.Listify(v) {
		switch val := item.(type) {
		case string:
			out = append(out, strings.TrimSpace(val))
		case map[string]any:
			for _, key := range []string{"@id", "url", "identifier", "name"} {
				if s := value.FirstText(val, key); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// licenseRight converts a recognized license term.
func licenseRight(t vocab.Term) hub.Right {
	if t.InInvenio() {
		return hub.NewLicenseRight(t.ID)
	}
	return hub.NewLinkRight(t.Title, t.URL, t.Description)
}

func (b *build) recognizeLicense(text string) (vocab.Term, bool) {
	if t, ok := b.vocab.License(text); ok {
		return t, true
	}
	return b.vocab.Match(vocab.Licenses, text)
}

func (b *build) rights() error {
	candidates := []struct {
		from string
		v    any
	}{
		{"codemeta license", b.machine.Get("license")},
		{"cff license", b.citation.Get("license")},
		{"cff license-url", b.citation.Get("license-url")},
	}
	for _, c := range candidates {
		for _, text := range licenseTexts(c.v) {
			if t, ok := b.recognizeLicense(text); ok {
				slog.Debug("recognized license", "source", c.from, "license", t.ID)
				b.rec.Rights = []hub.Right{licenseRight(t)}
				return nil
			}
			slog.Debug("unrecognized license", "source", c.from, "value", text)
		}
	}

	if lic := b.info.License; lic != nil && lic.Name != "Other" && lic.SPDXID != "NOASSERTION" {
		t, known := b.vocab.License(lic.SPDXID)
		switch {
		case known && t.InInvenio():
			b.rec.Rights = []hub.Right{hub.NewLicenseRight(t.ID)}
		case known:
			b.rec.Rights = []hub.Right{hub.NewLinkRight(lic.Name, lic.URL, t.Description)}
		default:
			b.rec.Rights = []hub.Right{hub.NewLinkRight(lic.Name, lic.URL, "")}
		}
		slog.Debug("using platform license", "license", lic.SPDXID)
		return nil
	}

	if name := b.licenseFile(); name != "" {
		slog.Debug("found license file", "file", name)
		b.rec.Rights = []hub.Right{{
			Title: &hub.LangText{En: "License"},
			Link:  b.fileURL(name),
		}}
	}
	return nil
}

// licenseFile returns the first conventional license file in the
// repository's top level, or "".
func (b *build) licenseFile() string {
	files := b.repoFiles()
	if len(files) == 0 {
		return ""
	}
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}
	for _, base := range licenseBasenames {
		for _, ext := range licenseExtensions {
			if present[base+ext] {
				return base + ext
			}
		}
	}
	return ""
}
