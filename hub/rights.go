package hub

import (
	"strings"
)

// NormalizeLicenseURL reduces a license URL to a comparable key: no scheme,
// no "www.", no ".html" or trailing slash, lowercase.
func NormalizeLicenseURL(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	u = strings.TrimSuffix(u, "/")
	u = strings.TrimSuffix(u, ".html")
	u = strings.TrimSuffix(u, ".txt")
	return strings.TrimSuffix(u, "/")
}

// LabelForRightsURI returns a human-readable label for a Creative Commons URI.
func LabelForRightsURI(uri string) string {
	if strings.Contains(uri, "creativecommons.org") {
		if strings.Contains(uri, "/zero/") || strings.Contains(uri, "/publicdomain/") {
			return "CC0 / Public Domain"
		}
		if strings.Contains(uri, "/by/") {
			return "CC BY"
		}
		for _, v := range []string{"by-sa", "by-nc-nd", "by-nc-sa", "by-nc", "by-nd"} {
			if strings.Contains(uri, "/"+v+"/") {
				return "CC " + strings.ToUpper(v)
			}
		}
	}
	return uri
}

// NewLicenseRight references a license in the rights vocabulary.
func NewLicenseRight(id string) Right {
	return Right{ID: strings.ToLower(id)}
}

// NewLinkRight describes a license not in the vocabulary.
func NewLinkRight(title, link, description string) Right {
	r := Right{Link: link}
	if title == "" {
		title = LabelForRightsURI(link)
	}
	if title != "" {
		r.Title = &LangText{En: title}
	}
	if description != "" {
		r.Description = &LangText{En: description}
	}
	return r
}
