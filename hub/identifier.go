package hub

import (
	"regexp"
	"strings"
)

// Scheme names a persistent identifier scheme.
type Scheme string

const (
	SchemeARK    Scheme = "ark"
	SchemeArXiv  Scheme = "arxiv"
	SchemeDOI    Scheme = "doi"
	SchemeEAN13  Scheme = "ean13"
	SchemeGND    Scheme = "gnd"
	SchemeHandle Scheme = "handle"
	SchemeISBN   Scheme = "isbn"
	SchemeISNI   Scheme = "isni"
	SchemeISSN   Scheme = "issn"
	SchemeISTC   Scheme = "istc"
	SchemeLSID   Scheme = "lsid"
	SchemeORCID  Scheme = "orcid"
	SchemePMCID  Scheme = "pmcid"
	SchemePMID   Scheme = "pmid"
	SchemePURL   Scheme = "purl"
	SchemeROR    Scheme = "ror"
	SchemeSWH    Scheme = "swh"
	SchemeURL    Scheme = "url"
	SchemeURN    Scheme = "urn"
)

// RecognizedSchemes lists every scheme the normalizer knows about.
var RecognizedSchemes = []Scheme{
	SchemeARK, SchemeArXiv, SchemeDOI, SchemeEAN13, SchemeGND, SchemeHandle,
	SchemeISBN, SchemeISNI, SchemeISSN, SchemeISTC, SchemeLSID, SchemeORCID,
	SchemePMCID, SchemePMID, SchemePURL, SchemeROR, SchemeSWH, SchemeURL, SchemeURN,
}

// Identifier is a scheme-qualified identifier in normalized form.
type Identifier struct {
	Identifier string `json:"identifier"`
	Scheme     Scheme `json:"scheme"`
}

var (
	doiRegex    = regexp.MustCompile(`(?i)^(?:(?:https?://)?(?:dx\.)?doi\.org/|doi:\s*)?(10\.\d{4,9}/\S+)$`)
	orcidRegex  = regexp.MustCompile(`(?i)^(?:(?:https?://)?(?:www\.)?orcid\.org/)?(\d{4})-?(\d{4})-?(\d{4})-?(\d{3}[\dX])$`)
	isniRegex   = regexp.MustCompile(`(?i)^(?:(?:https?://)?(?:www\.)?isni\.org/(?:isni/)?|isni:?\s*)?(\d{4})[\s-]?(\d{4})[\s-]?(\d{4})[\s-]?(\d{3}[\dX])$`)
	rorRegex    = regexp.MustCompile(`(?i)^(?:(?:https?://)?(?:www\.)?ror\.org/)?(0[a-hj-km-np-tv-z0-9]{6}\d{2})$`)
	arxivRegex  = regexp.MustCompile(`(?i)^(?:arxiv:\s*|(?:https?://)?(?:www\.)?arxiv\.org/(?:abs|pdf)/)(\d{4}\.\d{4,5}(?:v\d+)?|[a-z][a-z\-]*(?:\.[a-z]{2})?/\d{7}(?:v\d+)?)(?:\.pdf)?$`)
	handleRegex = regexp.MustCompile(`(?i)^(?:hdl:\s*|(?:https?://)?hdl\.handle\.net/)?(\d+(?:\.\d+)*/\S+)$`)
	gndRegex    = regexp.MustCompile(`(?i)^(?:gnd:\s*|(?:https?://)?d-nb\.info/gnd/)(\d{8,9}[\dX]|\d{1,8}-[\dX])$`)
	pmcidRegex  = regexp.MustCompile(`(?i)^(?:(?:https?://)?(?:www\.)?ncbi\.nlm\.nih\.gov/pmc/articles/)?(PMC\d{6,8})/?$`)
	pmidRegex   = regexp.MustCompile(`(?i)^(?:pmid:\s*|(?:https?://)?pubmed\.ncbi\.nlm\.nih\.gov/)?(\d{1,8})/?$`)
	isbnRegex   = regexp.MustCompile(`(?i)^(?:isbn(?:-1[03])?:?\s*)?([\d\- ]{9,17}[\dX])$`)
	issnRegex   = regexp.MustCompile(`(?i)^(?:issn:?\s*)?(\d{4})-(\d{3}[\dX])$`)
	ean13Regex  = regexp.MustCompile(`^(\d{13})$`)
	istcRegex   = regexp.MustCompile(`(?i)^([0-9A-F]{3})-?(\d{4})-?([0-9A-F]{8})-?([0-9A-F])$`)
	arkRegex    = regexp.MustCompile(`(?i)^(?:https?://[^/\s]+/)?(ark:/?\d{5,9}/\S+)$`)
	lsidRegex   = regexp.MustCompile(`(?i)^urn:lsid:[^:\s]+:[^:\s]+:[^:\s]+(?::\S+)?$`)
	urnRegex    = regexp.MustCompile(`(?i)^urn:[a-z0-9][a-z0-9-]{0,31}:\S+$`)
	swhRegex    = regexp.MustCompile(`^swh:1:(?:cnt|dir|rel|rev|snp):[0-9a-f]{40}(?:;\S*)?$`)
	purlRegex   = regexp.MustCompile(`(?i)^https?://purl\.(?:org|oclc\.org|net)/\S+$`)
	urlRegex    = regexp.MustCompile(`(?i)^(?:https?|ftp|git|gopher|s3|svn)://[^\s/?#]+\.[^\s/?#]+\S*$`)
)

// detector tries one scheme; order matters because several schemes overlap.
type detector struct {
	scheme Scheme
	match  func(string) bool
}

var detectors = []detector{
	{SchemeSWH, swhRegex.MatchString},
	{SchemeLSID, lsidRegex.MatchString},
	{SchemeURN, urnRegex.MatchString},
	{SchemeARK, arkRegex.MatchString},
	{SchemeDOI, doiRegex.MatchString},
	{SchemeORCID, isORCID},
	{SchemeISNI, isISNI},
	{SchemeROR, rorRegex.MatchString},
	{SchemeArXiv, arxivRegex.MatchString},
	{SchemeGND, gndRegex.MatchString},
	{SchemePMCID, pmcidRegex.MatchString},
	{SchemeISBN, isISBN},
	{SchemeISSN, isISSN},
	{SchemeEAN13, isEAN13},
	{SchemeISTC, isISTC},
	{SchemePMID, pmidRegex.MatchString},
	{SchemeHandle, isHandle},
	{SchemePURL, purlRegex.MatchString},
	{SchemeURL, urlRegex.MatchString},
}

// DetectScheme returns the scheme of the identifier contained in text.
// Unrecognized input reports false; it never fails otherwise.
func DetectScheme(text string) (Scheme, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	for _, d := range detectors {
		if d.match(text) {
			return d.scheme, true
		}
	}
	return "", false
}

// IsRecognized reports whether s is one of RecognizedSchemes.
func IsRecognized(s Scheme) bool {
	for _, r := range RecognizedSchemes {
		if r == s {
			return true
		}
	}
	return false
}

// NewIdentifier detects the scheme of text and returns it normalized.
func NewIdentifier(text string) (Identifier, bool) {
	scheme, ok := DetectScheme(text)
	if !ok {
		return Identifier{}, false
	}
	value := NormalizeIdentifier(text, scheme)
	if value == "" {
		return Identifier{}, false
	}
	return Identifier{Identifier: value, Scheme: scheme}, true
}

// DetectedID returns the normalized identifier found in text, or "".
func DetectedID(text string) string {
	id, ok := NewIdentifier(text)
	if !ok {
		return ""
	}
	return id.Identifier
}

// NormalizeIdentifier returns the canonical form of value for the given
// scheme. The result is a fixed point: normalizing it again yields the same
// string. Values that do not fit the scheme come back as "".
func NormalizeIdentifier(value string, scheme Scheme) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	switch scheme {
	case SchemeDOI:
		if m := doiRegex.FindStringSubmatch(value); m != nil {
			return m[1]
		}
	case SchemeORCID:
		if m := orcidRegex.FindStringSubmatch(value); m != nil {
			return strings.ToUpper(m[1] + "-" + m[2] + "-" + m[3] + "-" + m[4])
		}
	case SchemeISNI:
		if m := isniRegex.FindStringSubmatch(value); m != nil {
			return strings.ToUpper(m[1] + m[2] + m[3] + m[4])
		}
	case SchemeROR:
		if m := rorRegex.FindStringSubmatch(value); m != nil {
			return strings.ToLower(m[1])
		}
	case SchemeArXiv:
		if m := arxivRegex.FindStringSubmatch(value); m != nil {
			return "arXiv:" + m[1]
		}
	case SchemeHandle:
		if m := handleRegex.FindStringSubmatch(value); m != nil {
			return m[1]
		}
	case SchemeGND:
		if m := gndRegex.FindStringSubmatch(value); m != nil {
			return "gnd:" + strings.ToUpper(m[1])
		}
	case SchemePMCID:
		if m := pmcidRegex.FindStringSubmatch(value); m != nil {
			return strings.ToUpper(m[1])
		}
	case SchemePMID:
		if m := pmidRegex.FindStringSubmatch(value); m != nil {
			return m[1]
		}
	case SchemeISBN:
		if m := isbnRegex.FindStringSubmatch(value); m != nil {
			return strings.ToUpper(compactDigits(m[1]))
		}
	case SchemeISSN:
		if m := issnRegex.FindStringSubmatch(value); m != nil {
			return strings.ToUpper(m[1] + "-" + m[2])
		}
	case SchemeISTC:
		if m := istcRegex.FindStringSubmatch(value); m != nil {
			return strings.ToUpper(m[1] + m[2] + m[3] + m[4])
		}
	case SchemeARK:
		if m := arkRegex.FindStringSubmatch(value); m != nil {
			ark := m[1]
			if !strings.HasPrefix(ark, "ark:/") {
				ark = "ark:/" + strings.TrimPrefix(ark, "ark:")
			}
			return ark
		}
	case SchemeURN:
		if urnRegex.MatchString(value) {
			return "urn:" + value[len("urn:"):]
		}
	case SchemeLSID, SchemeSWH, SchemePURL, SchemeURL, SchemeEAN13:
		return value
	}
	return ""
}

// IdentifierURI returns the identifier as a resolvable URI where possible.
func IdentifierURI(id Identifier) string {
	switch id.Scheme {
	case SchemeDOI:
		return "https://doi.org/" + id.Identifier
	case SchemeHandle:
		return "https://hdl.handle.net/" + id.Identifier
	case SchemeORCID:
		return "https://orcid.org/" + id.Identifier
	case SchemeROR:
		return "https://ror.org/" + id.Identifier
	case SchemePMID:
		return "https://pubmed.ncbi.nlm.nih.gov/" + id.Identifier
	case SchemePMCID:
		return "https://www.ncbi.nlm.nih.gov/pmc/articles/" + id.Identifier
	case SchemeArXiv:
		return "https://arxiv.org/abs/" + strings.TrimPrefix(id.Identifier, "arXiv:")
	case SchemeISNI:
		return "https://isni.org/isni/" + id.Identifier
	case SchemeGND:
		return "https://d-nb.info/gnd/" + strings.TrimPrefix(id.Identifier, "gnd:")
	default:
		return id.Identifier
	}
}

// isORCID accepts 16-digit ids inside the blocks ORCID allocates from the
// ISNI range. Everything else with a valid check digit is an ISNI.
func isORCID(s string) bool {
	m := orcidRegex.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	digits := m[1] + m[2] + m[3] + m[4]
	if !mod11_2(digits) {
		return false
	}
	if strings.Contains(strings.ToLower(s), "orcid.org") {
		return true
	}
	switch digits[:8] {
	case "00000001", "00000002", "00000003":
		return true
	}
	return strings.HasPrefix(digits, "0009")
}

// isHandle rejects bare 10.* prefixes, which belong to DOIs even when they
// fail the DOI pattern.
func isHandle(s string) bool {
	m := handleRegex.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	return !strings.HasPrefix(m[1], "10.") || strings.Contains(strings.ToLower(s), "handle.net") ||
		strings.HasPrefix(strings.ToLower(s), "hdl:")
}

func isISNI(s string) bool {
	m := isniRegex.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	return mod11_2(m[1] + m[2] + m[3] + m[4])
}

// mod11_2 validates the ISO 7064 check digit shared by ORCID and ISNI.
func mod11_2(digits string) bool {
	if len(digits) != 16 {
		return false
	}
	total := 0
	for _, c := range digits[:15] {
		if c < '0' || c > '9' {
			return false
		}
		total = (total + int(c-'0')) * 2
	}
	check := (12 - total%11) % 11
	want := byte('0' + check)
	if check == 10 {
		want = 'X'
	}
	last := digits[15]
	if last == 'x' {
		last = 'X'
	}
	return last == want
}

func compactDigits(s string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(s)
}

func isISBN(s string) bool {
	m := isbnRegex.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	digits := strings.ToUpper(compactDigits(m[1]))
	switch len(digits) {
	case 10:
		sum := 0
		for i, c := range digits {
			var v int
			switch {
			case c >= '0' && c <= '9':
				v = int(c - '0')
			case c == 'X' && i == 9:
				v = 10
			default:
				return false
			}
			sum += v * (10 - i)
		}
		return sum%11 == 0
	case 13:
		if !strings.HasPrefix(digits, "978") && !strings.HasPrefix(digits, "979") {
			return false
		}
		return ean13Checksum(digits)
	}
	return false
}

func isISSN(s string) bool {
	m := issnRegex.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	digits := strings.ToUpper(m[1] + m[2])
	sum := 0
	for i, c := range digits[:7] {
		sum += int(c-'0') * (8 - i)
	}
	check := (11 - sum%11) % 11
	want := byte('0' + check)
	if check == 10 {
		want = 'X'
	}
	return digits[7] == want
}

func isEAN13(s string) bool {
	return ean13Regex.MatchString(s) && ean13Checksum(s)
}

func ean13Checksum(digits string) bool {
	if len(digits) != 13 {
		return false
	}
	sum := 0
	for i, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
		v := int(c - '0')
		if i%2 == 1 {
			v *= 3
		}
		sum += v
	}
	return sum%10 == 0
}

// isISTC requires at least one hex letter or hyphen so plain numbers are
// left for the numeric schemes.
func isISTC(s string) bool {
	if !istcRegex.MatchString(s) {
		return false
	}
	return strings.ContainsAny(strings.ToUpper(s), "ABCDEF-")
}
