package helpers

import (
	"regexp"
	"strings"
)

// ParsedName holds the components of a personal name.
type ParsedName struct {
	FullName string
	Title    string // Honorific such as "Dr" or "Prof."
	Given    string
	Middle   string
	Family   string
	Suffix   string
}

// NameParser parses personal names into components.
type NameParser struct{}

var (
	// Suffixes that appear after a name
	suffixes = []string{"Jr.", "Jr", "Sr.", "Sr", "III", "II", "IV", "V", "PhD", "Ph.D.", "MD", "M.D.", "Esq.", "Esq"}

	// Honorifics that appear before a name
	titles = []string{"dr", "prof", "professor", "mr", "mrs", "ms", "mx", "miss", "sir", "dame", "lady", "lord", "rev", "revd", "fr", "rabbi"}

	// Name prefixes (nobiliary particles)
	prefixes = []string{"van", "von", "de", "del", "della", "di", "da", "le", "la", "du", "des", "den", "der", "het", "ter", "ten", "op", "dos", "das", "y", "al-", "el-", "ibn", "bin"}

	// Pattern for "Last, First Middle" format
	invertedNameRegex = regexp.MustCompile(`^([^,]+),\s*(.+)$`)
)

// Parse parses a name string into its components.
// Handles both "First Last" and "Last, First" formats.
func (p *NameParser) Parse(name string) *ParsedName {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	result := &ParsedName{
		FullName: name,
	}

	// Suffixes first so "King, Jr." is not read as an inverted name.
	name, result.Suffix = extractSuffix(name)
	name, result.Title = extractTitle(name)

	// Check for inverted format: "Last, First Middle"
	if matches := invertedNameRegex.FindStringSubmatch(name); matches != nil {
		result.Family = strings.TrimSpace(matches[1])
		parts := strings.Fields(matches[2])
		if len(parts) > 0 {
			result.Given = parts[0]
		}
		if len(parts) > 1 {
			result.Middle = strings.Join(parts[1:], " ")
		}
		return result
	}

	// Direct format: "First Middle Prefix Last"
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return nil
	}

	if len(parts) == 1 {
		// Single name - treat as family name
		result.Family = parts[0]
		return result
	}

	// Family name starts at the last token, extended left over particles
	// ("de Icaza", "van der Waals") but never into the first token.
	familyStart := len(parts) - 1
	for familyStart > 1 && IsParticle(parts[familyStart-1]) {
		familyStart--
	}
	result.Family = strings.Join(parts[familyStart:], " ")

	// First name is always first part
	result.Given = parts[0]

	// Middle name(s) are everything between first and family
	if familyStart > 1 {
		result.Middle = strings.Join(parts[1:familyStart], " ")
	}
	return result
}

// extractSuffix extracts a suffix from a name string.
func extractSuffix(name string) (string, string) {
	// Look for common suffixes at the end
	for _, suffix := range suffixes {
		// Check with trailing comma (common format)
		if strings.HasSuffix(name, ", "+suffix) {
			return strings.TrimSpace(strings.TrimSuffix(name, ", "+suffix)), suffix
		}
		if strings.HasSuffix(name, ","+suffix) {
			return strings.TrimSpace(strings.TrimSuffix(name, ","+suffix)), suffix
		}
		// Check without comma
		if strings.HasSuffix(name, " "+suffix) {
			return strings.TrimSpace(strings.TrimSuffix(name, " "+suffix)), suffix
		}
	}
	return name, ""
}

// extractTitle removes a leading honorific. A lone honorific is kept as
// the name.
func extractTitle(name string) (string, string) {
	first, rest, found := strings.Cut(name, " ")
	if !found {
		return name, ""
	}
	if IsTitle(first) {
		return strings.TrimSpace(rest), first
	}
	return name, ""
}

// IsTitle reports whether word is an honorific, with or without a period.
func IsTitle(word string) bool {
	lower := strings.TrimSuffix(strings.ToLower(word), ".")
	for _, t := range titles {
		if lower == t {
			return true
		}
	}
	return false
}

// IsParticle reports whether word is a nobiliary particle such as "van" or "de".
func IsParticle(word string) bool {
	lower := strings.ToLower(word)
	for _, prefix := range prefixes {
		if lower == prefix {
			return true
		}
	}
	return false
}

// ParseName is a convenience function to parse a name string.
func ParseName(name string) *ParsedName {
	parser := &NameParser{}
	return parser.Parse(name)
}
