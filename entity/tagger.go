package entity

import (
	"strings"
	"unicode"

	"github.com/lehigh-university-libraries/iga/helpers"
)

// Component names a part of a tagged name.
type Component string

const (
	PrefixOther          Component = "PrefixOther"
	GivenName            Component = "GivenName"
	FirstInitial         Component = "FirstInitial"
	MiddleName           Component = "MiddleName"
	MiddleInitial        Component = "MiddleInitial"
	Surname              Component = "Surname"
	LastInitial          Component = "LastInitial"
	SuffixGenerational   Component = "SuffixGenerational"
	SuffixOther          Component = "SuffixOther"
	CorporationName      Component = "CorporationName"
	CorporationLegalType Component = "CorporationLegalType"
)

// Category is the tagger's guess at what kind of name it was given.
type Category string

const (
	CategoryPerson      Category = "Person"
	CategoryCorporation Category = "Corporation"
	CategoryHousehold   Category = "Household"
)

// Tagged is the result of tagging a name.
type Tagged struct {
	Components map[Component]string
	Category   Category
}

// HasCorporate reports whether any corporate component was found.
func (t Tagged) HasCorporate() bool {
	for c := range t.Components {
		if strings.HasPrefix(string(c), "Corporation") {
			return true
		}
	}
	return false
}

// Get returns a component or "".
func (t Tagged) Get(c Component) string {
	return t.Components[c]
}

var (
	legalTypes = map[string]bool{
		"inc": true, "llc": true, "ltd": true, "corp": true, "corporation": true,
		"co":  true, "company": true, "gmbh": true, "ag": true, "plc": true,
		"sa":  true, "bv": true, "lp": true, "llp": true,
	}

	// Leading titles the tagger recognizes. Some are deliberately not in
	// the splitter's whitelist.
	namePrefixes = map[string]string{
		"capt":      "Capt", "col": "Col", "dame": "Dame", "dr": "Dr", "fr": "Fr",
		"gen":       "Gen", "hon": "Hon", "imām": "Imām", "lady": "Lady", "lord": "Lord",
		"lt":        "Lt", "messrs": "Messrs", "miss": "Miss", "mr": "Mr", "mrs": "Mrs",
		"ms":        "Ms", "mx": "Mx", "pastor": "Pastor", "pr": "Pr", "prof": "Prof",
		"professor": "Professor", "rabbi": "Rabbi", "rev": "Rev", "revd": "Revd",
		"roshi":     "Roshi", "sensei": "Sensei", "sgt": "Sgt", "sheikh": "Sheikh",
		"sir":       "Sir",
	}

	generational = map[string]bool{"jr": true, "sr": true, "ii": true, "iii": true, "iv": true}
	otherSuffix  = map[string]bool{"phd": true, "ph.d": true, "md": true, "m.d": true, "esq": true}
)

// Tagger labels the components of a name string. It decides between a
// person, a corporation and a household from the name's vocabulary, then
// assigns person components by position.
type Tagger struct{}

// Tag tags name. The name is expected to be cleaned.
func (Tagger) Tag(name string) Tagged {
	t := Tagged{Components: make(map[Component]string)}
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return t
	}

	for i, tok := range tokens {
		bare := bareToken(tok)
		if legalTypes[bare] && i > 0 {
			t.Category = CategoryCorporation
			t.Components[CorporationName] = strings.TrimRight(strings.Join(tokens[:i], " "), ",")
			t.Components[CorporationLegalType] = tok
			return t
		}
		if organizationWords[bare] {
			t.Category = CategoryCorporation
			t.Components[CorporationName] = name
			return t
		}
		if tok == "&" || bare == "and" {
			t.Category = CategoryHousehold
			return t
		}
	}

	if len(tokens) == 1 {
		if looksLikeName(tokens[0]) {
			t.Category = CategoryPerson
			t.Components[Surname] = tokens[0]
		} else {
			t.Category = CategoryCorporation
			t.Components[CorporationName] = tokens[0]
		}
		return t
	}

	t.Category = CategoryPerson
	if p, ok := namePrefixes[bareToken(tokens[0])]; ok && len(tokens) > 1 {
		t.Components[PrefixOther] = p
		tokens = tokens[1:]
	}
	for len(tokens) > 1 {
		last := bareToken(tokens[len(tokens)-1])
		switch {
		case generational[last]:
			t.Components[SuffixGenerational] = strings.Trim(tokens[len(tokens)-1], ",")
		case otherSuffix[strings.TrimSuffix(last, ".")]:
			t.Components[SuffixOther] = strings.Trim(tokens[len(tokens)-1], ",")
		default:
			return tagPerson(t, tokens)
		}
		tokens = tokens[:len(tokens)-1]
		tokens[len(tokens)-1] = strings.TrimRight(tokens[len(tokens)-1], ",")
	}
	return tagPerson(t, tokens)
}

func tagPerson(t Tagged, tokens []string) Tagged {
	joined := strings.Join(tokens, " ")
	if family, rest, found := strings.Cut(joined, ","); found {
		t.Components[Surname] = strings.TrimSpace(family)
		tagGiven(t, strings.Fields(rest))
		return t
	}

	if len(tokens) == 1 {
		t.Components[Surname] = tokens[0]
		return t
	}

	start := len(tokens) - 1
	for start > 1 && helpers.IsParticle(tokens[start-1]) {
		start--
	}
	if start == len(tokens)-1 && isInitial(tokens[start]) {
		t.Components[LastInitial] = tokens[start]
	} else {
		t.Components[Surname] = strings.Join(tokens[start:], " ")
	}
	tagGiven(t, tokens[:start])
	return t
}

func tagGiven(t Tagged, tokens []string) {
	if len(tokens) == 0 {
		return
	}
	if isInitial(tokens[0]) {
		t.Components[FirstInitial] = tokens[0]
	} else {
		t.Components[GivenName] = tokens[0]
	}

	var initials, names []string
	for _, tok := range tokens[1:] {
		if isInitial(tok) {
			initials = append(initials, tok)
		} else {
			names = append(names, tok)
		}
	}
	if len(initials) > 0 {
		t.Components[MiddleInitial] = strings.Join(initials, " ")
	}
	if len(names) > 0 {
		t.Components[MiddleName] = strings.Join(names, " ")
	}
}

// looksLikeName accepts a capitalized word of letters, hyphens and
// apostrophes.
func looksLikeName(tok string) bool {
	if !isCapitalized(tok) {
		return false
	}
	for _, r := range tok {
		if !(r == '-' || r == '\'' || r == '.' || unicode.IsLetter(r)) {
			return false
		}
	}
	return true
}
