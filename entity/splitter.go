package entity

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lehigh-university-libraries/iga/helpers"
)

// Honorific prefixes a trustworthy tagging may carry.
var allowedPrefixes = map[string]bool{
	"":      true, "Dame": true, "Dr": true, "Fr": true, "Imām": true, "Lady": true,
	"Lord":  true, "Messrs": true, "Miss": true, "Mr": true, "Mrs": true,
	"Ms":    true, "Mx": true, "Pr": true, "Prof": true, "Professor": true,
	"Rabbi": true, "Revd": true, "Roshi": true, "Sensei": true, "Sir": true,
}

// Splitter splits personal names into given and family parts. Results are
// memoized; a Splitter is safe for concurrent use.
type Splitter struct {
	tagger Tagger

	mu   sync.Mutex
	memo map[string][2]string
}

// NewSplitter creates a Splitter.
func NewSplitter() *Splitter {
	return &Splitter{memo: make(map[string][2]string)}
}

// Split returns the given and family names in name. A single-word name is
// all family name.
func (s *Splitter) Split(name string) (given, family string) {
	s.mu.Lock()
	if r, ok := s.memo[name]; ok {
		s.mu.Unlock()
		return r[0], r[1]
	}
	s.mu.Unlock()

	given, family = s.split(name)

	s.mu.Lock()
	s.memo[name] = [2]string{given, family}
	s.mu.Unlock()
	return given, family
}

func (s *Splitter) split(name string) (string, string) {
	cleaned := Clean(name)
	if cleaned == "" {
		return "", ""
	}
	if !strings.Contains(cleaned, " ") {
		return "", familyCase(cleaned)
	}

	var given, surname string
	t := s.tagger.Tag(cleaned)
	if t.Category != CategoryPerson || !allowedPrefixes[t.Get(PrefixOther)] || t.HasCorporate() {
		p := helpers.ParseName(cleaned)
		if p == nil {
			return "", ""
		}
		given = strings.TrimSpace(p.Given + " " + p.Middle)
		surname = p.Family
	} else {
		if initial := t.Get(FirstInitial); initial != "" {
			given = initial
		} else {
			given = strings.TrimRight(t.Get(GivenName), ".")
		}
		middle := t.Get(MiddleInitial)
		if middle == "" {
			middle = t.Get(MiddleName)
		}
		if middle != "" {
			given = strings.TrimSpace(given + " " + middle)
		}

		surname = t.Get(Surname)
		if surname == "" {
			surname = cases.Title(language.Und).String(t.Get(LastInitial))
		}
		if given == "" && strings.Contains(surname, " ") {
			i := strings.LastIndex(surname, " ")
			given, surname = surname[:i], surname[i+1:]
		}
	}

	return upcaseFirstLetters(given), familyCase(strings.TrimSpace(surname))
}

// familyCase title-cases a single word unless it has digits, is all
// capitals, or has capitals after the first letter.
func familyCase(s string) string {
	if s == "" || strings.Contains(s, " ") {
		return s
	}
	var upper, lower int
	for i, r := range s {
		switch {
		case unicode.IsDigit(r):
			return s
		case unicode.IsUpper(r):
			if i > 0 {
				upper++
			}
		case unicode.IsLower(r):
			lower++
		}
	}
	if upper > 0 || lower == 0 {
		return s
	}
	return cases.Title(language.Und).String(s)
}

// upcaseFirstLetters capitalizes the first letter of each word and leaves
// the rest alone.
func upcaseFirstLetters(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
