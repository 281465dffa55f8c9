package entity

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"
)

// Decision is a strategy's verdict on whether a name belongs to a person.
type Decision int

const (
	Undecided Decision = iota
	Person
	NotPerson
)

func (d Decision) String() string {
	switch d {
	case Person:
		return "person"
	case NotPerson:
		return "not-person"
	}
	return "undecided"
}

// Strategy inspects a name. raw is the text as given and cleaned is the
// output of Clean.
type Strategy func(raw, cleaned string) Decision

// Classifier decides whether a name belongs to a person by asking a list of
// strategies in order. The first decided answer wins; if none decides, the
// name is not a person.
type Classifier struct {
	recognizers map[Script]Recognizer
	tagger      Tagger
	extraOrgs   map[string]bool
	strategies  []Strategy
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithRecognizer replaces the recognizer used for a script.
func WithRecognizer(s Script, r Recognizer) ClassifierOption {
	return func(c *Classifier) {
		c.recognizers[s] = r
	}
}

// WithKnownOrganizations adds names to the known-organization list.
func WithKnownOrganizations(names ...string) ClassifierOption {
	return func(c *Classifier) {
		for _, n := range names {
			c.extraOrgs[orgKey(n)] = true
		}
	}
}

// NewClassifier creates a Classifier with the embedded recognizers.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		recognizers: DefaultRecognizers(),
		extraOrgs:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.strategies = []Strategy{
		rejectMarkers,
		rejectNumeric,
		c.rejectKnown,
		c.recognize,
		c.guessStructure,
	}
	return c
}

// Classify returns Person or NotPerson. It never returns Undecided.
func (c *Classifier) Classify(name string) Decision {
	cleaned := Clean(name)
	for _, s := range c.strategies {
		if d := s(name, cleaned); d != Undecided {
			slog.Debug("classified name", "name", name, "decision", d)
			return d
		}
	}
	return NotPerson
}

// IsPerson reports whether name is classified as a person.
func (c *Classifier) IsPerson(name string) bool {
	return c.Classify(name) == Person
}

// Hyphens set off by spaces, possessives, ampersands and plus signs do not
// occur in personal names.
var nonPersonMarkers = []string{"'s", "’s", "&", "+", " - ", " – ", " — "}

func rejectMarkers(raw, _ string) Decision {
	if strings.TrimSpace(raw) == "" {
		return NotPerson
	}
	for _, m := range nonPersonMarkers {
		if strings.Contains(raw, m) {
			return NotPerson
		}
	}
	return Undecided
}

var tokenSplitRegex = regexp.MustCompile(`[-\s:]+`)

func rejectNumeric(_, cleaned string) Decision {
	if cleaned == "" {
		return NotPerson
	}
	for _, tok := range tokenSplitRegex.Split(cleaned, -1) {
		if tok == "" {
			continue
		}
		for _, r := range tok {
			if !unicode.IsDigit(r) {
				return Undecided
			}
		}
	}
	return NotPerson
}

func (c *Classifier) rejectKnown(raw, cleaned string) Decision {
	for _, name := range []string{raw, cleaned} {
		key := orgKey(name)
		if knownOrganizations()[key] || c.extraOrgs[key] {
			return NotPerson
		}
	}
	return Undecided
}

func (c *Classifier) recognize(_, cleaned string) Decision {
	r, ok := c.recognizers[ScriptOf(cleaned)]
	if !ok {
		return Undecided
	}
	switch r.Recognize(cleaned) {
	case LabelNone:
		return Undecided
	case LabelPerson:
		return Person
	default:
		return NotPerson
	}
}

func (c *Classifier) guessStructure(_, cleaned string) Decision {
	switch c.tagger.Tag(cleaned).Category {
	case CategoryPerson:
		return Person
	case "":
		return Undecided
	default:
		return NotPerson
	}
}
