package entity

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"
)

// proseModel is the pretrained tagger and entity extractor shipped with
// prose. Loading it decodes several megabytes, so it is built once.
var proseModel = sync.OnceValue(func() *prose.Model {
	doc, err := prose.NewDocument("", prose.WithSegmentation(false))
	if err != nil {
		slog.Warn("loading entity model", "err", err)
		return nil
	}
	return doc.Model
})

// proseMu serializes use of the shared model.
var proseMu sync.Mutex

// Extractor returns the named entities found in text.
type Extractor func(text string) ([]prose.Entity, error)

// ModelRecognizer labels names with a trained named-entity model. A PERSON
// entity means a person; any other entity label means not a person; no
// entity at all leaves the decision to the next strategy.
type ModelRecognizer struct {
	extract  Extractor
	minWords int
	maxWords int

	mu    sync.Mutex
	cache map[string]Label
}

// NewModelRecognizer returns a recognizer backed by the prose English
// model. Names of one word, or of more than five, are not sent to it.
func NewModelRecognizer() *ModelRecognizer {
	return NewModelRecognizerWith(proseEntities)
}

// NewModelRecognizerWith returns a recognizer that uses extract in place
// of the prose model.
func NewModelRecognizerWith(extract Extractor) *ModelRecognizer {
	return &ModelRecognizer{
		extract:  extract,
		minWords: 2,
		maxWords: 5,
		cache:    make(map[string]Label),
	}
}

func (m *ModelRecognizer) Recognize(text string) Label {
	text = strings.Join(strings.Fields(text), " ")
	if n := len(strings.Fields(text)); n < m.minWords || n > m.maxWords {
		return LabelNone
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if label, ok := m.cache[text]; ok {
		return label
	}
	label := m.label(text)
	m.cache[text] = label
	return label
}

func (m *ModelRecognizer) label(text string) Label {
	entities, err := m.extract(text)
	if err != nil {
		slog.Debug("entity model failed", "text", text, "err", err)
		return LabelNone
	}
	if len(entities) == 0 {
		return LabelNone
	}
	for _, e := range entities {
		if e.Label == string(LabelPerson) {
			return LabelPerson
		}
	}
	return LabelOrg
}

func proseEntities(text string) ([]prose.Entity, error) {
	model := proseModel()
	if model == nil {
		return nil, nil
	}
	proseMu.Lock()
	defer proseMu.Unlock()
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false), prose.UsingModel(model))
	if err != nil {
		return nil, err
	}
	return doc.Entities(), nil
}
