package vocab

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/iga/hub"
)

//go:embed vocabularies/*.yaml
var embeddedVocabularies embed.FS

// Registry holds loaded vocabularies.
type Registry struct {
	vocabularies map[string]*Vocabulary
	licenseIDs   map[string]Term
	licenseURLs  map[string]Term
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry of embedded vocabularies, loaded once.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = NewRegistry()
	})
	return defaultRegistry, defaultErr
}

// NewRegistry creates a new registry with the embedded vocabularies loaded.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		vocabularies: make(map[string]*Vocabulary),
	}

	entries, err := embeddedVocabularies.ReadDir("vocabularies")
	if err != nil {
		return nil, &hub.InternalError{Op: "vocab.load", Err: err}
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := embeddedVocabularies.ReadFile("vocabularies/" + entry.Name())
		if err != nil {
			return nil, &hub.InternalError{Op: "vocab.load", Err: err}
		}

		v, err := parseVocabulary(data)
		if err != nil {
			return nil, &hub.InternalError{Op: "vocab.load " + entry.Name(), Err: err}
		}

		// Use filename without extension as vocabulary name if not set
		if v.Name == "" {
			v.Name = strings.TrimSuffix(entry.Name(), ".yaml")
		}
		r.Register(v)
	}

	return r, nil
}

// LoadVocabulary loads a vocabulary from a file path.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary file: %w", err)
	}

	return parseVocabulary(data)
}

func parseVocabulary(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing vocabulary YAML: %w", err)
	}
	return &v, nil
}

// LoadFromDirectory loads vocabularies from a directory, replacing embedded
// ones of the same name. This lets a deployment track its own server.
func (r *Registry) LoadFromDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading vocabulary directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		v, err := LoadVocabulary(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}

		if v.Name == "" {
			v.Name = strings.TrimSuffix(entry.Name(), ".yaml")
		}
		r.Register(v)
	}

	return nil
}

// Register adds a vocabulary to the registry.
func (r *Registry) Register(v *Vocabulary) {
	r.vocabularies[v.Name] = v
	if v.Name == Licenses {
		r.indexLicenses(v)
	}
}

func (r *Registry) indexLicenses(v *Vocabulary) {
	r.licenseIDs = make(map[string]Term, len(v.Terms))
	r.licenseURLs = make(map[string]Term, len(v.Terms)*2)
	for _, t := range v.Terms {
		r.licenseIDs[strings.ToLower(t.ID)] = t
		for _, u := range append([]string{t.URL}, t.URLs...) {
			if u != "" {
				r.licenseURLs[hub.NormalizeLicenseURL(u)] = t
			}
		}
	}
}

// Get retrieves a vocabulary by name.
func (r *Registry) Get(name string) (*Vocabulary, bool) {
	v, ok := r.vocabularies[name]
	return v, ok
}

// List returns all registered vocabulary names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.vocabularies))
	for name := range r.vocabularies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether id is a term of the named vocabulary.
func (r *Registry) Has(vocabulary, id string) bool {
	v, ok := r.vocabularies[vocabulary]
	if !ok {
		return false
	}
	for _, t := range v.Terms {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Match finds a term by exact id, then by title within edit distance 1.
func (r *Registry) Match(vocabulary, text string) (Term, bool) {
	v, ok := r.vocabularies[vocabulary]
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return Term{}, false
	}
	lower := strings.ToLower(text)
	for _, t := range v.Terms {
		if strings.ToLower(t.ID) == lower {
			return t, true
		}
	}
	for _, t := range v.Terms {
		if levenshtein.ComputeDistance(strings.ToLower(t.Title), lower) < 2 {
			return t, true
		}
	}
	return Term{}, false
}

// License finds a license by SPDX id or by one of its known URLs.
func (r *Registry) License(idOrURL string) (Term, bool) {
	idOrURL = strings.TrimSpace(idOrURL)
	if idOrURL == "" {
		return Term{}, false
	}
	if t, ok := r.licenseIDs[strings.ToLower(idOrURL)]; ok {
		return t, true
	}
	if strings.Contains(idOrURL, "/") {
		if t, ok := r.licenseURLs[hub.NormalizeLicenseURL(idOrURL)]; ok {
			return t, true
		}
	}
	return Term{}, false
}
