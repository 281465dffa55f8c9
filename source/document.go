package source

import (
	"sort"
	"strings"
	"sync"

	"github.com/lehigh-university-libraries/iga/value"
)

// Document is a parsed metadata file. It records which top-level keys were
// read so unmapped terms can be reported afterward. A nil *Document behaves
// as an empty one.
type Document struct {
	name string
	data map[string]any

	mu   sync.Mutex
	read map[string]bool
}

// NewDocument wraps parsed data. The name prefixes unread keys in reports.
func NewDocument(name string, data map[string]any) *Document {
	return &Document{name: name, data: data, read: make(map[string]bool)}
}

// Name returns the document name.
func (d *Document) Name() string {
	if d == nil {
		return ""
	}
	return d.name
}

// Present reports whether the document holds any data.
func (d *Document) Present() bool {
	return d != nil && len(d.data) > 0
}

// Get returns the value for key and marks the key as read.
func (d *Document) Get(key string) any {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	d.read[key] = true
	d.mu.Unlock()
	return d.data[key]
}

// Has reports whether key holds a non-empty value, marking it as read.
func (d *Document) Has(key string) bool {
	return !value.IsEmpty(d.Get(key))
}

// Text returns the value for key as trimmed text.
func (d *Document) Text(key string) string {
	return strings.TrimSpace(value.Text(d.Get(key)))
}

// List returns the value for key as a list.
func (d *Document) List(key string) []any {
	return value.Listify(d.Get(key))
}

// Keys returns the top-level keys in sorted order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.data))
	for k := range d.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// structural keys never count as unmapped
var structural = map[string]bool{
	"@context":    true,
	"@type":       true,
	"@id":         true,
	"$schema":     true,
	"cff-version": true,
	"message":     true,
}

// Unread returns the non-empty top-level entries nobody read.
func (d *Document) Unread() map[string]any {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[string]any)
	for k, v := range d.data {
		if d.read[k] || structural[k] || value.IsEmpty(v) {
			continue
		}
		out[k] = v
	}
	return out
}
