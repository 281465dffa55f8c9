// Package value provides loose accessors for decoded CodeMeta and CFF
// documents, where a field may hold a string, a list, an object or a number
// depending on who wrote the file.
//
// Numbers and YAML dates are coerced to text, single values are listified
// and dates are parsed to YYYY-MM-DD.
package value

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Text extracts a string from various representations.
// Handles: string, []byte, fmt.Stringer, json.Number, numeric types, nil.
// YAML-decoded CFF files yield ints and time.Time for unquoted values.
func Text(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case json.Number:
		return val.String()
	case time.Time:
		return val.Format(time.DateOnly)
	case fmt.Stringer:
		return val.String()
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		if val == float32(int32(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Listify wraps a single value in a slice. Lists pass through and nil
// becomes an empty slice.
func Listify(v any) []any {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		return val
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, m := range val {
			out[i] = m
		}
		return out
	default:
		return []any{val}
	}
}

// Map returns v as an object, or nil when it is not one.
func Map(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// First returns the first key of m holding a non-empty value.
func First(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && !IsEmpty(v) {
			return v
		}
	}
	return nil
}

// FirstText is First coerced with Text and trimmed.
func FirstText(m map[string]any, keys ...string) string {
	return strings.TrimSpace(Text(First(m, keys...)))
}

// IsEmpty reports whether v is nil, blank text or an empty collection.
func IsEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}
