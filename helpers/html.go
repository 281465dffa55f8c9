package helpers

import (
	"html"
	"regexp"
	"strings"
)

var (
	// HTML tag patterns
	htmlTagRegex     = regexp.MustCompile(`<[^>]*>`)
	htmlCommentRegex = regexp.MustCompile(`<!--[\s\S]*?-->`)
	multiSpaceRegex  = regexp.MustCompile(`\s+`)

	// Specific tag patterns for better text extraction
	brTagRegex    = regexp.MustCompile(`<br\s*/?>`)
	blockEndRegex = regexp.MustCompile(`</(?:p|div|li|h[1-6]|blockquote|tr)>`)
)

// StripHTML removes HTML tags from a string and decodes HTML entities.
// Whitespace is collapsed to single spaces.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	// Remove comments first
	s = htmlCommentRegex.ReplaceAllString(s, "")

	// Block-level closing tags separate words
	s = blockEndRegex.ReplaceAllString(s, " ")
	s = brTagRegex.ReplaceAllString(s, " ")

	// Remove all remaining HTML tags
	s = htmlTagRegex.ReplaceAllString(s, "")

	// Decode HTML entities
	s = html.UnescapeString(s)

	return NormalizeWhitespace(s)
}

// IsHTML checks if a string appears to contain HTML markup.
func IsHTML(s string) bool {
	return htmlTagRegex.MatchString(s)
}

// NormalizeWhitespace normalizes all whitespace to single spaces and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(multiSpaceRegex.ReplaceAllString(s, " "))
}
