package entity

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/lehigh-university-libraries/iga/helpers"
)

var (
	bracketedRegex = regexp.MustCompile(`\(.*?\)|\[.*?\]`)
	symbolRegex    = regexp.MustCompile("[~`!@#$%^&*_+=?<>(){}|\\[\\]¡¿]")
	smartQuotes    = strings.NewReplacer("“", `"`, "”", `"`, "‘", "'", "’", "'")
)

// Clean prepares a name for classification and splitting. It removes
// markup, bracketed asides, emoji and stray symbols, drops CJK characters
// when the name also has a Latin rendering, and normalizes spacing.
func Clean(name string) string {
	name = norm.NFC.String(name)
	name = helpers.StripHTML(name)
	name = bracketedRegex.ReplaceAllString(name, "")
	if hasLatin(name) && ContainsCJK(name) {
		name = strings.Map(dropRune(isCJK), name)
	}
	name = strings.Map(dropRune(isEmoji), name)
	name = symbolRegex.ReplaceAllString(name, "")
	name = smartQuotes.Replace(name)
	name = strings.ReplaceAll(name, ".", ". ")
	return strings.Join(strings.Fields(name), " ")
}

// ContainsCJK reports whether text has any Chinese, Japanese or Korean characters.
func ContainsCJK(text string) bool {
	for _, r := range text {
		if isCJK(r) {
			return true
		}
	}
	return false
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) ||
		(r >= 0x3000 && r <= 0x303F)
}

func hasLatin(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r == 0x200D, r == 0xFE0F:
		return true
	}
	return unicode.Is(unicode.So, r)
}

func dropRune(match func(rune) bool) func(rune) rune {
	return func(r rune) rune {
		if match(r) {
			return -1
		}
		return r
	}
}
