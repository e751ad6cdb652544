package models

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators   = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts s into a URL-safe slug: accents are decomposed and
// dropped, anything outside ASCII letters, digits, underscores and hyphens is
// removed, and runs of whitespace or hyphens collapse into one hyphen.
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}

	ascii = slugInvalidChars.ReplaceAllString(strings.ToLower(ascii), "")
	ascii = slugSeparators.ReplaceAllString(strings.TrimSpace(ascii), "-")
	return strings.Trim(ascii, "-_")
}

// NewTag builds a tag from its display name.
func NewTag(name string) Tag {
	name = strings.TrimSpace(name)
	return Tag{Name: name, Slug: Slugify(name)}
}
