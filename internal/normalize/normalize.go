// Package normalize provides utilities for normalizing and sanitizing data.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// luceneSpecials matches characters with query-syntax meaning in Lucene.
//
//nolint:gochecknoglobals // Static compiled pattern
var luceneSpecials = regexp.MustCompile(`[+\-!(){}\[\]^"~*?:\\/]`)

// foldDiacritics decomposes and strips combining marks: "Brontë" -> "Bronte".
//
//nolint:gochecknoglobals // Static transformer chain
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// DedupeKey derives the grouping key used to collapse near-duplicate
// editions of the same work. It prefers the series-free title, lowercases,
// and cuts subtitle markers so "Foo: A Memoir" and "foo" collapse together.
// When no usable title survives, the book's own ID is returned so the
// entry dedupes only against itself.
func DedupeKey(title, titleClean, bookID string) string {
	base := titleClean
	if base == "" {
		base = title
	}

	key := strings.TrimSpace(strings.ToLower(base))
	key = stripSubtitle(key, ":")
	key = stripSubtitle(key, " - ")
	key = stripSubtitle(key, "(")
	key = strings.TrimSpace(key)

	if folded, _, err := transform.String(foldDiacritics, key); err == nil {
		key = folded
	}

	if key == "" {
		return bookID
	}
	return key
}

// stripSubtitle cuts s at the first occurrence of sep, but only when the
// separator is not the leading character. A title that starts with the
// marker (e.g. "(untitled)") is kept whole.
func stripSubtitle(s, sep string) string {
	if idx := strings.Index(s, sep); idx > 0 {
		return s[:idx]
	}
	return s
}

// Query strips characters with Lucene query-syntax meaning from raw user
// input so it can be passed safely to a full-text index. Specials become
// spaces and runs of whitespace collapse.
func Query(raw string) string {
	s := sanitizeString(raw)
	s = luceneSpecials.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// sanitizeString removes null bytes from strings, which can cause
// issues in databases and JSON parsing. Scraped corpus dumps occasionally
// carry null terminators inside string fields.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 { // null byte
			return -1 // drop it
		}
		return r
	}, s)
}
