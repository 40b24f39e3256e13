// Package normalize canonicalizes free-text fields before they
// participate in identity keys. The scraped feed mixes entity-encoded
// and literal punctuation, stray whitespace, and inconsistent casing;
// two spellings of the same value must never produce different keys.
package normalize

import (
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/net/html"
)

// Text decodes HTML/XML character entities to their literal characters,
// collapses every run of whitespace (newlines and tabs included) to a
// single space, trims, and lowercases. Absent input is the empty
// string. Pure function.
func Text(s string) string {
	s = html.UnescapeString(s)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Normalizer memoizes Text. Titles, publications and authors repeat
// across every review row of a movie, so each distinct raw string is
// normalized once per run. Safe for concurrent use.
type Normalizer struct {
	cache *gocache.Cache
}

// New creates a Normalizer whose cache entries live for the duration of
// one run.
func New() *Normalizer {
	return &Normalizer{cache: gocache.New(gocache.NoExpiration, 0)}
}

// Text returns the canonical form of s.
func (n *Normalizer) Text(s string) string {
	if v, found := n.cache.Get(s); found {
		return v.(string)
	}
	out := Text(s)
	n.cache.Set(s, out, gocache.NoExpiration)
	return out
}
