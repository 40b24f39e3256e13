// Package keys derives record identity for the merge.
//
// Identity is textual. A movie is its normalized title plus release
// year; a review adds publication, author and critic score. Distinct
// movies sharing a normalized title and year therefore collide — the
// feed carries no better identifier, and the collision is accepted
// rather than guessed around with fuzzy matching.
package keys

import (
	"strconv"

	"metafix/internal/model"
	"metafix/internal/normalize"
)

// Sep joins key fields. It is part of the key contract: source text
// containing a literal pipe would alias another key, a limitation of
// the same order as the title+year identity itself.
const Sep = "|"

// yearNA marks an absent release year inside a key. Canonical integer
// rendering can never produce it, so "no year" never equals a real
// year.
const yearNA = "<na>"

func yearToken(y model.OptInt) string {
	if !y.Valid {
		return yearNA
	}
	return strconv.Itoa(y.Value)
}

// Movie returns the movie-level identity key: normalized title + year.
// Rows with equal movie keys denote the same movie release.
func Movie(n *normalize.Normalizer, r model.Record) string {
	return n.Text(r.Title) + Sep + yearToken(r.ReleaseYear)
}

// Review returns the review-level identity key: movie key + normalized
// publication + normalized author + critic score. An absent score
// renders empty, which no real score renders as, so a missing score
// never matches a literal one.
func Review(n *normalize.Normalizer, r model.Record) string {
	return Movie(n, r) + Sep + n.Text(r.Publication) + Sep + n.Text(r.Author) + Sep + r.CriticScore.String()
}
