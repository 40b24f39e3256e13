package model

import (
	"math"
	"strconv"
	"strings"
)

// Columns is the canonical column set of the review feed, in header
// order. Readers locate these by name and discard everything else;
// writers emit exactly this order.
var Columns = []string{
	"movie_title",
	"release_year",
	"metascore",
	"critic_publication",
	"critic_author",
	"critic_score",
}

// OptInt is an integer column value that may be absent. The zero value
// is absent. Absence is distinct from zero: a movie with no aggregate
// score is not a movie scored 0.
type OptInt struct {
	Value int
	Valid bool
}

// Int returns a present OptInt.
func Int(v int) OptInt { return OptInt{Value: v, Valid: true} }

// ParseOptInt coerces a raw CSV cell to an integer value. Fractional
// input is rounded to the nearest integer ("83.6" becomes 84); anything
// non-numeric, including the empty cell, becomes absent. Coercion never
// fails — a malformed field must not abort a run.
func ParseOptInt(s string) OptInt {
	s = strings.TrimSpace(s)
	if s == "" {
		return OptInt{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return OptInt{}
	}
	return Int(int(math.Round(f)))
}

// String renders the canonical integer form: no decimal point, empty
// string when absent.
func (o OptInt) String() string {
	if !o.Valid {
		return ""
	}
	return strconv.Itoa(o.Value)
}

// Record is one critic's review of one movie release. Metascore is the
// movie's aggregate score, duplicated across all of its review rows
// within a year; CriticScore belongs to the individual review.
type Record struct {
	Title       string
	ReleaseYear OptInt
	Metascore   OptInt
	Publication string
	Author      string
	CriticScore OptInt
}

// Placeholder reports whether the row carries no review content at all:
// no publication, no author, no critic score. Emptiness is structural
// (the raw cell), not normalized.
func (r Record) Placeholder() bool {
	return r.Publication == "" && r.Author == "" && !r.CriticScore.Valid
}

// Dataset is the ordered sequence of review records for one year.
type Dataset []Record
