// Package reconcile implements the per-year merge of a scraped base
// dataset with its fixes subset.
package reconcile

import (
	"metafix/internal/keys"
	"metafix/internal/model"
	"metafix/internal/normalize"
)

// Stats counts what one year's reconciliation changed.
type Stats struct {
	Backfilled int // base rows whose metascore was substituted from fixes
	Pruned     int // placeholder rows removed
	Added      int // fix rows appended as genuinely new reviews
}

// Reconcile merges the fixes for one year into that year's base
// dataset:
//
//  1. replace a missing or out-of-range [1,100] metascore with the max
//     metascore across fix rows sharing the movie key (defensive
//     against the occasional zero entry among duplicate fix rows);
//     with no valid fix value the corrupt score is cleared to absent
//  2. prune placeholder rows; they carry nothing and must not shadow a
//     real fix row by key
//  3. append fix rows whose review key is not already present,
//     preserving the fixes' internal order; rows already represented
//     are silently dropped
//  4. force release_year to the partition year on every surviving row
//
// Neither input is mutated. Appended rows are deduplicated by review
// key against the base and against each other, so reconciling a second
// time over the result appends nothing.
func Reconcile(n *normalize.Normalizer, base, fixes model.Dataset, year int) (model.Dataset, Stats) {
	var stats Stats

	// Max metascore per movie across fix rows, absent values skipped.
	// The max is substituted even when it is itself out of range: a
	// present fix value beats silently keeping the corrupt base one.
	fixMeta := make(map[string]model.OptInt)
	for _, r := range fixes {
		if !r.Metascore.Valid {
			continue
		}
		k := keys.Movie(n, r)
		if cur, ok := fixMeta[k]; !ok || r.Metascore.Value > cur.Value {
			fixMeta[k] = r.Metascore
		}
	}

	out := make(model.Dataset, 0, len(base)+len(fixes))
	seen := make(map[string]struct{}, len(base))

	for _, r := range base {
		if r.Placeholder() {
			stats.Pruned++
			continue
		}
		if m := r.Metascore; !m.Valid || m.Value < 1 || m.Value > 100 {
			// An invalid score never survives: it takes the fixes
			// group-max, which is absent when the movie has no fix row
			// carrying a valid value.
			fix, ok := fixMeta[keys.Movie(n, r)]
			r.Metascore = fix
			if ok {
				stats.Backfilled++
			}
		}
		// Keys use each row's own year, before enforcement: a base row
		// carrying a stray year is not the same review as its
		// fixed-year twin, so both survive step 3.
		seen[keys.Review(n, r)] = struct{}{}
		out = append(out, r)
	}

	for _, r := range fixes {
		k := keys.Review(n, r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
		stats.Added++
	}

	// Uniform year on the result guards against stray years carried by
	// either source. Numeric columns are already in canonical integer
	// form by construction.
	y := model.Int(year)
	for i := range out {
		out[i].ReleaseYear = y
	}
	return out, stats
}
