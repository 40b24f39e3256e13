package model

// YearMode says how a year partition was handled.
type YearMode string

const (
	// ModeCopied is the pass-through: no applicable fixes, bytes copied
	// unchanged.
	ModeCopied YearMode = "copied"
	// ModeMerged means the year went through the full reconciliation.
	ModeMerged YearMode = "merged"
)

// YearSummary is the per-year outcome reported after a run.
type YearSummary struct {
	Year       int
	Mode       YearMode
	Added      int // fix rows appended as genuinely new reviews
	Pruned     int // placeholder rows removed
	Backfilled int // base rows whose metascore was substituted from fixes
}
