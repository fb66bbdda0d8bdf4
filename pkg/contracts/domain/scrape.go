package domain

import (
	"time"
)

// ScrapeResult is the terminal output of a range scrape: the ordered
// event sequence, the per-page failure manifest, and the diagnostic
// counters accumulated while parsing.
type ScrapeResult struct {
	Events      []Event       `json:"events"`
	Failures    []PageFailure `json:"failures,omitempty"`
	Diagnostics Diagnostics   `json:"diagnostics"`
}

// Partial reports whether some pages failed while others succeeded.
func (r ScrapeResult) Partial() bool {
	return len(r.Failures) > 0
}

// PageFailure records one calendar page whose fetch failed. The range
// scrape continues past it; the caller decides whether to retry.
type PageFailure struct {
	URL   string    `json:"url"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Cause string    `json:"cause"`
}

// Diagnostics counts row-level issues that were absorbed rather than
// escalated. They never abort a page.
type Diagnostics struct {
	RowsSkipped   int `json:"rows_skipped"`
	ParseWarnings int `json:"parse_warnings"`
	TimeFallbacks int `json:"time_fallbacks"`
}

// Merge adds the counters of other into d.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.RowsSkipped += other.RowsSkipped
	d.ParseWarnings += other.ParseWarnings
	d.TimeFallbacks += other.TimeFallbacks
}
