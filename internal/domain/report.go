package domain

import "time"

// CrawlReport summarizes a single catch-up pass over one source.
type CrawlReport struct {
	// Source is the adapter name the pass ran against.
	Source string `json:"source"`
	// RunID correlates all log lines of the pass.
	RunID string `json:"run_id"`
	// PagesFetched counts index pages requested.
	PagesFetched int `json:"pages_fetched"`
	// Inserted counts articles written to the store.
	Inserted int `json:"inserted"`
	// SkippedExisting counts items already present by source URL.
	SkippedExisting int `json:"skipped_existing"`
	// SkippedUnqualified counts items filtered out before extraction,
	// e.g. wrong-language titles on a mixed-language index.
	SkippedUnqualified int `json:"skipped_unqualified"`
	// SkippedFailed counts items dropped after a parse or insert failure.
	SkippedFailed int `json:"skipped_failed"`
	// Remaining is the backlog left on index-offset sources, zero otherwise.
	Remaining int `json:"remaining"`
	// Elapsed is the wall-clock duration of the pass.
	Elapsed time.Duration `json:"elapsed"`
}
