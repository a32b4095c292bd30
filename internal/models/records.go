// Package models defines the record types shared between the scan driver,
// the reporters, and the run-history store.
package models

import "time"

// OutcomeCode identifies the terminal state a scanned path reached.
type OutcomeCode string

const (
	// OutcomeMatched means the listed content contained the keyword.
	OutcomeMatched OutcomeCode = "matched"

	// OutcomeClean means the path was fully processed without a match.
	OutcomeClean OutcomeCode = "clean"

	// OutcomeSkipped means the path was already present in the ledger.
	OutcomeSkipped OutcomeCode = "skipped"

	// OutcomeMissing means the path did not exist or was the wrong type.
	OutcomeMissing OutcomeCode = "missing"

	// OutcomeFailed means listing or reading the path failed.
	OutcomeFailed OutcomeCode = "failed"
)

// Match records a file whose listing or content contained the keyword.
// Lines holds every matching line, in file order.
type Match struct {
	Path  string
	Lines []string
}

// RunSummary aggregates the outcome counts of one scan run.
// It is logged at the end of a run and persisted to the history store.
type RunSummary struct {
	RunID      string
	Keyword    string
	StartedAt  time.Time
	FinishedAt time.Time
	Processed  int
	Matched    int
	Skipped    int
	Missing    int
	Failed     int
}

// Duration returns the wall-clock time the run took.
func (s RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
