package domain

import "github.com/google/uuid"

// SyncStatus is the terminal state of one feed's pipeline in a sync run.
type SyncStatus string

const (
	SyncSucceeded SyncStatus = "success"
	SyncFailed    SyncStatus = "failed"
	SyncSkipped   SyncStatus = "skipped"
)

// SyncResult is the per-feed outcome of a sync run. It is transient and
// never persisted.
type SyncResult struct {
	FeedID       uuid.UUID  `json:"feed_id"`
	Status       SyncStatus `json:"status"`
	ItemsAdded   int        `json:"items_added"`
	ItemsSkipped int        `json:"items_skipped"`
	Error        string     `json:"error,omitempty"`
}

// SyncReport aggregates the results of a batch sync run. Partial success is
// the expected common case: some feeds fail, the run as a whole does not.
type SyncReport struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Skipped   int          `json:"skipped"`
	Results   []SyncResult `json:"results,omitempty"`
}

// Add records one feed's result in the report.
func (r *SyncReport) Add(result SyncResult) {
	switch result.Status {
	case SyncSucceeded:
		r.Succeeded++
	case SyncFailed:
		r.Failed++
	case SyncSkipped:
		r.Skipped++
	}
	r.Results = append(r.Results, result)
}
