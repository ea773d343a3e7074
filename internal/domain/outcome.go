package domain

import "time"

// CheckRequest asks for one reachability probe against one link.
type CheckRequest struct {
	ID      string
	URL     string
	Timeout time.Duration
}

// Outcome is the result of exactly one CheckRequest.
type Outcome struct {
	ID         string
	URL        string
	Reachable  bool
	Reason     string
	StatusCode int
	Elapsed    time.Duration
}

// OutcomeSet maps a link identity to its outcome. A completed dispatch
// produces exactly one entry per issued request.
type OutcomeSet map[string]Outcome

// RunSummary aggregates the result of one cleaning run.
type RunSummary struct {
	Checked   int
	Reachable int
	Dead      int
	Missing   int
	Elapsed   time.Duration
}

// RunRecord is what the report store persists about one run.
type RunRecord struct {
	StartedAt time.Time
	Source    string
	Summary   RunSummary
}
