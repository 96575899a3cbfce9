package domain

import "time"

// PostFailure records why a post was not archived (or failed verification).
type PostFailure struct {
	PostID int64  `json:"post_id"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// RunSummary is the outcome of one archive run.
type RunSummary struct {
	ID               int64         `json:"id"`
	StartedAt        time.Time     `json:"started_at"`
	FinishedAt       time.Time     `json:"finished_at"`
	Discovered       int           `json:"discovered"`
	AlreadyArchived  int           `json:"already_archived"`
	ToArchive        int           `json:"to_archive"`
	Archived         int           `json:"archived"`
	Failed           int           `json:"failed"`
	SkippedDocuments int           `json:"skipped_documents"`
	Interrupted      bool          `json:"interrupted,omitempty"` // cancelled before every post was processed
	Failures         []PostFailure `json:"failures,omitempty"`
}

func (s *RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// VerifyReport lists integrity problems found in the local archive.
type VerifyReport struct {
	Checked          int           `json:"checked"`
	SkippedDocuments int           `json:"skipped_documents"`
	Faults           []PostFailure `json:"faults,omitempty"`
}

func (r *VerifyReport) OK() bool {
	return len(r.Faults) == 0 && r.SkippedDocuments == 0
}
