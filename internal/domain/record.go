package domain

import "time"

// Record is one tracked job application. The engine treats it as read-only;
// the store owns persistence and the analytics layer never mutates it.
type Record struct {
	ID       int64
	Company  string // "" = unspecified
	Industry string // "" = unspecified
	JobType  string // "" = unspecified

	// Status is the raw label as entered or imported. Use ParseStage to
	// classify it; anything unrecognized classifies as StageUnknown.
	Status string

	// CreatedAt is when the application entered the pipeline.
	CreatedAt time.Time

	// StatusChangedAt is the most recent status transition, nil if the
	// record never moved past its initial status. Upstream data may be
	// malformed (nil, or earlier than CreatedAt); consumers must tolerate
	// both.
	StatusChangedAt *time.Time

	// ApplicationDeadline is the externally set submission deadline, if any.
	ApplicationDeadline *time.Time

	// SourceID dedupes imported records (file imports, seeds).
	SourceID string
}
