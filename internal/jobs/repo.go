package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when no record matches the given ID.
var ErrNotFound = errors.New("job not found")

// ErrAlreadyExists is returned by Create when the identity is already
// persisted. It is the atomic backstop for the read-then-write dedup gate:
// two concurrent ingestions of the same posting resolve to one row.
var ErrAlreadyExists = errors.New("job already exists")

// ListFilter narrows List results. Zero values mean "no constraint".
type ListFilter struct {
	Status      string
	MinBaseline int
	IncludeAll  bool // include filtered records (audit views)
}

// AnalysisUpdate carries the outcome of a full-analysis pass.
type AnalysisUpdate struct {
	QualificationScore int
	Analysis           json.RawMessage
	Status             string
	UpdatedAt          time.Time
}

// Repo defines persistence for job records, keyed by content identity.
type Repo interface {
	// Create inserts a record, failing with ErrAlreadyExists on an
	// identity collision instead of overwriting anything.
	Create(ctx context.Context, rec JobRecord) error
	Exists(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (JobRecord, error)
	List(ctx context.Context, filter ListFilter) ([]JobRecord, error)
	// ListPendingAnalysis returns unfiltered records that have no
	// qualification score yet.
	ListPendingAnalysis(ctx context.Context) ([]JobRecord, error)
	UpdateStatus(ctx context.Context, id, status string, now time.Time) error
	SetAnalysis(ctx context.Context, id string, upd AnalysisUpdate) error
	SetCoverLetter(ctx context.Context, id, coverLetter string, now time.Time) error
	// FillCaptureDetails backfills description/raw text on an existing
	// record without touching status or scores.
	FillCaptureDetails(ctx context.Context, id, description, rawText string, now time.Time) error
}
