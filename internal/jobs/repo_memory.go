package jobs

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database
// is configured (dev mode) and by tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]JobRecord
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]JobRecord)}
}

// Create inserts a record, refusing identity collisions.
func (r *MemoryRepo) Create(ctx context.Context, rec JobRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[rec.ID]; ok {
		return ErrAlreadyExists
	}
	r.data[rec.ID] = rec
	return nil
}

// Exists reports whether an identity is persisted.
func (r *MemoryRepo) Exists(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.data[id]
	return ok, nil
}

// GetByID returns a record by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (JobRecord, error) {
	if err := ctx.Err(); err != nil {
		return JobRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.data[id]
	if !ok {
		return JobRecord{}, ErrNotFound
	}
	return rec, nil
}

// List returns records matching the filter. Filtered records are excluded
// unless IncludeAll is set.
func (r *MemoryRepo) List(ctx context.Context, filter ListFilter) ([]JobRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]JobRecord, 0, len(r.data))
	for _, rec := range r.data {
		if rec.IsFiltered && !filter.IncludeAll {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.MinBaseline > 0 && rec.BaselineScore < filter.MinBaseline {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// ListPendingAnalysis returns kept records still awaiting the full pass.
func (r *MemoryRepo) ListPendingAnalysis(ctx context.Context) ([]JobRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []JobRecord
	for _, rec := range r.data {
		if !rec.IsFiltered && rec.QualificationScore == 0 {
			out = append(out, rec)
		}
	}
	return out, nil
}

// UpdateStatus sets the status for a record.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, id, status string, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	rec.Status = status
	rec.UpdatedAt = now
	r.data[id] = rec
	return nil
}

// SetAnalysis records the full-analysis outcome.
func (r *MemoryRepo) SetAnalysis(ctx context.Context, id string, upd AnalysisUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	rec.QualificationScore = upd.QualificationScore
	rec.Analysis = upd.Analysis
	if upd.Status != "" {
		rec.Status = upd.Status
	}
	rec.UpdatedAt = upd.UpdatedAt
	r.data[id] = rec
	return nil
}

// SetCoverLetter stores a generated cover letter.
func (r *MemoryRepo) SetCoverLetter(ctx context.Context, id, coverLetter string, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	rec.CoverLetter = coverLetter
	rec.UpdatedAt = now
	r.data[id] = rec
	return nil
}

// FillCaptureDetails backfills description/raw text when they are empty.
func (r *MemoryRepo) FillCaptureDetails(ctx context.Context, id, description, rawText string, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	if rec.Description == "" {
		rec.Description = description
		rec.RawText = rawText
		rec.UpdatedAt = now
		r.data[id] = rec
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
