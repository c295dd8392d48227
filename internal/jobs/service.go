package jobs

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidStatus is returned when a status update names an unknown state.
var ErrInvalidStatus = errors.New("invalid status")

// Stats summarizes the unfiltered portion of the store for the dashboard.
type Stats struct {
	Total      int     `json:"total"`
	New        int     `json:"new"`
	Interested int     `json:"interested"`
	Applied    int     `json:"applied"`
	AvgScore   float64 `json:"avg_score"`
}

// Service contains read/update logic for job records.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service with a real clock.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

// List returns unfiltered records matching the filter, ranked by weighted
// score, plus dashboard stats over all unfiltered records.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]JobRecord, Stats, error) {
	records, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, Stats{}, err
	}
	RankByWeightedScore(records, s.Now())

	all := records
	if filter.Status != "" || filter.MinBaseline > 0 {
		all, err = s.Repo.List(ctx, ListFilter{})
		if err != nil {
			return nil, Stats{}, err
		}
	}
	return records, computeStats(all), nil
}

// UpdateStatus applies a user-driven status change.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.Repo.UpdateStatus(ctx, id, status, s.Now())
}

// Get returns a record by ID.
func (s *Service) Get(ctx context.Context, id string) (JobRecord, error) {
	return s.Repo.GetByID(ctx, id)
}

func computeStats(records []JobRecord) Stats {
	stats := Stats{Total: len(records)}
	sum := 0
	for _, rec := range records {
		switch rec.Status {
		case StatusNew:
			stats.New++
		case StatusInterested:
			stats.Interested++
		case StatusApplied:
			stats.Applied++
		}
		sum += rec.BaselineScore
	}
	if stats.Total > 0 {
		stats.AvgScore = float64(sum) / float64(stats.Total)
	}
	return stats
}
