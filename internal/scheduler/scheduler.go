// Package scheduler wires up the cron job that periodically scans the
// configured mail and feed transports and ingests what they yield.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"hiretrack-backend/internal/ingest"
	"hiretrack-backend/internal/shared/telemetry"
)

// CorpusLoader yields the resume corpus for the baseline filter.
type CorpusLoader interface {
	Load() (string, error)
}

// Scheduler wraps robfig/cron and manages the periodic scan loop.
type Scheduler struct {
	cron     *cron.Cron
	svc      *ingest.Service
	corpus   CorpusLoader
	scanners []ingest.Scanner
	spec     string
}

// New creates a Scheduler that fires every intervalHours hours over the
// given scanners (mail and feed combined).
func New(svc *ingest.Service, corpus CorpusLoader, scanners []ingest.Scanner, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		svc:      svc,
		corpus:   corpus,
		scanners: scanners,
		spec:     fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. One scan runs
// immediately so a fresh deployment does not wait for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runScan(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	telemetry.Info("scheduler.started", map[string]any{"spec": s.spec})

	go s.runScan(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	telemetry.Info("scheduler.stopped", nil)
}

func (s *Scheduler) runScan(ctx context.Context) {
	started := time.Now()
	corpus, err := s.corpus.Load()
	if err != nil {
		telemetry.Error("scheduler.no_corpus", map[string]any{"error": err.Error()})
		return
	}

	summary, err := s.svc.Scan(ctx, s.scanners, corpus)
	if err != nil {
		telemetry.Error("scheduler.scan_failed", map[string]any{"error": err.Error()})
		return
	}
	telemetry.Info("scheduler.scan_complete", map[string]any{
		"found":       summary.Found,
		"new":         summary.New,
		"filtered":    summary.Filtered,
		"duration_ms": time.Since(started).Milliseconds(),
	})
}
