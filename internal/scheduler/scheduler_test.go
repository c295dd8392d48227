package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"hiretrack-backend/internal/ingest"
	"hiretrack-backend/internal/jobs"
	"hiretrack-backend/internal/screening"
	"hiretrack-backend/internal/sources"
)

type stubLLM struct{}

func (stubLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return `{"keep": true, "baseline_score": 60, "filter_reason": "kept"}`, nil
}

type stubCorpus struct {
	corpus string
	err    error
}

func (s stubCorpus) Load() (string, error) { return s.corpus, s.err }

type stubFetcher struct {
	docs []sources.Document
}

func (s stubFetcher) Fetch(ctx context.Context) ([]sources.Document, error) {
	return s.docs, nil
}

func TestRunScanIngests(t *testing.T) {
	repo := jobs.NewMemoryRepo()
	screen := screening.NewService(stubLLM{}, repo, screening.Preferences{})
	svc := ingest.NewService(repo, screen)

	body := `<div><a href="https://www.linkedin.com/jobs/view/42/"><span>Backend Engineer</span></a> · Acme · Remote</div>`
	scanners := []ingest.Scanner{{
		Name:    "career-network",
		Fetcher: stubFetcher{docs: []sources.Document{{Body: body, Observed: time.Now()}}},
		Parser:  sources.CareerNetworkParser{},
	}}

	s := New(svc, stubCorpus{corpus: "resume"}, scanners, 6)
	s.runScan(context.Background())

	records, err := repo.List(context.Background(), jobs.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestRunScanSkipsWithoutCorpus(t *testing.T) {
	repo := jobs.NewMemoryRepo()
	screen := screening.NewService(stubLLM{}, repo, screening.Preferences{})
	svc := ingest.NewService(repo, screen)

	s := New(svc, stubCorpus{err: errors.New("no resumes found")}, nil, 6)
	s.runScan(context.Background())

	records, err := repo.List(context.Background(), jobs.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := New(nil, stubCorpus{}, nil, 6)
	s.spec = "not a spec"
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
	s.Stop()
}
