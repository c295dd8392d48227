// Package ingest drives parsed candidates through the normalize, identify,
// dedup, filter, persist pipeline and exposes the scan and capture entry
// points built on it.
package ingest

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"hiretrack-backend/internal/canonical"
	"hiretrack-backend/internal/jobs"
	"hiretrack-backend/internal/screening"
	"hiretrack-backend/internal/shared/metrics"
	"hiretrack-backend/internal/shared/telemetry"
	"hiretrack-backend/internal/sources"
)

// captureBaselineScore is assigned to captured postings when no resume
// corpus is available to run the baseline filter against.
const captureBaselineScore = 50

// Summary reports one ingestion pass. The counts are observability output,
// not control flow.
type Summary struct {
	Found    int `json:"found"`
	New      int `json:"new"`
	Filtered int `json:"filtered"`
}

// Fetcher yields raw documents from one transport (a mailbox query, a feed
// URL). Implementations own their own auth and timeouts.
type Fetcher interface {
	Fetch(ctx context.Context) ([]sources.Document, error)
}

// Scanner pairs a transport with the parser for its document shape.
type Scanner struct {
	Name    string
	Fetcher Fetcher
	Parser  sources.Parser
}

// Service is the ingestion orchestrator.
type Service struct {
	Repo   jobs.Repo
	Screen *screening.Service
	Now    func() time.Time
}

// NewService constructs a Service.
func NewService(repo jobs.Repo, screen *screening.Service) *Service {
	return &Service{Repo: repo, Screen: screen, Now: time.Now}
}

// Scan fetches and parses every scanner's documents, then ingests the
// combined candidates. A scanner whose transport or parse fails is logged
// and contributes nothing; the rest still run.
func (s *Service) Scan(ctx context.Context, scanners []Scanner, corpus string) (Summary, error) {
	scanID := uuid.NewString()
	started := time.Now()
	defer func() {
		metrics.IncScanCompleted()
		metrics.ObserveScanDurationMs(float64(time.Since(started) / time.Millisecond))
	}()

	var candidates []jobs.Candidate
	for _, sc := range scanners {
		docs, err := sc.Fetcher.Fetch(ctx)
		if err != nil {
			telemetry.Error("ingest.fetch_failed", map[string]any{
				"scan_id": scanID,
				"scanner": sc.Name,
				"error":   err.Error(),
			})
			continue
		}
		for _, doc := range docs {
			parsed, err := sc.Parser.Parse(doc)
			if err != nil {
				telemetry.Error("ingest.parse_failed", map[string]any{
					"scan_id": scanID,
					"scanner": sc.Name,
					"error":   err.Error(),
				})
				continue
			}
			candidates = append(candidates, parsed...)
		}
	}

	summary, err := s.Ingest(ctx, candidates, corpus)
	telemetry.Info("ingest.scan_completed", map[string]any{
		"scan_id":  scanID,
		"found":    summary.Found,
		"new":      summary.New,
		"filtered": summary.Filtered,
	})
	return summary, err
}

// Ingest runs the pipeline over parsed candidates. Re-sighted identities
// are skipped, not updated: the dedup gate makes repeated scans idempotent.
// The baseline filter's fallback guarantees every new candidate ends as a
// persistable record, kept or filtered.
func (s *Service) Ingest(ctx context.Context, candidates []jobs.Candidate, corpus string) (Summary, error) {
	summary := Summary{Found: len(candidates)}
	for _, cand := range candidates {
		cand.URL = canonical.NormalizeURL(cand.URL)
		if cand.URL == "" || cand.Title == "" {
			continue
		}
		id := canonical.JobKey(cand.URL, cand.Title, cand.Company)

		exists, err := s.Repo.Exists(ctx, id)
		if err != nil {
			return summary, err
		}
		if exists {
			continue
		}

		verdict := s.Screen.BaselineFilter(ctx, cand, corpus)
		created, err := s.persist(ctx, id, cand, verdict)
		if err != nil {
			return summary, err
		}
		if !created {
			continue
		}
		if verdict.Keep {
			summary.New++
			metrics.IncJobIngested()
			telemetry.Info("ingest.kept", map[string]any{
				"job_id":         id,
				"title":          cand.Title,
				"baseline_score": verdict.Score,
				"reason":         verdict.Reason,
			})
		} else {
			summary.Filtered++
			metrics.IncJobFiltered()
			telemetry.Info("ingest.filtered", map[string]any{
				"job_id":         id,
				"title":          cand.Title,
				"baseline_score": verdict.Score,
				"reason":         verdict.Reason,
			})
		}
	}
	return summary, nil
}

func (s *Service) persist(ctx context.Context, id string, cand jobs.Candidate, verdict screening.Verdict) (bool, error) {
	now := s.Now().UTC()
	postedAt := cand.PostedAt
	if postedAt.IsZero() {
		postedAt = now
	}
	rec := jobs.JobRecord{
		ID:            id,
		Title:         cand.Title,
		Company:       cand.Company,
		Location:      cand.Location,
		URL:           cand.URL,
		Source:        cand.Source,
		RawText:       cand.RawText,
		Description:   cand.Description,
		Status:        jobs.StatusNew,
		BaselineScore: verdict.Score,
		IsFiltered:    !verdict.Keep,
		CreatedAt:     now,
		UpdatedAt:     now,
		PostedAt:      postedAt,
	}
	if !verdict.Keep {
		rec.Notes = verdict.Reason
	}
	err := s.Repo.Create(ctx, rec)
	if errors.Is(err, jobs.ErrAlreadyExists) {
		// Lost the race to a concurrent scan of the same posting.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CaptureRequest is a posting pushed from the browser extension.
type CaptureRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// CaptureResult reports what the capture did.
type CaptureResult struct {
	Status        string `json:"status"`
	JobID         string `json:"job_id"`
	BaselineScore int    `json:"baseline_score,omitempty"`
}

// ErrCaptureInvalid is returned when a capture lacks a URL or title.
var ErrCaptureInvalid = errors.New("url and title are required")

// Capture ingests a single externally captured posting. An already-known
// identity only gets its description backfilled. Without a resume corpus
// the baseline filter is skipped and a neutral score assigned.
func (s *Service) Capture(ctx context.Context, req CaptureRequest, corpus string) (CaptureResult, error) {
	url := canonical.NormalizeURL(req.URL)
	if url == "" || req.Title == "" {
		return CaptureResult{}, ErrCaptureInvalid
	}
	id := canonical.JobKey(url, req.Title, req.Company)
	now := s.Now().UTC()

	description := jobs.Truncate(req.Description, jobs.MaxDescriptionLen)
	rawText := jobs.Truncate(req.Description, jobs.MaxFeedRawTextLen)

	exists, err := s.Repo.Exists(ctx, id)
	if err != nil {
		return CaptureResult{}, err
	}
	if exists {
		if err := s.Repo.FillCaptureDetails(ctx, id, description, rawText, now); err != nil {
			return CaptureResult{}, err
		}
		return CaptureResult{Status: "updated", JobID: id}, nil
	}

	location := req.Location
	if location == "" {
		location = "Remote"
	}
	cand := jobs.Candidate{
		Title:       req.Title,
		Company:     req.Company,
		Location:    location,
		URL:         url,
		Source:      detectSource(url),
		RawText:     rawText,
		Description: description,
		PostedAt:    now,
	}
	cand.Clamp()

	verdict := screening.Verdict{Keep: true, Score: captureBaselineScore, Reason: "captured without resume corpus"}
	if corpus != "" {
		verdict = s.Screen.BaselineFilter(ctx, cand, corpus)
	}
	created, err := s.persist(ctx, id, cand, verdict)
	if err != nil {
		return CaptureResult{}, err
	}
	if !created {
		return CaptureResult{Status: "updated", JobID: id}, nil
	}
	return CaptureResult{Status: "created", JobID: id, BaselineScore: verdict.Score}, nil
}

// detectSource maps a canonical URL back to the source that would have
// produced it, defaulting to external capture.
func detectSource(url string) jobs.Source {
	switch {
	case strings.Contains(url, "linkedin.com"):
		return jobs.SourceCareerNetwork
	case strings.Contains(url, "indeed.com"):
		return jobs.SourceJobBoard
	case strings.Contains(url, "weworkremotely.com"):
		return jobs.SourceRemoteFeed
	}
	return jobs.SourceExternalCapture
}
