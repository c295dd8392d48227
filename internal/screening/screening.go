// Package screening implements the two-stage relevance pass over postings:
// a cheap baseline filter at ingestion time and a full qualification
// analysis afterwards, plus the text generations (cover letter, interview
// answer) that reuse the same analysis context.
package screening

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"hiretrack-backend/internal/jobs"
	"hiretrack-backend/internal/llm"
	"hiretrack-backend/internal/shared/metrics"
	"hiretrack-backend/internal/shared/telemetry"
)

// Preferences declares the candidate's location targets used by the
// baseline filter prompt. City covers any work arrangement; Region covers
// region-scoped remote roles.
type Preferences struct {
	City   string
	Region string
}

// Verdict is the baseline filter outcome for one posting.
type Verdict struct {
	Keep   bool
	Score  int
	Reason string
}

// Analysis is the structured result of a full qualification pass. Field
// tags match the payload the model is prompted to return.
type Analysis struct {
	QualificationScore int      `json:"qualification_score"`
	ShouldApply        bool     `json:"should_apply"`
	Strengths          []string `json:"strengths"`
	Gaps               []string `json:"gaps"`
	Recommendation     string   `json:"recommendation"`
	ResumeVariant      string   `json:"resume_to_use"`
}

// Service contains the relevance and generation logic.
type Service struct {
	LLM   llm.Client
	Repo  jobs.Repo
	Prefs Preferences
	Now   func() time.Time
}

// NewService constructs a Service.
func NewService(client llm.Client, repo jobs.Repo, prefs Preferences) *Service {
	return &Service{LLM: client, Repo: repo, Prefs: prefs, Now: time.Now}
}

// BaselineFilter runs the cheap keep/discard pass. It never fails: any
// transport or parse error falls back to keeping the posting with a low
// score so a flaky model cannot silently drop listings.
func (s *Service) BaselineFilter(ctx context.Context, job jobs.Candidate, corpus string) Verdict {
	var out struct {
		Keep          bool   `json:"keep"`
		BaselineScore int    `json:"baseline_score"`
		FilterReason  string `json:"filter_reason"`
	}
	if err := llm.Generate(ctx, s.LLM, baselinePrompt(job, corpus, s.Prefs), &out); err != nil {
		telemetry.Error("screening.baseline_failed", map[string]any{
			"title":   job.Title,
			"company": job.Company,
			"error":   err.Error(),
		})
		return Verdict{Keep: true, Score: 30, Reason: "filter error - kept by default"}
	}
	if out.FilterReason == "" {
		out.FilterReason = "unknown"
	}
	return Verdict{Keep: out.Keep, Score: clampScore(out.BaselineScore), Reason: out.FilterReason}
}

// FullAnalysis runs the expensive qualification pass. On failure it returns
// a zero-valued Analysis carrying the error as the recommendation instead
// of propagating.
func (s *Service) FullAnalysis(ctx context.Context, job jobs.JobRecord, corpus string) Analysis {
	var out Analysis
	if err := llm.Generate(ctx, s.LLM, analysisPrompt(job, corpus), &out); err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("screening.analysis_failed", map[string]any{
			"job_id": job.ID,
			"title":  job.Title,
			"error":  err.Error(),
		})
		return Analysis{Recommendation: err.Error()}
	}
	metrics.IncAnalysisCompleted()
	out.QualificationScore = clampScore(out.QualificationScore)
	return out
}

// AnalyzePending runs FullAnalysis over every unfiltered record that has
// no qualification score yet, serially, persisting each result as it
// lands. A record the model endorses moves to "interested"; the rest stay
// "new". Returns the number of records analyzed.
func (s *Service) AnalyzePending(ctx context.Context, corpus string) (int, error) {
	pending, err := s.Repo.ListPendingAnalysis(ctx)
	if err != nil {
		return 0, err
	}
	for _, job := range pending {
		analysis := s.FullAnalysis(ctx, job, corpus)
		payload, err := json.Marshal(analysis)
		if err != nil {
			return 0, err
		}
		status := jobs.StatusNew
		if analysis.ShouldApply {
			status = jobs.StatusInterested
		}
		upd := jobs.AnalysisUpdate{
			QualificationScore: analysis.QualificationScore,
			Analysis:           payload,
			Status:             status,
			UpdatedAt:          s.Now().UTC(),
		}
		if err := s.Repo.SetAnalysis(ctx, job.ID, upd); err != nil {
			return 0, err
		}
		telemetry.Info("screening.analyzed", map[string]any{
			"job_id":              job.ID,
			"title":               job.Title,
			"qualification_score": analysis.QualificationScore,
			"should_apply":        analysis.ShouldApply,
		})
	}
	return len(pending), nil
}

// CoverLetterFor generates and persists a cover letter for a stored record,
// feeding any prior analysis strengths into the prompt.
func (s *Service) CoverLetterFor(ctx context.Context, jobID, corpus string) (string, error) {
	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return "", err
	}
	var analysis Analysis
	if len(job.Analysis) > 0 {
		// Prior analysis is best-effort context; a corrupt blob is ignored.
		_ = json.Unmarshal(job.Analysis, &analysis)
	}
	letter, err := s.CoverLetter(ctx, job, analysis, corpus)
	if err != nil {
		return "", err
	}
	if err := s.Repo.SetCoverLetter(ctx, jobID, letter, s.Now().UTC()); err != nil {
		return "", err
	}
	return letter, nil
}

// CoverLetter generates a cover letter without touching the store.
func (s *Service) CoverLetter(ctx context.Context, job jobs.JobRecord, analysis Analysis, corpus string) (string, error) {
	response, err := s.LLM.Complete(ctx, coverLetterPrompt(job, analysis, corpus))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// InterviewAnswer generates an answer to an interview question grounded in
// the resume corpus and the job's analysis.
func (s *Service) InterviewAnswer(ctx context.Context, job jobs.JobRecord, question string, analysis Analysis, corpus string) (string, error) {
	response, err := s.LLM.Complete(ctx, answerPrompt(job, question, analysis, corpus))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
