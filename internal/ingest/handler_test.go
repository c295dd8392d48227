package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"hiretrack-backend/internal/jobs"
	"hiretrack-backend/internal/sources"
)

type stubCorpus struct {
	corpus string
	err    error
}

func (s stubCorpus) Load() (string, error) { return s.corpus, s.err }

func setupIngestRouter(svc *Service, corpus CorpusLoader, mail, feed []Scanner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(svc, corpus, mail, feed).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestScanEndpoint(t *testing.T) {
	repo := jobs.NewMemoryRepo()
	svc := newTestService(&stubLLM{response: keepResponse(65)}, repo)

	mailBody := `<div><a href="https://www.linkedin.com/jobs/view/777/"><span>Backend Engineer</span></a> · Acme · Remote</div>`
	mail := []Scanner{{
		Name:    "career-network",
		Fetcher: stubFetcher{docs: []sources.Document{{Body: mailBody, Observed: testNow}}},
		Parser:  sources.CareerNetworkParser{},
	}}

	router := setupIngestRouter(svc, stubCorpus{corpus: "resume"}, mail, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var summary Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.Found != 1 || summary.New != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestScanEndpointNoResumes(t *testing.T) {
	svc := newTestService(&stubLLM{}, jobs.NewMemoryRepo())
	router := setupIngestRouter(svc, stubCorpus{err: errors.New("no resumes found")}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestFeedScanEndpointUsesFeedScanners(t *testing.T) {
	repo := jobs.NewMemoryRepo()
	svc := newTestService(&stubLLM{response: keepResponse(70)}, repo)

	feedBody := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Remote</title>
<item><title>Acme: Go Engineer</title><link>https://weworkremotely.com/remote-jobs/go-1</link></item>
</channel></rss>`
	feed := []Scanner{{
		Name:    "remote-feed",
		Fetcher: stubFetcher{docs: []sources.Document{{Body: feedBody, Observed: testNow}}},
		Parser:  sources.RemoteFeedParser{},
	}}

	router := setupIngestRouter(svc, stubCorpus{corpus: "resume"}, nil, feed)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feeds/scan", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var summary Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.New != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestCaptureEndpoint(t *testing.T) {
	repo := jobs.NewMemoryRepo()
	svc := newTestService(&stubLLM{response: keepResponse(88)}, repo)
	router := setupIngestRouter(svc, stubCorpus{err: errors.New("no resumes found")}, nil, nil)

	body, _ := json.Marshal(CaptureRequest{
		URL:         "https://jobs.example.com/postings/7",
		Title:       "Staff Engineer",
		Company:     "Example",
		Description: "Posting text.",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/capture", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var result CaptureResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Status != "created" || result.BaselineScore != 50 {
		t.Errorf("result = %+v", result)
	}

	if exists, _ := repo.Exists(context.Background(), result.JobID); !exists {
		t.Error("captured job not persisted")
	}
}

func TestCaptureEndpointValidation(t *testing.T) {
	svc := newTestService(&stubLLM{}, jobs.NewMemoryRepo())
	router := setupIngestRouter(svc, stubCorpus{corpus: "resume"}, nil, nil)

	body, _ := json.Marshal(CaptureRequest{Title: "Missing URL"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/capture", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}
