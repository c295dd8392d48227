package screening

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
)

type stubCorpus struct {
	corpus string
	err    error
}

func (s stubCorpus) Load() (string, error) { return s.corpus, s.err }

func setupScreeningRouter(client *stubClient, repo jobs.Repo, corpus CorpusLoader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(newTestService(client, repo), corpus)
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestAnalyzeEndpoint(t *testing.T) {
	repo := jobs.NewMemoryRepo()
	if err := repo.Create(context.Background(), jobs.JobRecord{ID: "j1", Title: "Engineer", Status: jobs.StatusNew}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	client := &stubClient{response: `{"qualification_score": 75, "should_apply": false, "recommendation": "Maybe"}`}
	router := setupScreeningRouter(client, repo, stubCorpus{corpus: "resume"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Analyzed int `json:"analyzed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Analyzed != 1 {
		t.Errorf("analyzed = %d, want 1", out.Analyzed)
	}
}

func TestAnalyzeEndpointNoResumes(t *testing.T) {
	router := setupScreeningRouter(&stubClient{}, jobs.NewMemoryRepo(), stubCorpus{err: errors.New("no resumes found")})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestCoverLetterEndpoint(t *testing.T) {
	repo := jobs.NewMemoryRepo()
	if err := repo.Create(context.Background(), jobs.JobRecord{ID: "j1", Title: "Engineer", Company: "Acme"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	client := &stubClient{response: "Dear Acme team,"}
	router := setupScreeningRouter(client, repo, stubCorpus{corpus: "resume"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/j1/cover-letter", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var out struct {
		CoverLetter string `json:"cover_letter"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.CoverLetter != "Dear Acme team," {
		t.Errorf("cover letter = %q", out.CoverLetter)
	}

	stored, _ := repo.GetByID(context.Background(), "j1")
	if stored.CoverLetter != "Dear Acme team," {
		t.Errorf("stored letter = %q", stored.CoverLetter)
	}
}

func TestCoverLetterEndpointNotFound(t *testing.T) {
	router := setupScreeningRouter(&stubClient{response: "letter"}, jobs.NewMemoryRepo(), stubCorpus{corpus: "resume"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/missing/cover-letter", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
}

func TestAnalyzeInstantEndpoint(t *testing.T) {
	client := &stubClient{response: `{"qualification_score": 90, "should_apply": true, "strengths": ["Go"], "recommendation": "Apply"}`}
	router := setupScreeningRouter(client, jobs.NewMemoryRepo(), stubCorpus{corpus: "resume"})

	body, _ := json.Marshal(map[string]string{
		"title":       "Backend Engineer",
		"description": "Build Go services at scale.",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-instant", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Analysis Analysis       `json:"analysis"`
		Job      jobs.JobRecord `json:"job"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Analysis.QualificationScore != 90 {
		t.Errorf("score = %d", out.Analysis.QualificationScore)
	}
	if out.Job.Company != "Unknown" {
		t.Errorf("company = %q, want Unknown default", out.Job.Company)
	}
}

func TestAnalyzeInstantEndpointValidation(t *testing.T) {
	router := setupScreeningRouter(&stubClient{}, jobs.NewMemoryRepo(), stubCorpus{corpus: "resume"})

	body, _ := json.Marshal(map[string]string{"title": "Engineer"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-instant", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestGenerateAnswerEndpoint(t *testing.T) {
	client := &stubClient{response: "In my last role I led the incident response."}
	router := setupScreeningRouter(client, jobs.NewMemoryRepo(), stubCorpus{corpus: "resume"})

	body, _ := json.Marshal(map[string]any{
		"question": "Tell me about a production incident.",
		"job":      map[string]string{"title": "SRE", "company": "Acme"},
		"analysis": map[string]any{"strengths": []string{"on-call"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-answer", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Answer == "" {
		t.Error("expected an answer")
	}
}

func TestGenerateAnswerEndpointRequiresQuestion(t *testing.T) {
	router := setupScreeningRouter(&stubClient{}, jobs.NewMemoryRepo(), stubCorpus{corpus: "resume"})

	body, _ := json.Marshal(map[string]any{"job": map[string]string{"title": "SRE"}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-answer", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}
