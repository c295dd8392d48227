package screening

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hiretrack-backend/internal/jobs"
	"hiretrack-backend/internal/shared/server/respond"
)

// CorpusLoader yields the joined resume corpus fed into every prompt.
type CorpusLoader interface {
	Load() (string, error)
}

// Handler wires the analysis and generation endpoints to the service.
type Handler struct {
	Svc    *Service
	Corpus CorpusLoader
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, corpus CorpusLoader) *Handler {
	return &Handler{Svc: svc, Corpus: corpus}
}

// RegisterRoutes attaches analysis and generation routes to the router
// group. The analyze-instant and generate-* routes serve the browser
// extension and operate on caller-supplied job context instead of stored
// records.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyzeAll)
	rg.POST("/jobs/:id/cover-letter", h.coverLetterForJob)
	rg.POST("/analyze-instant", h.analyzeInstant)
	rg.POST("/generate-cover-letter", h.generateCoverLetter)
	rg.POST("/generate-answer", h.generateAnswer)
}

func (h *Handler) loadCorpus(c *gin.Context) (string, bool) {
	corpus, err := h.Corpus.Load()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "precondition_failed", "no resumes found", nil)
		return "", false
	}
	return corpus, true
}

func (h *Handler) analyzeAll(c *gin.Context) {
	corpus, ok := h.loadCorpus(c)
	if !ok {
		return
	}
	analyzed, err := h.Svc.AnalyzePending(c.Request.Context(), corpus)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis pass failed", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"analyzed": analyzed})
}

func (h *Handler) coverLetterForJob(c *gin.Context) {
	corpus, ok := h.loadCorpus(c)
	if !ok {
		return
	}
	letter, err := h.Svc.CoverLetterFor(c.Request.Context(), c.Param("id"), corpus)
	switch {
	case err == nil:
		respond.JSON(c, http.StatusOK, gin.H{"cover_letter": letter})
	case errors.Is(err, jobs.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "cover letter generation failed", nil)
	}
}

// jobContext is the caller-supplied posting shape used by the extension
// endpoints.
type jobContext struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

func (jc jobContext) record() jobs.JobRecord {
	company := jc.Company
	if company == "" {
		company = "Unknown"
	}
	return jobs.JobRecord{
		Title:       jc.Title,
		Company:     company,
		Location:    jc.Location,
		RawText:     jobs.Truncate(jc.Description, jobs.MaxFeedRawTextLen),
		Description: jobs.Truncate(jc.Description, jobs.MaxDescriptionLen),
	}
}

func (h *Handler) analyzeInstant(c *gin.Context) {
	var body jobContext
	if err := c.ShouldBindJSON(&body); err != nil || body.Title == "" || body.Description == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "title and description are required", nil)
		return
	}
	corpus, ok := h.loadCorpus(c)
	if !ok {
		return
	}
	job := body.record()
	analysis := h.Svc.FullAnalysis(c.Request.Context(), job, corpus)
	respond.JSON(c, http.StatusOK, gin.H{"analysis": analysis, "job": job})
}

func (h *Handler) generateCoverLetter(c *gin.Context) {
	var body struct {
		Job      jobContext `json:"job"`
		Analysis Analysis   `json:"analysis"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	corpus, ok := h.loadCorpus(c)
	if !ok {
		return
	}
	letter, err := h.Svc.CoverLetter(c.Request.Context(), body.Job.record(), body.Analysis, corpus)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "cover letter generation failed", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"cover_letter": letter})
}

func (h *Handler) generateAnswer(c *gin.Context) {
	var body struct {
		Job      jobContext `json:"job"`
		Question string     `json:"question"`
		Analysis Analysis   `json:"analysis"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Question == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "question is required", nil)
		return
	}
	corpus, ok := h.loadCorpus(c)
	if !ok {
		return
	}
	answer, err := h.Svc.InterviewAnswer(c.Request.Context(), body.Job.record(), body.Question, body.Analysis, corpus)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "answer generation failed", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"answer": answer})
}
