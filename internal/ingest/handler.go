package ingest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hiretrack-backend/internal/shared/server/respond"
)

// CorpusLoader yields the joined resume corpus for the baseline filter.
type CorpusLoader interface {
	Load() (string, error)
}

// Handler wires the scan and capture endpoints to the orchestrator.
type Handler struct {
	Svc          *Service
	Corpus       CorpusLoader
	MailScanners []Scanner
	FeedScanners []Scanner
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, corpus CorpusLoader, mail, feed []Scanner) *Handler {
	return &Handler{Svc: svc, Corpus: corpus, MailScanners: mail, FeedScanners: feed}
}

// RegisterRoutes attaches scan and capture routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/scan", h.scanMail)
	rg.POST("/feeds/scan", h.scanFeeds)
	rg.POST("/capture", h.capture)
}

func (h *Handler) scanMail(c *gin.Context) {
	h.runScan(c, h.MailScanners)
}

func (h *Handler) scanFeeds(c *gin.Context) {
	h.runScan(c, h.FeedScanners)
}

func (h *Handler) runScan(c *gin.Context, scanners []Scanner) {
	corpus, err := h.Corpus.Load()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "precondition_failed", "no resumes found", nil)
		return
	}
	summary, err := h.Svc.Scan(c.Request.Context(), scanners, corpus)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "scan failed", nil)
		return
	}
	respond.JSON(c, http.StatusOK, summary)
}

func (h *Handler) capture(c *gin.Context) {
	var req CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	// Capture works without a corpus: a missing one means a neutral
	// baseline, not a rejected posting.
	corpus, err := h.Corpus.Load()
	if err != nil {
		corpus = ""
	}

	result, err := h.Svc.Capture(c.Request.Context(), req, corpus)
	switch {
	case err == nil:
		respond.JSON(c, http.StatusOK, result)
	case errors.Is(err, ErrCaptureInvalid):
		respond.Error(c, http.StatusBadRequest, "validation_error", "url and title are required", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "capture failed", nil)
	}
}
