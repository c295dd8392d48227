package jobs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hiretrack-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the jobs service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job listing/update routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.listJobs)
	rg.PATCH("/jobs/:id", h.updateJob)
}

func (h *Handler) listJobs(c *gin.Context) {
	filter := ListFilter{Status: c.Query("status")}
	if raw := c.Query("min_score"); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "min_score must be an integer", nil)
			return
		}
		filter.MinBaseline = minScore
	}

	records, stats, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list jobs", nil)
		return
	}
	if records == nil {
		records = []JobRecord{}
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"jobs":  records,
		"stats": stats,
	})
}

func (h *Handler) updateJob(c *gin.Context) {
	id := c.Param("id")
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Status == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "status is required", nil)
		return
	}

	err := h.Svc.UpdateStatus(c.Request.Context(), id, body.Status)
	switch {
	case err == nil:
		respond.JSON(c, http.StatusOK, gin.H{"success": true})
	case errors.Is(err, ErrInvalidStatus):
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown status value", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update job", nil)
	}
}
