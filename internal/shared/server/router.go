package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hiretrack-backend/internal/ingest"
	"hiretrack-backend/internal/jobs"
	"hiretrack-backend/internal/screening"
	"hiretrack-backend/internal/shared/config"
	"hiretrack-backend/internal/shared/metrics"
	"hiretrack-backend/internal/shared/server/middleware"
	"hiretrack-backend/internal/shared/server/respond"
)

// RouterDeps collects the handlers the router wires up. Construction of
// the dependencies themselves happens in bootstrap.
type RouterDeps struct {
	Config    config.Config
	Jobs      *jobs.Handler
	Screening *screening.Handler
	Ingest    *ingest.Handler
}

// generationRoutes invoke the LLM per request and get a tighter bucket
// than the rest of the API.
var generationRoutes = map[string]bool{
	"/api/v1/analyze":               true,
	"/api/v1/analyze-instant":       true,
	"/api/v1/generate-cover-letter": true,
	"/api/v1/generate-answer":       true,
	"/api/v1/jobs/:id/cover-letter": true,
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "DEFAULT",
			GroupFor: func(c *gin.Context) string {
				if generationRoutes[c.FullPath()] {
					return "GENERATION"
				}
				return "DEFAULT"
			},
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT":    {Rate: 10, Burst: 20},
				"GENERATION": {Rate: 0.5, Burst: 3},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.Jobs != nil {
		deps.Jobs.RegisterRoutes(api)
	}
	if deps.Screening != nil {
		deps.Screening.RegisterRoutes(api)
	}
	if deps.Ingest != nil {
		deps.Ingest.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
