package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/landing-analyzer/backend/analyzer"
	"github.com/landing-analyzer/backend/middleware"
	"github.com/landing-analyzer/backend/models"
	"github.com/landing-analyzer/backend/stats"
)

// Analyzer is the engine behind POST /api/analyze.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*analyzer.Result, error)
}

// StatsRecorder receives usage counters and serves the statistics view.
type StatsRecorder interface {
	RecordAnalysis(e stats.Event)
	RecordError()
	Summary(devMode bool) stats.Summary
}

// Deps are the collaborators of the HTTP API.
type Deps struct {
	Analyzer    Analyzer
	Stats       StatsRecorder
	RateLimiter *middleware.RateLimiter
	Logger      *slog.Logger
	DevMode     bool
	Version     string
}

// NewRouter builds the gin engine serving the API.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	h := &handler{deps: d}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler(d.Logger))
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.CORS())
	if d.Stats != nil {
		r.Use(middleware.TrackErrors(d.Stats))
	}

	r.NoRoute(func(c *gin.Context) {
		middleware.Abort(c, http.StatusNotFound, models.ErrCodeNotFound, "route not found")
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/statistics", h.statistics)

		analyze := api.Group("")
		if d.RateLimiter != nil {
			analyze.Use(d.RateLimiter.RateLimit())
		}
		analyze.POST("/analyze", h.analyze)
	}

	return r
}
