package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/landing-analyzer/backend/analyzer"
	"github.com/landing-analyzer/backend/middleware"
	"github.com/landing-analyzer/backend/models"
	"github.com/landing-analyzer/backend/stats"
)

type handler struct {
	deps Deps
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.deps.Version,
	})
}

func (h *handler) statistics(c *gin.Context) {
	if h.deps.Stats == nil {
		c.JSON(http.StatusOK, stats.Summary{Grades: map[string]int{}})
		return
	}
	c.JSON(http.StatusOK, h.deps.Stats.Summary(h.deps.DevMode))
}

func (h *handler) analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Abort(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "request body must be JSON with a url field")
		return
	}

	url := strings.TrimSpace(req.URL)
	if err := analyzer.ValidateURL(url); err != nil {
		middleware.Abort(c, http.StatusBadRequest, models.ErrCodeInvalidURL, err.Error())
		return
	}

	start := time.Now()
	result, err := h.deps.Analyzer.Analyze(c.Request.Context(), url)
	if err != nil {
		status, apiErr := analysisError(err)
		h.deps.Logger.Log(c.Request.Context(), logLevelFor(status), "analysis failed",
			"url", url,
			"error", apiErr,
		)
		middleware.AbortWithError(c, status, apiErr)
		return
	}

	if h.deps.Stats != nil {
		h.deps.Stats.RecordAnalysis(stats.Event{
			URL:       result.URL,
			Simulated: result.Source == analyzer.SourceSimulated,
			Grade:     string(result.Grade),
			Score:     result.FinalScore,
			Duration:  time.Since(start),
		})
	}

	c.JSON(http.StatusOK, result)
}

// analysisError maps an error returned by the analyzer to a response status
// and coded error.
func analysisError(err error) (int, *models.APIError) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusRequestTimeout, models.NewAPIError(models.ErrCodeAnalysisCancelled,
			"analysis was cancelled before it completed", err)
	}
	return http.StatusInternalServerError, models.NewAPIError(models.ErrCodeInternal,
		"failed to analyze url", err)
}

func logLevelFor(status int) slog.Level {
	if status >= http.StatusInternalServerError {
		return slog.LevelError
	}
	return slog.LevelInfo
}
