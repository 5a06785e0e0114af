package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"comment-pulse/analysis"
	"comment-pulse/internal/models"
	"comment-pulse/shared/ai"
	"comment-pulse/shared/monitoring"
	"comment-pulse/shared/storage"
	"comment-pulse/youtube"

	"github.com/gin-gonic/gin"
)

// Analyzer runs one analysis for a video URL and returns the report id.
type Analyzer interface {
	Analyze(ctx context.Context, videoURL string) (string, error)
}

// ReportFinder loads a stored report by id.
type ReportFinder interface {
	FindByID(ctx context.Context, id string) (*models.AnalysisReport, error)
}

// Server exposes the analysis pipeline over HTTP.
type Server struct {
	engine   *gin.Engine
	analyzer Analyzer
	reports  ReportFinder
	monitor  *monitoring.Monitor
}

func New(analyzer Analyzer, reports ReportFinder, monitor *monitoring.Monitor) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.Default()

	s := &Server{
		engine:   engine,
		analyzer: analyzer,
		reports:  reports,
		monitor:  monitor,
	}

	api := engine.Group("/api")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.GET("/analysis/:id", s.handleGetAnalysis)
	}
	engine.GET("/health", s.handleHealth)

	return s
}

// Handler exposes the router so main can wrap it in an http.Server with
// graceful shutdown.
func (s *Server) Handler() http.Handler {
	return s.engine
}

type analyzeRequest struct {
	VideoURL string `json:"video_url" binding:"required"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video_url is required"})
		return
	}

	start := time.Now()
	id, err := s.analyzer.Analyze(c.Request.Context(), req.VideoURL)
	if err != nil {
		s.renderAnalyzeError(c, err, time.Since(start))
		return
	}

	s.monitor.RecordSuccess(fmt.Sprintf("analyzed %s", req.VideoURL), time.Since(start))
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// renderAnalyzeError maps pipeline failures to HTTP responses.
// Credential and unexpected failures get a generic message; the details
// stay in the logs.
func (s *Server) renderAnalyzeError(c *gin.Context, err error, duration time.Duration) {
	switch {
	case errors.Is(err, youtube.ErrInvalidVideoURL):
		s.monitor.RecordPartialFailure(err, duration)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid YouTube URL. Please provide a valid YouTube video URL."})
	case errors.Is(err, analysis.ErrNoComments):
		s.monitor.RecordPartialFailure(err, duration)
		c.JSON(http.StatusNotFound, gin.H{"error": "No comments found for this video. It may be private or have comments disabled."})
	case errors.Is(err, youtube.ErrCommentsUnavailable):
		s.monitor.RecordPartialFailure(err, duration)
		c.JSON(http.StatusBadGateway, gin.H{"error": "The comment provider rejected the request. Please try again later."})
	case errors.Is(err, analysis.ErrNothingClassified):
		s.monitor.RecordPartialFailure(err, duration)
		c.JSON(http.StatusBadGateway, gin.H{"error": "We couldn't classify any comments for this video. Please try again later."})
	case errors.Is(err, ai.ErrInvalidAPIKey):
		s.monitor.RecordCriticalFailure(err, duration)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "There's an issue with our sentiment analysis service. Please try again later or contact support."})
	default:
		s.monitor.RecordCriticalFailure(err, duration)
		log.Printf("Unexpected analysis error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred during analysis. Please try again."})
	}
}

func (s *Server) handleGetAnalysis(c *gin.Context) {
	report, err := s.reports.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
			return
		}
		log.Printf("Failed to fetch analysis %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while fetching the analysis"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.monitor.IsHealthy() {
		c.String(http.StatusOK, "OK - %s", s.monitor.GetStatusSummary())
		return
	}
	c.String(http.StatusServiceUnavailable, "Service unhealthy - %s", s.monitor.GetStatusSummary())
}
