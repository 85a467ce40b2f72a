// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the pipeline over HTTP with gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/repurpose-engine/internal/pipeline"
	"github.com/pdiddy/repurpose-engine/internal/score"
	"github.com/pdiddy/repurpose-engine/pkg/types"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"

	minQueryLen        = 2
	explorerMaxRecords = 12
	diagnosticsMax     = 10
	diagnosticsDrug    = "metformin"
	shutdownTimeout    = 30 * time.Second
)

// Server is the HTTP transport. Each request runs its own pipeline pass;
// only the guarded sources and metrics are shared between requests.
type Server struct {
	cfg        types.ServerConfig
	pipeline   *pipeline.Pipeline
	metrics    *Metrics
	logger     *logrus.Logger
	router     *gin.Engine
	maxRecords int
}

// New builds the router. maxRecords is the default per-source cap for
// /repurpose, /treat, and /analyze.
func New(cfg types.ServerConfig, p *pipeline.Pipeline, m *Metrics, logger *logrus.Logger, maxRecords int) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if m == nil {
		m = NewMetrics()
	}
	if maxRecords <= 0 {
		maxRecords = pipeline.DefaultMaxRecords
	}

	if logger.GetLevel() >= logrus.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(accessLogMiddleware(logger))

	s := &Server{
		cfg:        cfg,
		pipeline:   p,
		metrics:    m,
		logger:     logger,
		router:     router,
		maxRecords: maxRecords,
	}
	s.setupRoutes()
	return s
}

// Handler returns the router for use with httptest or a custom server.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", srv.Addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/repurpose", s.handleRepurpose)
	s.router.POST("/analyze", s.handleAnalyze)
	s.router.GET("/treat", s.handleTreat)
	s.router.GET("/explorer", s.handleExplorer)
	s.router.GET("/diagnostics", s.handleDiagnostics)
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRepurpose(c *gin.Context) {
	drug, ok := requiredQuery(c, "drug")
	if !ok {
		return
	}
	max, ok := intQuery(c, "max_records", s.maxRecords)
	if !ok {
		return
	}
	s.repurpose(c, drug, max)
}

type analyzeRequest struct {
	Drug       string `json:"drug" binding:"required,min=2"`
	MaxRecords int    `json:"max_records"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.MaxRecords == 0 {
		req.MaxRecords = s.maxRecords
	}
	s.repurpose(c, req.Drug, req.MaxRecords)
}

func (s *Server) repurpose(c *gin.Context, drug string, max int) {
	res, err := s.pipeline.Run(c.Request.Context(), pipeline.Request{
		Query:      drug,
		Mode:       pipeline.ModeDisease,
		MaxRecords: max,
	})
	if err != nil {
		s.runFailed(c, err)
		return
	}

	out := repurposeResponse{Drug: drug, Opportunities: make([]opportunity, 0, len(res.Entities))}
	for _, e := range res.Entities {
		out.Opportunities = append(out.Opportunities, opportunity{
			Disease:    e.Name,
			Summary:    e.Summary,
			Confidence: score.Round2(e.Confidence),
			Sources:    e.Sources,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleTreat(c *gin.Context) {
	condition, ok := requiredQuery(c, "condition")
	if !ok {
		return
	}
	max, ok := intQuery(c, "max_records", s.maxRecords)
	if !ok {
		return
	}
	minYear, ok := intQuery(c, "min_year", 0)
	if !ok {
		return
	}
	minPhase, err := pipeline.ParseMinPhase(c.DefaultQuery("min_phase", "any"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	res, err := s.pipeline.Run(c.Request.Context(), pipeline.Request{
		Query:      condition,
		Mode:       pipeline.ModeDrug,
		MaxRecords: max,
		MinPhase:   minPhase,
		MinYear:    minYear,
	})
	if err != nil {
		s.runFailed(c, err)
		return
	}

	out := treatResponse{Condition: condition, Treatments: make([]treatment, 0, len(res.Entities))}
	for _, e := range res.Entities {
		out.Treatments = append(out.Treatments, treatment{
			Medicine:   e.Name,
			Summary:    e.Summary,
			Confidence: score.Round2(e.Confidence),
			Sources:    e.Sources,
			Metrics: treatmentMetrics{
				Trials:       e.Counts.Trials,
				Publications: e.Counts.Literature,
				TopPhase:     e.TopPhase,
			},
			Rationale: e.Rationale,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleExplorer(c *gin.Context) {
	condition, ok := requiredQuery(c, "condition")
	if !ok {
		return
	}
	max, ok := intQuery(c, "max_records", explorerMaxRecords)
	if !ok {
		return
	}

	res, err := s.pipeline.Run(c.Request.Context(), pipeline.Request{
		Query:        condition,
		Mode:         pipeline.ModeDrug,
		MaxRecords:   max,
		WithAdvisory: true,
	})
	if err != nil {
		s.runFailed(c, err)
		return
	}

	out := explorerResponse{Condition: condition, Items: make([]explorerItem, 0, len(res.Entities))}
	for _, e := range res.Entities {
		item := explorerItem{
			Medicine:   e.Name,
			Condition:  condition,
			Summary:    e.Summary,
			Confidence: score.Round2(e.Confidence),
			Sources:    e.Sources,
		}
		if e.Advisory != nil {
			item.Market = e.Advisory.Market
			item.Patent = e.Advisory.Patent
			item.Regulatory = e.Advisory.Regulatory
		}
		out.Items = append(out.Items, item)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleDiagnostics(c *gin.Context) {
	drug := c.DefaultQuery("drug", diagnosticsDrug)
	max, ok := intQuery(c, "max_records", diagnosticsMax)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.pipeline.Diagnose(c.Request.Context(), drug, max))
}

func (s *Server) runFailed(c *gin.Context, err error) {
	s.logger.WithFields(logrus.Fields{
		requestIDKey: c.GetString(requestIDKey),
		"error":      err.Error(),
	}).Warn("pipeline run aborted")
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request cancelled"})
}

// requiredQuery reads a query parameter of at least minQueryLen
// characters, writing a 400 response when it is missing or too short.
func requiredQuery(c *gin.Context, name string) (string, bool) {
	v := c.Query(name)
	if utf8.RuneCountInString(v) < minQueryLen {
		badRequest(c, fmt.Sprintf("query parameter %q must be at least %d characters", name, minQueryLen))
		return "", false
	}
	return v, true
}

// intQuery reads an optional integer query parameter.
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, fmt.Sprintf("query parameter %q must be an integer", name))
		return 0, false
	}
	return v, true
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, "+requestIDHeader)
		c.Header("Access-Control-Expose-Headers", requestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		c.Set(requestIDKey, requestID)
		c.Next()
	}
}

func accessLogMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			requestIDKey: c.GetString(requestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		}).Info("http request")
	}
}
