// Package httpapi exposes the briefing, climate, and news accessors over
// HTTP, plus the usual health, readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/climatewatch-kr/briefing-service/internal/config"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server wires the accessor handlers into a gin engine.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the router and HTTP server. In development mode the
// local data directory is additionally served under /data so the content
// store can be browsed directly.
func NewServer(cfg *config.Config, h *Handler, ready ReadinessChecker, logger *slog.Logger) *Server {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	api := r.Group("/api")
	{
		api.GET("/briefings", h.GetIndex)
		api.GET("/briefings/latest", h.GetLatest)
		api.GET("/briefings/recent", h.GetRecent)
		api.GET("/briefings/:date", h.GetBriefing)
		api.GET("/briefings/:date/periods", h.GetBriefingsByDate)
		api.GET("/climate", h.GetClimate)
		api.GET("/news", h.GetNewsIndex)
		api.GET("/news/:date", h.GetNewsDay)
	}

	r.GET("/healthz", handleHealth)
	r.GET("/readyz", handleReady(ready))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if !cfg.Production() {
		r.Static("/data", cfg.DataPath)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
