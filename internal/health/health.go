package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rickgao/updown-monitor/internal/interval"
	"github.com/rickgao/updown-monitor/internal/version"
)

// StatusResponse is the body of GET /health.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// SlugsResponse is the body of GET /slugs.
type SlugsResponse struct {
	Current          string `json:"current"`
	Next             string `json:"next"`
	SecondsUntilNext int64  `json:"seconds_until_next"`
}

// Server is the status HTTP server.
type Server struct {
	port    int
	series  interval.Series
	now     func() time.Time
	started time.Time
	engine  *gin.Engine
	logger  *zap.Logger
}

// NewServer creates a status server listening on port. now may be nil.
func NewServer(port int, series interval.Series, now func() time.Time, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}

	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		port:    port,
		series:  series,
		now:     now,
		started: now(),
		engine:  gin.New(),
		logger:  logger,
	}
	s.engine.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.getHealth)
	s.engine.GET("/slugs", s.getSlugs)
}

// Handler returns the HTTP handler serving the status routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts down. A listener failure is logged
// and Run keeps waiting for ctx, so the endpoint never stops the monitors.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("status endpoint listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.logger.Error("status endpoint unavailable", zap.String("addr", srv.Addr), zap.Error(err))
		<-ctx.Done()
		return ctx.Err()
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown status endpoint: %w", err)
	}
	return ctx.Err()
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Status:  "ok",
		Version: version.Version,
		Uptime:  s.now().Sub(s.started).Truncate(time.Second).String(),
	})
}

func (s *Server) getSlugs(c *gin.Context) {
	now := s.now()
	c.JSON(http.StatusOK, SlugsResponse{
		Current:          s.series.CurrentSlug(now),
		Next:             s.series.NextSlug(now),
		SecondsUntilNext: int64(s.series.Until(now) / time.Second),
	})
}
