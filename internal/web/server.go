// Package web serves the focus timer, routine ledger and analytics as a
// local JSON API.
package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/alexanderramin/fluxion/internal/service"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	focus    service.FocusService
	routines service.RoutineService
	stats    service.StatsService
	logger   *slog.Logger
	router   *gin.Engine

	// mu serializes requests; the timer engine is single-writer.
	mu sync.Mutex
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewServer(focus service.FocusService, routines service.RoutineService, stats service.StatsService, opts ...Option) *Server {
	s := &Server{
		focus:    focus,
		routines: routines,
		stats:    stats,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests(), s.serialize())
	s.router = router
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.Group("/api")
	{
		api.GET("/timer", s.handleTimer)
		api.POST("/timer/start", s.handleTimerStart)
		api.POST("/timer/pause", s.handleTimerPause)
		api.POST("/timer/resume", s.handleTimerResume)
		api.POST("/timer/stop", s.handleTimerStop)
		api.POST("/timer/extend", s.handleTimerExtend)

		api.GET("/routine/blocks", s.handleBlocks)
		api.POST("/routine/blocks", s.handleBlockCreate)
		api.DELETE("/routine/blocks/:id", s.handleBlockDelete)
		api.GET("/routine/tasks", s.handleTasks)
		api.POST("/routine/toggle", s.handleToggle)
		api.GET("/streak", s.handleStreak)

		api.GET("/analytics/daily", s.handleDaily)
		api.GET("/analytics/categories", s.handleCategories)
		api.GET("/analytics/totals", s.handleTotals)
		api.GET("/analytics/heatmap", s.handleHeatmap)
		api.GET("/analytics/goal", s.handleGoal)
		api.GET("/analytics/overview", s.handleOverview)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) serialize() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("api request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
