// Package httpapi serves game sessions over HTTP, with a websocket stream of
// every session's events.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jejutic/tg_vampires/pkg/config"
	"github.com/jejutic/tg_vampires/pkg/logger"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router *gin.Engine
	http   *http.Server

	sessionHandler *SessionHandler
}

// New creates a new Server serving the sessions of store.
func New(cfg *config.Config, log *slog.Logger, store *Store) *Server {
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	log = logger.WithComponent(log, "http")
	s := &Server{
		cfg:            cfg,
		log:            log,
		router:         gin.New(),
		sessionHandler: NewSessionHandler(store, cfg.Game.Premium, log),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Recovery first to catch all panics
	s.router.Use(Recovery(s.log))
	s.router.Use(RequestID())
	s.router.Use(Logging(s.log))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.sessionHandler.Health)

	v1 := s.router.Group("/v1")
	{
		v1.POST("/sessions", s.sessionHandler.Create)
		v1.GET("/sessions/:id", s.sessionHandler.Get)
		v1.DELETE("/sessions/:id", s.sessionHandler.Delete)
		v1.GET("/sessions/:id/ws", s.sessionHandler.Subscribe)

		v1.POST("/sessions/:id/start", s.sessionHandler.Start)
		v1.POST("/sessions/:id/night-target", s.sessionHandler.NightTarget)
		v1.POST("/sessions/:id/night-result/next", s.sessionHandler.NextNightResult)
		v1.POST("/sessions/:id/vote", s.sessionHandler.Vote)
		v1.POST("/sessions/:id/skip-vote", s.sessionHandler.SkipVote)
		v1.POST("/sessions/:id/judgement/start", s.sessionHandler.StartJudgement)
		v1.POST("/sessions/:id/judgement", s.sessionHandler.Judge)
		v1.POST("/sessions/:id/accusation/skip", s.sessionHandler.SkipAccusation)
		v1.POST("/sessions/:id/proceed", s.sessionHandler.Proceed)
		v1.POST("/sessions/:id/reset", s.sessionHandler.Reset)
	}

	s.router.NoRoute(func(c *gin.Context) {
		NotFound(c, "The requested resource was not found")
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until ctx is done, then shuts it
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("starting HTTP server", "addr", s.cfg.Server.Addr())
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
