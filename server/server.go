// Package server exposes the trip planner over HTTP. Routes use the stdlib
// ServeMux with method patterns; request and response bodies are flat JSON
// documents so the API can be driven from curl or any HTTP client.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hupe1980/tripmesh"
	"github.com/hupe1980/tripmesh/logging"
)

// Config holds the dependencies and settings for creating a Server.
type Config struct {
	// Planner answers conversation turns. Required.
	Planner *tripmesh.Planner

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger

	// HTTP server settings.
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Version      string
}

// Server is the trip planner HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	logger     logging.Logger
}

// New creates a new HTTP server with all routes configured.
func New(cfg Config) *Server {
	logger := logging.OrNoOp(cfg.Logger)

	version := cfg.Version
	if version == "" {
		version = "1.0.0"
	}

	h := &handlers{
		planner: cfg.Planner,
		logger:  logger,
		version: version,
	}

	mux := http.NewServeMux()

	// Conversation endpoints.
	mux.HandleFunc("POST /chat", h.handleChat)
	mux.HandleFunc("POST /chat/{conversation_id}/continue", h.handleContinue)
	mux.HandleFunc("POST /reset/{conversation_id}", h.handleReset)

	// Session management (for debugging).
	mux.HandleFunc("GET /sessions", h.handleListSessions)
	mux.HandleFunc("DELETE /sessions", h.handleClearSessions)

	// Health.
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /{$}", h.handleRoot)

	// Middleware chain (outermost executes first): logging → recovery → handler.
	var handler http.Handler = mux
	handler = recoveryMiddleware(logger, handler)
	handler = loggingMiddleware(logger, handler)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		handler: handler,
		logger:  logger,
	}
}

// Handler returns the root HTTP handler for use in tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
