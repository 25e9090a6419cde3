// internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/valpere/audiotekameta/internal/catalog"
	"github.com/valpere/audiotekameta/internal/monitoring"
	"github.com/valpere/audiotekameta/internal/utils"
)

// Searcher runs one search. *catalog.Provider is the production
// implementation.
type Searcher interface {
	Search(ctx context.Context, query, author string) ([]catalog.BookRecord, error)
}

// Config configures the HTTP server.
type Config struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Reported by /health and the startup log.
	Language    string
	AddBacklink bool
	Version     string
}

// Server exposes the search pipeline over HTTP.
type Server struct {
	config   Config
	searcher Searcher
	logger   utils.Logger
	metrics  *monitoring.Metrics
	handler  http.Handler
}

// New builds the server and its routes.
func New(config Config, searcher Searcher, logger utils.Logger, metrics *monitoring.Metrics) *Server {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 10 * time.Second
	}
	s := &Server{
		config:   config,
		searcher: searcher,
		logger:   logger,
		metrics:  metrics,
	}
	s.handler = s.routes()
	return s
}

// routes wires the router. /search sits behind the auth subrouter;
// the operational endpoints do not.
func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware, s.recoverMiddleware, s.instrumentMiddleware)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(s.authMiddleware)
	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusNotFound, errorBody("Not found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusMethodNotAllowed, errorBody("Method not allowed"))
	})

	return corsMiddleware(r)
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured port until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.config.Port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Infof("Audioteka provider listening on port %d, language: %s, add link to description: %t",
		s.config.Port, s.config.Language, s.config.AddBacklink)

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
