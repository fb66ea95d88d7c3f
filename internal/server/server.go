package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/michaelbrown/casegen/internal/sandbox"
)

// Runner runs the generate-and-execute pipeline for a file on disk.
type Runner interface {
	RunFile(ctx context.Context, path, language string) (*sandbox.Outcome, error)
}

// Server is the HTTP front end for the test pipeline.
type Server struct {
	runner Runner
	router chi.Router
	http   *http.Server
}

// New creates a new Server.
func New(runner Runner) *Server {
	s := &Server{
		runner: runner,
		router: chi.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(jsonContentType)

	r.Post("/run-test-cases", s.handleRunTestCases)
}

// jsonContentType sets Content-Type to application/json for every response.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on the given port and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", port, err)
	}
	log.Printf("Server running on port %d", port)
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down and
// waits for in-flight requests to finish before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.http = &http.Server{Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if err := s.Shutdown(context.Background()); err != nil {
		log.Printf("Warning: server shutdown: %v", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server, blocking until active
// requests complete or a 10 second timeout expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return s.http.Shutdown(shutdownCtx)
}
