// Package api serves the chat and name-generation HTTP endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MikeSquared-Agency/namepal/internal/conversation"
	"github.com/MikeSquared-Agency/namepal/internal/dialogue"
)

const maxBodyBytes = 1 << 20

// Chatter answers a chat turn. *conversation.Service satisfies it.
type Chatter interface {
	Turn(ctx context.Context, in conversation.TurnInput) (*conversation.TurnOutput, error)
}

// NameGenerator runs the dedicated generation call. *namegen.Generator
// satisfies it.
type NameGenerator interface {
	Generate(ctx context.Context, sessionID string, slots dialogue.Slots) ([]dialogue.Recommendation, error)
}

type Options struct {
	AllowedOrigins []string
	Version        string
}

type Server struct {
	router  *chi.Mux
	port    int
	chat    Chatter
	names   NameGenerator
	version string
	logger  *slog.Logger
}

func NewServer(port int, chat Chatter, names NameGenerator, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	s := &Server{
		router:  router,
		port:    port,
		chat:    chat,
		names:   names,
		version: opts.Version,
		logger:  logger,
	}

	routes := func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Post("/generate-names", s.handleGenerateNames)
		r.Get("/healthz", s.healthz)
	}
	router.Group(routes)
	router.Route("/api/v1", routes)

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	s.logger.Info("API server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Version: s.version, Status: "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
