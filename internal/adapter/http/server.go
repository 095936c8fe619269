package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/storm-outlook-service/internal/domain"
)

// OutlookService is the render path exposed over HTTP.
type OutlookService interface {
	Render(ctx context.Context, req domain.OutlookRequest) (domain.RenderedArtifact, error)
	Summarize(ctx context.Context, req domain.OutlookRequest) (domain.Summary, error)
}

// Server exposes outlook, health, readiness, and metrics HTTP endpoints.
type Server struct {
	httpServer *http.Server
	outlooks   OutlookService
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /outlooks, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, outlooks OutlookService, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       10 * time.Second,
			// A render waits on SPC with no client-side timeout of its own.
			WriteTimeout: 2 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
		outlooks: outlooks,
		logger:   logger,
	}

	r.Route("/outlooks/{category}/{day}", func(r chi.Router) {
		r.Get("/", s.handleRender)
		r.Get("/summary", s.handleSummary)
	})
	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return s
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

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	artifact, err := s.outlooks.Render(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, artifact.Path)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	summary, err := s.outlooks.Summarize(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, summary)
}

func parseRequest(r *http.Request) (domain.OutlookRequest, error) {
	category, err := domain.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		return domain.OutlookRequest{}, err
	}
	day, err := domain.ParseDay(chi.URLParam(r, "day"))
	if err != nil {
		return domain.OutlookRequest{}, err
	}
	return domain.NewOutlookRequest(category, day)
}

// writeError maps the error taxonomy onto status codes. An unavailable
// outlook is reported as 404 so clients can show "no outlook issued".
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var re *domain.RetrievalError
	switch {
	case errors.Is(err, domain.ErrUnknownCategory), errors.Is(err, domain.ErrInvalidDay):
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"status": "invalid", "error": err.Error()})
	case errors.Is(err, domain.ErrOutlookUnavailable):
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"status": "unavailable", "error": err.Error()})
	case errors.As(err, &re):
		sharedobs.WriteJSON(w, http.StatusBadGateway, map[string]string{"status": "upstream error", "error": err.Error()})
	default:
		s.logger.Error("outlook request failed", "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "error": "internal error"})
	}
}
