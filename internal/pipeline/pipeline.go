package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/storm-outlook-service/internal/domain"
	"github.com/couchcryptid/storm-outlook-service/internal/observability"
)

// Fetcher retrieves raw bytes for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Renderer composites an available outlook into an image artifact.
type Renderer interface {
	Render(ctx context.Context, req domain.OutlookRequest, fc domain.FeatureCollection, layers domain.ReferenceLayers) (domain.RenderedArtifact, error)
}

// Service runs the synchronous render path: fetch, gate, classify, composite.
// It keeps no state between calls; a failure in one call never affects another.
type Service struct {
	fetcher  Fetcher
	renderer Renderer
	layers   domain.ReferenceLayers
	baseURL  string
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Service. layers are drawn beneath every render.
func New(f Fetcher, r Renderer, layers domain.ReferenceLayers, baseURL string, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		fetcher:  f,
		renderer: r,
		layers:   layers,
		baseURL:  baseURL,
		logger:   logger,
		metrics:  metrics,
	}
}

// Render produces the map for req. It returns domain.ErrOutlookUnavailable
// when SPC has issued nothing to draw, a *domain.RetrievalError when the
// outlook could not be fetched or decoded, and domain.ErrUnknownCategory or
// domain.ErrInvalidDay for malformed requests.
func (s *Service) Render(ctx context.Context, req domain.OutlookRequest) (domain.RenderedArtifact, error) {
	start := time.Now()
	logger := s.requestLogger(req)

	fc, err := s.load(ctx, req)
	if err != nil {
		s.observe(req, "error")
		logger.Error("load outlook failed", "error", err)
		return domain.RenderedArtifact{}, err
	}

	if !domain.IsAvailable(fc) {
		s.observe(req, "unavailable")
		logger.Info("no outlook currently issued", "features", len(fc.Features))
		return domain.RenderedArtifact{}, domain.ErrOutlookUnavailable
	}

	artifact, err := s.renderer.Render(ctx, req, fc, s.layers)
	if err != nil {
		s.observe(req, "error")
		logger.Error("render outlook failed", "error", err)
		return domain.RenderedArtifact{}, err
	}

	highest, _ := domain.HighestRank(fc)
	s.observe(req, "rendered")
	s.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	logger.Info("outlook rendered",
		"path", artifact.Path,
		"features", len(fc.Features),
		"highest", highest.Label,
		"duration", time.Since(start),
	)
	return artifact, nil
}

// Summarize fetches req and classifies it without drawing.
func (s *Service) Summarize(ctx context.Context, req domain.OutlookRequest) (domain.Summary, error) {
	fc, err := s.load(ctx, req)
	if err != nil {
		s.requestLogger(req).Warn("summarize outlook failed", "error", err)
		return domain.Summary{}, err
	}
	return domain.Summarize(req, fc)
}

// load validates req, fetches its outlook, and decodes it. Decode failures
// are reported as retrieval errors because the body came from SPC.
func (s *Service) load(ctx context.Context, req domain.OutlookRequest) (domain.FeatureCollection, error) {
	url, err := req.URL(s.baseURL)
	if err != nil {
		return domain.FeatureCollection{}, err
	}

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.metrics.FetchErrors.WithLabelValues("outlook").Inc()
		var re *domain.RetrievalError
		if !errors.As(err, &re) {
			err = &domain.RetrievalError{URL: url, Err: err}
		}
		return domain.FeatureCollection{}, err
	}

	fc, err := domain.ParseFeatureCollection(req.Category, body)
	if err != nil {
		s.metrics.FetchErrors.WithLabelValues("outlook").Inc()
		return domain.FeatureCollection{}, &domain.RetrievalError{URL: url, Err: err}
	}
	return fc, nil
}

func (s *Service) requestLogger(req domain.OutlookRequest) *slog.Logger {
	return s.logger.With(
		"render_id", uuid.NewString(),
		"category", string(req.Category),
		"day", req.Day.String(),
	)
}

// observe records a render outcome. Invalid categories share one label value
// so request input cannot inflate metric cardinality.
func (s *Service) observe(req domain.OutlookRequest, outcome string) {
	category := string(req.Category)
	if !req.Category.Valid() {
		category = "unknown"
	}
	s.metrics.Renders.WithLabelValues(category, outcome).Inc()
}
