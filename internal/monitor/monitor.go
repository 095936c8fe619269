// Package monitor polls the SPC advisory feed and notifies once per new title.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/storm-outlook-service/internal/domain"
	"github.com/couchcryptid/storm-outlook-service/internal/observability"
)

// DefaultSeenCapacity bounds how many advisory titles are remembered.
const DefaultSeenCapacity = 10000

// AdvisorySource returns the current feed entries.
type AdvisorySource interface {
	Advisories(ctx context.Context) ([]domain.Advisory, error)
}

// Monitor owns the notified-title set. Only the goroutine calling Run (or
// PollOnce) touches it.
type Monitor struct {
	source   AdvisorySource
	notifier domain.Notifier
	interval time.Duration
	logger   *slog.Logger
	metrics  *observability.Metrics

	clock    clockwork.Clock
	capacity int
	titleMax int
	seen     *titleSet
	ready    atomic.Bool
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithClock replaces the real clock, for tests.
func WithClock(c clockwork.Clock) Option {
	return func(m *Monitor) { m.clock = c }
}

// WithSeenCapacity bounds the notified-title set.
func WithSeenCapacity(n int) Option {
	return func(m *Monitor) { m.capacity = n }
}

// WithTitleMax bounds advisory titles inside notification bodies.
func WithTitleMax(n int) Option {
	return func(m *Monitor) { m.titleMax = n }
}

// New creates a Monitor that polls source every interval.
func New(source AdvisorySource, notifier domain.Notifier, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) (*Monitor, error) {
	if interval <= 0 {
		return nil, errors.New("poll interval must be positive")
	}
	m := &Monitor{
		source:   source,
		notifier: notifier,
		interval: interval,
		logger:   logger,
		metrics:  metrics,
		clock:    clockwork.NewRealClock(),
		capacity: DefaultSeenCapacity,
		titleMax: domain.DefaultTitleMax,
	}
	for _, o := range opts {
		o(m)
	}

	seen, err := newTitleSet(m.capacity)
	if err != nil {
		return nil, fmt.Errorf("create title set: %w", err)
	}
	m.seen = seen
	return m, nil
}

// CheckReadiness returns nil once the feed has been read successfully.
func (m *Monitor) CheckReadiness(_ context.Context) error {
	if !m.ready.Load() {
		return errors.New("advisory feed has not been polled successfully yet")
	}
	return nil
}

// Run polls immediately and then once per interval until ctx is cancelled.
// Poll failures are logged and retried on the next tick; they never stop
// the loop.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("advisory monitor started", "interval", m.interval, "seen_capacity", m.capacity)
	m.metrics.MonitorRunning.Set(1)
	defer m.metrics.MonitorRunning.Set(0)

	for {
		if _, err := m.PollOnce(ctx); err != nil && ctx.Err() == nil {
			m.logger.Warn("advisory poll failed, retrying next interval", "error", err, "retry_in", m.interval)
		}

		select {
		case <-ctx.Done():
			m.logger.Info("advisory monitor stopping", "reason", ctx.Err())
			return nil
		case <-m.clock.After(m.interval):
		}
	}
}

// PollOnce runs a single fetch-and-diff cycle and returns how many
// notifications were emitted. A title is recorded before it is delivered, so
// a failed delivery is not retried on later polls.
func (m *Monitor) PollOnce(ctx context.Context) (int, error) {
	advisories, err := m.source.Advisories(ctx)
	if err != nil {
		m.metrics.AdvisoryPolls.WithLabelValues("error").Inc()
		m.metrics.FetchErrors.WithLabelValues("feed").Inc()
		return 0, err
	}
	m.metrics.AdvisoryPolls.WithLabelValues("success").Inc()
	m.ready.Store(true)

	notified := 0
	for _, a := range advisories {
		if !m.seen.markNew(a.Title) {
			continue
		}

		n := domain.NewNotification(uuid.NewString(), a, m.titleMax)
		if err := m.notifier.Notify(ctx, n); err != nil {
			m.logger.Error("deliver notification failed", "error", err, "title", a.Title)
			continue
		}
		notified++
		m.metrics.AdvisoryNotifications.Inc()
		m.logger.Info("advisory notified", "title", a.Title, "link", a.Link, "notification_id", n.ID)
	}

	m.metrics.AdvisorySeenTitles.Set(float64(m.seen.len()))
	m.logger.Debug("advisory poll complete", "entries", len(advisories), "notified", notified)
	return notified, nil
}
