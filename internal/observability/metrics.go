package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storm_outlook"

// Metrics holds the Prometheus counters, histograms, and gauges for the outlook service.
type Metrics struct {
	// Render path.
	Renders        *prometheus.CounterVec // labels: category, outcome={rendered,unavailable,error}
	RenderDuration prometheus.Histogram
	FetchErrors    *prometheus.CounterVec // labels: source={outlook,feed}

	// Advisory monitor.
	AdvisoryPolls         *prometheus.CounterVec // labels: outcome={success,error}
	AdvisoryNotifications prometheus.Counter
	AdvisorySeenTitles    prometheus.Gauge
	MonitorRunning        prometheus.Gauge

	// Basemap.
	BasemapCache *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)
	prometheus.MustRegister(
		m.Renders,
		m.RenderDuration,
		m.FetchErrors,
		m.AdvisoryPolls,
		m.AdvisoryNotifications,
		m.AdvisorySeenTitles,
		m.MonitorRunning,
		m.BasemapCache,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}
	return &Metrics{
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      help("Outlook render requests by category and outcome."),
		}, []string{"category", "outcome"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      help("Duration of fetch, classify, and composite for one outlook."),
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      help("SPC retrieval failures by source."),
		}, []string{"source"}),
		AdvisoryPolls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisory_polls_total",
			Help:      help("Advisory feed poll cycles by outcome."),
		}, []string{"outcome"}),
		AdvisoryNotifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisory_notifications_total",
			Help:      help("Notifications emitted for newly seen advisory titles."),
		}),
		AdvisorySeenTitles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "advisory_seen_titles",
			Help:      help("Advisory titles currently remembered for de-duplication."),
		}),
		MonitorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "monitor_running",
			Help:      help("1 while the advisory monitor loop is active, 0 otherwise."),
		}),
		BasemapCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "basemap_cache_total",
			Help:      help("Basemap cache lookups by result."),
		}, []string{"result"}),
	}
}
