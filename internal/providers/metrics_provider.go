package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"hobbyboard/internal/structures"
	"time"
)

// BoardTotalsSource exposes the derived board totals as gauges.
type BoardTotalsSource interface {
	VisitorCount() int
	TotalPosts() int
	TodayAttendance() int
	TotalAttendance() int
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncMutations(kind string)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	mutationsTotal      *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncMutations(kind string) {
	m.mutationsTotal.WithLabelValues(kind).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, totals BoardTotalsSource) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hobbyboard_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hobbyboard_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hobbyboard_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hobbyboard_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "hobbyboard_persistence_duration_seconds",
			Help:    "Duration of snapshot persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		mutationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hobbyboard_mutations_total",
			Help: "Total number of successful store mutations by kind",
		}, []string{"kind"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "hobbyboard_visitors",
		Help: "Current visitor counter",
	}, func() float64 {
		return float64(totals.VisitorCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "hobbyboard_posts_total",
		Help: "Number of comments across all hobby boards",
	}, func() float64 {
		return float64(totals.TotalPosts())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "hobbyboard_attendance_today",
		Help: "Check-ins recorded today",
	}, func() float64 {
		return float64(totals.TodayAttendance())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "hobbyboard_attendance_total",
		Help: "Check-ins recorded overall",
	}, func() float64 {
		return float64(totals.TotalAttendance())
	})

	return m
}

// NewNoopMetricsProvider is used by commands that never serve /metrics.
func NewNoopMetricsProvider() MetricsProviderInterface {
	return &noopMetrics{}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncMutations(_ string)                            {}
