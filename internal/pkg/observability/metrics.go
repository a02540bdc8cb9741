package observability

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

type Metrics struct {
	// Latency of one view aggregation
	BundleDuration *prometheus.HistogramVec

	// Failed view aggregations
	BundleFailures *prometheus.CounterVec

	// Size of resolved scope sets
	ScopeSize *prometheus.HistogramVec

	// Periods that fell back to the default
	PeriodRecovered prometheus.Counter

	// Record store circuit breaker (0 closed, 1 half-open, 2 open)
	StoreBreakerState *prometheus.GaugeVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	// Unregistered local registry when none is supplied
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		BundleDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hris_analytics_bundle_duration_seconds",
			Help:    "Histogram of view aggregation latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"view", "status"}),

		BundleFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hris_analytics_bundle_failures_total",
			Help: "Total number of failed view aggregations.",
		}, []string{"view"}),

		ScopeSize: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hris_analytics_scope_size",
			Help:    "Number of employees in resolved scope sets.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"role"}),

		PeriodRecovered: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "hris_analytics_period_recovered_total",
			Help: "Requests whose period token fell back to the default.",
		}),

		StoreBreakerState: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "hris_analytics_store_breaker_state",
			Help: "Current state of the record store circuit breaker (0=closed, 1=half-open, 2=open).",
		}, []string{"name"}),
	}
}

// BreakerStateChanged matches database.GuardConfig.OnStateChange.
func (m *Metrics) BreakerStateChanged(name string, _, to gobreaker.State) {
	m.StoreBreakerState.WithLabelValues(name).Set(float64(to))
}

type metricsObserver struct {
	m *Metrics
}

// NewMetricsObserver records events as Prometheus metrics.
func NewMetricsObserver(m *Metrics) Observer {
	return &metricsObserver{m: m}
}

func (o *metricsObserver) ScopeResolved(_ context.Context, a actor.Actor, size int, err error) {
	if err != nil {
		return
	}
	o.m.ScopeSize.WithLabelValues(string(a.Role)).Observe(float64(size))
}

func (o *metricsObserver) WindowBuilt(_ context.Context, _ window.TimeWindow, recovered bool) {
	if recovered {
		o.m.PeriodRecovered.Inc()
	}
}

func (o *metricsObserver) BundleComputed(_ context.Context, _ string, view string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		o.m.BundleFailures.WithLabelValues(view).Inc()
	}
	o.m.BundleDuration.WithLabelValues(view, status).Observe(elapsed.Seconds())
}
