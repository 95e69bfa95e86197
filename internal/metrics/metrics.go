// Package metrics exposes path builder and HTTP activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abhisek/learnpath/internal/curriculum"
)

// Metrics holds all learnpath Prometheus metrics.
type Metrics struct {
	// Path builder
	PathsCreated        *prometheus.CounterVec
	PathBuildDuration   prometheus.Histogram
	PathModules         prometheus.Histogram
	ModulesMissing      *prometheus.CounterVec
	UnresolvedFallbacks prometheus.Counter

	// HTTP API
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

var _ curriculum.Observer = (*Metrics)(nil)

// New registers the metrics with reg. Passing a fresh registry keeps tests
// isolated; the server passes prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PathsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "learnpath_paths_total",
			Help: "Learning path requests by outcome",
		}, []string{"outcome"}),

		PathBuildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "learnpath_path_build_duration_seconds",
			Help:    "Time spent building a learning path",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),

		PathModules: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "learnpath_path_modules",
			Help:    "Number of modules in created learning paths",
			Buckets: prometheus.LinearBuckets(1, 2, 10),
		}),

		ModulesMissing: f.NewCounterVec(prometheus.CounterOpts{
			Name: "learnpath_modules_missing_total",
			Help: "Referenced modules the knowledge source did not know",
		}, []string{"module_id"}),

		UnresolvedFallbacks: f.NewCounter(prometheus.CounterOpts{
			Name: "learnpath_unresolved_dependencies_total",
			Help: "Paths that needed the lexicographic fallback for cyclic dependencies",
		}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "learnpath_http_requests_total",
			Help: "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "learnpath_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// PathCreated implements curriculum.Observer.
func (m *Metrics) PathCreated(outcome string, modules int, elapsed time.Duration) {
	m.PathsCreated.WithLabelValues(outcome).Inc()
	m.PathBuildDuration.Observe(elapsed.Seconds())
	if outcome == curriculum.OutcomeCreated {
		m.PathModules.Observe(float64(modules))
	}
}

// ModuleMissing implements curriculum.Observer.
func (m *Metrics) ModuleMissing(id string) {
	m.ModulesMissing.WithLabelValues(id).Inc()
}

// DependenciesUnresolved implements curriculum.Observer.
func (m *Metrics) DependenciesUnresolved(ids []string) {
	if len(ids) > 0 {
		m.UnresolvedFallbacks.Inc()
	}
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(route, method, status string, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(route, method, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
