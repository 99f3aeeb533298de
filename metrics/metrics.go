// Package metrics exposes Prometheus instrumentation for the experiment
// registry and a standalone metrics listener.
package metrics

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	operationsTotal *prometheus.CounterVec

	// StoreLatency can be used by store implementations to record remote
	// call latency.
	StoreLatency *prometheus.HistogramVec
)

var initOnce sync.Once

// Init registers all metrics on the default registerer. Safe to call more
// than once; only the first call registers. Components guard on nil, so a
// process that never calls Init (tests, the CLI) records nothing.
func Init() {
	initOnce.Do(func() {
		operationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "experiment_registry_operations_total",
				Help: "Total orchestrated operations by kind and outcome",
			},
			[]string{"operation", "outcome"},
		)

		StoreLatency = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "experiment_registry_store_latency_seconds",
				Help:    "Blob store call latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"backend", "call"},
		)
	})
}

// RecordOperation counts one orchestrated operation outcome. Outcome is one
// of success, error, rejected. No-op before Init.
func RecordOperation(operation, outcome string) {
	if operationsTotal == nil {
		return
	}
	operationsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveStoreCall records the latency of one blob store call. No-op before
// Init.
func ObserveStoreCall(backend, call string, start time.Time) {
	if StoreLatency == nil {
		return
	}
	StoreLatency.WithLabelValues(backend, call).Observe(time.Since(start).Seconds())
}

// MetricsServer serves the Prometheus scrape endpoint on its own listener.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server bound to addr and registers all metrics.
func New(addr string) *MetricsServer {
	Init()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &MetricsServer{
		srv: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// ListenAndServe blocks serving the scrape endpoint.
func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

// Shutdown gracefully stops the listener.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
