// Package metrics exports Prometheus timings for builder chain stages.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"delving/pkg/engine/logging"
	"delving/pkg/game/generator"
)

const namespace = "delving"

var _ generator.Observer = (*StageMetrics)(nil)

// StageMetrics records how long each stage takes and how often it fails. It
// satisfies generator.Observer.
type StageMetrics struct {
	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
	levels   *prometheus.CounterVec
}

// New creates stage metrics on their own registry
func New() *StageMetrics {
	m := &StageMetrics{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Time spent running one builder stage.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"stage"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Builder stages that returned an error.",
		}, []string{"stage"}),
		levels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levels_generated_total",
			Help:      "Finished levels by depth and outcome.",
		}, []string{"depth", "outcome"}),
	}
	m.registry.MustRegister(m.duration, m.failures, m.levels)
	return m
}

// StageCompleted observes one stage run
func (m *StageMetrics) StageCompleted(stage string, elapsed time.Duration, err error) {
	m.duration.WithLabelValues(stage).Observe(elapsed.Seconds())
	if err != nil {
		m.failures.WithLabelValues(stage).Inc()
	}
}

// LevelFinished counts a generated level, or a failed attempt at one
func (m *StageMetrics) LevelFinished(depth string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	m.levels.WithLabelValues(depth, outcome).Inc()
}

// Registry exposes the registry the metrics live on
func (m *StageMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format
func (m *StageMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled
func (m *StageMetrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	logging.Info("metrics available on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
