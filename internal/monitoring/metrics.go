package monitoring

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ducminhle1904/freqtrade-launcher/internal/params"
	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

// Metrics holds the launcher counters on a private registry
type Metrics struct {
	registry *prometheus.Registry

	runsTotal        *prometheus.CounterVec
	launchFailures   *prometheus.CounterVec
	nonZeroExits     *prometheus.CounterVec
	inputRejections  *prometheus.CounterVec
	parameterSets    *prometheus.CounterVec
	runDuration      *prometheus.HistogramVec
	lastRunTimestamp *prometheus.GaugeVec
}

// NewMetrics creates and registers all launcher metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ftlauncher_runs_total",
				Help: "Total number of external tool invocations",
			},
			[]string{"frontend", "subcommand"},
		),
		launchFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ftlauncher_launch_failures_total",
				Help: "Invocations whose process could not be started",
			},
			[]string{"frontend"},
		),
		nonZeroExits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ftlauncher_nonzero_exits_total",
				Help: "Invocations that exited with a non-zero status",
			},
			[]string{"frontend"},
		),
		inputRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ftlauncher_input_rejections_total",
				Help: "Operator answers rejected by validation",
			},
			[]string{"frontend", "field"},
		),
		parameterSets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ftlauncher_parameter_sets_total",
				Help: "Completed parameter collections",
			},
			[]string{"frontend"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ftlauncher_run_duration_seconds",
				Help:    "Wall time of external tool invocations",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"frontend"},
		),
		lastRunTimestamp: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ftlauncher_last_run_timestamp_seconds",
				Help: "Unix time the latest invocation started",
			},
			[]string{"frontend"},
		),
	}

	m.registry.MustRegister(
		m.runsTotal,
		m.launchFailures,
		m.nonZeroExits,
		m.inputRejections,
		m.parameterSets,
		m.runDuration,
		m.lastRunTimestamp,
	)
	return m
}

// Registry exposes the private registry for gathering outside the HTTP handler
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ParametersCollected implements session.Observer
func (m *Metrics) ParametersCollected(frontend string, _ *params.Set) {
	if m == nil {
		return
	}
	m.parameterSets.WithLabelValues(frontend).Inc()
}

// RunFinished implements session.Observer
func (m *Metrics) RunFinished(rec session.RunRecord) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(rec.Frontend, rec.Subcommand).Inc()
	m.lastRunTimestamp.WithLabelValues(rec.Frontend).Set(float64(rec.Result.Started.Unix()))

	if rec.Result.Err != nil {
		m.launchFailures.WithLabelValues(rec.Frontend).Inc()
		return
	}
	if rec.Result.ExitCode != 0 {
		m.nonZeroExits.WithLabelValues(rec.Frontend).Inc()
	}
	m.runDuration.WithLabelValues(rec.Frontend).Observe(rec.Result.Duration.Seconds())
}

// RejectionHook returns a prompt rejection callback counting under frontend
func (m *Metrics) RejectionHook(frontend string) func(field string) {
	return func(field string) {
		if m == nil {
			return
		}
		m.inputRejections.WithLabelValues(frontend, field).Inc()
	}
}

// Server exposes /metrics and /healthz while a session is running
type Server struct {
	srv *http.Server
}

// Serve starts an HTTP server on addr in the background
func Serve(addr string, m *Metrics, health *HealthChecker) (*Server, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	if health != nil {
		mux.Handle("/healthz", health)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// surface immediate bind failures
	select {
	case err := <-errCh:
		return nil, err
	case <-time.After(100 * time.Millisecond):
	}
	return &Server{srv: srv}, nil
}

// Shutdown stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
