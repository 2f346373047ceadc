package tui

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records what the SSH server's players are doing.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	SessionsTotal  prometheus.Counter
	ActiveSessions prometheus.Gauge
	RunsTotal      prometheus.Counter
	RunScore       prometheus.Histogram
	RunDistance    prometheus.Histogram
	SaveFailures   prometheus.Counter
}

// NewMetrics creates and registers the game metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "neometro_sessions_total",
			Help: "Total number of game sessions started",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "neometro_active_sessions",
			Help: "Number of game sessions currently running",
		}),
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "neometro_runs_total",
			Help: "Total number of finished runs",
		}),
		RunScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "neometro_run_score",
			Help:    "Final score of finished runs",
			Buckets: prometheus.ExponentialBuckets(50, 2, 8),
		}),
		RunDistance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "neometro_run_distance_meters",
			Help:    "Distance covered by finished runs",
			Buckets: prometheus.ExponentialBuckets(25, 2, 8),
		}),
		SaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "neometro_run_save_failures_total",
			Help: "Total number of finished runs that could not be stored",
		}),
	}

	reg.MustRegister(m.SessionsTotal, m.ActiveSessions, m.RunsTotal, m.RunScore, m.RunDistance, m.SaveFailures)
	return m
}

// SessionStarted counts a new session.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.SessionsTotal.Inc()
	m.ActiveSessions.Inc()
}

// SessionEnded marks a session as gone.
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.ActiveSessions.Dec()
}

// RunFinished observes a finished run.
func (m *Metrics) RunFinished(score int, distance float64) {
	if m == nil {
		return
	}
	m.RunsTotal.Inc()
	m.RunScore.Observe(float64(score))
	m.RunDistance.Observe(distance)
}

// SaveFailed counts a run lost by the store.
func (m *Metrics) SaveFailed() {
	if m == nil {
		return
	}
	m.SaveFailures.Inc()
}

// MetricsServer exposes a registry over HTTP at /metrics.
type MetricsServer struct {
	addr     string
	registry *prometheus.Registry
	metrics  *Metrics
	server   *http.Server
	listener net.Listener
	logger   *log.Logger
}

// NewMetricsServer creates a registry with the Go and process collectors plus
// the game metrics.
func NewMetricsServer(addr string, logger *log.Logger) *MetricsServer {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &MetricsServer{
		addr:     addr,
		registry: registry,
		metrics:  NewMetrics(registry),
		logger:   logger,
	}
}

// Metrics returns the game metrics recorded by this server.
func (s *MetricsServer) Metrics() *Metrics {
	return s.metrics
}

// Handler returns the /metrics handler.
func (s *MetricsServer) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Start listens and serves in the background.
func (s *MetricsServer) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.Handle("/metrics", s.Handler())
	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server error", "error", err)
		}
	}()

	s.logger.Info("metrics server started", "address", listener.Addr().String())
	return nil
}

// Addr returns the listen address, or the configured one before Start.
func (s *MetricsServer) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop shuts the HTTP server down.
func (s *MetricsServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
