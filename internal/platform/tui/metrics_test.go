package tui

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.SessionStarted()
	m.SessionStarted()
	m.SessionEnded()
	m.RunFinished(361, 50)
	m.SaveFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveSessions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SaveFailures))
}

func TestMetricsNilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SessionStarted()
		m.SessionEnded()
		m.RunFinished(10, 1)
		m.SaveFailed()
	})
}

func TestMetricsRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.RunFinished(100, 20)

	families, err := reg.Gather()
	require.NoError(t, err)

	registered := make(map[string]bool)
	for _, family := range families {
		registered[family.GetName()] = true
	}
	for _, name := range []string{
		"neometro_sessions_total",
		"neometro_active_sessions",
		"neometro_runs_total",
		"neometro_run_score",
		"neometro_run_distance_meters",
		"neometro_run_save_failures_total",
	} {
		assert.True(t, registered[name], "metric %q should be registered", name)
	}
}

func TestMetricsServerHandler(t *testing.T) {
	srv := NewMetricsServer("127.0.0.1:0", log.New(io.Discard))
	srv.Metrics().RunFinished(42, 10)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "neometro_runs_total 1")
	assert.Contains(t, body, "go_goroutines")
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
}
