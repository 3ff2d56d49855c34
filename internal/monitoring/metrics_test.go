package monitoring

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/freqtrade-launcher/internal/runner"
	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

func record(exit int, err error) session.RunRecord {
	return session.RunRecord{
		Frontend:   "backtest",
		Subcommand: "backtesting",
		Result:     runner.Result{Started: time.Now(), Duration: 3 * time.Second, ExitCode: exit, Err: err},
	}
}

func TestMetrics_RunFinished(t *testing.T) {
	m := NewMetrics()

	m.RunFinished(record(0, nil))
	m.RunFinished(record(2, nil))
	m.RunFinished(record(-1, errors.New("not found")))
	m.ParametersCollected("backtest", nil)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.runsTotal.WithLabelValues("backtest", "backtesting")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.launchFailures.WithLabelValues("backtest")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.nonZeroExits.WithLabelValues("backtest")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.parameterSets.WithLabelValues("backtest")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.runDuration))

	n, err := testutil.GatherAndCount(m.Registry(), "ftlauncher_runs_total", "ftlauncher_last_run_timestamp_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMetrics_RejectionHook(t *testing.T) {
	m := NewMetrics()
	hook := m.RejectionHook("download-data")
	hook("timerange")
	hook("timerange")
	hook("command")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.inputRejections.WithLabelValues("download-data", "timerange")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.inputRejections.WithLabelValues("download-data", "command")))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RunFinished(record(0, nil))
		m.ParametersCollected("x", nil)
		m.RejectionHook("x")("field")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.RunFinished(record(0, nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `ftlauncher_runs_total{frontend="backtest",subcommand="backtesting"} 1`))
}

func TestHealthChecker_Status(t *testing.T) {
	h := NewHealthChecker("hyperopt")
	assert.Equal(t, "healthy", h.Status().Status)

	h.RunFinished(record(1, nil))
	assert.Equal(t, "degraded", h.Status().Status)

	h.RunFinished(record(-1, errors.New("not found")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, 2, body.Runs)
	assert.Equal(t, "not found", body.LastError)
	require.NotNil(t, body.LastRun)

	h.RunFinished(record(0, nil))
	assert.Equal(t, "healthy", h.Status().Status)
}

func TestHealthChecker_NoRunsOmitsLastRun(t *testing.T) {
	h := NewHealthChecker("backtest")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "last_run\"")
	assert.Nil(t, h.Status().LastRun)
}
