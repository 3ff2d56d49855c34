package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/ducminhle1904/freqtrade-launcher/internal/params"
	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

// HealthChecker tracks the latest run of a session
type HealthChecker struct {
	mu        sync.RWMutex
	frontend  string
	startTime time.Time
	runs      int
	lastRun   time.Time
	lastExit  int
	lastError string
}

type HealthStatus struct {
	Status    string     `json:"status"`
	Frontend  string     `json:"frontend"`
	Timestamp time.Time  `json:"timestamp"`
	Runs      int        `json:"runs"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	LastExit  int        `json:"last_exit_code"`
	Uptime    string     `json:"uptime"`
	LastError string     `json:"last_error,omitempty"`
}

func NewHealthChecker(frontend string) *HealthChecker {
	return &HealthChecker{frontend: frontend, startTime: time.Now()}
}

// ParametersCollected implements session.Observer
func (h *HealthChecker) ParametersCollected(string, *params.Set) {}

// RunFinished implements session.Observer
func (h *HealthChecker) RunFinished(rec session.RunRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.runs++
	h.lastRun = rec.Result.Started
	h.lastExit = rec.Result.ExitCode
	h.lastError = ""
	if rec.Result.Err != nil {
		h.lastError = rec.Result.Err.Error()
	}
}

// Status reports "healthy", "degraded" after a non-zero exit, or
// "unhealthy" when the latest run could not be launched
func (h *HealthChecker) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if h.runs > 0 && h.lastExit != 0 {
		status = "degraded"
	}
	if h.lastError != "" {
		status = "unhealthy"
	}

	var lastRun *time.Time
	if h.runs > 0 {
		t := h.lastRun
		lastRun = &t
	}

	return HealthStatus{
		Status:    status,
		Frontend:  h.frontend,
		Timestamp: time.Now(),
		Runs:      h.runs,
		LastRun:   lastRun,
		LastExit:  h.lastExit,
		Uptime:    time.Since(h.startTime).String(),
		LastError: h.lastError,
	}
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	health := h.Status()

	w.Header().Set("Content-Type", "application/json")
	switch health.Status {
	case "degraded":
		w.WriteHeader(http.StatusServiceUnavailable)
	case "unhealthy":
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(health)
}
