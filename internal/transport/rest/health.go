package rest

import (
	"context"
	"net/http"
	"time"
)

// dbPinger is the connectivity check the health endpoints need from the
// pool.
type dbPinger interface {
	Ping(ctx context.Context) error
}

const pingTimeout = 3 * time.Second

// HealthHandler serves the liveness, readiness and detailed health
// endpoints.
type HealthHandler struct {
	db        dbPinger
	version   string
	startedAt time.Time
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version, startedAt: time.Now()}
}

type healthResponse struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Uptime     string                     `json:"uptime,omitempty"`
	Components map[string]componentHealth `json:"components,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

type componentHealth struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live always answers 200: the process is up.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 200 only when Postgres accepts connections. This is the
// serving gate: an instance that cannot reach the database takes no
// traffic.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		status, code = "down", http.StatusServiceUnavailable
	}

	writeJSON(w, code, healthResponse{Status: status, Timestamp: time.Now()})
}

// Health is the detailed check: per-component status with measured
// latency, plus build version and uptime.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	components := map[string]componentHealth{
		"postgres": h.checkPostgres(ctx),
	}

	status, code := "ok", http.StatusOK
	for _, c := range components {
		if c.Status != "ok" {
			status, code = "down", http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, healthResponse{
		Status:     status,
		Version:    h.version,
		Uptime:     time.Since(h.startedAt).Round(time.Second).String(),
		Components: components,
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) checkPostgres(ctx context.Context) componentHealth {
	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return componentHealth{Status: "down"}
	}
	return componentHealth{Status: "ok", Latency: time.Since(start).String()}
}
