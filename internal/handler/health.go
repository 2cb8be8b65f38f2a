package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gistrelay/gistrelay/internal/handler/dto"
)

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	upstream HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for upstream to skip the readiness ping.
func NewHealthHandler(upstream HealthChecker) *HealthHandler {
	return &HealthHandler{
		upstream: upstream,
	}
}

// Healthz is a liveness probe endpoint.
// It returns 200 if the server is running, with no dependency checks.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// Readyz is a readiness probe endpoint.
// It pings the GitHub API (via the quota-free rate-limit endpoint) and
// returns 503 when the upstream is unreachable.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	if h.upstream != nil {
		if err := h.upstream.Ping(ctx); err != nil {
			checks["github"] = "error: " + err.Error()
			healthy = false
		} else {
			checks["github"] = "ok"
		}
	} else {
		checks["github"] = "not configured"
	}

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, dto.HealthResponse{
		Status: status,
		Checks: checks,
	})
}
