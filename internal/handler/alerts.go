package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gistrelay/gistrelay/internal/alerts"
)

// AlertHandler handles HTTP requests for alert enrichment.
type AlertHandler struct {
	svc    *alerts.Service
	logger *slog.Logger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(svc *alerts.Service, logger *slog.Logger) *AlertHandler {
	return &AlertHandler{
		svc:    svc,
		logger: logger,
	}
}

// Receive handles POST /alert. The body must be a JSON list of alert
// objects; each is enriched with ITSM labels and the whole list is
// returned. When forwarding is configured the enriched payload is also
// delivered to Alertmanager, best effort: a delivery failure is logged
// but never fails the inbound request.
func (h *AlertHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var payload any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON received.")
		return
	}

	items, ok := payload.([]any)
	if !ok {
		writeError(w, http.StatusBadRequest, "Alert payload must be a JSON list of alert objects.")
		return
	}

	alertList := make([]map[string]any, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			writeError(w, http.StatusBadRequest, "Alert payload must be a JSON list of alert objects.")
			return
		}
		alertList[i] = obj
	}

	enriched, err := h.svc.EnrichAlerts(alertList)
	if err != nil {
		h.logger.Error("alert_enrichment_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An internal error occurred.")
		return
	}

	body, err := json.Marshal(enriched)
	if err != nil {
		h.logger.Error("alert_encoding_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An internal error occurred.")
		return
	}

	status, err := h.svc.Forward(r.Context(), body)
	if err != nil {
		h.logger.Warn("alert_forward_failed", "error", err)
	} else if status != 0 {
		h.logger.Info("alert_forwarded",
			"alerts", len(enriched),
			"status_code", status,
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
