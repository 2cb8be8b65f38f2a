package alerts

import (
	"context"

	"github.com/gistrelay/gistrelay/internal/metrics"
)

// Service handles alert enrichment business logic.
type Service struct {
	enricher  *Enricher
	forwarder *Forwarder
	metrics   metrics.Recorder
}

// NewService creates a new alert Service. A nil forwarder disables
// forwarding; enrichment still runs.
func NewService(enricher *Enricher, forwarder *Forwarder, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Service{
		enricher:  enricher,
		forwarder: forwarder,
		metrics:   recorder,
	}
}

// EnrichAlerts stamps ITSM labels onto the alerts and returns them.
func (s *Service) EnrichAlerts(alerts []map[string]any) ([]map[string]any, error) {
	if err := s.enricher.Enrich(alerts); err != nil {
		return nil, err
	}
	s.metrics.IncAlertsEnriched(len(alerts))
	return alerts, nil
}

// Forward delivers the enriched payload to Alertmanager when forwarding is
// configured. Returns the upstream status code, or 0 when skipped.
func (s *Service) Forward(ctx context.Context, payload []byte) (int, error) {
	if s.forwarder == nil {
		s.metrics.IncAlertForward(metrics.ForwardSkipped)
		return 0, nil
	}

	status, err := s.forwarder.Forward(ctx, payload)
	if err != nil {
		s.metrics.IncAlertForward(metrics.ForwardFailed)
		return 0, err
	}
	s.metrics.IncAlertForward(metrics.ForwardSuccess)
	return status, nil
}
