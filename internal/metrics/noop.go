package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncGistRequest is a no-op.
func (n *NoopRecorder) IncGistRequest(outcome string) {}

// ObserveUpstreamDuration is a no-op.
func (n *NoopRecorder) ObserveUpstreamDuration(duration time.Duration) {}

// IncAlertsEnriched is a no-op.
func (n *NoopRecorder) IncAlertsEnriched(count int) {}

// IncAlertForward is a no-op.
func (n *NoopRecorder) IncAlertForward(status string) {}
