// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Outcome labels for gist request metrics.
const (
	OutcomeOK            = "ok"
	OutcomeNotFound      = "not_found"
	OutcomeRateLimited   = "rate_limited"
	OutcomeUnreachable   = "unreachable"
	OutcomeUpstreamError = "upstream_error"
)

// Status labels for alert forwarding metrics.
const (
	ForwardSuccess = "success"
	ForwardFailed  = "failed"
	ForwardSkipped = "skipped"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// IncGistRequest counts a completed gist lookup by outcome.
	IncGistRequest(outcome string)
	// ObserveUpstreamDuration records how long the GitHub call took.
	ObserveUpstreamDuration(duration time.Duration)

	// IncAlertsEnriched counts alerts that passed through enrichment.
	IncAlertsEnriched(count int)
	// IncAlertForward counts forwarding attempts by status.
	IncAlertForward(status string)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
