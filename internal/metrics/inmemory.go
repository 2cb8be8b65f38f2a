package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	GistRequests            map[string]uint64
	UpstreamDurationCount   uint64
	UpstreamDurationTotalNs int64
	AlertsEnriched          uint64
	AlertForwards           map[string]uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu                      sync.Mutex
	gistRequests            map[string]uint64
	alertForwards           map[string]uint64
	alertsEnriched          uint64
	upstreamDurationCount   uint64
	upstreamDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		gistRequests:  make(map[string]uint64),
		alertForwards: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	requests := make(map[string]uint64, len(m.gistRequests))
	for outcome, count := range m.gistRequests {
		requests[outcome] = count
	}
	forwards := make(map[string]uint64, len(m.alertForwards))
	for status, count := range m.alertForwards {
		forwards[status] = count
	}
	m.mu.Unlock()

	return Snapshot{
		GistRequests:            requests,
		UpstreamDurationCount:   atomic.LoadUint64(&m.upstreamDurationCount),
		UpstreamDurationTotalNs: atomic.LoadInt64(&m.upstreamDurationTotalNs),
		AlertsEnriched:          atomic.LoadUint64(&m.alertsEnriched),
		AlertForwards:           forwards,
	}
}

// IncGistRequest increments the counter for the given outcome.
func (m *InMemoryRecorder) IncGistRequest(outcome string) {
	m.mu.Lock()
	m.gistRequests[outcome]++
	m.mu.Unlock()
}

// ObserveUpstreamDuration records upstream call duration.
func (m *InMemoryRecorder) ObserveUpstreamDuration(duration time.Duration) {
	atomic.AddUint64(&m.upstreamDurationCount, 1)
	atomic.AddInt64(&m.upstreamDurationTotalNs, duration.Nanoseconds())
}

// IncAlertsEnriched adds to the enriched alert total.
func (m *InMemoryRecorder) IncAlertsEnriched(count int) {
	atomic.AddUint64(&m.alertsEnriched, uint64(count))
}

// IncAlertForward increments the counter for the given forwarding status.
func (m *InMemoryRecorder) IncAlertForward(status string) {
	m.mu.Lock()
	m.alertForwards[status]++
	m.mu.Unlock()
}
