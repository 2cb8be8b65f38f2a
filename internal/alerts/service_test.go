package alerts

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gistrelay/gistrelay/internal/metrics"
)

type stubDoer struct {
	status int
	err    error
	calls  int
}

func (d *stubDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return &http.Response{
		StatusCode: d.status,
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func TestService_EnrichAlertsCountsMetrics(t *testing.T) {
	t.Parallel()

	recorder := metrics.NewInMemory()
	svc := NewService(NewEnricher(testConfig()), nil, recorder)

	alerts := []map[string]any{{}, {}, {}}
	enriched, err := svc.EnrichAlerts(alerts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enriched) != 3 {
		t.Fatalf("expected 3 alerts back, got %d", len(enriched))
	}

	snap := recorder.Snapshot()
	if snap.AlertsEnriched != 3 {
		t.Errorf("expected 3 alerts counted, got %d", snap.AlertsEnriched)
	}
}

func TestService_ForwardOutcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		forwarder  *Forwarder
		wantStatus int
		wantErr    bool
		wantMetric string
	}{
		{
			name:       "skipped when not configured",
			forwarder:  nil,
			wantStatus: 0,
			wantMetric: metrics.ForwardSkipped,
		},
		{
			name:       "success returns upstream status",
			forwarder:  NewForwarder("http://alertmanager.local/api/v2/alerts", &stubDoer{status: http.StatusOK}),
			wantStatus: http.StatusOK,
			wantMetric: metrics.ForwardSuccess,
		},
		{
			name:       "delivery error",
			forwarder:  NewForwarder("http://alertmanager.local/api/v2/alerts", &stubDoer{err: context.DeadlineExceeded}),
			wantErr:    true,
			wantMetric: metrics.ForwardFailed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recorder := metrics.NewInMemory()
			svc := NewService(NewEnricher(testConfig()), tt.forwarder, recorder)

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			status, err := svc.Forward(ctx, []byte(`[]`))
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}

			snap := recorder.Snapshot()
			if snap.AlertForwards[tt.wantMetric] != 1 {
				t.Errorf("expected one %q forward recorded, got %v", tt.wantMetric, snap.AlertForwards)
			}
		})
	}
}
