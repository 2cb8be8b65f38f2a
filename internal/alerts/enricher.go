// Package alerts provides enrichment and forwarding for Grafana/Prometheus
// alert payloads. Alerts arrive as a JSON list; each one is stamped with
// the ITSM labels operations tooling requires downstream, then optionally
// forwarded to an Alertmanager endpoint.
package alerts

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Label values applied to every alert.
const (
	labelIntegration = "external"
	labelNamespace   = "monitoring"
	enrichedBy       = "gistrelay"
	defaultSeverity  = "info"
)

// Event IDs are short random uppercase strings unless overridden.
const (
	eventIDLength   = 5
	eventIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// EnricherConfig holds the environment-driven label values.
type EnricherConfig struct {
	// Environment becomes the itsm_environment label (e.g. "production").
	Environment string
	// AppID becomes the itsm_app_id label.
	AppID string
	// ContractID becomes the itsm_contract_id label.
	ContractID string
	// EventIDOverride pins itsm_event_id; empty means a random ID per alert.
	EventIDOverride string
	// ClusterName becomes the cluster_name label.
	ClusterName string
}

// Enricher stamps ITSM labels onto alert objects.
type Enricher struct {
	cfg EnricherConfig
	now func() time.Time
}

// NewEnricher creates a new Enricher.
func NewEnricher(cfg EnricherConfig) *Enricher {
	return &Enricher{
		cfg: cfg,
		now: time.Now,
	}
}

// Enrich mutates the given alerts in place, adding the static, conditional
// and dynamic ITSM labels. Label keys the alert already carries, other than
// the ones enrichment owns, pass through untouched.
func (e *Enricher) Enrich(alerts []map[string]any) error {
	for _, alert := range alerts {
		labels := childObject(alert, "labels")
		annotations := childObject(alert, "annotations")

		// Static labels
		labels["integration"] = labelIntegration
		labels["itsm_enabled"] = "true"
		labels["itsm_environment"] = e.cfg.Environment
		labels["teams_enabled"] = "false"
		labels["namespace"] = labelNamespace

		if _, ok := labels["severity"]; !ok {
			labels["severity"] = defaultSeverity
		}

		// ITSM routing labels
		labels["itsm_app_id"] = e.cfg.AppID
		labels["itsm_contract_id"] = e.cfg.ContractID

		eventID := e.cfg.EventIDOverride
		if eventID == "" {
			generated, err := generateEventID()
			if err != nil {
				return fmt.Errorf("failed to generate event ID: %w", err)
			}
			eventID = generated
		}
		labels["itsm_event_id"] = eventID
		labels["itsm_severity"] = itsmSeverity(stringLabel(labels, "severity"))

		// Dynamic labels
		labels["cluster_name"] = e.cfg.ClusterName

		// Enrichment metadata
		labels["enriched_by"] = enrichedBy
		annotations["processed_at"] = e.now().UTC().Format(time.RFC3339)
	}
	return nil
}

// childObject returns the named child map, creating it when the key is
// absent or holds a non-object value.
func childObject(parent map[string]any, key string) map[string]any {
	if child, ok := parent[key].(map[string]any); ok {
		return child
	}
	child := make(map[string]any)
	parent[key] = child
	return child
}

// stringLabel reads a label as a string, falling back to the default
// severity for non-string values.
func stringLabel(labels map[string]any, key string) string {
	if s, ok := labels[key].(string); ok {
		return s
	}
	return defaultSeverity
}

// itsmSeverity maps an alert severity onto the ITSM scale.
func itsmSeverity(severity string) string {
	switch strings.ToLower(severity) {
	case "critical":
		return "CRITICAL"
	case "major", "high":
		return "MAJOR"
	default:
		return "MINOR"
	}
}

// generateEventID returns a random uppercase alphabetic event ID.
func generateEventID() (string, error) {
	var b strings.Builder
	b.Grow(eventIDLength)
	alphabetLen := big.NewInt(int64(len(eventIDAlphabet)))
	for i := 0; i < eventIDLength; i++ {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		b.WriteByte(eventIDAlphabet[n.Int64()])
	}
	return b.String(), nil
}
