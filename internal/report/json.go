package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"clusterfail/internal/cluster"
	"clusterfail/internal/domain"
)

// JSONReport renders the machine readable cluster summary
type JSONReport struct {
	now Clock
}

// NewJSONReport creates a new JSONReport
func NewJSONReport(now Clock) *JSONReport {
	return &JSONReport{now: clockOrNow(now)}
}

// Build returns the report document for clusters, largest cluster first
func (r *JSONReport) Build(clusters *cluster.Map) domain.ClusterReport {
	ranked := clusters.Ranked()
	out := domain.ClusterReport{
		GeneratedAt: r.now().UTC().Format(time.RFC3339),
		Clusters:    make([]domain.ClusterEntry, 0, len(ranked)),
	}

	for _, c := range ranked {
		examples := limit(c.Records, JSONExamples)
		entry := domain.ClusterEntry{
			Signature: c.Signature,
			Count:     c.Size(),
			Examples:  make([]domain.ClusterExample, 0, len(examples)),
		}
		for _, rec := range examples {
			entry.Examples = append(entry.Examples, domain.ClusterExample{Suite: rec.Suite, Test: rec.Test})
		}
		out.Clusters = append(out.Clusters, entry)
	}

	return out
}

// Write renders clusters as indented JSON. total is accepted to satisfy
// Writer and is implied by the cluster counts.
func (r *JSONReport) Write(w io.Writer, clusters *cluster.Map, total int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	// Signatures carry placeholders such as <id> that must stay readable.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.Build(clusters)); err != nil {
		return fmt.Errorf("marshal clusters: %w", err)
	}
	return nil
}
