package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"clusterfail/internal/cluster"
)

// MarkdownReport renders the human readable cluster summary
type MarkdownReport struct {
	now Clock
}

// NewMarkdownReport creates a new MarkdownReport
func NewMarkdownReport(now Clock) *MarkdownReport {
	return &MarkdownReport{now: clockOrNow(now)}
}

// Write renders clusters with a summary table followed by one section per
// cluster, largest cluster first. total is the number of failing test cases.
func (r *MarkdownReport) Write(w io.Writer, clusters *cluster.Map, total int) error {
	ranked := clusters.Ranked()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Failure Clusters (Generated %s)\n\n", r.now().UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(bw, "Total failing test cases: %d\n", total)
	fmt.Fprintf(bw, "Unique normalized clusters: %d\n\n", len(ranked))

	fmt.Fprintln(bw, "| Rank | Count | Percent | Signature |")
	fmt.Fprintln(bw, "|------|-------|---------|-----------|")
	for i, c := range ranked {
		fmt.Fprintf(bw, "| %d | %d | %s | %s |\n", i+1, c.Size(), percent(c.Size(), total), escapePipes(c.Signature))
	}

	fmt.Fprint(bw, "\n---\n\n")

	for i, c := range ranked {
		fmt.Fprintf(bw, "## Cluster %d (%d)\n", i+1, c.Size())
		fmt.Fprintf(bw, "Signature: %s\n", c.Signature)
		example := c.Records[0]
		fmt.Fprintf(bw, "Representative: %s :: %s\n", example.Suite, example.Test)
		fmt.Fprintln(bw, "Examples:")
		for _, rec := range limit(c.Records, MarkdownExamples) {
			fmt.Fprintf(bw, "  - %s :: %s\n", rec.Suite, rec.Test)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

func percent(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}

// escapePipes keeps signatures from splitting table cells
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
