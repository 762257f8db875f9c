package ui

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"clusterfail/internal/domain"
)

// TopClusters is the number of clusters shown in the summary table
const TopClusters = 5

const signatureWidth = 48

// RunStats describes what a clustering run read and produced
type RunStats struct {
	Reports  int
	Skipped  int
	Bytes    int64
	Failures int
}

// Formatter formats and displays run summaries
type Formatter struct {
	w io.Writer
}

// NewFormatter creates a new Formatter writing to w
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// PrintClusterStats prints the run statistics and the largest clusters of a report
func (f *Formatter) PrintClusterStats(stats RunStats, report *domain.ClusterReport) {
	header := color.New(color.FgCyan)
	header.Fprintln(f.w, "╔═══════════════════════════════════════════════════════════════╗")
	header.Fprintln(f.w, "║                    Failure Cluster Summary                    ║")
	header.Fprintln(f.w, "╚═══════════════════════════════════════════════════════════════╝")

	fmt.Fprintln(f.w, "┌─────────────────────────────────┬─────────────────────────────┐")
	f.row("Reports Scanned", fmt.Sprintf("%d (%s)", stats.Reports, humanize.Bytes(uint64(max(stats.Bytes, 0)))), color.FgWhite)
	f.separator()
	f.row("Reports Skipped", fmt.Sprintf("%d", stats.Skipped), skippedColor(stats.Skipped))
	f.separator()
	f.row("Failing Test Cases", fmt.Sprintf("%d", stats.Failures), failureColor(stats.Failures))
	f.separator()
	f.row("Clusters", fmt.Sprintf("%d", len(report.Clusters)), color.FgWhite)
	f.separator()
	f.row("Generated At", report.GeneratedAt, color.FgWhite)
	fmt.Fprintln(f.w, "└─────────────────────────────────┴─────────────────────────────┘")

	if len(report.Clusters) == 0 {
		color.New(color.FgGreen).Fprintln(f.w, "✓ No failing test cases!")
		return
	}

	fmt.Fprintln(f.w)
	color.New(color.FgRed).Fprintf(f.w, "✗ Top %d cluster(s):\n", min(TopClusters, len(report.Clusters)))
	for i, c := range report.Clusters {
		if i == TopClusters {
			break
		}
		fmt.Fprintf(f.w, "  %2d. ", i+1)
		color.New(color.FgYellow).Fprintf(f.w, "%4d", c.Count)
		fmt.Fprintf(f.w, "  %s\n", shorten(c.Signature, signatureWidth))
	}
}

func (f *Formatter) row(label, value string, attr color.Attribute) {
	fmt.Fprintf(f.w, "│ %-31s │ ", label)
	color.New(attr).Fprintf(f.w, "%-27s", value)
	fmt.Fprintln(f.w, " │")
}

func (f *Formatter) separator() {
	fmt.Fprintln(f.w, "├─────────────────────────────────┼─────────────────────────────┤")
}

func skippedColor(n int) color.Attribute {
	if n > 0 {
		return color.FgYellow
	}
	return color.FgWhite
}

func failureColor(n int) color.Attribute {
	if n > 0 {
		return color.FgRed
	}
	return color.FgGreen
}

func shorten(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
