package report

import (
	"io"
	"time"

	"clusterfail/internal/cluster"
)

const (
	// MarkdownExamples is the number of members listed per cluster in the markdown report
	MarkdownExamples = 10
	// JSONExamples is the number of members listed per cluster in the JSON report
	JSONExamples = 20
)

// Clock returns the time a report is generated at
type Clock func() time.Time

// Writer renders clusters into a report
type Writer interface {
	Write(w io.Writer, clusters *cluster.Map, total int) error
}

func clockOrNow(now Clock) Clock {
	if now == nil {
		return time.Now
	}
	return now
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
