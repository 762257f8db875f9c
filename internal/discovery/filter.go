package discovery

import (
	"strings"

	"github.com/bmatcuk/doublestar"

	"clusterfail/internal/domain"
)

// Filter narrows failure records down to the suites a run is interested in
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterBySuite keeps the records whose suite matches pattern.
// Patterns with wildcards ("*Cache*", "com.example.?Test") are glob matched
// against the whole suite name, anything else is a substring match.
// An empty pattern keeps every record.
func (f *Filter) FilterBySuite(records []domain.FailureRecord, pattern string) []domain.FailureRecord {
	if pattern == "" {
		return records
	}

	filtered := make([]domain.FailureRecord, 0, len(records))
	for _, r := range records {
		if matchSuite(r.Suite, pattern) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func matchSuite(suite, pattern string) bool {
	if !strings.ContainsAny(pattern, "*?[") {
		return strings.Contains(suite, pattern)
	}
	matched, err := doublestar.Match(pattern, suite)
	return err == nil && matched
}
