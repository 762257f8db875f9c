package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar"

	"clusterfail/internal/domain"
)

// DefaultPattern matches the report files written by JUnit-style runners
const DefaultPattern = "TEST-*.xml"

// Scanner finds result reports in a directory
type Scanner struct {
	pattern string
}

// NewScanner creates a new Scanner matching file names against pattern
func NewScanner(pattern string) *Scanner {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &Scanner{pattern: pattern}
}

// Pattern returns the file name pattern used by the scanner
func (s *Scanner) Pattern() string {
	return s.pattern
}

// Scan returns the matching report files directly inside root, sorted by name.
// Subdirectories are not descended into.
func (s *Scanner) Scan(root string) ([]string, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, &domain.NotFoundError{Path: root}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read results directory %s: %w", root, err)
	}

	var reports []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		matched, err := doublestar.Match(s.pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid report pattern %q: %w", s.pattern, err)
		}
		if matched {
			reports = append(reports, filepath.Join(root, entry.Name()))
		}
	}

	sort.Strings(reports)

	return reports, nil
}
