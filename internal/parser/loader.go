package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"clusterfail/internal/discovery"
	"clusterfail/internal/domain"
)

// Progress receives one tick per processed report
type Progress interface {
	Increment()
	Finish()
}

// ProgressFunc creates the progress reporter for a run over total reports
type ProgressFunc func(total int) Progress

// LoadResult holds the failure records found in a results directory
type LoadResult struct {
	Records      []domain.FailureRecord
	Scanned      int   // Reports attempted
	Skipped      int   // Reports that could not be parsed
	Bytes        int64 // Total size of the reports attempted
	StrayMarkers int
	StrayExample string // First report that contained stray failure markers
}

// Loader reads result reports and extracts their failing test cases
type Loader struct {
	scanner     *discovery.Scanner
	parser      Parser
	logger      *zap.Logger
	newProgress ProgressFunc
}

// NewLoader creates a new Loader
func NewLoader(scanner *discovery.Scanner, parser Parser, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		scanner: scanner,
		parser:  parser,
		logger:  logger,
	}
}

// SetProgress sets how the loader creates a progress reporter once the
// number of reports is known
func (l *Loader) SetProgress(newProgress ProgressFunc) {
	l.newProgress = newProgress
}

// Load scans dir for reports and extracts their failure records.
// It fails only when dir cannot be located.
func (l *Loader) Load(dir string) (*LoadResult, error) {
	files, err := l.scanner.Scan(dir)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("discovered reports",
		zap.String("dir", dir),
		zap.String("pattern", l.scanner.Pattern()),
		zap.Int("count", len(files)),
	)
	return l.LoadFiles(files), nil
}

// LoadFiles extracts failure records from the given reports, in order.
// Unparsable reports are logged and skipped.
func (l *Loader) LoadFiles(files []string) *LoadResult {
	result := &LoadResult{Scanned: len(files)}

	var progress Progress
	if l.newProgress != nil && len(files) > 0 {
		progress = l.newProgress(len(files))
	}

	for _, path := range files {
		file := l.loadFile(path)
		result.Bytes += file.size
		if progress != nil {
			progress.Increment()
		}

		if file.markers > 0 && result.StrayExample == "" {
			result.StrayExample = path
		}
		result.StrayMarkers += file.markers

		if file.err != nil {
			l.logger.Warn("skipping unparsable report",
				zap.String("path", path),
				zap.Error(&domain.ParseError{Path: path, Err: file.err}),
			)
			result.Skipped++
			continue
		}

		l.logger.Debug("parsed report",
			zap.String("path", path),
			zap.String("suite", file.doc.Suite),
			zap.Int("failures", len(file.doc.Records)),
		)
		result.Records = append(result.Records, file.doc.Records...)
	}

	if progress != nil {
		progress.Finish()
	}

	if len(result.Records) == 0 && result.StrayMarkers > 0 {
		l.logger.Warn("failure markers found but no records parsed; ignore if the suite is fully green",
			zap.String("path", result.StrayExample),
			zap.Int("markers", result.StrayMarkers),
		)
	}

	return result
}

type loadedFile struct {
	doc  *Document
	size int64
	err  error
	// markers counts failure markers the records do not account for: stray
	// ones in a parsed report, or 1 for an unparsable report mentioning one
	markers int
}

// loadFile parses one report. The file is closed before returning.
func (l *Loader) loadFile(path string) loadedFile {
	f, err := os.Open(path)
	if err != nil {
		return loadedFile{err: fmt.Errorf("open report: %w", err)}
	}
	defer f.Close()

	var out loadedFile
	if info, err := f.Stat(); err == nil {
		out.size = info.Size()
	}

	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	sniff := &markerSniffer{}
	doc, err := l.parser.Parse(io.TeeReader(f, sniff), stem)
	if err != nil {
		// The rest of the file still counts towards the marker check
		_, _ = io.Copy(sniff, f)
		out.err = err
		if sniff.found {
			out.markers = 1
		}
		return out
	}

	out.doc = doc
	out.markers = doc.StrayMarkers
	return out
}

var markerTags = [][]byte{[]byte("<failure"), []byte("<error")}

// markerSniffer reports whether the bytes written to it contain a failure or
// error tag, including one split across writes
type markerSniffer struct {
	tail  []byte
	found bool
}

func (s *markerSniffer) Write(p []byte) (int, error) {
	if s.found {
		return len(p), nil
	}

	buf := append(s.tail, p...)
	for _, tag := range markerTags {
		if bytes.Contains(buf, tag) {
			s.found = true
			s.tail = nil
			return len(p), nil
		}
	}

	keep := len(markerTags[0]) - 1
	if len(buf) > keep {
		buf = buf[len(buf)-keep:]
	}
	s.tail = append([]byte(nil), buf...)
	return len(p), nil
}
