package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"clusterfail/internal/discovery"
	"clusterfail/internal/domain"
	"clusterfail/internal/signature"
)

type countingProgress struct {
	ticks    int
	finished bool
}

func (p *countingProgress) Increment() { p.ticks++ }
func (p *countingProgress) Finish()    { p.finished = true }

func writeReports(t *testing.T, dir string, reports map[string]string) {
	t.Helper()
	for name, content := range reports {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func newTestLoader(logger *zap.Logger) *Loader {
	return NewLoader(discovery.NewScanner(""), newTestParser(), logger)
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeReports(t, dir, map[string]string{
		"TEST-b.xml": `<testsuite name="B">
  <testcase name="b1"><failure message="Expected 1 but got 2 @deadbeef00"/></testcase>
</testsuite>`,
		"TEST-a.xml": `<testsuite name="A">
  <testcase name="a1"><failure message="Expected 1 but got 2 @1a2b3c4d"/></testcase>
  <testcase name="a2"/>
  <testcase name="a3"><error message="Connection refused"/></testcase>
</testsuite>`,
		"TEST-broken.xml": `<testsuite name="broken"><testcase>`,
		"other.xml":       `<testsuite name="ignored"><testcase name="x"><failure/></testcase></testsuite>`,
	})

	core, logs := observer.New(zap.InfoLevel)
	loader := newTestLoader(zap.New(core))
	progress := &countingProgress{}
	var total int
	loader.SetProgress(func(n int) Progress {
		total = n
		return progress
	})

	result, err := loader.Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("records in document then testcase order", func(t *testing.T) {
		var got []string
		for _, r := range result.Records {
			got = append(got, r.Suite+"::"+r.Test)
		}
		expected := []string{"A::a1", "A::a3", "B::b1"}
		if len(got) != len(expected) {
			t.Fatalf("expected %v, got %v", expected, got)
		}
		for i := range expected {
			if got[i] != expected[i] {
				t.Errorf("record %d: expected %s, got %s", i, expected[i], got[i])
			}
		}
	})

	t.Run("hex ids share a signature", func(t *testing.T) {
		if result.Records[0].Signature != result.Records[2].Signature {
			t.Errorf("expected equal signatures, got %q and %q", result.Records[0].Signature, result.Records[2].Signature)
		}
	})

	t.Run("broken report is skipped with a warning", func(t *testing.T) {
		if result.Scanned != 3 {
			t.Errorf("expected 3 scanned reports, got %d", result.Scanned)
		}
		if result.Skipped != 1 {
			t.Errorf("expected 1 skipped report, got %d", result.Skipped)
		}

		warnings := logs.FilterMessage("skipping unparsable report").All()
		if len(warnings) != 1 {
			t.Fatalf("expected 1 warning, got %d", len(warnings))
		}
		fields := warnings[0].ContextMap()
		if fields["path"] != filepath.Join(dir, "TEST-broken.xml") {
			t.Errorf("unexpected path field %v", fields["path"])
		}
	})

	t.Run("progress ticks once per report", func(t *testing.T) {
		if total != 3 {
			t.Errorf("expected progress sized for 3 reports, got %d", total)
		}
		if progress.ticks != 3 || !progress.finished {
			t.Errorf("expected 3 ticks and finish, got %d ticks, finished=%v", progress.ticks, progress.finished)
		}
	})

	t.Run("bytes counted", func(t *testing.T) {
		if result.Bytes <= 0 {
			t.Errorf("expected positive byte count, got %d", result.Bytes)
		}
	})
}

func TestLoader_Load_NotFound(t *testing.T) {
	_, err := newTestLoader(nil).Load(filepath.Join(t.TempDir(), "missing"))
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestLoader_Load_NoFailures(t *testing.T) {
	dir := t.TempDir()
	writeReports(t, dir, map[string]string{
		"TEST-green.xml": `<testsuite name="G"><testcase name="ok"/></testsuite>`,
	})

	core, logs := observer.New(zap.InfoLevel)
	result, err := newTestLoader(zap.New(core)).Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("expected no records, got %d", len(result.Records))
	}
	if logs.Len() != 0 {
		t.Errorf("expected no log entries, got %d", logs.Len())
	}
}

func TestLoader_Load_StrayMarkersWarning(t *testing.T) {
	dir := t.TempDir()
	writeReports(t, dir, map[string]string{
		"TEST-wrapped.xml": `<testsuites><testsuite name="S">
  <testcase name="t"><failure message="hidden"/></testcase>
</testsuite></testsuites>`,
	})

	core, logs := observer.New(zap.InfoLevel)
	result, err := newTestLoader(zap.New(core)).Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("expected no records, got %d", len(result.Records))
	}
	if result.StrayExample != filepath.Join(dir, "TEST-wrapped.xml") {
		t.Errorf("unexpected stray example %q", result.StrayExample)
	}
	if logs.FilterLevelExact(zap.WarnLevel).Len() != 1 {
		t.Errorf("expected one discrepancy warning, got %d", logs.FilterLevelExact(zap.WarnLevel).Len())
	}
}

func TestLoader_Load_StrayMarkersInUnparsableReport(t *testing.T) {
	dir := t.TempDir()
	writeReports(t, dir, map[string]string{
		"TEST-green.xml":     `<testsuite name="G"><testcase name="ok"/></testsuite>`,
		"TEST-truncated.xml": `<testsuite name="T"><testcase name="t"><failure message="cut off`,
	})

	core, logs := observer.New(zap.InfoLevel)
	result, err := newTestLoader(zap.New(core)).Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Skipped != 1 {
		t.Errorf("expected 1 skipped report, got %d", result.Skipped)
	}
	if result.StrayMarkers != 1 {
		t.Errorf("expected 1 stray marker, got %d", result.StrayMarkers)
	}
	if result.StrayExample != filepath.Join(dir, "TEST-truncated.xml") {
		t.Errorf("unexpected stray example %q", result.StrayExample)
	}
	if logs.FilterMessage("failure markers found but no records parsed; ignore if the suite is fully green").Len() != 1 {
		t.Errorf("expected one discrepancy warning")
	}
}

func TestLoader_Load_NoProgressForEmptyDir(t *testing.T) {
	loader := newTestLoader(nil)
	called := false
	loader.SetProgress(func(int) Progress {
		called = true
		return &countingProgress{}
	})

	result, err := loader.Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Scanned != 0 || called {
		t.Errorf("expected no reports and no progress, got %d scanned, progress created=%v", result.Scanned, called)
	}
}

func TestMarkerSniffer(t *testing.T) {
	tests := []struct {
		name     string
		chunks   []string
		expected bool
	}{
		{"single write", []string{`<testcase><failure/>`}, true},
		{"error tag", []string{`<error message="x"/>`}, true},
		{"split across writes", []string{`<testcase><fai`, `lure/>`}, true},
		{"split one byte at a time", strings.Split("<failure", ""), true},
		{"no marker", []string{`<testsuite>`, `<testcase name="failure"/>`}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &markerSniffer{}
			for _, chunk := range tt.chunks {
				if n, err := s.Write([]byte(chunk)); err != nil || n != len(chunk) {
					t.Fatalf("write %q: n=%d err=%v", chunk, n, err)
				}
			}
			if s.found != tt.expected {
				t.Errorf("expected found=%v, got %v", tt.expected, s.found)
			}
		})
	}
}

func TestLoader_LoadFiles_FallbackSuite(t *testing.T) {
	dir := t.TempDir()
	writeReports(t, dir, map[string]string{
		"TEST-com.example.Nameless.xml": `<testsuite><testcase name="t"><failure message="x"/></testcase></testsuite>`,
	})

	loader := NewLoader(discovery.NewScanner(""), NewJUnitParser(signature.NewNormalizer(signature.Options{})), nil)
	result := loader.LoadFiles([]string{filepath.Join(dir, "TEST-com.example.Nameless.xml")})
	if len(result.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(result.Records))
	}
	if result.Records[0].Suite != "TEST-com.example.Nameless" {
		t.Errorf("expected file stem as suite, got %q", result.Records[0].Suite)
	}
}
