package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"clusterfail/internal/cluster"
	"clusterfail/internal/domain"
	"clusterfail/internal/report"
)

// Save renders both reports and writes them, creating parent directories as needed.
func (s *ReportStorage) Save(clusters *cluster.Map, total int) error {
	if err := writeReport(s.cfg.GetMarkdownPath(), s.markdown, clusters, total); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	if err := writeReport(s.cfg.GetJSONPath(), s.json, clusters, total); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}

// LoadJSON reads the JSON report written by the last run.
func (s *ReportStorage) LoadJSON() (*domain.ClusterReport, error) {
	data, err := os.ReadFile(s.cfg.GetJSONPath())
	if err != nil {
		return nil, fmt.Errorf("read JSON report: %w", err)
	}
	var out domain.ClusterReport
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse JSON report: %w", err)
	}
	return &out, nil
}

// LoadMarkdown reads the markdown report written by the last run.
func (s *ReportStorage) LoadMarkdown() ([]byte, error) {
	data, err := os.ReadFile(s.cfg.GetMarkdownPath())
	if err != nil {
		return nil, fmt.Errorf("read markdown report: %w", err)
	}
	return data, nil
}

func writeReport(path string, w report.Writer, clusters *cluster.Map, total int) error {
	var buf bytes.Buffer
	if err := w.Write(&buf, clusters, total); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
