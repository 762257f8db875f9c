package storage

import (
	"clusterfail/internal/cluster"
	"clusterfail/internal/config"
	"clusterfail/internal/domain"
	"clusterfail/internal/report"
)

// Storage persists the cluster reports of a run and loads them back
type Storage interface {
	Save(clusters *cluster.Map, total int) error
	LoadJSON() (*domain.ClusterReport, error)
	LoadMarkdown() ([]byte, error)
}

// ReportStorage writes the markdown and JSON reports to the configured paths
type ReportStorage struct {
	cfg      *config.Config
	markdown report.Writer
	json     report.Writer
}

// NewReportStorage returns a Storage that renders reports with the given clock
func NewReportStorage(cfg *config.Config, now report.Clock) *ReportStorage {
	return &ReportStorage{
		cfg:      cfg,
		markdown: report.NewMarkdownReport(now),
		json:     report.NewJSONReport(now),
	}
}
