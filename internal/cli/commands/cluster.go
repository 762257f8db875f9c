package commands

import (
	"clusterfail/internal/cluster"
	"clusterfail/internal/config"
	"clusterfail/internal/discovery"
	"clusterfail/internal/parser"
	"clusterfail/internal/signature"
	"clusterfail/internal/storage"
	"clusterfail/internal/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ClusterCommand loads the result reports, clusters their failures and
// writes both reports
type ClusterCommand struct {
	config  *config.Config
	storage storage.Storage
	logger  *zap.Logger
}

// NewClusterCommand creates a new ClusterCommand
func NewClusterCommand(cfg *config.Config, st storage.Storage, logger *zap.Logger) *ClusterCommand {
	return &ClusterCommand{
		config:  cfg,
		storage: st,
		logger:  logger,
	}
}

// Execute runs the command
func (cc *ClusterCommand) Execute(cmd *cobra.Command, args []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	quiet := cc.config.Flags.Quiet

	scanner := discovery.NewScanner(cc.config.GetPattern())
	normalizer := signature.NewNormalizer(cc.config.SignatureOptions())
	loader := parser.NewLoader(scanner, parser.NewJUnitParser(normalizer), cc.logger)
	if !quiet {
		loader.SetProgress(func(total int) parser.Progress {
			return ui.NewProgressBar(total, errOut)
		})
	}

	result, err := loader.Load(cc.config.GetResultsDir())
	if err != nil {
		return err
	}
	records := result.Records
	if suite := cc.config.Flags.Suite; suite != "" {
		records = discovery.NewFilter().FilterBySuite(records, suite)
		cc.logger.Debug("filtered failures by suite",
			zap.String("suite", suite),
			zap.Int("kept", len(records)),
			zap.Int("total", len(result.Records)))
	}
	if len(records) == 0 {
		cc.logger.Info("No failing test cases found (all green or no XML failures).")
	}

	clusters := cluster.NewAggregator().Aggregate(records)
	if err := cc.storage.Save(clusters, clusters.Total()); err != nil {
		return err
	}

	if !quiet {
		clusterReport, err := cc.storage.LoadJSON()
		if err != nil {
			return err
		}
		stats := ui.RunStats{
			Reports:  result.Scanned,
			Skipped:  result.Skipped,
			Bytes:    result.Bytes,
			Failures: clusters.Total(),
		}
		ui.NewFormatter(errOut).PrintClusterStats(stats, clusterReport)
	}

	ui.NewConsole(out, errOut).Success("Wrote %d clusters for %d failing cases.", clusters.Len(), clusters.Total())
	return nil
}
