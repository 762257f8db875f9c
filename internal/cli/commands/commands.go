package commands

import (
	"clusterfail/internal/cli"
	"clusterfail/internal/config"
	"clusterfail/internal/logging"
	"clusterfail/internal/report"
	"clusterfail/internal/storage"
	"clusterfail/internal/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Commands holds all CLI commands
type Commands struct {
	Cluster        *ClusterCommand
	Show           *ShowCommand
	ClusterManager *ClusterManagerCommand

	level zap.AtomicLevel
}

// NewCommands creates all commands with dependencies. now stamps the reports;
// nil means the wall clock.
func NewCommands(cfg *config.Config, logger *zap.Logger, level zap.AtomicLevel, now report.Clock) *Commands {
	if logger == nil {
		logger = zap.NewNop()
	}

	reportStorage := storage.NewReportStorage(cfg, now)
	renderer := ui.NewMarkdownRenderer(100)

	return &Commands{
		Cluster:        NewClusterCommand(cfg, reportStorage, logger),
		Show:           NewShowCommand(reportStorage, renderer),
		ClusterManager: NewClusterManagerCommand(cfg, logger),
		level:          level,
	}
}

// Register registers all commands with cobra. The root command itself runs
// the clustering pipeline.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.Args = cobra.NoArgs
	rootCmd.RunE = c.Cluster.Execute
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Rebuild config once flags are parsed
		loaded, err := config.Load(flags.ToConfigFlags(cmd.Flags().Changed))
		if err != nil {
			return err
		}
		*cfg = *loaded
		logging.SetVerbose(c.level, flags.Verbose)
		return nil
	}

	rootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "Path to a YAML config file (default "+config.DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().StringVarP(&flags.ResultsDir, "results-dir", "r", "", "Directory holding TEST-*.xml reports (default "+config.DefaultResultsDir+")")
	rootCmd.Flags().StringVar(&flags.MarkdownOut, "md-out", "", "Markdown report path (default "+config.DefaultMarkdownOut+")")
	rootCmd.Flags().StringVar(&flags.JSONOut, "json-out", "", "JSON report path (default "+config.DefaultJSONOut+")")
	rootCmd.Flags().StringVar(&flags.Pattern, "pattern", "", "Report file name pattern (default "+config.DefaultPattern+")")
	rootCmd.Flags().StringVar(&flags.Suite, "suite", "", "Only cluster failures from suites matching this name or wildcard pattern")
	rootCmd.Flags().BoolVar(&flags.NormalizeNumbers, "normalize-numbers", false, "Replace every digit run in signatures with #")
	rootCmd.Flags().IntVar(&flags.MaxSignatureLen, "max-signature-len", 0, "Maximum signature length in characters (default 180)")
	rootCmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Only print the result line")

	// Show command
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Render the markdown report in the terminal",
		Long:  "Render the last markdown cluster report with terminal styling",
		Args:  cobra.NoArgs,
		RunE:  c.Show.Execute,
	}
	showCmd.Flags().StringVar(&flags.MarkdownOut, "md-out", "", "Markdown report path (default "+config.DefaultMarkdownOut+")")
	rootCmd.AddCommand(showCmd)

	// Cluster manager commands
	managerCmd := &cobra.Command{
		Use:   "cluster-manager",
		Short: "Start or stop a local test cluster",
		Long:  "Drive the external cluster management script used by integration tests",
	}
	managerCmd.PersistentFlags().BoolVar(&flags.TLS, "tls", false, "Use TLS for the cluster")

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a cluster and print its folder and nodes",
		Args:  cobra.NoArgs,
		RunE:  c.ClusterManager.Start,
	}
	startCmd.Flags().BoolVar(&flags.Ping, "ping", true, "Check every node answers PING before reporting the cluster")
	managerCmd.AddCommand(startCmd)

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop a cluster started by start",
		Args:  cobra.NoArgs,
		RunE:  c.ClusterManager.Stop,
	}
	stopCmd.Flags().StringVar(&flags.ClusterFolder, "cluster-folder", "", "Folder printed by start")
	_ = stopCmd.MarkFlagRequired("cluster-folder")
	managerCmd.AddCommand(stopCmd)

	rootCmd.AddCommand(managerCmd)
}
