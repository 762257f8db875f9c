package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"clusterfail/internal/cli"
	"clusterfail/internal/cli/commands"
	"clusterfail/internal/config"
	"clusterfail/internal/domain"
	"clusterfail/internal/logging"

	"github.com/spf13/cobra"
)

var version = "dev"

const (
	exitFailure  = 1
	exitNotFound = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, level := logging.New(stderr)
	defer func() { _ = logger.Sync() }()

	// Create root command
	rootCmd := &cobra.Command{
		Use:           "clusterfail",
		Short:         "Cluster failing JUnit test cases by failure signature",
		Long:          `Read JUnit XML reports, group failing test cases whose failure messages normalize to the same signature, and write a ranked markdown and JSON report.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	cmds := commands.NewCommands(cfg, logger, level, nil)
	cmds.Register(rootCmd, &flags, cfg)

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return exitNotFound
	}
	return exitFailure
}
