package commands

import (
	"errors"
	"fmt"

	"clusterfail/internal/clustermgr"
	"clusterfail/internal/config"
	"clusterfail/internal/execution"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ClusterManagerCommand starts and stops test clusters through the external
// management script
type ClusterManagerCommand struct {
	config *config.Config
	logger *zap.Logger
}

// NewClusterManagerCommand creates a new ClusterManagerCommand
func NewClusterManagerCommand(cfg *config.Config, logger *zap.Logger) *ClusterManagerCommand {
	return &ClusterManagerCommand{
		config: cfg,
		logger: logger,
	}
}

// manager is built per invocation since the script settings come from the
// loaded config
func (mc *ClusterManagerCommand) manager() *clustermgr.Manager {
	runner := execution.NewRunner(mc.config.ClusterTimeout)
	return clustermgr.NewManager(runner, mc.config.Python, mc.config.ClusterScript, mc.logger)
}

// Start starts a cluster and prints its folder and node list
func (mc *ClusterManagerCommand) Start(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	manager := mc.manager()

	c, err := manager.Start(ctx, mc.config.Flags.TLS)
	if err != nil {
		return err
	}

	if mc.config.Flags.Ping {
		if err := c.Ping(ctx); err != nil {
			// Don't leave an unusable cluster behind
			if stopErr := manager.Stop(ctx, c); stopErr != nil {
				err = errors.Join(err, stopErr)
			}
			return err
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), clustermgr.FormatStartOutput(c))
	return nil
}

// Stop stops the cluster living in the given folder
func (mc *ClusterManagerCommand) Stop(cmd *cobra.Command, args []string) error {
	c := &clustermgr.Cluster{
		Folder: mc.config.Flags.ClusterFolder,
		TLS:    mc.config.Flags.TLS,
	}
	if err := mc.manager().Stop(cmd.Context(), c); err != nil {
		return err
	}

	mc.logger.Info("cluster stopped", zap.String("folder", c.Folder))
	return nil
}
