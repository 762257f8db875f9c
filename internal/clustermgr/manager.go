package clustermgr

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"clusterfail/internal/execution"
)

// Manager starts and stops clusters through an external cluster manager script
type Manager struct {
	executor execution.Executor
	python   string
	script   string
	logger   *zap.Logger
}

// NewManager creates a new Manager that runs script with the python interpreter
func NewManager(executor execution.Executor, python, script string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		executor: executor,
		python:   python,
		script:   script,
		logger:   logger,
	}
}

// Start launches a new cluster and returns its folder and node addresses
func (m *Manager) Start(ctx context.Context, tls bool) (*Cluster, error) {
	result, err := m.executor.Run(ctx, m.python, m.args(tls, "start")...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cluster: %w", err)
	}

	c, err := ParseStartOutput(result.Stdout)
	if err != nil {
		return nil, err
	}
	c.TLS = tls

	m.logger.Debug("cluster started",
		zap.String("folder", c.Folder),
		zap.Int("nodes", len(c.Nodes)),
		zap.Duration("took", result.Duration),
	)
	return c, nil
}

// Stop shuts down the cluster living in c.Folder
func (m *Manager) Stop(ctx context.Context, c *Cluster) error {
	if c == nil || c.Folder == "" {
		return errors.New("cluster folder is required")
	}

	if _, err := m.executor.Run(ctx, m.python, m.args(c.TLS, "stop", "--cluster-folder", c.Folder)...); err != nil {
		return fmt.Errorf("failed to stop cluster %s: %w", c.Folder, err)
	}

	m.logger.Debug("cluster stopped", zap.String("folder", c.Folder))
	return nil
}

func (m *Manager) args(tls bool, command ...string) []string {
	args := []string{m.script}
	if tls {
		args = append(args, "--tls")
	}
	return append(args, command...)
}
