package execution

import (
	"context"

	"clusterfail/internal/domain"
)

// Executor runs external commands and captures their output
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (domain.CommandResult, error)
}
