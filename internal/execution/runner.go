package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"clusterfail/internal/domain"
)

// ErrTimeout is returned when a command outlives the runner's timeout
var ErrTimeout = errors.New("command timed out")

// waitDelay bounds how long Run waits for output pipes after the process is killed
const waitDelay = 2 * time.Second

// Runner executes a single external command
type Runner struct {
	timeout time.Duration
	dir     string
}

// NewRunner creates a new Runner. A non-positive timeout disables the limit.
func NewRunner(timeout time.Duration) *Runner {
	return &Runner{timeout: timeout}
}

// SetDir sets the working directory for executed commands
func (r *Runner) SetDir(dir string) {
	r.dir = dir
}

// Run executes name with args, capturing stdout and stderr separately.
// A non-zero exit status is returned as an error that includes stderr.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (domain.CommandResult, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()
	cmd.Dir = r.dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	result := domain.CommandResult{
		Command:  append([]string{name}, args...),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	commandLine := strings.Join(result.Command, " ")
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return result, fmt.Errorf("%s: %w after %s", commandLine, ErrTimeout, r.timeout)
	}
	if err != nil {
		return result, fmt.Errorf("%s: %w\n%s", commandLine, err, strings.TrimSpace(result.Stderr))
	}
	return result, nil
}
