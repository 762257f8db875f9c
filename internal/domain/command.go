package domain

import "time"

// CommandResult represents the outcome of running an external command
type CommandResult struct {
	Command  []string      // Program followed by its arguments
	Stdout   string        // Captured standard output
	Stderr   string        // Captured standard error
	ExitCode int           // Process exit code, -1 if it never started
	Duration time.Duration // Time taken to execute
}
