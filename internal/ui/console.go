package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Console writes user facing messages
type Console struct {
	out io.Writer
	err io.Writer
}

// NewConsole creates a new Console writing results to out and notices to err
func NewConsole(out, err io.Writer) *Console {
	return &Console{out: out, err: err}
}

// Success prints a result line on the output stream
func (c *Console) Success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(c.out, format+"\n", args...)
}

// Plain prints an uncoloured line on the output stream
func (c *Console) Plain(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Notice prints an informational line on the error stream
func (c *Console) Notice(format string, args ...any) {
	color.New(color.FgCyan).Fprintf(c.err, format+"\n", args...)
}
