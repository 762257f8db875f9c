package commands

import (
	"fmt"

	"clusterfail/internal/storage"
	"clusterfail/internal/ui"

	"github.com/spf13/cobra"
)

// ShowCommand renders the markdown report in the terminal
type ShowCommand struct {
	storage  storage.Storage
	renderer *ui.MarkdownRenderer
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(st storage.Storage, renderer *ui.MarkdownRenderer) *ShowCommand {
	return &ShowCommand{
		storage:  st,
		renderer: renderer,
	}
}

// Execute runs the command
func (sc *ShowCommand) Execute(cmd *cobra.Command, args []string) error {
	markdown, err := sc.storage.LoadMarkdown()
	if err != nil {
		return fmt.Errorf("no cluster report to show, run clusterfail first: %w", err)
	}

	rendered, err := sc.renderer.Render(markdown)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
