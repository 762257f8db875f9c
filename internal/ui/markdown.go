package ui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown reports for the terminal
type MarkdownRenderer struct {
	wordWrap int
}

// NewMarkdownRenderer creates a new MarkdownRenderer
func NewMarkdownRenderer(wordWrap int) *MarkdownRenderer {
	if wordWrap <= 0 {
		wordWrap = 100
	}
	return &MarkdownRenderer{wordWrap: wordWrap}
}

// Render returns the terminal representation of a markdown document
func (r *MarkdownRenderer) Render(markdown []byte) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(r.wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.RenderBytes(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return string(out), nil
}
