package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	journalerrors "github.com/robinvdvleuten/hledger-fmt/errors"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}).TabWidth(lipgloss.NoTabConversion)
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

const gutterSeparator = " | "

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	formatter *journalerrors.TextFormatter
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	return &ErrorRenderer{
		formatter: journalerrors.NewTextFormatter(journalerrors.WithSource(source)),
	}
}

// Render formats a single error with styling and context.
func (r *ErrorRenderer) Render(err error) string {
	lines := strings.Split(r.formatter.Format(err), "\n")

	for i, line := range lines {
		switch gutter, text, ok := strings.Cut(line, gutterSeparator); {
		case i == 0:
			lines[i] = errorStyle.Bold(true).Render(line)
		case ok && isCaretLine(text):
			lines[i] = errContextStyle.Render(gutter+gutterSeparator) + errCaretStyle.Render(text)
		case ok:
			lines[i] = errContextStyle.Render(gutter+gutterSeparator) + text
		case i > 0 && strings.HasPrefix(line, "Expected "):
			lines[i] = errContextStyle.Render(line)
		}
	}

	return strings.Join(lines, "\n")
}

// isCaretLine reports whether text is the marker line under an error: spaces
// and tabs followed by at least one caret.
func isCaretLine(text string) bool {
	marks := strings.TrimLeft(text, " \t")
	return marks != "" && strings.Trim(marks, "^") == ""
}
