// Package detail renders the log-entry detail flyout opened by Enter on
// a selected log line (engine.ModeLogDetail): the full message plus, when
// present, its stack trace rendered as a fenced code block via glamour
// instead of hand-rolled text wrapping.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/fdaemon/supervisor/internal/registry"
	"github.com/fdaemon/supervisor/internal/theme"
)

const panelWidth = 72

var (
	stylePanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.ColorBorder).
			Padding(1, 2)

	styleLabel = lipgloss.NewStyle().Foreground(theme.ColorDimmed)
	styleValue = lipgloss.NewStyle().Foreground(theme.ColorBright)
	styleTitle = theme.StyleHeader
)

// Model holds the detail flyout's render input: the single log entry
// being inspected.
type Model struct {
	Entry registry.LogEntry
}

// New returns a detail model for entry.
func New(entry registry.LogEntry) Model {
	return Model{Entry: entry}
}

// View renders the flyout centered in a width×height viewport.
func (m Model) View(width, height int) string {
	e := m.Entry
	var b strings.Builder

	b.WriteString(styleTitle.Render("Log entry") + "\n")
	b.WriteString(strings.Repeat("─", panelWidth-4) + "\n")

	levelStr := e.Level.String()
	b.WriteString(row("Time", e.Timestamp.Format("2006-01-02 15:04:05.000")))
	b.WriteString(row("Level", lipgloss.NewStyle().Foreground(theme.LogLevelColor(levelStr)).Render(levelStr)))
	b.WriteString(row("Source", string(e.Source)))
	b.WriteString("\n")
	b.WriteString(styleLabel.Render("Message:") + "\n")
	b.WriteString(styleValue.Render(wrap(e.Message, panelWidth-4)) + "\n")

	if e.Stack != "" {
		b.WriteString("\n")
		b.WriteString(styleLabel.Render("Stack trace:") + "\n")
		b.WriteString(renderStack(e.Stack))
	}

	b.WriteString("\n")
	b.WriteString(theme.StyleDimmed.Render("esc close"))

	panel := stylePanel.Width(panelWidth).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}

// renderStack renders a stack trace as a fenced code block through
// glamour so it gets consistent syntax-neutral styling (a monospaced,
// bordered block) instead of raw text, falling back to the plain trace
// if the renderer itself fails to initialize.
func renderStack(stack string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(panelWidth-6),
	)
	if err != nil {
		return stack
	}
	out, err := r.Render(fmt.Sprintf("```\n%s\n```", stack))
	if err != nil {
		return stack
	}
	return strings.TrimRight(out, "\n")
}

func row(label, value string) string {
	return styleLabel.Width(10).Render(label+":") + styleValue.Render(value) + "\n"
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	var out strings.Builder
	line := 0
	for _, r := range s {
		if line >= width && r == ' ' {
			out.WriteString("\n")
			line = 0
			continue
		}
		out.WriteRune(r)
		line++
	}
	return out.String()
}
