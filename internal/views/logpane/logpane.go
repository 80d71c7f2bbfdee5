// Package logpane renders a session's scrollable log buffer, with
// registry.LogEntry's Level/Source badges and a follow-mode indicator.
package logpane

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fdaemon/supervisor/internal/registry"
	"github.com/fdaemon/supervisor/internal/theme"
)

// Model holds the log pane's render inputs for one session.
type Model struct {
	Logs   []registry.LogEntry
	View   registry.LogView
	Width  int
	Height int
}

// New returns an empty log pane model.
func New() Model { return Model{} }

// Render renders the visible window of logs, most recent at the bottom
// unless the view has scrolled up (Follow=false).
func (m Model) Render() string {
	innerW := m.Width - 4
	if innerW < 20 {
		innerW = 20
	}
	visible := m.Height - 2
	if visible < 1 {
		visible = 1
	}

	if len(m.Logs) == 0 {
		return theme.StyleDimmed.Render("  no log output yet")
	}

	end := len(m.Logs) - m.View.Offset
	if end > len(m.Logs) {
		end = len(m.Logs)
	}
	start := end - visible
	if start < 0 {
		start = 0
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, renderLine(m.Logs[i], innerW))
	}

	body := strings.Join(lines, "\n")
	if !m.View.Follow {
		hint := theme.StyleDimmed.Render(fmt.Sprintf(" -- scrolled, %d lines below (G to follow) --", m.View.Offset))
		body = hint + "\n" + body
	}
	return body
}

func renderLine(e registry.LogEntry, width int) string {
	ts := theme.StyleDimmed.Render(e.Timestamp.Format("15:04:05.000"))
	levelStr := e.Level.String()
	levelBadge := lipgloss.NewStyle().Foreground(theme.LogLevelColor(levelStr)).Width(7).Render(levelStr)
	msg := e.Message
	budget := width - 30
	if budget > 0 && len(msg) > budget {
		msg = msg[:budget-1] + "…"
	}
	return fmt.Sprintf("%s %s [%s] %s", ts, levelBadge, e.Source, msg)
}
