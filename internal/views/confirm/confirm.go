// Package confirm renders the quit-confirmation overlay shown when the
// operator requests quit while sessions are still running and
// settings.ConfirmQuit is set.
package confirm

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/fdaemon/supervisor/internal/theme"
)

var stylePanel = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.ColorDanger).
	Padding(1, 2)

// Model holds the confirm dialog's render inputs.
type Model struct {
	RunningSessionCount int
}

// New returns an empty confirm dialog model.
func New() Model { return Model{} }

// View renders the dialog centered in a width×height viewport.
func (m Model) View(width, height int) string {
	noun := "session"
	if m.RunningSessionCount != 1 {
		noun = "sessions"
	}
	msg := fmt.Sprintf("%d running %s will be stopped.\nQuit anyway?", m.RunningSessionCount, noun)
	body := theme.StyleHeader.Render("Confirm quit") + "\n\n" + msg + "\n\n" +
		theme.StyleDimmed.Render("y/enter confirm   n/esc cancel")
	panel := stylePanel.Width(40).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
