// Package statusbar renders the single-line fleet summary pinned to the
// bottom of the screen: the selected session's own phase plus fleet-wide
// counts.
package statusbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/registry"
	"github.com/fdaemon/supervisor/internal/theme"
)

// Model holds the status bar's render inputs, refreshed from engine.State
// on every View call rather than mirrored incrementally.
type Model struct {
	SelectedDevice device.Device
	SelectedPhase  registry.Phase
	HasSelection   bool
	SessionCount   int
	RunningCount   int
	Width          int
}

// New returns an empty status bar model.
func New() Model { return Model{} }

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var selStr string
	if m.HasSelection {
		phaseStr := m.SelectedPhase.String()
		glyph := theme.PhaseGlyph(phaseStr)
		color := theme.PhaseColor(phaseStr)
		platformBadge := lipgloss.NewStyle().Foreground(theme.PlatformColor(string(m.SelectedDevice.Platform))).
			Render("[" + string(m.SelectedDevice.Platform) + "]")
		selStr = lipgloss.NewStyle().Foreground(color).Render(glyph+" "+phaseStr) +
			" " + platformBadge + " " + m.SelectedDevice.Name
	} else {
		selStr = theme.StyleDimmed.Render("no session selected")
	}

	counts := fmt.Sprintf("%d/%d sessions running", m.RunningCount, m.SessionCount)

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := selStr + sep + counts

	bar := lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)

	return bar
}
