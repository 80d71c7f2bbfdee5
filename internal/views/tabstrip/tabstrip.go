// Package tabstrip renders the fleet's session tabs across the top of the
// screen — each a 1-based index, device name, and phase glyph — with the
// selected tab highlighted.
package tabstrip

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/registry"
	"github.com/fdaemon/supervisor/internal/theme"
)

// Tab is one rendered session tab's display inputs.
type Tab struct {
	Index    int
	Device   device.Device
	Phase    registry.Phase
	Selected bool
}

// Model holds the tab strip's render inputs.
type Model struct {
	Tabs  []Tab
	Width int
}

// New returns an empty tab strip model.
func New() Model { return Model{} }

// View renders the tab strip as a single horizontal row. An empty fleet
// renders a short hint instead of a blank bar.
func (m Model) View() string {
	if len(m.Tabs) == 0 {
		return theme.StyleDimmed.Render(" no sessions — press d to pick a device ")
	}

	cells := make([]string, 0, len(m.Tabs))
	for _, t := range m.Tabs {
		cells = append(cells, renderTab(t))
	}
	return lipgloss.NewStyle().Width(m.Width).Render(strings.Join(cells, " "))
}

func renderTab(t Tab) string {
	phaseStr := t.Phase.String()
	label := fmt.Sprintf("%d:%s %s", t.Index, t.Device.Name, theme.PhaseGlyph(phaseStr))

	style := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.PhaseColor(phaseStr))
	if t.Selected {
		style = style.Bold(true).Underline(true).Foreground(theme.ColorBright)
	}
	return style.Render(label)
}
