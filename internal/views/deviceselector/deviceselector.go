// Package deviceselector renders the device-picker overlay: a scrollable
// list of discovered run targets with the highlighted cursor row, and a
// spring-eased progress gauge shown while discovery is in flight.
package deviceselector

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/engine"
	"github.com/fdaemon/supervisor/internal/theme"
)

const (
	panelWidth = 50
	gaugeWidth = 24
)

var (
	stylePanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.ColorBorder).
			Padding(1, 2)

	styleTitle = theme.StyleHeader

	styleCursor = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorBright)

	styleRow = lipgloss.NewStyle().Foreground(theme.ColorDimmed)
)

// Model holds the device selector's render inputs, a direct mirror of
// engine.DeviceSelectorState read fresh from engine.State on every View.
type Model struct {
	State engine.DeviceSelectorState
}

// New returns an empty device selector model.
func New() Model { return Model{} }

// View renders the overlay centered in a width×height viewport.
func (m Model) View(width, height int) string {
	var body string
	switch {
	case m.State.Status == engine.SelectorLoading && len(m.State.Devices) == 0:
		body = renderGauge(m.State.AnimFrame, "discovering devices")
	case len(m.State.Devices) == 0:
		body = theme.StyleDimmed.Render("no devices found — press r to refresh")
	default:
		body = renderList(m.State)
	}

	if m.State.Status == engine.SelectorRefreshing {
		body = renderGauge(m.State.AnimFrame, "refreshing") + "\n\n" + body
	}

	inner := styleTitle.Render("Select a device") + "\n\n" + body + "\n\n" +
		theme.StyleDimmed.Render("↑/↓ move  enter select  r refresh  esc back")

	panel := stylePanel.Width(panelWidth).Render(inner)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}

func renderList(s engine.DeviceSelectorState) string {
	var b strings.Builder
	for i, d := range s.Devices {
		b.WriteString(renderRow(d, i == s.Cursor))
		if i < len(s.Devices)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderRow(d device.Device, selected bool) string {
	badge := lipgloss.NewStyle().Foreground(theme.PlatformColor(string(d.Platform))).Render("[" + string(d.Platform) + "]")
	emu := ""
	if d.Emulator {
		emu = " (emulator)"
	}
	line := fmt.Sprintf("%s %s%s", badge, d.Name, emu)
	if selected {
		return styleCursor.Render("› " + line)
	}
	return styleRow.Render("  " + line)
}

// renderGauge drives the gauge's fill fraction toward 1.0 with a spring
// instead of a linear ramp — each Tick advances AnimFrame, and the
// spring's settled position at that frame is derived deterministically
// so the gauge needs no stored velocity/position across redraws.
func renderGauge(frame int, label string) string {
	spring := harmonica.NewSpring(harmonica.FPS(30), 6.0, 1.0)
	pos, vel := 0.0, 0.0
	const period = 24
	target := 1.0
	for i := 0; i < (frame%period)+1; i++ {
		pos, vel = spring.Update(pos, vel, target)
	}
	if frame%(period*2) >= period {
		pos = 1 - pos
	}
	filled := int(pos * gaugeWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > gaugeWidth {
		filled = gaugeWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", gaugeWidth-filled)
	return theme.StyleDimmed.Render(label+" ") + lipgloss.NewStyle().Foreground(theme.ColorRunning).Render(bar)
}
