// Command fdaemon-tui is the terminal supervisor entrypoint: it loads
// settings, wires the device-discovery collaborator, and runs the
// bubbletea program until the operator quits, restoring the terminal and
// exiting 0 on a clean shutdown.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fdaemon/supervisor/internal/app"
	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/settings"
)

func main() {
	projectPath := flag.String("project", ".", "path to the Flutter project to supervise")
	settingsPath := flag.String("settings", "", "path to a YAML settings file (defaults used if omitted)")
	flag.Parse()

	cfg := settings.LoadOrDefault(*settingsPath)
	devices := device.NewCommandLister()

	m := app.New(*projectPath, cfg, devices, []string{*projectPath})
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "fdaemon-tui: %v\n", err)
		os.Exit(1)
	}
}
