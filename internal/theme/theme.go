// Package theme provides the Lip Gloss color palette and reusable styles
// shared by every view. It is a leaf package with no internal imports, to
// avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Phase colors, one per registry.Phase.
var (
	ColorInitializing = lipgloss.Color("#854d0e")
	ColorRunning      = lipgloss.Color("#22c55e")
	ColorReloading    = lipgloss.Color("#2563eb")
	ColorRestarting   = lipgloss.Color("#7c3aed")
	ColorStopped      = lipgloss.Color("#4b5563")
	ColorFailed       = lipgloss.Color("#dc2626")
)

// Log level colors, one per protocol.LogLevel.
var (
	ColorLogInfo    = lipgloss.Color("#9ca3af")
	ColorLogWarning = lipgloss.Color("#d97706")
	ColorLogError   = lipgloss.Color("#dc2626")
	ColorLogDebug   = lipgloss.Color("#4b5563")
)

// Platform badge colors, one per device.Platform.
var (
	ColorPlatformIOS     = lipgloss.Color("#9ca3af")
	ColorPlatformAndroid = lipgloss.Color("#22c55e")
	ColorPlatformMacOS   = lipgloss.Color("#9ca3af")
	ColorPlatformWindows = lipgloss.Color("#3b82f6")
	ColorPlatformLinux   = lipgloss.Color("#d97706")
	ColorPlatformWeb     = lipgloss.Color("#4285f4")
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorBg      = lipgloss.Color("#111827")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
)

// PhaseColor returns the Lip Gloss color for a phase name, as produced by
// registry.Phase.String().
func PhaseColor(phase string) lipgloss.Color {
	switch phase {
	case "initializing":
		return ColorInitializing
	case "running":
		return ColorRunning
	case "reloading":
		return ColorReloading
	case "restarting":
		return ColorRestarting
	case "stopped":
		return ColorStopped
	case "failed":
		return ColorFailed
	default:
		return ColorDimmed
	}
}

// LogLevelColor returns the color for a log level name, as produced by
// protocol.LogLevel.String().
func LogLevelColor(level string) lipgloss.Color {
	switch level {
	case "warning":
		return ColorLogWarning
	case "error":
		return ColorLogError
	case "debug":
		return ColorLogDebug
	default:
		return ColorLogInfo
	}
}

// PlatformColor returns the color for a platform name, as produced by
// device.Platform.
func PlatformColor(platform string) lipgloss.Color {
	switch platform {
	case "ios":
		return ColorPlatformIOS
	case "android":
		return ColorPlatformAndroid
	case "macos":
		return ColorPlatformMacOS
	case "windows":
		return ColorPlatformWindows
	case "linux":
		return ColorPlatformLinux
	case "web":
		return ColorPlatformWeb
	default:
		return ColorDimmed
	}
}

// PhaseGlyph returns a one-or-two-rune glyph for a phase name.
func PhaseGlyph(phase string) string {
	switch phase {
	case "initializing":
		return "◎"
	case "running":
		return "●"
	case "reloading":
		return "⟳"
	case "restarting":
		return "↻"
	case "stopped":
		return "○"
	case "failed":
		return "✗"
	default:
		return "·"
	}
}

// Reusable styles.
var (
	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorDimmed)

	StyleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)
)
