// Package device models discoverable run targets (physical devices,
// simulators, emulators) and the pluggable collaborator that lists and
// launches them over exec.Command-driven tooling.
package device

// Platform is the OS/target family a device runs.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformMacOS   Platform = "macos"
	PlatformWindows Platform = "windows"
	PlatformLinux   Platform = "linux"
	PlatformWeb     Platform = "web"
)

// Device is one run target returned by discovery.
type Device struct {
	ID           string
	Name         string
	Platform     Platform
	Category     string
	PlatformType string
	Emulator     bool
	Ephemeral    bool
	EmulatorID   string
}

// Equal reports whether two devices refer to the same run target.
func (d Device) Equal(other Device) bool {
	return d.ID == other.ID
}
