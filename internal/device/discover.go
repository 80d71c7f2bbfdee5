package device

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/google/uuid"
)

// Lister discovers and launches run targets. The production
// implementation shells out to real tooling; tests substitute a fake
// that implements the same interface without touching a subprocess.
type Lister interface {
	Devices(ctx context.Context) ([]Device, error)
	Emulators(ctx context.Context) ([]Device, error)
	LaunchEmulator(ctx context.Context, emulatorID string) (Device, error)
	LaunchIOSSimulator(ctx context.Context, simulatorID string) (Device, error)
}

// CommandLister lists and launches devices by shelling out to configurable
// command-line tools that emit machine-readable JSON.
type CommandLister struct {
	DevicesCommand      []string
	EmulatorsCommand    []string
	LaunchEmulatorArgs  []string // appended after the emulator id argument
	LaunchSimulatorArgs []string
	Run                 func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewCommandLister returns a CommandLister wired to the conventional
// `flutter` CLI discovery commands.
func NewCommandLister() *CommandLister {
	return &CommandLister{
		DevicesCommand:   []string{"flutter", "devices", "--machine"},
		EmulatorsCommand: []string{"flutter", "emulators", "--machine"},
	}
}

func (l *CommandLister) run(ctx context.Context, args []string) ([]byte, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("device: empty command")
	}
	if l.Run != nil {
		return l.Run(ctx, args[0], args[1:]...)
	}
	path, err := exec.LookPath(args[0])
	if err != nil {
		return nil, fmt.Errorf("device: %s not found: %w", args[0], err)
	}
	cmd := exec.CommandContext(ctx, path, args[1:]...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("device: running %s: %w", args[0], err)
	}
	return out, nil
}

type rawDevice struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Platform     string `json:"platform"`
	Emulator     bool   `json:"emulator"`
	Category     string `json:"category"`
	PlatformType string `json:"platformType"`
	Ephemeral    bool   `json:"ephemeral"`
}

func parseDeviceList(out []byte) ([]Device, error) {
	var raws []rawDevice
	if err := json.Unmarshal(out, &raws); err != nil {
		return nil, fmt.Errorf("device: parsing device list: %w", err)
	}
	devices := make([]Device, 0, len(raws))
	for _, r := range raws {
		devices = append(devices, Device{
			ID:           r.ID,
			Name:         r.Name,
			Platform:     Platform(r.Platform),
			Emulator:     r.Emulator,
			Category:     r.Category,
			PlatformType: r.PlatformType,
			Ephemeral:    r.Ephemeral,
		})
	}
	return devices, nil
}

// Devices lists currently attached/booted devices.
func (l *CommandLister) Devices(ctx context.Context) ([]Device, error) {
	out, err := l.run(ctx, l.DevicesCommand)
	if err != nil {
		return nil, err
	}
	return parseDeviceList(out)
}

// Emulators lists configured-but-not-necessarily-running emulator
// profiles, flagged ephemeral since launching one mints a new instance.
func (l *CommandLister) Emulators(ctx context.Context) ([]Device, error) {
	out, err := l.run(ctx, l.EmulatorsCommand)
	if err != nil {
		return nil, err
	}
	devices, err := parseDeviceList(out)
	if err != nil {
		return nil, err
	}
	for i := range devices {
		devices[i].Ephemeral = true
	}
	return devices, nil
}

// LaunchEmulator boots an Android emulator profile by id and mints an
// ephemeral instance id for it, since the emulator profile id itself is
// not a stable per-boot device id.
func (l *CommandLister) LaunchEmulator(ctx context.Context, emulatorID string) (Device, error) {
	args := append([]string{"flutter", "emulators", "--launch", emulatorID}, l.LaunchEmulatorArgs...)
	if _, err := l.run(ctx, args); err != nil {
		return Device{}, fmt.Errorf("device: launching emulator %s: %w", emulatorID, err)
	}
	return Device{
		ID:         emulatorID,
		Name:       emulatorID,
		Platform:   PlatformAndroid,
		Emulator:   true,
		Ephemeral:  true,
		EmulatorID: uuid.NewString(),
	}, nil
}

// LaunchIOSSimulator boots an iOS simulator by id via simctl and mints an
// ephemeral instance id.
func (l *CommandLister) LaunchIOSSimulator(ctx context.Context, simulatorID string) (Device, error) {
	args := append([]string{"xcrun", "simctl", "boot", simulatorID}, l.LaunchSimulatorArgs...)
	if _, err := l.run(ctx, args); err != nil {
		return Device{}, fmt.Errorf("device: booting simulator %s: %w", simulatorID, err)
	}
	return Device{
		ID:         simulatorID,
		Name:       simulatorID,
		Platform:   PlatformIOS,
		Emulator:   true,
		Ephemeral:  true,
		EmulatorID: uuid.NewString(),
	}, nil
}
