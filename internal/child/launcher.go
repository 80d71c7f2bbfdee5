package child

import (
	"context"
	"os/exec"

	"github.com/fdaemon/supervisor/internal/device"
)

// Launcher builds the *exec.Cmd used to spawn a session's child process.
// Tests substitute a fake; production uses ProcessLauncher.
type Launcher interface {
	Launch(ctx context.Context, dev device.Device, projectPath string) (*exec.Cmd, error)
}

// ProcessLauncher runs Binary with BaseArgs plus "-d <device id>" against
// ProjectPath as the working directory.
type ProcessLauncher struct {
	Binary   string
	BaseArgs []string
}

// NewProcessLauncher returns a ProcessLauncher wired to the conventional
// `flutter run --machine` invocation.
func NewProcessLauncher() ProcessLauncher {
	return ProcessLauncher{Binary: "flutter", BaseArgs: []string{"run", "--machine"}}
}

// Launch implements Launcher.
func (l ProcessLauncher) Launch(ctx context.Context, dev device.Device, projectPath string) (*exec.Cmd, error) {
	args := make([]string, 0, len(l.BaseArgs)+2)
	args = append(args, l.BaseArgs...)
	args = append(args, "-d", dev.ID)

	cmd := exec.CommandContext(ctx, l.Binary, args...)
	if projectPath != "" {
		cmd.Dir = projectPath
	}
	return cmd, nil
}
