package child

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/sessionid"
)

type shellLauncher struct {
	script string
}

func (s shellLauncher) Launch(ctx context.Context, dev device.Device, projectPath string) (*exec.Cmd, error) {
	return exec.CommandContext(ctx, "sh", "-c", s.script), nil
}

func TestDriverRunReportsLifecycleAndExit(t *testing.T) {
	events := make(chan RawEvent, 16)
	var attached, started, spawnFailed int

	d := &Driver{
		SessionID: sessionid.ID(1),
		Device:    device.Device{ID: "d1", Name: "Test Device", Platform: device.PlatformLinux},
		Launcher:  shellLauncher{script: `echo '[{"event":"app.start","params":{"appId":"app-1"}}]'; echo hello; exit 0`},
		Events:    events,
	}

	done := make(chan struct{})
	go func() {
		d.Run(context.Background(), make(chan struct{}), DriverCallbacks{
			Attached:    func(AttachedInfo) { attached++ },
			Started:     func(StartedInfo) { started++ },
			SpawnFailed: func(SpawnFailedInfo) { spawnFailed++ },
		})
		close(done)
	}()

	var sawExit bool
	timeout := time.After(5 * time.Second)
	for !sawExit {
		select {
		case ev := <-events:
			if ev.Kind == EventExited {
				sawExit = true
			}
		case <-timeout:
			t.Fatal("timed out waiting for driver to report exit")
		}
	}

	<-done
	if attached != 1 || started != 1 || spawnFailed != 0 {
		t.Errorf("attached=%d started=%d spawnFailed=%d", attached, started, spawnFailed)
	}
}

func TestDriverRunSpawnFailure(t *testing.T) {
	events := make(chan RawEvent, 16)
	var spawnFailed int

	d := &Driver{
		SessionID: sessionid.ID(1),
		Device:    device.Device{ID: "d1", Name: "Test Device"},
		Launcher:  ProcessLauncher{Binary: "definitely-not-a-real-binary-xyz"},
		Events:    events,
	}

	d.Run(context.Background(), make(chan struct{}), DriverCallbacks{
		Attached:    func(AttachedInfo) {},
		Started:     func(StartedInfo) {},
		SpawnFailed: func(SpawnFailedInfo) { spawnFailed++ },
	})

	if spawnFailed != 1 {
		t.Errorf("spawnFailed = %d, want 1", spawnFailed)
	}
}

func TestDriverRunShutdownSignalStopsLongRunningProcess(t *testing.T) {
	events := make(chan RawEvent, 16)
	shutdown := make(chan struct{})

	d := &Driver{
		SessionID: sessionid.ID(2),
		Device:    device.Device{ID: "d2", Name: "Long Runner"},
		Launcher:  shellLauncher{script: `trap 'exit 0' TERM; sleep 30`},
		Events:    events,
	}

	done := make(chan struct{})
	go func() {
		d.Run(context.Background(), shutdown, DriverCallbacks{
			Attached:    func(AttachedInfo) {},
			Started:     func(StartedInfo) {},
			SpawnFailed: func(SpawnFailedInfo) {},
		})
		close(done)
	}()

	// Drain events in the background so emit() never blocks.
	go func() {
		for range events {
		}
	}()

	time.Sleep(200 * time.Millisecond)
	close(shutdown)

	select {
	case <-done:
	case <-time.After(8 * time.Second):
		t.Fatal("driver did not exit after shutdown signal")
	}
}
