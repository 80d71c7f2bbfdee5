package engine

import (
	"context"
	"testing"
	"time"

	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/settings"
)

type fakeLister struct {
	devices []device.Device
	err     error
}

func (f *fakeLister) Devices(ctx context.Context) ([]device.Device, error) { return f.devices, f.err }
func (f *fakeLister) Emulators(ctx context.Context) ([]device.Device, error) {
	return nil, nil
}
func (f *fakeLister) LaunchEmulator(ctx context.Context, id string) (device.Device, error) {
	return device.Device{}, nil
}
func (f *fakeLister) LaunchIOSSimulator(ctx context.Context, id string) (device.Device, error) {
	return device.Device{}, nil
}

func TestSupervisorProcessDiscoverDevicesRoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lister := &fakeLister{devices: []device.Device{pixel4()}}
	sup := NewSupervisor(ctx, "/tmp/project", settings.Default(), lister)

	sup.Process(ctx, ShowDeviceSelector{})

	select {
	case msg := <-sup.Messages():
		discovered, ok := msg.(DevicesDiscovered)
		if !ok {
			t.Fatalf("expected DevicesDiscovered, got %T", msg)
		}
		sup.Process(ctx, discovered)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for discovery result")
	}

	if len(sup.State.DeviceSelector.Devices) != 1 {
		t.Fatalf("expected 1 discovered device in state, got %d", len(sup.State.DeviceSelector.Devices))
	}
}

func TestSupervisorPreprocessRoutesResponseToSessionTracker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sup := NewSupervisor(ctx, "/tmp/project", settings.Default(), &fakeLister{})
	sup.Process(ctx, DeviceSelected{Device: pixel4()})
	id := sup.State.Registry.Selected()
	h, _ := sup.State.Registry.Get(id)

	reqID := h.Tracker.NextID()
	replies := h.Tracker.Register(reqID)

	line := `[{"id":1,"result":{"ok":true}}]`
	sup.Process(ctx, SessionDaemon{SessionID: id, Kind: DaemonStdout, Line: line})

	select {
	case outcome := <-replies:
		if outcome.Err != nil {
			t.Fatalf("unexpected error outcome: %v", outcome.Err)
		}
	case <-time.After(time.Second):
		t.Fatal("response was not routed to the session's tracker")
	}
}
