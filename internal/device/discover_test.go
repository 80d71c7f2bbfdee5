package device

import (
	"context"
	"testing"
)

func TestParseDeviceList(t *testing.T) {
	out := []byte(`[
		{"id":"emulator-5554","name":"Pixel 7","platform":"android","emulator":true,"category":"mobile","platformType":"android"},
		{"id":"00008030-1234","name":"iPhone 15","platform":"ios","emulator":false,"category":"mobile","platformType":"ios"}
	]`)
	devices, err := parseDeviceList(out)
	if err != nil {
		t.Fatalf("parseDeviceList() error = %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("got %d devices, want 2", len(devices))
	}
	if devices[0].Platform != PlatformAndroid || !devices[0].Emulator {
		t.Errorf("got %+v", devices[0])
	}
	if devices[1].Platform != PlatformIOS || devices[1].Emulator {
		t.Errorf("got %+v", devices[1])
	}
}

func TestParseDeviceListMalformed(t *testing.T) {
	if _, err := parseDeviceList([]byte("not json")); err == nil {
		t.Fatal("expected an error for malformed output")
	}
}

func TestCommandListerDevicesUsesInjectedRunner(t *testing.T) {
	l := NewCommandLister()
	l.Run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if name != "flutter" {
			t.Errorf("name = %q, want flutter", name)
		}
		return []byte(`[{"id":"d1","name":"Test Device","platform":"linux"}]`), nil
	}
	devices, err := l.Devices(context.Background())
	if err != nil {
		t.Fatalf("Devices() error = %v", err)
	}
	if len(devices) != 1 || devices[0].ID != "d1" {
		t.Errorf("got %+v", devices)
	}
}

func TestCommandListerEmulatorsMarksEphemeral(t *testing.T) {
	l := NewCommandLister()
	l.Run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte(`[{"id":"Pixel_7_API_34","name":"Pixel 7 API 34","platform":"android"}]`), nil
	}
	emulators, err := l.Emulators(context.Background())
	if err != nil {
		t.Fatalf("Emulators() error = %v", err)
	}
	if len(emulators) != 1 || !emulators[0].Ephemeral {
		t.Errorf("got %+v", emulators)
	}
}

func TestCommandListerLaunchEmulatorMintsID(t *testing.T) {
	l := NewCommandLister()
	l.Run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, nil
	}
	dev, err := l.LaunchEmulator(context.Background(), "Pixel_7_API_34")
	if err != nil {
		t.Fatalf("LaunchEmulator() error = %v", err)
	}
	if dev.EmulatorID == "" || !dev.Emulator || !dev.Ephemeral {
		t.Errorf("got %+v", dev)
	}
}
