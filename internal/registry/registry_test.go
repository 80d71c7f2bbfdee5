package registry

import (
	"testing"

	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/sessionid"
)

func dev(id string) device.Device { return device.Device{ID: id, Name: id} }

func TestCreateSelectsFirstSession(t *testing.T) {
	r := NewRegistry()
	id, err := r.Create(dev("d1"), 0)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if r.Selected() != id {
		t.Errorf("Selected() = %v, want %v", r.Selected(), id)
	}
}

func TestCreateRejectsDuplicateDevice(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create(dev("d1"), 0); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Create(dev("d1"), 0); err != ErrDeviceInUse {
		t.Errorf("got %v, want ErrDeviceInUse", err)
	}
}

func TestCreateRejectsBeyondMaxSessions(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < MaxSessions; i++ {
		if _, err := r.Create(dev(string(rune('a'+i))), 0); err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
	}
	if _, err := r.Create(dev("overflow"), 0); err != ErrMaxSessions {
		t.Errorf("got %v, want ErrMaxSessions", err)
	}
}

func TestRemoveReselectsNextThenPrevious(t *testing.T) {
	r := NewRegistry()
	id1, _ := r.Create(dev("d1"), 0)
	id2, _ := r.Create(dev("d2"), 0)
	id3, _ := r.Create(dev("d3"), 0)

	r.Select(id2)
	r.Remove(id2)
	if r.Selected() != id3 {
		t.Errorf("Selected() = %v, want next (%v)", r.Selected(), id3)
	}

	r.Remove(id3)
	if r.Selected() != id1 {
		t.Errorf("Selected() = %v, want previous (%v)", r.Selected(), id1)
	}

	r.Remove(id1)
	if r.Selected() != sessionid.Legacy {
		t.Errorf("Selected() = %v, want Legacy when registry empty", r.Selected())
	}
}

func TestByIndexIsOneBased(t *testing.T) {
	r := NewRegistry()
	id1, _ := r.Create(dev("d1"), 0)
	id2, _ := r.Create(dev("d2"), 0)

	if got, ok := r.ByIndex(1); !ok || got != id1 {
		t.Errorf("ByIndex(1) = %v, %v; want %v, true", got, ok, id1)
	}
	if got, ok := r.ByIndex(2); !ok || got != id2 {
		t.Errorf("ByIndex(2) = %v, %v; want %v, true", got, ok, id2)
	}
	if _, ok := r.ByIndex(0); ok {
		t.Error("ByIndex(0) should not be found")
	}
	if _, ok := r.ByIndex(3); ok {
		t.Error("ByIndex(3) should not be found")
	}
}

func TestRunningIDsRequiresAttachedAppID(t *testing.T) {
	r := NewRegistry()
	id1, _ := r.Create(dev("d1"), 0)
	id2, _ := r.Create(dev("d2"), 0)

	h1, _ := r.Get(id1)
	h1.Session.AppID = "app-1"
	h1.Session.Phase = PhaseRunning

	running := r.RunningIDs()
	if len(running) != 1 || running[0] != id1 {
		t.Errorf("RunningIDs() = %v, want [%v]", running, id1)
	}
	_ = id2
}

func TestCycleIndexWraps(t *testing.T) {
	tests := []struct {
		cur, delta, n, want int
	}{
		{0, 1, 3, 1},
		{2, 1, 3, 0},
		{0, -1, 3, 2},
		{0, -1, 0, 0},
	}
	for _, tt := range tests {
		if got := CycleIndex(tt.cur, tt.delta, tt.n); got != tt.want {
			t.Errorf("CycleIndex(%d,%d,%d) = %d, want %d", tt.cur, tt.delta, tt.n, got, tt.want)
		}
	}
}

func TestAppendLogEvictsAndAdjustsOffset(t *testing.T) {
	s := NewSession(dev("d1"), 3)
	s.LogView.Offset = 2
	for i := 0; i < 5; i++ {
		s.AppendLog(LogEntry{Message: "line"})
	}
	if len(s.Logs) != 3 {
		t.Fatalf("len(Logs) = %d, want 3", len(s.Logs))
	}
	if s.LogView.Offset != 0 {
		t.Errorf("Offset = %d, want 0 after eviction drained past it", s.LogView.Offset)
	}
}
