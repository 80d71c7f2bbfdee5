package engine

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fdaemon/supervisor/internal/child"
	"github.com/fdaemon/supervisor/internal/registry"
	"github.com/fdaemon/supervisor/internal/sessionid"
	"github.com/fdaemon/supervisor/internal/tracker"
)

// TestDispatchSpawnTaskStopWritesCommandAndShutsDownDriver exercises the
// full Dispatch -> runTask path for a TaskStop whose session has already
// been removed from the registry: the sender captured on the action must
// still receive the stop command, and the driver behind the session must
// be signalled to shut down.
func TestDispatchSpawnTaskStopWritesCommandAndShutsDownDriver(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan Message, 1)
	d := NewDispatcher(ctx, &fakeLister{}, "/tmp/project", out)

	id := sessionid.ID(1)
	proc := &sessionProc{shutdown: make(chan struct{}), done: make(chan struct{})}
	d.procs[id] = proc

	var stdin bytes.Buffer
	sender := child.NewSender(&stdin, tracker.New(), time.Second)

	reg := registry.NewRegistry()
	d.Dispatch(ctx, reg, SpawnTask{SessionID: id, Kind: TaskStop, AppID: "app-1", Sender: sender})

	// No reply ever arrives, so the task only signals shutdown once the
	// sender's 1s reply timeout has elapsed.
	select {
	case <-proc.shutdown:
	case <-time.After(3 * time.Second):
		t.Fatal("expected driver shutdown to be signalled after TaskStop")
	}

	if !strings.Contains(stdin.String(), "app-1") {
		t.Fatalf("expected stop command written to stdin, got %q", stdin.String())
	}
}

// TestDispatchSpawnTaskStopWithNoAppCompletesWithoutSend covers closing a
// session that never attached an app: there is nothing to tell it to
// stop, but the driver must still be torn down.
func TestDispatchSpawnTaskStopWithNoAppCompletesWithoutSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan Message, 1)
	d := NewDispatcher(ctx, &fakeLister{}, "/tmp/project", out)

	id := sessionid.ID(2)
	proc := &sessionProc{shutdown: make(chan struct{}), done: make(chan struct{})}
	d.procs[id] = proc

	reg := registry.NewRegistry()
	d.Dispatch(ctx, reg, SpawnTask{SessionID: id, Kind: TaskStop, AppID: ""})

	select {
	case msg := <-out:
		if _, ok := msg.(StopCompleted); !ok {
			t.Fatalf("expected StopCompleted, got %#v", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for StopCompleted")
	}

	select {
	case <-proc.shutdown:
	case <-time.After(time.Second):
		t.Fatal("expected driver shutdown to be signalled after TaskStop")
	}
}
