package child

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"sync"
	"time"

	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/protocol"
	"github.com/fdaemon/supervisor/internal/sessionid"
	"github.com/fdaemon/supervisor/internal/tracker"
)

const (
	defaultStopReplyTimeout = 3 * time.Second
	defaultShutdownWait     = 5 * time.Second
)

// EventKind classifies a RawEvent.
type EventKind int

const (
	EventStdout EventKind = iota
	EventStderr
	EventExited
)

// RawEvent is one occurrence reported by a session's driver: a line of
// stdout/stderr, or the process exiting. Drivers know nothing of the
// engine's message types — the supervisor wraps RawEvent into an
// engine.SessionDaemon message, keeping this package decoupled from the
// update loop.
type RawEvent struct {
	SessionID sessionid.ID
	Kind      EventKind
	Line      string
	Code      int
	Err       error
}

// AttachedInfo reports that a Sender is now available for the session.
type AttachedInfo struct {
	SessionID sessionid.ID
	Sender    *Sender
}

// StartedInfo reports that the child process is up and running.
type StartedInfo struct {
	SessionID  sessionid.ID
	DeviceName string
	Platform   string
	PID        int
}

// SpawnFailedInfo reports that the process could not be started at all.
type SpawnFailedInfo struct {
	SessionID sessionid.ID
	Err       error
}

// DriverCallbacks lets a Driver report lifecycle transitions without
// importing engine message types.
type DriverCallbacks struct {
	Attached    func(AttachedInfo)
	Started     func(StartedInfo)
	SpawnFailed func(SpawnFailedInfo)
}

// Driver owns one session's child process for its entire lifetime:
// spawning it, reading its stdio, and running it down on shutdown.
type Driver struct {
	SessionID    sessionid.ID
	Device       device.Device
	ProjectPath  string
	Launcher     Launcher
	Tracker      *tracker.Tracker
	Events       chan<- RawEvent
	ReplyTimeout time.Duration
}

type lineEvent struct {
	kind EventKind
	line string
}

// mergeLines fans stdout and stderr into a single channel, closed once
// both readers have hit EOF.
func mergeLines(stdout, stderr io.Reader) <-chan lineEvent {
	out := make(chan lineEvent, 64)
	var wg sync.WaitGroup
	wg.Add(2)

	scan := func(r io.Reader, kind EventKind) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			out <- lineEvent{kind: kind, line: scanner.Text()}
		}
	}

	go scan(stdout, EventStdout)
	go scan(stderr, EventStderr)
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Run spawns the child process and drives it until it exits on its own,
// the shutdown signal fires, or the supervisor's ctx is cancelled. It
// never touches session/registry state directly; it only reports
// lifecycle events through cb and RawEvents through Events.
func (d *Driver) Run(ctx context.Context, shutdown <-chan struct{}, cb DriverCallbacks) {
	cmd, err := d.Launcher.Launch(ctx, d.Device, d.ProjectPath)
	if err != nil {
		cb.SpawnFailed(SpawnFailedInfo{SessionID: d.SessionID, Err: err})
		return
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		cb.SpawnFailed(SpawnFailedInfo{SessionID: d.SessionID, Err: fmt.Errorf("stdin pipe: %w", err)})
		return
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cb.SpawnFailed(SpawnFailedInfo{SessionID: d.SessionID, Err: fmt.Errorf("stdout pipe: %w", err)})
		return
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cb.SpawnFailed(SpawnFailedInfo{SessionID: d.SessionID, Err: fmt.Errorf("stderr pipe: %w", err)})
		return
	}

	if err := cmd.Start(); err != nil {
		cb.SpawnFailed(SpawnFailedInfo{SessionID: d.SessionID, Err: fmt.Errorf("start: %w", err)})
		return
	}

	tr := d.Tracker
	if tr == nil {
		tr = tracker.New()
	}
	sender := NewSender(stdin, tr, d.ReplyTimeout)
	cb.Attached(AttachedInfo{SessionID: d.SessionID, Sender: sender})
	cb.Started(StartedInfo{
		SessionID:  d.SessionID,
		DeviceName: d.Device.Name,
		Platform:   string(d.Device.Platform),
		PID:        cmd.Process.Pid,
	})

	lines := mergeLines(stdout, stderr)
	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	var appID string

loop:
	for {
		select {
		case le, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			if le.kind == EventStdout {
				if msg, recognized := protocol.Decode(le.line); recognized {
					if start, isStart := msg.(protocol.AppStart); isStart && appID == "" {
						appID = start.AppID
					}
				}
			}
			if !d.emit(ctx, RawEvent{SessionID: d.SessionID, Kind: le.kind, Line: le.line}) {
				return
			}
		case <-shutdown:
			break loop
		case err := <-exited:
			code := -1
			if cmd.ProcessState != nil {
				code = cmd.ProcessState.ExitCode()
			}
			d.emit(ctx, RawEvent{SessionID: d.SessionID, Kind: EventExited, Code: code, Err: err})
			return
		}
	}

	d.gracefulShutdown(sender, stdin, appID, cmd, exited)
}

// emit delivers a RawEvent to the shared daemon-event channel. It gives
// up (returning false) if ctx is cancelled, which the caller treats as
// "the supervisor is gone" and exits — the idiomatic Go analogue of a
// send-on-closed-channel failure, since a channel with multiple writers
// (one per session) must never be closed by any single driver.
func (d *Driver) emit(ctx context.Context, ev RawEvent) bool {
	select {
	case d.Events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// gracefulShutdown asks a running app to stop (best-effort, short
// timeout), closes stdin so the child observes EOF on its control
// channel, then waits for the already-started cmd.Wait() goroutine to
// report the process has exited, killing it if it overstays
// defaultShutdownWait.
func (d *Driver) gracefulShutdown(sender *Sender, stdin io.Closer, appID string, cmd *exec.Cmd, exited <-chan error) {
	if appID != "" && sender != nil {
		ctx, cancel := context.WithTimeout(context.Background(), defaultStopReplyTimeout)
		if _, err := sender.Send(ctx, protocol.MethodStop, appID); err != nil {
			log.Printf("child: session %d: stop command during shutdown failed: %v", d.SessionID, err)
		}
		cancel()
	}

	if err := stdin.Close(); err != nil {
		log.Printf("child: session %d: closing stdin failed: %v", d.SessionID, err)
	}

	select {
	case <-exited:
	case <-time.After(defaultShutdownWait):
		log.Printf("child: session %d: process did not exit within %s, killing", d.SessionID, defaultShutdownWait)
		if cmd.Process != nil {
			if err := cmd.Process.Kill(); err != nil {
				log.Printf("child: session %d: kill failed: %v", d.SessionID, err)
			}
		}
		<-exited
	}
}
