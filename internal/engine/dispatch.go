package engine

import (
	"context"
	"sync"
	"time"

	"github.com/fdaemon/supervisor/internal/child"
	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/registry"
	"github.com/fdaemon/supervisor/internal/sessionid"
	"github.com/fdaemon/supervisor/internal/tracker"
)

// sessionProc tracks the running goroutine behind one session's Driver so
// the shutdown coordinator can signal and join it.
type sessionProc struct {
	shutdown chan struct{}
	done     chan struct{}
}

// Dispatcher runs the Actions Update asks for — device discovery, spawning
// a session's child process, issuing a reload/restart/stop command — and
// reports their outcome back as a Message on Out. It is the supervisor's
// only collaborator that touches goroutines, exec.Cmd, or the device
// Lister directly.
type Dispatcher struct {
	Devices      device.Lister
	ProjectPath  string
	ReplyTimeout time.Duration
	Out          chan<- Message

	rawEvents chan child.RawEvent

	mu    sync.Mutex
	procs map[sessionid.ID]*sessionProc
}

// NewDispatcher returns a Dispatcher that forwards driver RawEvents onto
// out as engine.SessionDaemon messages for the lifetime of ctx.
func NewDispatcher(ctx context.Context, devices device.Lister, projectPath string, out chan<- Message) *Dispatcher {
	d := &Dispatcher{
		Devices:     devices,
		ProjectPath: projectPath,
		Out:         out,
		rawEvents:   make(chan child.RawEvent, 256),
		procs:       make(map[sessionid.ID]*sessionProc),
	}
	go d.forwardRawEvents(ctx)
	return d
}

func (d *Dispatcher) forwardRawEvents(ctx context.Context) {
	for {
		select {
		case ev, ok := <-d.rawEvents:
			if !ok {
				return
			}
			d.send(ctx, SessionDaemon{
				SessionID: ev.SessionID,
				Kind:      convertKind(ev.Kind),
				Line:      ev.Line,
				Code:      ev.Code,
			})
		case <-ctx.Done():
			return
		}
	}
}

func convertKind(k child.EventKind) DaemonEventKind {
	switch k {
	case child.EventStderr:
		return DaemonStderr
	case child.EventExited:
		return DaemonExited
	default:
		return DaemonStdout
	}
}

func (d *Dispatcher) send(ctx context.Context, msg Message) {
	select {
	case d.Out <- msg:
	case <-ctx.Done():
	}
}

// Dispatch runs action against the registry's current contents and
// reports its result asynchronously. reg is only read: synchronously, to
// hand a new session's Tracker to its driver, and from the goroutine a
// SpawnTask spawns, to resolve a session's Sender at call time — the
// registry itself is never mutated off the update loop.
func (d *Dispatcher) Dispatch(ctx context.Context, reg *registry.Registry, action Action) {
	switch a := action.(type) {
	case DiscoverDevices:
		go func() {
			devices, err := d.Devices.Devices(ctx)
			if err != nil {
				d.send(ctx, DeviceDiscoveryFailed{Err: err})
				return
			}
			d.send(ctx, DevicesDiscovered{Devices: devices})
		}()
	case DiscoverEmulators:
		go func() {
			emus, err := d.Devices.Emulators(ctx)
			if err != nil {
				d.send(ctx, DeviceDiscoveryFailed{Err: err})
				return
			}
			d.send(ctx, EmulatorsDiscovered{Emulators: emus})
		}()
	case LaunchEmulator:
		go func() {
			dev, err := d.Devices.LaunchEmulator(ctx, a.EmulatorID)
			if err != nil {
				d.send(ctx, EmulatorLaunchFailed{Err: err})
				return
			}
			d.send(ctx, EmulatorLaunched{Device: dev})
		}()
	case LaunchIOSSimulator:
		go func() {
			dev, err := d.Devices.LaunchIOSSimulator(ctx, a.SimulatorID)
			if err != nil {
				d.send(ctx, EmulatorLaunchFailed{Err: err})
				return
			}
			d.send(ctx, EmulatorLaunched{Device: dev})
		}()
	case SpawnSession:
		var tr *tracker.Tracker
		if h, ok := reg.Get(a.SessionID); ok {
			tr = h.Tracker
		}
		d.spawnSession(ctx, a.SessionID, a.Device, tr)
	case SpawnTask:
		go func() {
			msg := runTask(ctx, reg, a.SessionID, a.Kind, a.AppID, a.Sender)
			d.send(ctx, msg)
			if a.Kind == TaskStop {
				d.Shutdown(a.SessionID)
			}
		}()
	}
}

func (d *Dispatcher) spawnSession(ctx context.Context, id sessionid.ID, dev device.Device, tr *tracker.Tracker) {
	proc := &sessionProc{shutdown: make(chan struct{}), done: make(chan struct{})}
	d.mu.Lock()
	d.procs[id] = proc
	d.mu.Unlock()

	driver := &child.Driver{
		SessionID:    id,
		Device:       dev,
		ProjectPath:  d.ProjectPath,
		Launcher:     child.NewProcessLauncher(),
		Tracker:      tr,
		Events:       d.rawEvents,
		ReplyTimeout: d.ReplyTimeout,
	}

	go func() {
		defer close(proc.done)
		driver.Run(ctx, proc.shutdown, child.DriverCallbacks{
			Attached: func(info child.AttachedInfo) {
				d.send(ctx, SessionProcessAttached{SessionID: info.SessionID, Sender: info.Sender})
			},
			Started: func(info child.StartedInfo) {
				d.send(ctx, SessionStarted{
					SessionID:  info.SessionID,
					DeviceName: info.DeviceName,
					Platform:   info.Platform,
					PID:        info.PID,
				})
			},
			SpawnFailed: func(info child.SpawnFailedInfo) {
				d.send(ctx, SessionSpawnFailed{SessionID: info.SessionID, Err: info.Err})
			},
		})
	}()
}

// Shutdown signals the session's driver to begin its graceful stop and
// returns a channel closed once the driver's goroutine has fully exited.
// A session with no running process (never spawned, or already exited)
// reports itself done immediately.
func (d *Dispatcher) Shutdown(id sessionid.ID) <-chan struct{} {
	d.mu.Lock()
	proc, ok := d.procs[id]
	d.mu.Unlock()
	if !ok {
		done := make(chan struct{})
		close(done)
		return done
	}
	select {
	case <-proc.shutdown:
	default:
		close(proc.shutdown)
	}
	return proc.done
}

// SessionIDs returns the ids of sessions the dispatcher has ever spawned a
// driver for, used by the shutdown coordinator to fan out Shutdown calls.
func (d *Dispatcher) SessionIDs() []sessionid.ID {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := make([]sessionid.ID, 0, len(d.procs))
	for id := range d.procs {
		ids = append(ids, id)
	}
	return ids
}
