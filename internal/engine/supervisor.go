package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/protocol"
	"github.com/fdaemon/supervisor/internal/sessionid"
	"github.com/fdaemon/supervisor/internal/settings"
)

// Supervisor owns a State and drives it forward: it feeds Messages
// through Update, runs the Actions Update returns via a Dispatcher, and
// exposes the resulting state to a view layer.
type Supervisor struct {
	State      *State
	Dispatcher *Dispatcher

	msgCh chan Message
}

// NewSupervisor wires a fresh State to a Dispatcher backed by devices,
// forwarding async results onto an internally owned message channel.
// ctx bounds the Dispatcher's background goroutines' lifetime.
func NewSupervisor(ctx context.Context, projectPath string, cfg settings.Settings, devices device.Lister) *Supervisor {
	msgCh := make(chan Message, 256)
	return &Supervisor{
		State:      NewState(projectPath, cfg),
		Dispatcher: NewDispatcher(ctx, devices, projectPath, msgCh),
		msgCh:      msgCh,
	}
}

// Messages returns the channel Driver/discovery/task outcomes arrive on,
// to be merged by the caller (the bubbletea Program) alongside key input
// and Tick into one event stream feeding Process.
func (s *Supervisor) Messages() <-chan Message { return s.msgCh }

// Process runs msg through Update, preprocessing a raw daemon stdout line
// for response routing first, dispatches any resulting Action, and
// recursively processes the follow-up Message (if any) before returning —
// matching the "one Action plus one immediately-processed follow-up
// Message" contract Update promises its caller.
func (s *Supervisor) Process(ctx context.Context, msg Message) {
	if daemon, ok := msg.(SessionDaemon); ok && daemon.Kind == DaemonStdout {
		s.preprocess(daemon)
	}

	action, follow := Update(s.State, msg)
	if action != nil {
		s.Dispatcher.Dispatch(ctx, s.State.Registry, action)
	}
	if follow != nil {
		s.Process(ctx, follow)
	}
}

// preprocess decodes a stdout line and, if it is a protocol.Response,
// routes it to the owning session's (or the legacy mirror's) Tracker
// exactly once — before Update's own handleStdoutLine independently
// decodes the same line for AppStart/AppLog handling. The duplicate
// decode is harmless; keeping response routing out of Update keeps the
// reducer free of the Tracker's side-effecting HandleResponse call.
func (s *Supervisor) preprocess(daemon SessionDaemon) {
	msg, ok := protocol.Decode(daemon.Line)
	if !ok {
		return
	}
	resp, ok := msg.(protocol.Response)
	if !ok {
		return
	}

	var result json.RawMessage
	var err error
	if resp.Error != nil {
		err = respError{resp.Error}
	} else {
		result = resp.Result
	}

	if daemon.SessionID == sessionid.Legacy {
		if s.State.Legacy.Tracker != nil {
			s.State.Legacy.Tracker.HandleResponse(resp.ID, result, err)
		}
		return
	}
	if h, ok := s.State.Registry.Get(daemon.SessionID); ok {
		h.Tracker.HandleResponse(resp.ID, result, err)
	}
}

type respError struct{ e *protocol.ResponseError }

func (r respError) Error() string { return r.e.Message }

// Shutdown runs the fleet-wide coordinated shutdown: every spawned
// session's driver is signalled to stop and joined concurrently, bounded
// by perSessionShutdownBudget regardless of fleet size.
func (s *Supervisor) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, perSessionShutdownBudget+time.Second)
	defer cancel()
	return ShutdownFleet(ctx, s.Dispatcher, s.Dispatcher.SessionIDs())
}
