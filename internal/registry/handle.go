package registry

import (
	"github.com/fdaemon/supervisor/internal/child"
	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/tracker"
)

// SessionHandle bundles a Session with the collaborators needed to talk
// to its child process: a command Sender (nil until the process attaches)
// and the request Tracker the Sender and daemon-response preprocessor
// share.
type SessionHandle struct {
	Session *Session
	Sender  *child.Sender
	Tracker *tracker.Tracker
}

// NewHandle returns a handle for a newly created session with its own
// request tracker.
func NewHandle(dev device.Device, maxLogs int) *SessionHandle {
	return &SessionHandle{
		Session: NewSession(dev, maxLogs),
		Tracker: tracker.New(),
	}
}

// Running reports whether the handle's session has a live, attached app —
// used to decide which sessions block an unconfirmed quit.
func (h *SessionHandle) Running() bool {
	return h.Session.Phase != PhaseStopped && h.Session.AppID != ""
}
