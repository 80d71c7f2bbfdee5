package registry

import (
	"time"

	"github.com/fdaemon/supervisor/internal/device"
)

// DefaultMaxLogs bounds a session's log buffer when no override is
// configured.
const DefaultMaxLogs = 1000

// Session is one tracked build target: its device, lifecycle phase, and
// bounded log history.
type Session struct {
	Device    device.Device
	Phase     Phase
	AppID     string
	StartTime time.Time
	Logs      []LogEntry
	LogView   LogView
	MaxLogs   int
}

// NewSession returns a freshly initialized session for dev.
func NewSession(dev device.Device, maxLogs int) *Session {
	if maxLogs <= 0 {
		maxLogs = DefaultMaxLogs
	}
	return &Session{
		Device:  dev,
		Phase:   PhaseInitializing,
		LogView: NewLogView(),
		MaxLogs: maxLogs,
	}
}

// AppendLog appends an entry, evicting the oldest overflow once MaxLogs is
// exceeded and adjusting LogView.Offset so a scrolled-up view doesn't jump
// when old entries are dropped from underneath it.
func (s *Session) AppendLog(e LogEntry) {
	s.Logs = append(s.Logs, e)
	if len(s.Logs) > s.MaxLogs {
		drain := len(s.Logs) - s.MaxLogs
		s.Logs = s.Logs[drain:]
		s.LogView.Offset -= drain
		if s.LogView.Offset < 0 {
			s.LogView.Offset = 0
		}
	}
}

// SetAppID records the app id the first time AppStart is observed; later
// calls are no-ops since a session has exactly one app id for its
// lifetime.
func (s *Session) SetAppID(id string) {
	if s.AppID == "" {
		s.AppID = id
	}
}
