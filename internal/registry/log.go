package registry

import (
	"time"

	"github.com/fdaemon/supervisor/internal/protocol"
)

// LogEntry is one line recorded in a session's bounded log buffer.
type LogEntry struct {
	Timestamp time.Time
	Level     protocol.LogLevel
	Source    protocol.LogSource
	Message   string
	Stack     string
}

// LogView is the interactive scroll state over a session's log buffer:
// Offset counts lines up from the bottom, and Follow pins the view to the
// newest entry as it arrives.
type LogView struct {
	Offset int
	Follow bool
}

// NewLogView returns a view pinned to the bottom, the default state for a
// freshly created session.
func NewLogView() LogView {
	return LogView{Follow: true}
}
