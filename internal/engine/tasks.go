package engine

import (
	"context"
	"time"

	"github.com/fdaemon/supervisor/internal/child"
	"github.com/fdaemon/supervisor/internal/protocol"
	"github.com/fdaemon/supervisor/internal/registry"
	"github.com/fdaemon/supervisor/internal/sessionid"
)

const defaultTaskTimeout = 30 * time.Second

// runTask sends the daemon command a SpawnTask action names and converts
// the outcome into the matching Completed/Failed message. It runs on its
// own goroutine. A stop for a session with no app id completes at once
// without sending anything. Otherwise sender is the handle the action was
// constructed with; if nil (the session is still in the registry, e.g.
// reload/restart), it is resolved there instead, since those tasks don't
// remove the session first.
func runTask(ctx context.Context, reg *registry.Registry, sessionID sessionid.ID, kind TaskKind, appID string, sender *child.Sender) Message {
	if kind == TaskStop && appID == "" {
		return StopCompleted{SessionID: sessionID}
	}

	if sender == nil {
		h, ok := reg.Get(sessionID)
		if !ok || h.Sender == nil {
			return taskFailed(sessionID, kind, "session no longer attached")
		}
		sender = h.Sender
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTaskTimeout)
	defer cancel()

	method := taskMethod(kind)
	start := time.Now()
	_, err := sender.Send(ctx, method, appID)
	if err != nil {
		return taskFailed(sessionID, kind, err.Error())
	}

	switch kind {
	case TaskReload:
		return ReloadCompleted{SessionID: sessionID, TimeMs: time.Since(start).Milliseconds()}
	case TaskRestart:
		return RestartCompleted{SessionID: sessionID}
	default:
		return StopCompleted{SessionID: sessionID}
	}
}

func taskMethod(kind TaskKind) protocol.CommandMethod {
	switch kind {
	case TaskReload:
		return protocol.MethodReload
	case TaskRestart:
		return protocol.MethodRestart
	default:
		return protocol.MethodStop
	}
}

func taskFailed(sessionID sessionid.ID, kind TaskKind, reason string) Message {
	switch kind {
	case TaskReload:
		return ReloadFailed{SessionID: sessionID, Reason: reason}
	case TaskRestart:
		return RestartFailed{SessionID: sessionID, Reason: reason}
	default:
		return StopFailed{SessionID: sessionID, Reason: reason}
	}
}
