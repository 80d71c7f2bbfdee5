package engine

import (
	"github.com/fdaemon/supervisor/internal/child"
	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/sessionid"
)

// Action is a side effect Update asks the dispatcher to perform
// asynchronously; the dispatcher runs it and feeds the result back in as
// a Message.
type Action interface{ isAction() }

type DiscoverDevices struct{}

func (DiscoverDevices) isAction() {}

type DiscoverEmulators struct{}

func (DiscoverEmulators) isAction() {}

type LaunchEmulator struct{ EmulatorID string }

func (LaunchEmulator) isAction() {}

type LaunchIOSSimulator struct{ SimulatorID string }

func (LaunchIOSSimulator) isAction() {}

type SpawnSession struct {
	SessionID sessionid.ID
	Device    device.Device
}

func (SpawnSession) isAction() {}

// TaskKind names which daemon command a SpawnTask issues.
type TaskKind int

const (
	TaskReload TaskKind = iota
	TaskRestart
	TaskStop
)

// SpawnTask asks the dispatcher to issue a reload/restart/stop command.
// Sender carries the handle captured at the time Update produced this
// action, so TaskStop still reaches the child even after the session has
// already been removed from the registry.
type SpawnTask struct {
	SessionID sessionid.ID
	Kind      TaskKind
	AppID     string
	Sender    *child.Sender
}

func (SpawnTask) isAction() {}
