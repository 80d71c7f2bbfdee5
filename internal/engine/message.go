// Package engine implements the Elm-style Model/Message/Update/View core:
// a pure reducer over State plus the supervisor loop and action
// dispatcher that connect it to the outside world (child processes,
// device discovery, the filesystem watcher).
package engine

import (
	"github.com/fdaemon/supervisor/internal/child"
	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/sessionid"
)

// Message is any event the update function can react to.
type Message interface{ isMessage() }

// Input-derived messages.

type DeviceSelected struct{ Device device.Device }

func (DeviceSelected) isMessage() {}

// ConfirmDeviceSelection is emitted by the input router when Enter is
// pressed in the device selector; Update resolves the highlighted device
// from state and proceeds as DeviceSelected, since the router is a pure
// function of (ui_mode, key) with no access to the device list itself.
type ConfirmDeviceSelection struct{}

func (ConfirmDeviceSelection) isMessage() {}

type MoveSelectorCursor struct{ Delta int }

func (MoveSelectorCursor) isMessage() {}

type ManualRefreshDevices struct{}

func (ManualRefreshDevices) isMessage() {}

type CloseCurrentSession struct{}

func (CloseCurrentSession) isMessage() {}

type HotReload struct{}

func (HotReload) isMessage() {}

type HotRestart struct{}

func (HotRestart) isMessage() {}

type RequestQuit struct{}

func (RequestQuit) isMessage() {}

type ConfirmQuit struct{}

func (ConfirmQuit) isMessage() {}

type CancelQuit struct{}

func (CancelQuit) isMessage() {}

// Quit forces an immediate quit, bypassing confirmation (ctrl+c).
type Quit struct{}

func (Quit) isMessage() {}

type ShowDeviceSelector struct{}

func (ShowDeviceSelector) isMessage() {}

type HideDeviceSelector struct{}

func (HideDeviceSelector) isMessage() {}

type SelectSessionByIndex struct{ Index int }

func (SelectSessionByIndex) isMessage() {}

type CycleSession struct{ Delta int }

func (CycleSession) isMessage() {}

type Tick struct{}

func (Tick) isMessage() {}

type FileChanged struct{ Path string }

func (FileChanged) isMessage() {}

// Log pane scrolling and the log detail flyout: scrolling turns off
// follow, "jump to bottom" restores it.

type ScrollLogUp struct{}

func (ScrollLogUp) isMessage() {}

type ScrollLogDown struct{}

func (ScrollLogDown) isMessage() {}

type JumpToBottomLog struct{}

func (JumpToBottomLog) isMessage() {}

type OpenLogDetail struct{}

func (OpenLogDetail) isMessage() {}

type CloseLogDetail struct{}

func (CloseLogDetail) isMessage() {}

// Async discovery replies.

type DevicesDiscovered struct{ Devices []device.Device }

func (DevicesDiscovered) isMessage() {}

type DeviceDiscoveryFailed struct{ Err error }

func (DeviceDiscoveryFailed) isMessage() {}

type EmulatorsDiscovered struct{ Emulators []device.Device }

func (EmulatorsDiscovered) isMessage() {}

type EmulatorLaunched struct{ Device device.Device }

func (EmulatorLaunched) isMessage() {}

type EmulatorLaunchFailed struct{ Err error }

func (EmulatorLaunchFailed) isMessage() {}

// Driver-originated messages.

type SessionProcessAttached struct {
	SessionID sessionid.ID
	Sender    *child.Sender
}

func (SessionProcessAttached) isMessage() {}

type SessionStarted struct {
	SessionID  sessionid.ID
	DeviceName string
	Platform   string
	PID        int
}

func (SessionStarted) isMessage() {}

type SessionSpawnFailed struct {
	SessionID sessionid.ID
	Err       error
}

func (SessionSpawnFailed) isMessage() {}

// DaemonEventKind mirrors child.EventKind without importing the driver's
// process-level vocabulary into the reducer's message set.
type DaemonEventKind int

const (
	DaemonStdout DaemonEventKind = iota
	DaemonStderr
	DaemonExited
)

type SessionDaemon struct {
	SessionID sessionid.ID
	Kind      DaemonEventKind
	Line      string
	Code      int
}

func (SessionDaemon) isMessage() {}

// Task-originated messages (reload/restart/stop completion).

type ReloadCompleted struct {
	SessionID sessionid.ID
	TimeMs    int64
}

func (ReloadCompleted) isMessage() {}

type ReloadFailed struct {
	SessionID sessionid.ID
	Reason    string
}

func (ReloadFailed) isMessage() {}

type RestartCompleted struct{ SessionID sessionid.ID }

func (RestartCompleted) isMessage() {}

type RestartFailed struct {
	SessionID sessionid.ID
	Reason    string
}

func (RestartFailed) isMessage() {}

type StopCompleted struct{ SessionID sessionid.ID }

func (StopCompleted) isMessage() {}

type StopFailed struct {
	SessionID sessionid.ID
	Reason    string
}

func (StopFailed) isMessage() {}
