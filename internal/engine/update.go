package engine

import (
	"fmt"

	"github.com/fdaemon/supervisor/internal/protocol"
	"github.com/fdaemon/supervisor/internal/registry"
	"github.com/fdaemon/supervisor/internal/sessionid"
)

// Update is the pure reducer: given the current state and an incoming
// message, it mutates state in place and returns an optional Action for
// the dispatcher to run asynchronously, plus an optional follow-up
// Message to be processed immediately, before the next input poll.
func Update(state *State, msg Message) (Action, Message) {
	switch m := msg.(type) {
	case DeviceSelected:
		return updateDeviceSelected(state, m)
	case ConfirmDeviceSelection:
		return updateConfirmDeviceSelection(state)
	case MoveSelectorCursor:
		updateMoveSelectorCursor(state, m)
		return nil, nil
	case ManualRefreshDevices:
		return updateManualRefreshDevices(state)
	case SessionProcessAttached:
		updateProcessAttached(state, m)
		return nil, nil
	case SessionStarted:
		updateSessionStarted(state, m)
		return nil, nil
	case SessionSpawnFailed:
		updateSpawnFailed(state, m)
		return nil, nil
	case SessionDaemon:
		return updateSessionDaemon(state, m)
	case HotReload:
		return updateHotReload(state)
	case HotRestart:
		return updateHotRestart(state)
	case ReloadCompleted:
		updateReloadCompleted(state, m)
		return nil, nil
	case ReloadFailed:
		updateReloadFailed(state, m)
		return nil, nil
	case RestartCompleted:
		updateRestartCompleted(state, m)
		return nil, nil
	case RestartFailed:
		updateRestartFailed(state, m)
		return nil, nil
	case StopCompleted:
		updateStopCompleted(state, m)
		return nil, nil
	case StopFailed:
		updateStopFailed(state, m)
		return nil, nil
	case CloseCurrentSession:
		return updateCloseCurrentSession(state)
	case RequestQuit:
		updateRequestQuit(state)
		return nil, nil
	case ConfirmQuit:
		state.Phase = GlobalQuitting
		return nil, nil
	case CancelQuit:
		state.ConfirmDialog = ConfirmDialogState{}
		state.UIMode = ModeNormal
		return nil, nil
	case Quit:
		state.Phase = GlobalQuitting
		return nil, nil
	case Tick:
		updateTick(state)
		return nil, nil
	case ShowDeviceSelector:
		return updateShowDeviceSelector(state)
	case HideDeviceSelector:
		updateHideDeviceSelector(state)
		return nil, nil
	case SelectSessionByIndex:
		updateSelectByIndex(state, m)
		return nil, nil
	case CycleSession:
		updateCycleSession(state, m)
		return nil, nil
	case DevicesDiscovered:
		updateDevicesDiscovered(state, m)
		return nil, nil
	case DeviceDiscoveryFailed:
		appendGlobalLog(state, protocol.LevelError, "discover devices failed: "+m.Err.Error())
		state.DeviceSelector.Status = SelectorIdle
		return nil, nil
	case EmulatorsDiscovered:
		state.DeviceSelector.Devices = append(state.DeviceSelector.Devices, m.Emulators...)
		state.DeviceSelector.HasCache = true
		return nil, nil
	case EmulatorLaunched:
		return nil, DeviceSelected{Device: m.Device}
	case EmulatorLaunchFailed:
		appendGlobalLog(state, protocol.LevelError, "launch emulator failed: "+m.Err.Error())
		return nil, nil
	case FileChanged:
		return updateFileChanged(state, m)
	case ScrollLogUp:
		updateScrollLog(state, 1)
		return nil, nil
	case ScrollLogDown:
		updateScrollLog(state, -1)
		return nil, nil
	case JumpToBottomLog:
		updateJumpToBottomLog(state)
		return nil, nil
	case OpenLogDetail:
		updateOpenLogDetail(state)
		return nil, nil
	case CloseLogDetail:
		state.LogDetail = LogDetailState{}
		state.UIMode = ModeNormal
		return nil, nil
	default:
		return nil, nil
	}
}

func updateDeviceSelected(state *State, m DeviceSelected) (Action, Message) {
	if _, ok := state.Registry.FindByDeviceID(m.Device.ID); ok {
		appendGlobalLog(state, protocol.LevelError, "device already has a session: "+m.Device.Name)
		return nil, nil
	}
	id, err := state.Registry.Create(m.Device, state.Settings.MaxLogsPerSession)
	if err != nil {
		appendGlobalLog(state, protocol.LevelError, "create session failed: "+err.Error())
		return nil, nil
	}
	state.UIMode = ModeNormal
	return SpawnSession{SessionID: id, Device: m.Device}, nil
}

func updateConfirmDeviceSelection(state *State) (Action, Message) {
	if len(state.DeviceSelector.Devices) == 0 || state.DeviceSelector.Cursor >= len(state.DeviceSelector.Devices) {
		return nil, nil
	}
	dev := state.DeviceSelector.Devices[state.DeviceSelector.Cursor]
	return updateDeviceSelected(state, DeviceSelected{Device: dev})
}

func updateMoveSelectorCursor(state *State, m MoveSelectorCursor) {
	n := len(state.DeviceSelector.Devices)
	if n == 0 {
		return
	}
	state.DeviceSelector.Cursor = registry.CycleIndex(state.DeviceSelector.Cursor, m.Delta, n)
}

func updateManualRefreshDevices(state *State) (Action, Message) {
	state.DeviceSelector.HasCache = false
	state.DeviceSelector.Devices = nil
	state.DeviceSelector.Cursor = 0
	state.DeviceSelector.Status = SelectorLoading
	return DiscoverDevices{}, nil
}

func updateProcessAttached(state *State, m SessionProcessAttached) {
	if h, ok := state.Registry.Get(m.SessionID); ok {
		h.Sender = m.Sender
		state.Legacy.Tracker = h.Tracker
	}
	state.Legacy.Sender = m.Sender
}

func updateSessionStarted(state *State, m SessionStarted) {
	now := state.now()
	if h, ok := state.Registry.Get(m.SessionID); ok {
		h.Session.Phase = registry.PhaseRunning
		h.Session.StartTime = now
		h.Session.AppendLog(registry.LogEntry{
			Timestamp: now,
			Level:     protocol.LevelInfo,
			Source:    protocol.SourceApp,
			Message:   fmt.Sprintf("started on %s (%s) — PID %d", m.DeviceName, m.Platform, m.PID),
		})
	}
	state.Legacy.Phase = registry.PhaseRunning
	state.Legacy.StartTime = now
}

func updateSpawnFailed(state *State, m SessionSpawnFailed) {
	appendGlobalLog(state, protocol.LevelError, fmt.Sprintf("session %d spawn failed: %v", m.SessionID, m.Err))
	state.Registry.Remove(m.SessionID)
	if state.Registry.IsEmpty() {
		state.UIMode = ModeDeviceSelector
	}
}

func updateSessionDaemon(state *State, m SessionDaemon) (Action, Message) {
	h, ok := state.Registry.Get(m.SessionID)
	if !ok {
		return nil, nil
	}
	switch m.Kind {
	case DaemonStdout:
		handleStdoutLine(state, h, m.Line)
	case DaemonStderr:
		h.Session.AppendLog(registry.LogEntry{
			Timestamp: state.now(),
			Level:     protocol.LevelError,
			Source:    protocol.SourceFlutterError,
			Message:   m.Line,
		})
	case DaemonExited:
		outcome := "exited"
		if m.Code != 0 {
			outcome = fmt.Sprintf("exited with code %d", m.Code)
		}
		h.Session.AppendLog(registry.LogEntry{
			Timestamp: state.now(),
			Level:     protocol.LevelInfo,
			Source:    protocol.SourceWatcher,
			Message:   "process " + outcome,
		})
		h.Session.Phase = registry.PhaseStopped
	}
	return nil, nil
}

func handleStdoutLine(state *State, h *registry.SessionHandle, line string) {
	msg, ok := protocol.Decode(line)
	if !ok {
		h.Session.AppendLog(registry.LogEntry{
			Timestamp: state.now(),
			Level:     protocol.LevelInfo,
			Source:    protocol.SourceApp,
			Message:   line,
		})
		return
	}
	switch v := msg.(type) {
	case protocol.AppStart:
		h.Session.SetAppID(v.AppID)
		state.Legacy.AppID = v.AppID
	case protocol.AppLog:
		h.Session.AppendLog(registry.LogEntry{
			Timestamp: state.now(),
			Level:     v.Level,
			Source:    v.Source,
			Message:   v.Message,
			Stack:     v.Stack,
		})
	case protocol.Response:
		// Response routing happens in the supervisor's preprocessor, before
		// Update ever sees this message; nothing to do here.
	}
}

func anyBusy(state *State) bool {
	for _, id := range state.Registry.Order() {
		h, _ := state.Registry.Get(id)
		if h.Session.Phase == registry.PhaseReloading || h.Session.Phase == registry.PhaseRestarting {
			return true
		}
	}
	return false
}

func updateHotReload(state *State) (Action, Message) {
	if anyBusy(state) {
		return nil, nil
	}
	h, ok := state.Registry.SelectedHandle()
	if !ok || h.Session.AppID == "" || h.Sender == nil {
		appendGlobalLog(state, protocol.LevelInfo, "no app to reload")
		return nil, nil
	}
	h.Session.Phase = registry.PhaseReloading
	state.Legacy.Phase = registry.PhaseReloading
	return SpawnTask{SessionID: state.Registry.Selected(), Kind: TaskReload, AppID: h.Session.AppID}, nil
}

func updateHotRestart(state *State) (Action, Message) {
	if anyBusy(state) {
		return nil, nil
	}
	h, ok := state.Registry.SelectedHandle()
	if !ok || h.Session.AppID == "" || h.Sender == nil {
		appendGlobalLog(state, protocol.LevelInfo, "no app to restart")
		return nil, nil
	}
	h.Session.Phase = registry.PhaseRestarting
	state.Legacy.Phase = registry.PhaseRestarting
	return SpawnTask{SessionID: state.Registry.Selected(), Kind: TaskRestart, AppID: h.Session.AppID}, nil
}

func updateReloadCompleted(state *State, m ReloadCompleted) {
	if h, ok := state.Registry.Get(m.SessionID); ok {
		h.Session.Phase = registry.PhaseRunning
		h.Session.AppendLog(registry.LogEntry{
			Timestamp: state.now(),
			Level:     protocol.LevelInfo,
			Source:    protocol.SourceApp,
			Message:   fmt.Sprintf("reloaded in %dms", m.TimeMs),
		})
	}
}

func updateReloadFailed(state *State, m ReloadFailed) {
	if h, ok := state.Registry.Get(m.SessionID); ok {
		h.Session.Phase = registry.PhaseRunning
		h.Session.AppendLog(registry.LogEntry{
			Timestamp: state.now(),
			Level:     protocol.LevelError,
			Source:    protocol.SourceApp,
			Message:   "reload failed: " + m.Reason,
		})
	}
}

func updateRestartCompleted(state *State, m RestartCompleted) {
	if h, ok := state.Registry.Get(m.SessionID); ok {
		h.Session.Phase = registry.PhaseRunning
		h.Session.AppendLog(registry.LogEntry{
			Timestamp: state.now(),
			Level:     protocol.LevelInfo,
			Source:    protocol.SourceApp,
			Message:   "restarted",
		})
	}
}

func updateRestartFailed(state *State, m RestartFailed) {
	if h, ok := state.Registry.Get(m.SessionID); ok {
		h.Session.Phase = registry.PhaseRunning
		h.Session.AppendLog(registry.LogEntry{
			Timestamp: state.now(),
			Level:     protocol.LevelError,
			Source:    protocol.SourceApp,
			Message:   "restart failed: " + m.Reason,
		})
	}
}

func updateStopCompleted(state *State, m StopCompleted) {
	if h, ok := state.Registry.Get(m.SessionID); ok {
		h.Session.AppendLog(registry.LogEntry{
			Timestamp: state.now(),
			Level:     protocol.LevelInfo,
			Source:    protocol.SourceApp,
			Message:   "stopped",
		})
	}
}

func updateStopFailed(state *State, m StopFailed) {
	if h, ok := state.Registry.Get(m.SessionID); ok {
		h.Session.AppendLog(registry.LogEntry{
			Timestamp: state.now(),
			Level:     protocol.LevelError,
			Source:    protocol.SourceApp,
			Message:   "stop failed: " + m.Reason,
		})
	}
}

func updateCloseCurrentSession(state *State) (Action, Message) {
	id := state.Registry.Selected()
	if id == sessionid.Legacy {
		return nil, nil
	}
	h, ok := state.Registry.Get(id)
	if !ok {
		return nil, nil
	}

	appID := h.Session.AppID
	sender := h.Sender
	state.Registry.Remove(id)

	var followUp Message
	if state.Registry.IsEmpty() {
		followUp = ShowDeviceSelector{}
	}

	return SpawnTask{SessionID: id, Kind: TaskStop, AppID: appID, Sender: sender}, followUp
}

func updateRequestQuit(state *State) {
	running := state.Registry.RunningIDs()
	if len(running) > 0 && state.Settings.ConfirmQuit {
		state.UIMode = ModeConfirmDialog
		state.ConfirmDialog = ConfirmDialogState{Active: true, RunningSessionCount: len(running)}
		return
	}
	state.Phase = GlobalQuitting
}

func updateTick(state *State) {
	if state.UIMode != ModeDeviceSelector {
		return
	}
	if state.DeviceSelector.Status == SelectorLoading || state.DeviceSelector.Status == SelectorRefreshing {
		state.DeviceSelector.AnimFrame++
	}
}

func updateShowDeviceSelector(state *State) (Action, Message) {
	state.UIMode = ModeDeviceSelector
	if state.DeviceSelector.HasCache {
		state.DeviceSelector.Status = SelectorRefreshing
	} else {
		state.DeviceSelector.Status = SelectorLoading
	}
	state.DeviceSelector.AnimFrame = 0
	return DiscoverDevices{}, nil
}

func updateHideDeviceSelector(state *State) {
	if state.Registry.IsEmpty() {
		return
	}
	state.UIMode = ModeNormal
}

func updateSelectByIndex(state *State, m SelectSessionByIndex) {
	id, ok := state.Registry.ByIndex(m.Index)
	if !ok {
		return
	}
	state.Registry.Select(id)
}

func updateCycleSession(state *State, m CycleSession) {
	order := state.Registry.Order()
	if len(order) == 0 {
		return
	}
	cur := state.Registry.Selected()
	idx := 0
	for i, id := range order {
		if id == cur {
			idx = i
			break
		}
	}
	next := registry.CycleIndex(idx, m.Delta, len(order))
	state.Registry.Select(order[next])
}

func updateDevicesDiscovered(state *State, m DevicesDiscovered) {
	state.DeviceSelector.Devices = m.Devices
	state.DeviceSelector.HasCache = true
	state.DeviceSelector.Status = SelectorIdle
	if state.DeviceSelector.Cursor >= len(m.Devices) {
		state.DeviceSelector.Cursor = 0
	}
}

func updateFileChanged(state *State, m FileChanged) (Action, Message) {
	appendGlobalLog(state, protocol.LevelInfo, "file changed: "+m.Path)
	if state.Settings.Watcher.AutoReload {
		return nil, HotReload{}
	}
	return nil, nil
}

// updateScrollLog moves the selected session's log view by delta lines
// (positive scrolls up/back in history) and drops out of follow mode.
func updateScrollLog(state *State, delta int) {
	h, ok := state.Registry.SelectedHandle()
	if !ok {
		return
	}
	max := len(h.Session.Logs) - 1
	if max < 0 {
		max = 0
	}
	offset := h.Session.LogView.Offset + delta
	if offset < 0 {
		offset = 0
	}
	if offset > max {
		offset = max
	}
	h.Session.LogView.Offset = offset
	h.Session.LogView.Follow = false
}

func updateJumpToBottomLog(state *State) {
	h, ok := state.Registry.SelectedHandle()
	if !ok {
		return
	}
	h.Session.LogView.Offset = 0
	h.Session.LogView.Follow = true
}

func updateOpenLogDetail(state *State) {
	id := state.Registry.Selected()
	h, ok := state.Registry.SelectedHandle()
	if !ok || len(h.Session.Logs) == 0 {
		return
	}
	idx := len(h.Session.Logs) - 1 - h.Session.LogView.Offset
	if idx < 0 {
		idx = 0
	}
	if idx > len(h.Session.Logs)-1 {
		idx = len(h.Session.Logs) - 1
	}
	state.LogDetail = LogDetailState{Active: true, SessionID: id, EntryIndex: idx}
	state.UIMode = ModeLogDetail
}

func appendGlobalLog(state *State, level protocol.LogLevel, msg string) {
	state.GlobalLogs = append(state.GlobalLogs, registry.LogEntry{
		Timestamp: state.now(),
		Level:     level,
		Source:    protocol.SourceWatcher,
		Message:   msg,
	})
	if len(state.GlobalLogs) > maxGlobalLogs {
		state.GlobalLogs = state.GlobalLogs[len(state.GlobalLogs)-maxGlobalLogs:]
	}
}
