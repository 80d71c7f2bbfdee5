package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fdaemon/supervisor/internal/engine"
)

// Route is a pure function: (ui_mode, key) -> Option<Message>. It never
// reads session or device state — a binding
// that would otherwise need "the currently highlighted device" (Enter in
// DeviceSelector) instead emits a generic engine.ConfirmDeviceSelection,
// which Update resolves against the device list it already holds.
func Route(mode engine.UIMode, keys KeyMap, msg tea.KeyMsg) (engine.Message, bool) {
	// Ctrl+C force-quits from any mode.
	if key.Matches(msg, keys.ForceQuit) {
		return engine.Quit{}, true
	}

	switch mode {
	case engine.ModeNormal:
		return routeNormal(keys, msg)
	case engine.ModeDeviceSelector:
		return routeDeviceSelector(keys, msg)
	case engine.ModeConfirmDialog:
		return routeConfirmDialog(keys, msg)
	case engine.ModeLogDetail:
		return routeLogDetail(keys, msg)
	default:
		return nil, false
	}
}

func routeNormal(keys KeyMap, msg tea.KeyMsg) (engine.Message, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		return engine.RequestQuit{}, true
	case key.Matches(msg, keys.HotRestart):
		return engine.HotRestart{}, true
	case key.Matches(msg, keys.HotReload):
		return engine.HotReload{}, true
	case key.Matches(msg, keys.CloseSession):
		return engine.CloseCurrentSession{}, true
	case key.Matches(msg, keys.ShowSelector):
		return engine.ShowDeviceSelector{}, true
	case key.Matches(msg, keys.CycleSession):
		return engine.CycleSession{Delta: 1}, true
	case key.Matches(msg, keys.JumpToBottom):
		return engine.JumpToBottomLog{}, true
	case key.Matches(msg, keys.Up):
		return engine.ScrollLogUp{}, true
	case key.Matches(msg, keys.Down):
		return engine.ScrollLogDown{}, true
	case key.Matches(msg, keys.Enter):
		return engine.OpenLogDetail{}, true
	}
	if idx, ok := digitIndex(msg); ok {
		return engine.SelectSessionByIndex{Index: idx}, true
	}
	return nil, false
}

func routeLogDetail(keys KeyMap, msg tea.KeyMsg) (engine.Message, bool) {
	if key.Matches(msg, keys.Escape) {
		return engine.CloseLogDetail{}, true
	}
	return nil, false
}

func routeDeviceSelector(keys KeyMap, msg tea.KeyMsg) (engine.Message, bool) {
	switch {
	case key.Matches(msg, keys.Up):
		return engine.MoveSelectorCursor{Delta: -1}, true
	case key.Matches(msg, keys.Down):
		return engine.MoveSelectorCursor{Delta: 1}, true
	case key.Matches(msg, keys.Enter):
		return engine.ConfirmDeviceSelection{}, true
	case key.Matches(msg, keys.Escape):
		return engine.HideDeviceSelector{}, true
	case key.Matches(msg, keys.Refresh):
		return engine.ManualRefreshDevices{}, true
	}
	return nil, false
}

func routeConfirmDialog(keys KeyMap, msg tea.KeyMsg) (engine.Message, bool) {
	// "q" here confirms rather than requesting quit again.
	switch {
	case key.Matches(msg, keys.ConfirmYes):
		return engine.ConfirmQuit{}, true
	case key.Matches(msg, keys.ConfirmNo):
		return engine.CancelQuit{}, true
	}
	return nil, false
}

// digitIndex reports whether msg is a bare '1'..'9' keypress and its
// 1-based index, ignored (not matched) for any other key including '0'.
func digitIndex(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '0'), true
}
