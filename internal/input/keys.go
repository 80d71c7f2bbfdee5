// Package input maps terminal key events to engine Messages through a
// mode-scoped routing table: the bindings that apply depend on which
// overlay or view currently has focus.
package input

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the router consults, across all UI modes.
type KeyMap struct {
	Quit         key.Binding
	ForceQuit    key.Binding
	HotReload    key.Binding
	HotRestart   key.Binding
	CloseSession key.Binding
	ShowSelector key.Binding
	CycleSession key.Binding
	Up           key.Binding
	Down         key.Binding
	Enter        key.Binding
	Escape       key.Binding
	Refresh      key.Binding
	ConfirmYes   key.Binding
	ConfirmNo    key.Binding
	JumpToBottom key.Binding
}

// DefaultKeyMap returns the supervisor's canonical key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		HotReload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "hot reload"),
		),
		HotRestart: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "hot restart"),
		),
		CloseSession: key.NewBinding(
			key.WithKeys("x", "ctrl+w"),
			key.WithHelp("x", "close session"),
		),
		ShowSelector: key.NewBinding(
			key.WithKeys("d", "n"),
			key.WithHelp("d/n", "new session"),
		),
		CycleSession: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next session"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ConfirmYes: key.NewBinding(
			key.WithKeys("y", "Y", "q", "enter"),
			key.WithHelp("y", "confirm"),
		),
		ConfirmNo: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),
		JumpToBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "jump to bottom, resume follow"),
		),
	}
}
