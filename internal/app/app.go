// Package app wires the engine (Model/Message/Update/Action), the input
// router, and the view packages into a single bubbletea.Model that drives
// the supervisor's event loop.
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/engine"
	"github.com/fdaemon/supervisor/internal/input"
	"github.com/fdaemon/supervisor/internal/registry"
	"github.com/fdaemon/supervisor/internal/settings"
	"github.com/fdaemon/supervisor/internal/theme"
	"github.com/fdaemon/supervisor/internal/views/confirm"
	"github.com/fdaemon/supervisor/internal/views/deviceselector"
	"github.com/fdaemon/supervisor/internal/views/detail"
	"github.com/fdaemon/supervisor/internal/views/logpane"
	"github.com/fdaemon/supervisor/internal/views/statusbar"
	"github.com/fdaemon/supervisor/internal/views/tabstrip"
	"github.com/fdaemon/supervisor/internal/watch"
)

const tickInterval = 125 * time.Millisecond

// engineMsg wraps one engine.Message pulled off the supervisor's message
// channel, so Update can tell "a new message arrived, go listen for the
// next one" apart from every other tea.Msg shape.
type engineMsg struct{ msg engine.Message }

// watchMsg wraps one debounced filesystem change event.
type watchMsg struct{ ev watch.Event }

type tickMsg struct{}

// Model is the root Bubble Tea model. It holds no session state of its
// own — everything observable lives in the Supervisor's engine.State,
// which Update mutates exclusively through Supervisor.Process.
type Model struct {
	sup    *engine.Supervisor
	keys   input.KeyMap
	ctx    context.Context
	cancel context.CancelFunc

	watcher *watch.Watcher

	width  int
	height int

	statusBar statusbar.Model
	tabStrip  tabstrip.Model
	logPane   logpane.Model
}

// New builds the root model. devices is the device/emulator discovery and
// launch collaborator; watchPaths are the directories the filesystem
// watcher observes, generally the project root.
func New(projectPath string, cfg settings.Settings, devices device.Lister, watchPaths []string) Model {
	ctx, cancel := context.WithCancel(context.Background())
	sup := engine.NewSupervisor(ctx, projectPath, cfg, devices)

	var watcher *watch.Watcher
	if len(watchPaths) > 0 {
		w, err := watch.New(watchPaths, time.Duration(cfg.Watcher.DebounceMs)*time.Millisecond)
		if err == nil {
			watcher = w
			go watcher.Run(ctx)
		}
	}

	return Model{
		sup:       sup,
		keys:      input.DefaultKeyMap(),
		ctx:       ctx,
		cancel:    cancel,
		watcher:   watcher,
		statusBar: statusbar.New(),
		tabStrip:  tabstrip.New(),
		logPane:   logpane.New(),
	}
}

// Init kicks off the background listeners: the engine's outbound
// message channel, the filesystem watcher (if any), the animation tick,
// and an initial device discovery so the selector has something to show
// the moment the operator opens it.
func (m Model) Init() tea.Cmd {
	m.sup.Dispatcher.Dispatch(m.ctx, m.sup.State.Registry, engine.DiscoverDevices{})
	cmds := []tea.Cmd{listenEngine(m.sup), tickCmd()}
	if m.watcher != nil {
		cmds = append(cmds, listenWatch(m.watcher))
	}
	return tea.Batch(cmds...)
}

func listenEngine(sup *engine.Supervisor) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-sup.Messages()
		if !ok {
			return nil
		}
		return engineMsg{msg: msg}
	}
}

func listenWatch(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-w.Events()
		if !ok {
			return nil
		}
		return watchMsg{ev: ev}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

// Update is the supervisor loop's message-pump step, folded into
// bubbletea's own event delivery: every inbound tea.Msg is either
// translated into one engine.Message and run through Supervisor.Process, or
// handled directly (window resize, re-arming a listener Cmd).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if emsg, ok := input.Route(m.sup.State.UIMode, m.keys, msg); ok {
			m.sup.Process(m.ctx, emsg)
			return m.afterProcess()
		}
		return m, nil

	case engineMsg:
		m.sup.Process(m.ctx, msg.msg)
		model, cmd := m.afterProcess()
		return model, tea.Batch(cmd, listenEngine(m.sup))

	case watchMsg:
		m.sup.Process(m.ctx, engine.FileChanged{Path: msg.ev.Path})
		model, cmd := m.afterProcess()
		return model, tea.Batch(cmd, listenWatch(m.watcher))

	case tickMsg:
		m.sup.Process(m.ctx, engine.Tick{})
		model, cmd := m.afterProcess()
		return model, tea.Batch(cmd, tickCmd())
	}

	return m, nil
}

// afterProcess checks whether the engine has moved into GlobalQuitting
// and, if so, starts the fleet shutdown coordinator before telling
// bubbletea to quit.
func (m Model) afterProcess() (tea.Model, tea.Cmd) {
	if m.sup.State.Phase == engine.GlobalQuitting {
		return m, tea.Sequence(m.shutdownCmd(), tea.Quit)
	}
	return m, nil
}

func (m Model) shutdownCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.sup.Shutdown(context.Background()); err != nil {
			return nil
		}
		m.cancel()
		return nil
	}
}

// View renders the full screen: tab strip, the selected session's log
// pane (or a welcome hint with none selected), and the status bar. When
// the current UIMode calls for an overlay, the overlay is rendered alone,
// centered, in place of that screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	state := m.sup.State
	m.tabStrip.Tabs = buildTabs(state)
	m.tabStrip.Width = m.width
	m.statusBar.Width = m.width
	m.statusBar.SessionCount = state.Registry.Len()
	m.statusBar.RunningCount = len(state.Registry.RunningIDs())
	if h, ok := state.Registry.SelectedHandle(); ok {
		m.statusBar.HasSelection = true
		m.statusBar.SelectedDevice = h.Session.Device
		m.statusBar.SelectedPhase = h.Session.Phase
	} else {
		m.statusBar.HasSelection = false
	}

	body := m.renderBody(state)

	header := m.tabStrip.View()
	footer := m.statusBar.View()
	help := theme.StyleDimmed.Render(helpLine())

	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, footer, help)

	switch state.UIMode {
	case engine.ModeDeviceSelector:
		overlay := deviceselector.Model{State: state.DeviceSelector}
		return overlay.View(m.width, m.height)
	case engine.ModeConfirmDialog:
		overlay := confirm.Model{RunningSessionCount: state.ConfirmDialog.RunningSessionCount}
		return overlay.View(m.width, m.height)
	case engine.ModeLogDetail:
		if entry, ok := selectedLogEntry(state); ok {
			overlay := detail.New(entry)
			return overlay.View(m.width, m.height)
		}
	}

	return screen
}

func (m Model) renderBody(state *engine.State) string {
	h, ok := state.Registry.SelectedHandle()
	if !ok {
		return theme.StyleDimmed.Render("\n  no sessions — press d to add a device\n")
	}
	m.logPane.Logs = h.Session.Logs
	m.logPane.View = h.Session.LogView
	m.logPane.Width = m.width
	m.logPane.Height = m.height - 4
	return m.logPane.Render()
}

func buildTabs(state *engine.State) []tabstrip.Tab {
	order := state.Registry.Order()
	tabs := make([]tabstrip.Tab, 0, len(order))
	selected := state.Registry.Selected()
	for i, id := range order {
		h, ok := state.Registry.Get(id)
		if !ok {
			continue
		}
		tabs = append(tabs, tabstrip.Tab{
			Index:    i + 1,
			Device:   h.Session.Device,
			Phase:    h.Session.Phase,
			Selected: id == selected,
		})
	}
	return tabs
}

func selectedLogEntry(state *engine.State) (registry.LogEntry, bool) {
	h, ok := state.Registry.Get(state.LogDetail.SessionID)
	if !ok {
		return registry.LogEntry{}, false
	}
	idx := state.LogDetail.EntryIndex
	if idx < 0 || idx >= len(h.Session.Logs) {
		return registry.LogEntry{}, false
	}
	return h.Session.Logs[idx], true
}

func helpLine() string {
	return " q/esc quit  ctrl+c force quit  r reload  R restart  x close  d/n device  tab cycle  1-9 select  enter detail  G bottom "
}
