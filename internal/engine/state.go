package engine

import (
	"time"

	"github.com/fdaemon/supervisor/internal/child"
	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/registry"
	"github.com/fdaemon/supervisor/internal/sessionid"
	"github.com/fdaemon/supervisor/internal/settings"
	"github.com/fdaemon/supervisor/internal/tracker"
)

// GlobalPhase is the supervisor's own top-level lifecycle, distinct from
// any individual session's Phase.
type GlobalPhase int

const (
	GlobalRunning GlobalPhase = iota
	GlobalQuitting
)

// UIMode selects which overlay, if any, is active.
type UIMode int

const (
	ModeNormal UIMode = iota
	ModeDeviceSelector
	ModeConfirmDialog
	ModeLogDetail
)

// SelectorStatus tracks the device selector's async discovery state.
type SelectorStatus int

const (
	SelectorIdle SelectorStatus = iota
	SelectorLoading
	SelectorRefreshing
)

// DeviceSelectorState holds the device picker overlay's state.
type DeviceSelectorState struct {
	Devices   []device.Device
	Cursor    int
	Status    SelectorStatus
	HasCache  bool
	AnimFrame int
}

// ConfirmDialogState holds the quit-confirmation overlay's state.
type ConfirmDialogState struct {
	Active              bool
	RunningSessionCount int
}

// LogDetailState holds the log-line detail flyout's state: which
// session's log buffer and which entry within it, by index, to show in
// full (including its stack trace, if any).
type LogDetailState struct {
	Active     bool
	SessionID  sessionid.ID
	EntryIndex int
}

// LegacyMirror mirrors the single most-recently-attached session's
// process handle onto the pre-multi-session global scope (sessionid.Legacy),
// kept for backward-compatible single-session callers.
type LegacyMirror struct {
	Phase     registry.Phase
	StartTime time.Time
	AppID     string
	Sender    *child.Sender
	Tracker   *tracker.Tracker
}

// State is the entire application model.
type State struct {
	Registry       *registry.Registry
	UIMode         UIMode
	DeviceSelector DeviceSelectorState
	ConfirmDialog  ConfirmDialogState
	LogDetail      LogDetailState
	Legacy         LegacyMirror
	Phase          GlobalPhase
	Settings       settings.Settings
	ProjectPath    string
	GlobalLogs     []registry.LogEntry

	// Clock is injected so tests can control timestamps; nil uses time.Now.
	Clock func() time.Time
}

const maxGlobalLogs = 500

// NewState returns a freshly initialized State for projectPath under cfg.
func NewState(projectPath string, cfg settings.Settings) *State {
	return &State{
		Registry:    registry.NewRegistry(),
		Settings:    cfg,
		ProjectPath: projectPath,
	}
}

func (s *State) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
