package registry

import (
	"errors"

	"github.com/fdaemon/supervisor/internal/device"
	"github.com/fdaemon/supervisor/internal/sessionid"
)

// MaxSessions bounds the number of concurrent sessions a registry holds.
const MaxSessions = 9

var (
	// ErrMaxSessions is returned by Create when the registry is already at
	// MaxSessions.
	ErrMaxSessions = errors.New("registry: max sessions reached")
	// ErrDeviceInUse is returned by Create when dev already has a session.
	ErrDeviceInUse = errors.New("registry: device already has a session")
)

// Registry holds the fleet of concurrent sessions in insertion order,
// which doubles as tab order, plus which one is currently selected.
type Registry struct {
	order    []sessionid.ID
	handles  map[sessionid.ID]*SessionHandle
	selected sessionid.ID
	nextID   sessionid.ID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[sessionid.ID]*SessionHandle)}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int { return len(r.order) }

// IsEmpty reports whether the registry holds no sessions.
func (r *Registry) IsEmpty() bool { return len(r.order) == 0 }

// FindByDeviceID returns the session bound to the device with the given
// id, if any.
func (r *Registry) FindByDeviceID(deviceID string) (sessionid.ID, bool) {
	for _, id := range r.order {
		if r.handles[id].Session.Device.ID == deviceID {
			return id, true
		}
	}
	return sessionid.Legacy, false
}

// Create allocates a new session for dev and appends it to tab order,
// selecting it if nothing was selected before. It rejects a duplicate
// device and a registry already at MaxSessions.
func (r *Registry) Create(dev device.Device, maxLogs int) (sessionid.ID, error) {
	if len(r.order) >= MaxSessions {
		return sessionid.Legacy, ErrMaxSessions
	}
	if _, ok := r.FindByDeviceID(dev.ID); ok {
		return sessionid.Legacy, ErrDeviceInUse
	}

	r.nextID++
	id := r.nextID
	r.handles[id] = NewHandle(dev, maxLogs)
	r.order = append(r.order, id)
	if r.selected == sessionid.Legacy {
		r.selected = id
	}
	return id, nil
}

// Get returns the handle for id.
func (r *Registry) Get(id sessionid.ID) (*SessionHandle, bool) {
	h, ok := r.handles[id]
	return h, ok
}

// Remove deletes the session with id, if present, and re-selects the
// nearest surviving session by insertion order (preferring the next one,
// falling back to the previous) when the removed session was selected.
func (r *Registry) Remove(id sessionid.ID) {
	if _, ok := r.handles[id]; !ok {
		return
	}
	delete(r.handles, id)

	idx := -1
	for i, oid := range r.order {
		if oid == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	r.order = append(r.order[:idx], r.order[idx+1:]...)

	if r.selected != id {
		return
	}
	r.selected = sessionid.Legacy
	if len(r.order) == 0 {
		return
	}
	if idx < len(r.order) {
		r.selected = r.order[idx]
	} else {
		r.selected = r.order[idx-1]
	}
}

// Select makes id the selected session, if it exists.
func (r *Registry) Select(id sessionid.ID) bool {
	if _, ok := r.handles[id]; !ok {
		return false
	}
	r.selected = id
	return true
}

// Selected returns the currently selected session id, or sessionid.Legacy
// if none is selected.
func (r *Registry) Selected() sessionid.ID { return r.selected }

// SelectedHandle returns the handle for the selected session.
func (r *Registry) SelectedHandle() (*SessionHandle, bool) {
	if r.selected == sessionid.Legacy {
		return nil, false
	}
	return r.Get(r.selected)
}

// Order returns session ids in tab order. The returned slice is a copy.
func (r *Registry) Order() []sessionid.ID {
	out := make([]sessionid.ID, len(r.order))
	copy(out, r.order)
	return out
}

// ByIndex returns the session at 1-based tab position k.
func (r *Registry) ByIndex(k int) (sessionid.ID, bool) {
	if k < 1 || k > len(r.order) {
		return sessionid.Legacy, false
	}
	return r.order[k-1], true
}

// RunningIDs returns the ids of sessions with a live attached app, in tab
// order — used to decide whether a quit needs confirmation.
func (r *Registry) RunningIDs() []sessionid.ID {
	var out []sessionid.ID
	for _, id := range r.order {
		if r.handles[id].Running() {
			out = append(out, id)
		}
	}
	return out
}

// CycleIndex returns the tab position delta steps away from cur, wrapping
// around, for a registry of length n. Exported for testing the pure
// arithmetic independently of Registry state.
func CycleIndex(cur, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((cur+delta)%n + n) % n
}
