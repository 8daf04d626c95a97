package showroom

import "sync"

// FilterState holds the two-phase filter sets for one session. The
// draft is edited freely; only an explicit Apply copies it into the
// applied set that shapes the displayed list.
type FilterState struct {
	Draft   Filters `json:"draft"`
	Applied Filters `json:"applied"`
}

// StateManager keeps per-session filter state.
type StateManager struct {
	mu     sync.Mutex
	states map[string]*FilterState
}

// NewStateManager builds an empty manager.
func NewStateManager() *StateManager {
	return &StateManager{states: make(map[string]*FilterState)}
}

// State returns the session's filter state, creating defaults on first use.
func (m *StateManager) State(sid string) FilterState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.get(sid)
}

// SetDraft replaces the draft set without touching the applied set, so
// edits never re-filter the displayed list on their own.
func (m *StateManager) SetDraft(sid string, draft Filters) FilterState {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.get(sid)
	if draft.SortBy == "" {
		draft.SortBy = SortNewest
	}
	state.Draft = draft
	return *state
}

// Apply copies the draft into the applied set.
func (m *StateManager) Apply(sid string) FilterState {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.get(sid)
	state.Applied = state.Draft
	return *state
}

// Reset clears both sets simultaneously.
func (m *StateManager) Reset(sid string) FilterState {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.get(sid)
	state.Draft = DefaultFilters()
	state.Applied = DefaultFilters()
	return *state
}

// Drop removes the session's state entirely (logout path).
func (m *StateManager) Drop(sid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, sid)
}

func (m *StateManager) get(sid string) *FilterState {
	state, ok := m.states[sid]
	if !ok {
		state = &FilterState{Draft: DefaultFilters(), Applied: DefaultFilters()}
		m.states[sid] = state
	}
	return state
}
