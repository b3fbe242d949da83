package conversation

import (
	"github.com/google/uuid"
)

// Store abstracts the per-user state storage (in-memory cache in prod).
type Store interface {
	Save(state *State)
	Get(userID int64) (*State, bool)
	Delete(userID int64)
}

// Manager owns all conversation state transitions. A user has at most one
// active mode; entering a new flow supersedes the previous one.
//
// The manager itself is not safe for concurrent use on the same user:
// the router serializes events per user before touching it.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// State returns the user's conversation state, creating an Idle one on
// first interaction.
func (m *Manager) State(userID int64) *State {
	if s, ok := m.store.Get(userID); ok {
		return s
	}
	s := NewState(userID)
	m.store.Save(s)
	return s
}

func (m *Manager) Mode(userID int64) Mode {
	return m.State(userID).Mode
}

// SetMode enters a new mode, replacing any previous scratch.
func (m *Manager) SetMode(userID int64, mode Mode, scratch Scratch) {
	s := m.State(userID)
	s.Mode = mode
	s.Scratch = scratch
	m.store.Save(s)
}

// Clear resets the user to Idle and discards scratch and any pending
// image marker. Used for flow completion and explicit cancel.
func (m *Manager) Clear(userID int64) {
	s := m.State(userID)
	s.Mode = ModeIdle
	s.Scratch = nil
	s.PendingImageNote = nil
	m.store.Save(s)
}

func (m *Manager) SetPendingImageNote(userID int64, noteID uuid.UUID) {
	s := m.State(userID)
	s.PendingImageNote = &noteID
	m.store.Save(s)
}

// TakePendingImageNote consumes the attach-image marker, if set.
func (m *Manager) TakePendingImageNote(userID int64) (uuid.UUID, bool) {
	s := m.State(userID)
	if s.PendingImageNote == nil {
		return uuid.Nil, false
	}
	id := *s.PendingImageNote
	s.PendingImageNote = nil
	m.store.Save(s)
	return id, true
}
