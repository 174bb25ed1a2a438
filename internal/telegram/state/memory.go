package state

import "sync"

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryManager constructs the in-memory Manager implementation. Sessions
// are created implicitly on first write and live until Clear; a process
// restart loses them, which only forgets unfinished forms, never stored leads.
func NewMemoryManager() Manager {
	return &memoryManager{
		sessions: make(map[int64]*Session),
	}
}

// GetState returns the current state of a user, or StateIdle if no session exists.
func (m *memoryManager) GetState(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess.State
	}
	return StateIdle
}

// SetState sets the conversation state for a user, creating the session if needed.
func (m *memoryManager) SetState(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		sess = &Session{State: StateIdle}
		m.sessions[userID] = sess
	}
	sess.State = st
}

// Draft returns a copy of the user's accumulated form fields.
func (m *memoryManager) Draft(userID int64) LeadDraft {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess.Draft
	}
	return LeadDraft{}
}

// UpdateDraft mutates the user's draft under the session lock.
func (m *memoryManager) UpdateDraft(userID int64, fn func(*LeadDraft)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		sess = &Session{State: StateIdle}
		m.sessions[userID] = sess
	}
	fn(&sess.Draft)
}

// InProgress reports whether the user currently has an active conversation.
func (m *memoryManager) InProgress(userID int64) bool {
	return m.GetState(userID) != StateIdle
}

// Clear removes the session entirely, resetting the user to idle with an empty draft.
func (m *memoryManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
