package interview

import (
	"sync"

	"github.com/adotepet/adotepet/catalog"
)

// SessionStore holds one interview session per active user. Mutations on
// the same user are serialized by a per-entry lock; different users never
// block each other. This is the sole synchronization point for session
// state.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session *Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		entries: make(map[string]*sessionEntry),
	}
}

// CreateOrReplace starts a fresh Active session for the user, silently
// discarding any prior session. The cursor starts at zero with empty
// answers and photos.
//
// Replacement is serialized with in-flight updates: when the prior session
// is inside Update (e.g. the completion pipeline), the new session is only
// installed after that update finishes, so a trailing Remove cannot delete
// it.
func (s *SessionStore) CreateOrReplace(user UserSnapshot, animalType catalog.Type, animalID *int) *Session {
	session := newSession(user, animalType, animalID)
	newEntry := &sessionEntry{session: session}

	for {
		s.mu.Lock()
		existing, ok := s.entries[user.ID]
		if !ok {
			s.entries[user.ID] = newEntry
			s.mu.Unlock()
			return session.clone()
		}
		s.mu.Unlock()

		existing.mu.Lock()
		s.mu.Lock()
		if s.entries[user.ID] == existing {
			s.entries[user.ID] = newEntry
			s.mu.Unlock()
			existing.mu.Unlock()
			return session.clone()
		}
		// The entry changed while we waited for its lock; retry against
		// the current one.
		s.mu.Unlock()
		existing.mu.Unlock()
	}
}

// Get returns a snapshot of the user's session, or nil when absent.
// It has no side effects.
func (s *SessionStore) Get(userID string) *Session {
	s.mu.RLock()
	entry, ok := s.entries[userID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.session.clone()
}

// Update applies fn to the user's session under its per-user lock.
// Returns false without calling fn when the user has no session.
// fn may perform blocking work (e.g. the completion pipeline); only the
// affected user is locked for the duration.
func (s *SessionStore) Update(userID string, fn func(*Session) error) (bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[userID]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return true, fn(entry.session)
}

// Remove deletes the user's session. Removing an absent session is a no-op.
func (s *SessionStore) Remove(userID string) {
	s.mu.Lock()
	delete(s.entries, userID)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// clone returns a deep copy safe to hand outside the store lock.
func (s *Session) clone() *Session {
	copied := *s
	copied.Answers = append([]Answer(nil), s.Answers...)
	copied.PhotoPaths = append([]string(nil), s.PhotoPaths...)
	if s.AnimalID != nil {
		id := *s.AnimalID
		copied.AnimalID = &id
	}
	return &copied
}
