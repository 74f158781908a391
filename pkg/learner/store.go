package learner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ProfileStore keys profiles by session id. Mutation is serialized per
// session, so concurrent turns for different sessions never block on each
// other. The outer map lock is held only for entry lookup.
type ProfileStore struct {
	mu      sync.RWMutex
	entries map[string]*profileEntry
	path    string
}

type profileEntry struct {
	mu      sync.Mutex
	profile *Profile
}

// NewProfileStore loads any persisted snapshot at path. A missing or
// corrupt file is not an error; the store starts empty.
func NewProfileStore(path string) *ProfileStore {
	s := &ProfileStore{
		entries: make(map[string]*profileEntry),
		path:    path,
	}
	s.load()
	return s
}

func (s *ProfileStore) entry(sessionID string) *profileEntry {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[sessionID]; ok {
		return e
	}
	e = &profileEntry{profile: NewProfile(sessionID)}
	s.entries[sessionID] = e
	return e
}

// With runs fn with exclusive access to the session's profile, creating it
// on first touch. The lock covers only the in-memory update.
func (s *ProfileStore) With(sessionID string, fn func(*Profile)) {
	e := s.entry(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.profile)
}

// Snapshot returns a deep copy of the session's profile, or nil when the
// session has never been seen.
func (s *ProfileStore) Snapshot(sessionID string) *Profile {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	cp := *e.profile
	cp.InteractionHistory = append([]InteractionRecord(nil), e.profile.InteractionHistory...)
	if e.profile.Questionnaire != nil {
		q := *e.profile.Questionnaire
		cp.Questionnaire = &q
	}
	return &cp
}

// Reset discards the session's profile.
func (s *ProfileStore) Reset(sessionID string) {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
}

// Flush persists all profiles as a single JSON map keyed by session id.
func (s *ProfileStore) Flush() error {
	s.mu.RLock()
	snapshot := make(map[string]*Profile, len(s.entries))
	for id, e := range s.entries {
		e.mu.Lock()
		cp := *e.profile
		snapshot[id] = &cp
		e.mu.Unlock()
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write profiles: %w", err)
	}
	return nil
}

func (s *ProfileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var snapshot map[string]*Profile
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return
	}
	for id, p := range snapshot {
		if p == nil {
			continue
		}
		p.ID = id
		s.entries[id] = &profileEntry{profile: p}
	}
}
