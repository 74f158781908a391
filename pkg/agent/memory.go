package agent

import "sync"

// maxEntriesPerKind bounds each ring buffer; eviction is FIFO.
const maxEntriesPerKind = 20

// Memory holds one session's bounded reasoning traces.
type Memory struct {
	mu           sync.Mutex
	thoughts     []string
	actions      []string
	observations []string
}

func (m *Memory) AddThought(s string) {
	m.mu.Lock()
	m.thoughts = push(m.thoughts, s)
	m.mu.Unlock()
}

func (m *Memory) AddAction(s string) {
	m.mu.Lock()
	m.actions = push(m.actions, s)
	m.mu.Unlock()
}

func (m *Memory) AddObservation(s string) {
	m.mu.Lock()
	m.observations = push(m.observations, s)
	m.mu.Unlock()
}

func push(buf []string, s string) []string {
	buf = append(buf, s)
	if len(buf) > maxEntriesPerKind {
		buf = buf[len(buf)-maxEntriesPerKind:]
	}
	return buf
}

// MemorySnapshot is a copy of the buffers for prompting or inspection.
type MemorySnapshot struct {
	Thoughts     []string `json:"thoughts"`
	Actions      []string `json:"actions"`
	Observations []string `json:"observations"`
}

func (m *Memory) Snapshot() MemorySnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MemorySnapshot{
		Thoughts:     append([]string(nil), m.thoughts...),
		Actions:      append([]string(nil), m.actions...),
		Observations: append([]string(nil), m.observations...),
	}
}

// MemoryStore keys agent memories by session id. Created on first agent
// invocation, cleared on explicit reset.
type MemoryStore struct {
	mu       sync.Mutex
	memories map[string]*Memory
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{memories: make(map[string]*Memory)}
}

func (s *MemoryStore) Get(sessionID string) *Memory {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.memories[sessionID]
	if !ok {
		m = &Memory{}
		s.memories[sessionID] = m
	}
	return m
}

func (s *MemoryStore) Clear(sessionID string) {
	s.mu.Lock()
	delete(s.memories, sessionID)
	s.mu.Unlock()
}
