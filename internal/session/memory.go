package session

import (
	"context"
	"sync"
	"time"
)

// sweepInterval bounds how often Save scans for expired entries.
const sweepInterval = time.Minute

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore is the single-process store used when no Redis URL is configured.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, id)
		return nil, ErrNotFound
	}

	s := clone(e.session)
	return &s, nil
}

func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.entries[s.ID] = memoryEntry{
		session:   clone(*s),
		expiresAt: now.Add(m.ttl),
	}
	if now.Sub(m.lastSweep) >= sweepInterval {
		m.sweep(now)
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

// sweep drops expired entries; caller holds mu.
func (m *MemoryStore) sweep(now time.Time) {
	m.lastSweep = now
	for id, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, id)
		}
	}
}

func clone(s Session) Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	if s.Flash != nil {
		f := *s.Flash
		s.Flash = &f
	}
	return s
}
