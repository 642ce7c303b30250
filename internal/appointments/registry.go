package appointments

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Registry hands out one Store per session. Least recently used stores are
// evicted; an evicted session simply refetches on its next page load.
type Registry struct {
	cache *lru.Cache[string, *Store]
}

func NewRegistry(size int) (*Registry, error) {
	cache, err := lru.New[string, *Store](size)
	if err != nil {
		return nil, err
	}
	return &Registry{cache: cache}, nil
}

// Get returns the session's store, creating it with newBackend on first use.
func (r *Registry) Get(sessionID string, newBackend func() Backend) *Store {
	if s, ok := r.cache.Get(sessionID); ok {
		return s
	}

	s := NewStore(newBackend())
	if prev, ok, _ := r.cache.PeekOrAdd(sessionID, s); ok {
		return prev
	}
	return s
}

func (r *Registry) Drop(sessionID string) {
	r.cache.Remove(sessionID)
}

func (r *Registry) Len() int {
	return r.cache.Len()
}
