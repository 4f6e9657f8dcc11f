package store

import (
	"sync"

	"petspa/internal/api"
)

// Stores hands out one CartStore per session id, so concurrent requests from
// the same browser share a mirror while different sessions stay isolated.
type Stores struct {
	api *api.Client

	mu sync.Mutex
	m  map[string]*CartStore
}

func NewStores(client *api.Client) *Stores {
	return &Stores{api: client, m: make(map[string]*CartStore)}
}

func (s *Stores) ForSession(sid string) *CartStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs, ok := s.m[sid]
	if !ok {
		cs = NewCartStore(s.api)
		s.m[sid] = cs
	}
	return cs
}

// Drop discards a session's mirror, used on logout and on 401.
func (s *Stores) Drop(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sid)
}
