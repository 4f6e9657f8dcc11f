package checkout

import (
	"sync"

	"petspa/internal/api"
	"petspa/internal/store"
)

// Flows keeps one checkout flow per session so the stage survives across
// requests of the same browser.
type Flows struct {
	api   *api.Client
	carts *store.Stores

	mu sync.Mutex
	m  map[string]*Flow
}

func NewFlows(client *api.Client, carts *store.Stores) *Flows {
	return &Flows{api: client, carts: carts, m: make(map[string]*Flow)}
}

func (f *Flows) ForSession(sid string) *Flow {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl, ok := f.m[sid]
	if !ok {
		fl = NewFlow(f.api, f.carts.ForSession(sid))
		f.m[sid] = fl
	}
	return fl
}

func (f *Flows) Drop(sid string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, sid)
}
