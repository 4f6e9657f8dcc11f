// Package store keeps a per-session mirror of the server-side cart. The mirror
// is never trusted for persistence: every mutation calls the API and then
// reloads the full cart, so displayed pricing always matches what the server
// computed. This trades a round-trip for simplicity over optimistic updates.
package store

import (
	"context"
	"sync"

	"petspa/internal/api"
	"petspa/internal/domain"
)

type CartStore struct {
	api *api.Client

	mu      sync.Mutex
	items   []domain.CartItem
	busy    bool
	lastErr string
}

func NewCartStore(client *api.Client) *CartStore {
	return &CartStore{api: client}
}

// Reload refreshes the mirror from the server. A failure empties the mirror,
// records the message and propagates: callers decide whether to degrade the
// page or tear the session down on a 401.
func (s *CartStore) Reload(ctx context.Context, token string) error {
	s.begin()
	defer s.end()

	cart, err := s.api.FetchCart(ctx, token)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.items = nil
		s.lastErr = err.Error()
		return err
	}
	s.items = cart.Items
	s.lastErr = ""
	return nil
}

// AddItem calls the add endpoint and then reloads the whole cart; there is no
// optimistic merge, so the mirror only ever shows server-confirmed state.
func (s *CartStore) AddItem(ctx context.Context, token, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	s.begin()
	if err := s.api.AddToCart(ctx, token, productID, qty); err != nil {
		s.fail(err)
		return err
	}
	s.end()
	return s.Reload(ctx, token)
}

func (s *CartStore) RemoveItem(ctx context.Context, token, productID string) error {
	s.begin()
	if err := s.api.RemoveFromCart(ctx, token, productID); err != nil {
		s.fail(err)
		return err
	}
	s.end()
	return s.Reload(ctx, token)
}

// UpdateQuantity never stores a non-positive quantity: zero and below delegate
// to RemoveItem.
func (s *CartStore) UpdateQuantity(ctx context.Context, token, productID string, qty int) error {
	if qty <= 0 {
		return s.RemoveItem(ctx, token, productID)
	}
	s.begin()
	if err := s.api.UpdateCartItem(ctx, token, productID, qty); err != nil {
		s.fail(err)
		return err
	}
	s.end()
	return s.Reload(ctx, token)
}

// Clear empties the server cart. On success the mirror is emptied directly;
// emptiness is certain, so no reload round-trip is needed.
func (s *CartStore) Clear(ctx context.Context, token string) error {
	s.begin()
	defer s.end()
	if err := s.api.ClearCart(ctx, token); err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	s.items = nil
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Items returns a copy of the last successfully loaded server state.
func (s *CartStore) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total sums the server-computed subtotals; no network call.
func (s *CartStore) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, it := range s.items {
		total += it.Subtotal
	}
	return total
}

// ItemCount sums quantities across the mirror; no network call.
func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Err returns the message recorded by the most recent failed operation, empty
// after a success.
func (s *CartStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *CartStore) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *CartStore) begin() {
	s.mu.Lock()
	s.busy = true
	s.mu.Unlock()
}

func (s *CartStore) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *CartStore) fail(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.busy = false
	s.mu.Unlock()
}
