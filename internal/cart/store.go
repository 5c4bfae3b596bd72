// Package cart owns the client-side cart: item id -> entry, mutated
// optimistically and reconciled with the backend. Backend calls are
// fire-and-forget; a failure rolls back exactly the delta that was applied
// and surfaces as a transient notice, never as an error to the caller.
package cart

import (
	"context"
	"sync"
	"time"

	"github.com/Amresh-01/Canteeno/internal/domain"
	"github.com/Amresh-01/Canteeno/internal/notify"
	"github.com/google/uuid"
)

// requestTimeout bounds each background reconciliation call.
const requestTimeout = 10 * time.Second

// CompensationPolicy controls which failed mutations roll back locally.
type CompensationPolicy int

const (
	// CompensateAll rolls back both failed increments and failed decrements.
	CompensateAll CompensationPolicy = iota
	// CompensateAdds rolls back failed increments only, letting decrements
	// drift on error. This reproduces the storefront's historical behavior.
	CompensateAdds
)

// Backend is the slice of the API client the store needs.
type Backend interface {
	FetchCart(ctx context.Context, token string) (domain.Cart, error)
	SetQuantity(ctx context.Context, token, foodID string, quantity int) error
	DeleteCartLine(ctx context.Context, token, foodID string) error
}

type Store struct {
	mu       sync.RWMutex
	items    map[string]domain.CartEntry
	inflight map[string]uuid.UUID // itemID -> latest issued request token

	token    string
	backend  Backend
	notifier notify.Notifier
	policy   CompensationPolicy

	wg sync.WaitGroup
}

func NewStore(backend Backend, notifier notify.Notifier, policy CompensationPolicy) *Store {
	return &Store{
		items:    make(map[string]domain.CartEntry),
		inflight: make(map[string]uuid.UUID),
		backend:  backend,
		notifier: notifier,
		policy:   policy,
	}
}

// SetToken attaches the session token used for backend reconciliation.
// Without a token all mutations stay local.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Add increments an item's quantity by one, creating the entry if absent.
// Explicitly supplied non-empty notes override stored notes, otherwise the
// stored notes are kept.
func (s *Store) Add(ctx context.Context, itemID, notes string) {
	s.mu.Lock()
	prev := s.items[itemID]
	newQuantity := prev.Quantity() + 1
	merged := notes
	if merged == "" {
		merged = prev.Notes()
	}
	s.items[itemID] = domain.NewCartEntry(newQuantity, merged)

	token := s.token
	if token == "" {
		s.mu.Unlock()
		return
	}
	reqID := uuid.New()
	s.inflight[itemID] = reqID
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.setQuantity(token, itemID, newQuantity); err != nil {
			s.notifier.Error("Failed to add item to cart")
			s.rollbackIncrement(reqID, itemID)
			return
		}
		s.settle(reqID, itemID)
		s.notifier.Success("Item added to cart")
	}()
}

// Remove decrements an item's quantity by one, deleting the entry when it
// reaches zero. Removing an absent item is a no-op.
func (s *Store) Remove(ctx context.Context, itemID string) {
	s.mu.Lock()
	prev, ok := s.items[itemID]
	if !ok {
		s.mu.Unlock()
		return
	}
	newQuantity := prev.Quantity() - 1
	if newQuantity <= 0 {
		newQuantity = 0
		delete(s.items, itemID)
	} else {
		s.items[itemID] = entryWithQuantity(prev, newQuantity)
	}

	token := s.token
	if token == "" {
		s.mu.Unlock()
		return
	}
	reqID := uuid.New()
	s.inflight[itemID] = reqID
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.setQuantity(token, itemID, newQuantity); err != nil {
			s.notifier.Error("Failed to remove item from cart")
			if s.policy == CompensateAll {
				s.rollbackDecrement(reqID, itemID, prev)
			} else {
				s.settle(reqID, itemID)
			}
			return
		}
		s.settle(reqID, itemID)
		s.notifier.Success("Item removed from cart")
	}()
}

// RemoveCompletely deletes a cart line on the backend and, only on confirmed
// success, locally. Requires a session token.
func (s *Store) RemoveCompletely(ctx context.Context, itemID string) {
	s.mu.Lock()
	token := s.token
	if token == "" {
		s.mu.Unlock()
		s.notifier.Error("Please login first")
		return
	}
	reqID := uuid.New()
	s.inflight[itemID] = reqID
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		cctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := s.backend.DeleteCartLine(cctx, token, itemID); err != nil {
			s.settle(reqID, itemID)
			s.notifier.Error("Failed to remove item")
			return
		}

		s.mu.Lock()
		if s.inflight[itemID] == reqID {
			delete(s.inflight, itemID)
			delete(s.items, itemID)
		}
		s.mu.Unlock()
		s.notifier.Success("Item removed completely")
	}()
}

// Load fetches the authoritative cart for the session and replaces local
// state wholesale. Any failure resets to an empty cart.
func (s *Store) Load(ctx context.Context, token string) {
	s.SetToken(token)

	fetched, err := s.backend.FetchCart(ctx, token)

	s.mu.Lock()
	// Wholesale replacement supersedes every outstanding request.
	s.inflight = make(map[string]uuid.UUID)
	if err != nil {
		s.items = make(map[string]domain.CartEntry)
		s.mu.Unlock()
		s.notifier.Error("Failed to load cart data")
		return
	}
	items := make(map[string]domain.CartEntry, len(fetched))
	for id, entry := range fetched {
		items[id] = entry
	}
	s.items = items
	s.mu.Unlock()
}

// Entry returns the stored entry for an item, if present.
func (s *Store) Entry(itemID string) (domain.CartEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.items[itemID]
	return entry, ok
}

// Quantity returns an item's quantity, 0 if absent.
func (s *Store) Quantity(itemID string) int {
	entry, _ := s.Entry(itemID)
	return entry.Quantity()
}

// Notes returns an item's notes, "" if absent.
func (s *Store) Notes(itemID string) string {
	entry, _ := s.Entry(itemID)
	return entry.Notes()
}

// Items returns a snapshot of the cart.
func (s *Store) Items() map[string]domain.CartEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.CartEntry, len(s.items))
	for id, entry := range s.items {
		out[id] = entry
	}
	return out
}

// Wait blocks until every in-flight backend call has settled.
func (s *Store) Wait() {
	s.wg.Wait()
}

func (s *Store) setQuantity(token, itemID string, quantity int) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	return s.backend.SetQuantity(ctx, token, itemID, quantity)
}

// settle clears the in-flight token if this request is still the latest.
func (s *Store) settle(reqID uuid.UUID, itemID string) {
	s.mu.Lock()
	if s.inflight[itemID] == reqID {
		delete(s.inflight, itemID)
	}
	s.mu.Unlock()
}

// rollbackIncrement undoes exactly the +1 a failed Add applied, unless a
// newer request for the item has been issued since.
func (s *Store) rollbackIncrement(reqID uuid.UUID, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[itemID] != reqID {
		return
	}
	delete(s.inflight, itemID)

	cur, ok := s.items[itemID]
	if !ok {
		return
	}
	if cur.Quantity() <= 1 {
		delete(s.items, itemID)
		return
	}
	s.items[itemID] = entryWithQuantity(cur, cur.Quantity()-1)
}

// rollbackDecrement undoes exactly the -1 a failed Remove applied,
// reinstating the entry when the decrement had deleted it.
func (s *Store) rollbackDecrement(reqID uuid.UUID, itemID string, prev domain.CartEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[itemID] != reqID {
		return
	}
	delete(s.inflight, itemID)

	cur, ok := s.items[itemID]
	if !ok {
		s.items[itemID] = entryWithQuantity(prev, 1)
		return
	}
	s.items[itemID] = entryWithQuantity(cur, cur.Quantity()+1)
}

// entryWithQuantity keeps the entry's wire shape and notes while changing
// its quantity.
func entryWithQuantity(prev domain.CartEntry, quantity int) domain.CartEntry {
	if prev.IsLegacy() {
		return domain.NewLegacyCartEntry(quantity)
	}
	return domain.NewCartEntry(quantity, prev.Notes())
}
