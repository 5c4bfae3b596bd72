// Package kitchen keeps the staff-facing order list in sync: one full fetch
// merged with incremental push events through a single reducer, plus manual
// status advances that persist to the backend and trigger a resync.
package kitchen

import (
	"context"
	"errors"
	"sync"

	"github.com/Amresh-01/Canteeno/internal/domain"
	"github.com/Amresh-01/Canteeno/internal/events"
	"github.com/Amresh-01/Canteeno/internal/notify"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownOrder      = errors.New("order not on the board")
	ErrIllegalTransition = errors.New("illegal order status transition")
)

// Backend is the slice of the API client the board needs.
type Backend interface {
	AllOrders(ctx context.Context, bearer string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, bearer, orderID string, status domain.OrderStatus) error
}

// Board owns the in-memory order list, most-recent-first.
type Board struct {
	mu     sync.RWMutex
	orders []domain.Order

	bearer   string
	backend  Backend
	notifier notify.Notifier
}

func NewBoard(backend Backend, notifier notify.Notifier, bearer string) *Board {
	return &Board{
		backend:  backend,
		notifier: notifier,
		bearer:   bearer,
	}
}

// Load fetches the full order list and replaces local state. On failure the
// already-held list is kept.
func (b *Board) Load(ctx context.Context) error {
	orders, err := b.backend.AllOrders(ctx, b.bearer)
	if err != nil {
		b.notifier.Error("Failed to fetch orders")
		return err
	}

	b.mu.Lock()
	b.orders = orders
	b.mu.Unlock()
	return nil
}

// Apply folds one push event into the list. A new-order event for a known id
// and a status event for an unknown id are both no-ops, which makes replays
// and races with resyncs harmless.
func (b *Board) Apply(ev events.OrderEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch ev.Type {
	case events.EventNewOrder:
		if b.indexOf(ev.Order.ID) >= 0 {
			return
		}
		b.orders = append([]domain.Order{ev.Order}, b.orders...)
	case events.EventStatusUpdated:
		if i := b.indexOf(ev.Order.ID); i >= 0 {
			b.orders[i] = ev.Order
		}
	}
}

// Run consumes push events until the channel closes or ctx is cancelled.
func (b *Board) Run(ctx context.Context, in <-chan events.OrderEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-in:
			if !ok {
				return
			}
			b.Apply(ev)
		}
	}
}

// Orders returns a snapshot of the full list, delivered orders included.
func (b *Board) Orders() []domain.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Order, len(b.orders))
	copy(out, b.orders)
	return out
}

// Working returns the staff working view: every order that is not terminal.
func (b *Board) Working() []domain.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Order, 0, len(b.orders))
	for _, order := range b.orders {
		if !order.Status.IsTerminal() {
			out = append(out, order)
		}
	}
	return out
}

// Advance persists a new status for an order and resyncs the whole list
// rather than trusting the optimistic local transition. Requests that do not
// move the order forward are rejected without touching stored state.
func (b *Board) Advance(ctx context.Context, orderID string, target domain.OrderStatus) error {
	b.mu.RLock()
	i := b.indexOf(orderID)
	var current domain.OrderStatus
	if i >= 0 {
		current = b.orders[i].Status
	}
	b.mu.RUnlock()

	if i < 0 {
		return ErrUnknownOrder
	}
	if !current.CanTransitionTo(target) {
		return ErrIllegalTransition
	}

	if err := b.backend.UpdateOrderStatus(ctx, b.bearer, orderID, target); err != nil {
		b.notifier.Error("Failed to update order status")
		return err
	}

	// Resync to pick up changes that interleaved with the update.
	if err := b.Load(ctx); err != nil {
		log.Warn().Err(err).Str("order_id", orderID).Msg("resync after status update failed")
	}
	return nil
}

// indexOf is called with b.mu held.
func (b *Board) indexOf(orderID string) int {
	for i, order := range b.orders {
		if order.ID == orderID {
			return i
		}
	}
	return -1
}
