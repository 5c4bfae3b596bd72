// Package menu holds the food catalog: a bundled fallback list replaced by
// the remote one when a fetch succeeds. The catalog is read-only to the cart
// subsystem.
package menu

import (
	"context"
	"sync"

	"github.com/Amresh-01/Canteeno/internal/domain"
	"github.com/Amresh-01/Canteeno/internal/notify"
	"golang.org/x/sync/singleflight"
)

// Backend is the slice of the API client the catalog needs.
type Backend interface {
	ListFood(ctx context.Context) ([]domain.MenuItem, error)
}

type Catalog struct {
	mu       sync.RWMutex
	items    []domain.MenuItem
	backend  Backend
	notifier notify.Notifier
	sfg      singleflight.Group // collapses concurrent refreshes
}

func NewCatalog(backend Backend, notifier notify.Notifier) *Catalog {
	return &Catalog{
		items:    Fallback(),
		backend:  backend,
		notifier: notifier,
	}
}

// Refresh fetches the remote catalog and replaces the local list on success.
// On failure the current list is kept and the user is notified.
func (c *Catalog) Refresh(ctx context.Context) {
	_, _, _ = c.sfg.Do("menu", func() (interface{}, error) {
		items, err := c.backend.ListFood(ctx)
		if err != nil {
			c.notifier.Error("Error! Products are not fetching..")
			return nil, err
		}

		c.mu.Lock()
		c.items = items
		c.mu.Unlock()
		return nil, nil
	})
}

// Items returns a snapshot of the catalog in menu order.
func (c *Catalog) Items() []domain.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// Lookup finds a menu item by identifier.
func (c *Catalog) Lookup(id string) (domain.MenuItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.MenuItem{}, false
}
