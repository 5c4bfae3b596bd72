package cart

import (
	"github.com/Amresh-01/Canteeno/internal/domain"
	"github.com/shopspring/decimal"
)

// PriceLookup resolves an item identifier against the menu catalog.
type PriceLookup interface {
	Lookup(id string) (domain.MenuItem, bool)
}

// TotalAmount sums quantity x price over all entries with quantity > 0.
// Entries whose identifier has no matching menu item are skipped.
func TotalAmount(items map[string]domain.CartEntry, catalog PriceLookup) decimal.Decimal {
	total := decimal.Zero
	for id, entry := range items {
		quantity := entry.Quantity()
		if quantity <= 0 {
			continue
		}
		item, ok := catalog.Lookup(id)
		if !ok {
			continue
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(quantity))))
	}
	return total
}

// TotalItemCount sums quantities across all entries.
func TotalItemCount(items map[string]domain.CartEntry) int {
	total := 0
	for _, entry := range items {
		total += entry.Quantity()
	}
	return total
}

// TotalAmount recomputes the cart's monetary total from the current state.
func (s *Store) TotalAmount(catalog PriceLookup) decimal.Decimal {
	return TotalAmount(s.Items(), catalog)
}

// TotalItemCount recomputes the cart's item count from the current state.
func (s *Store) TotalItemCount() int {
	return TotalItemCount(s.Items())
}
