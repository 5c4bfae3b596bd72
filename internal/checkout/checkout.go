// Package checkout assembles the outgoing order from the cart and submits it.
package checkout

import (
	"context"
	"errors"

	"github.com/Amresh-01/Canteeno/internal/api"
	"github.com/Amresh-01/Canteeno/internal/domain"
	"github.com/Amresh-01/Canteeno/internal/loyalty"
	"github.com/Amresh-01/Canteeno/internal/notify"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrNoSession = errors.New("no session token, login required")
	ErrEmptyCart = errors.New("cart is empty, nothing to order")
)

// PickupAddress is the static address for canteen orders.
const PickupAddress = "Canteen Pickup"

// PlatformFee is added to every order's amount.
var PlatformFee = decimal.NewFromInt(2)

// Backend is the slice of the API client checkout needs.
type Backend interface {
	UserOrders(ctx context.Context, token string) ([]domain.Order, error)
	CreateOrder(ctx context.Context, token string, req api.CreateOrderRequest) error
}

// Cart supplies the current cart snapshot.
type Cart interface {
	Items() map[string]domain.CartEntry
}

// Catalog supplies the menu in display order.
type Catalog interface {
	Items() []domain.MenuItem
}

type Service struct {
	backend  Backend
	cart     Cart
	catalog  Catalog
	notifier notify.Notifier
}

func NewService(backend Backend, cart Cart, catalog Catalog, notifier notify.Notifier) *Service {
	return &Service{
		backend:  backend,
		cart:     cart,
		catalog:  catalog,
		notifier: notifier,
	}
}

// PlaceOrder builds the order payload from the cart, applies the loyalty
// reward when due, adds the platform fee and submits the order. The cart
// itself is left untouched.
func (s *Service) PlaceOrder(ctx context.Context, token string) error {
	if token == "" {
		s.notifier.Error("Please Login first")
		return ErrNoSession
	}

	items := s.buildItems()
	if len(items) == 0 {
		s.notifier.Error("Please Add Items to Cart")
		return ErrEmptyCart
	}

	if loyalty.Eligible(s.orderCount(ctx, token)) {
		items = loyalty.Augment(items)
		s.notifier.Success("Free complementary item added to your order!")
	}

	amount := PlatformFee
	for _, item := range items {
		amount = amount.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	req := api.CreateOrderRequest{
		Items:   items,
		Amount:  amount,
		Address: PickupAddress,
	}
	if err := s.backend.CreateOrder(ctx, token, req); err != nil {
		s.notifier.Error("Failed to place order. Please try again.")
		return err
	}

	s.notifier.Success("Order placed successfully!")
	return nil
}

// buildItems walks the catalog in menu order, taking quantity and notes from
// the cart. Cart entries without a catalog match are skipped.
func (s *Service) buildItems() []domain.OrderItem {
	cartItems := s.cart.Items()

	var items []domain.OrderItem
	for _, food := range s.catalog.Items() {
		entry, ok := cartItems[food.ID]
		if !ok || entry.Quantity() <= 0 {
			continue
		}
		items = append(items, domain.OrderItem{
			FoodID:   food.ID,
			Name:     food.Name,
			Price:    food.Price,
			Quantity: entry.Quantity(),
			Notes:    entry.Notes(),
		})
	}
	return items
}

// orderCount fetches the number of prior orders for the session. A fetch
// failure counts as zero so checkout can proceed without the reward.
func (s *Service) orderCount(ctx context.Context, token string) int {
	orders, err := s.backend.UserOrders(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("fetching order count for loyalty tracking failed")
		return 0
	}
	return len(orders)
}
