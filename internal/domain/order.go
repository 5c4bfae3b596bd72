package domain

import (
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
)

// statusRank orders the lifecycle. Transitions may only move to a strictly
// higher rank; delivered is terminal.
var statusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusPreparing: 1,
	OrderStatusReady:     2,
	OrderStatusDelivered: 3,
}

// IsValid reports whether s is one of the known lifecycle statuses.
func (s OrderStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether an order in status s may move to target.
// Backward moves and unknown statuses are rejected.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[target]
	if !ok {
		return false
	}
	return to > from
}

// OrderItem is one line of an order. FoodID/Name/Price come from the menu at
// checkout time; Food is populated by the backend when it returns orders with
// the menu reference resolved.
type OrderItem struct {
	FoodID   string          `json:"foodId,omitempty"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Notes    string          `json:"notes,omitempty"`
	Food     *MenuItem       `json:"food,omitempty"`
}

// Order is the client's cached copy of a backend-owned order.
type Order struct {
	ID          string          `json:"_id"`
	TableNumber int             `json:"tableNumber"`
	Items       []OrderItem     `json:"items"`
	Status      OrderStatus     `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Address     string          `json:"address"`
}
