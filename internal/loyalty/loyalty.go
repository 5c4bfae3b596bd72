// Package loyalty derives the free-item reward from the rolling order count.
// Every sixth order carries a complementary line mirroring the cheapest item.
package loyalty

import (
	"github.com/Amresh-01/Canteeno/internal/domain"
	"github.com/shopspring/decimal"
)

// RewardInterval is the order cycle length: the 6th, 12th, ... order is free-item eligible.
const RewardInterval = 6

// RewardSuffix marks the complementary line item's name.
const RewardSuffix = " (FREE - Foodie Reward!)"

// Eligible reports whether the next order earns a complementary item, given
// the count of prior completed orders.
func Eligible(orderCount int) bool {
	if orderCount < 0 {
		return false
	}
	return orderCount%RewardInterval == RewardInterval-1
}

// Augment returns the order items with one reward line appended: quantity 1,
// price 0, mirroring the minimum-price line (first minimal element on ties).
// The input slice is not modified. Empty input is returned as is.
func Augment(items []domain.OrderItem) []domain.OrderItem {
	if len(items) == 0 {
		return items
	}

	cheapest := items[0]
	for _, item := range items[1:] {
		if item.Price.LessThan(cheapest.Price) {
			cheapest = item
		}
	}

	reward := cheapest
	reward.Name += RewardSuffix
	reward.Quantity = 1
	reward.Price = decimal.Zero

	out := make([]domain.OrderItem, 0, len(items)+1)
	out = append(out, items...)
	return append(out, reward)
}
