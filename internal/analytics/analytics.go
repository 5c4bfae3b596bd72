// Package analytics fetches and formats the admin-facing aggregate stats.
package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/Amresh-01/Canteeno/internal/domain"
)

// Backend is the slice of the API client analytics needs.
type Backend interface {
	Analytics(ctx context.Context, bearer string) (domain.Stats, error)
}

// Fetch returns the aggregate order statistics for the admin dashboard.
func Fetch(ctx context.Context, backend Backend, bearer string) (domain.Stats, error) {
	stats, err := backend.Analytics(ctx, bearer)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("fetch analytics: %w", err)
	}
	return stats, nil
}

// Format renders the stats as plain text lines for the terminal dashboard.
func Format(stats domain.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Revenue: %s\n", stats.TotalRevenue.StringFixed(2))
	fmt.Fprintf(&b, "Total Orders:  %d\n", stats.TotalOrders)
	top := "N/A"
	if stats.TopItem != nil && stats.TopItem.Name != "" {
		top = stats.TopItem.Name
	}
	fmt.Fprintf(&b, "Top Item:      %s\n", top)
	if len(stats.OrdersPerDay) > 0 {
		b.WriteString("Orders per day:\n")
		for _, day := range stats.OrdersPerDay {
			fmt.Fprintf(&b, "  %-10s %d\n", day.Day, day.Count)
		}
	}
	fmt.Fprintf(&b, "Payments: cash %d / card %d / upi %d\n",
		stats.Payments.Cash, stats.Payments.Card, stats.Payments.UPI)
	return b.String()
}
