package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amresh-01/Canteeno/internal/api"
	"github.com/Amresh-01/Canteeno/internal/domain"
)

func newTestClient(t *testing.T) (*api.Client, *server) {
	t.Helper()
	srv := newServer(nil)
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return api.NewClient(ts.URL), srv
}

func TestListFoodServesMenu(t *testing.T) {
	client, _ := newTestClient(t)

	items, err := client.ListFood(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.Equal(t, "Samosa", items[0].Name)
}

func TestCartRequiresToken(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.FetchCart(context.Background(), "")
	assert.Error(t, err)
}

func TestCartRoundTrip(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.SetQuantity(ctx, "tok-1", "1", 3))
	require.NoError(t, client.SetQuantity(ctx, "tok-1", "2", 1))

	cart, err := client.FetchCart(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, 3, cart["1"].Quantity())
	assert.Equal(t, 1, cart["2"].Quantity())

	// Carts are scoped per session token.
	other, err := client.FetchCart(ctx, "tok-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSetQuantityZeroDeletesLine(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.SetQuantity(ctx, "tok-1", "1", 2))
	require.NoError(t, client.SetQuantity(ctx, "tok-1", "1", 0))

	cart, err := client.FetchCart(ctx, "tok-1")
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestDeleteCartLine(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.SetQuantity(ctx, "tok-1", "1", 5))
	require.NoError(t, client.DeleteCartLine(ctx, "tok-1", "1"))

	cart, err := client.FetchCart(ctx, "tok-1")
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestCreateOrderClearsCartAndListsForOwner(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.SetQuantity(ctx, "tok-1", "1", 2))
	err := client.CreateOrder(ctx, "tok-1", api.CreateOrderRequest{
		Items: []domain.OrderItem{
			{FoodID: "1", Name: "Samosa", Price: decimal.NewFromInt(15), Quantity: 2},
		},
		Amount:  decimal.NewFromInt(32),
		Address: "Canteen Pickup",
	})
	require.NoError(t, err)

	cart, err := client.FetchCart(ctx, "tok-1")
	require.NoError(t, err)
	assert.Empty(t, cart)

	orders, err := client.UserOrders(ctx, "tok-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.OrderStatusPending, orders[0].Status)
	assert.True(t, decimal.NewFromInt(32).Equal(orders[0].Amount))

	// Other sessions see nothing.
	orders, err = client.UserOrders(ctx, "tok-2")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestStatusUpdateFlow(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	err := client.CreateOrder(ctx, "tok-1", api.CreateOrderRequest{
		Items:   []domain.OrderItem{{Name: "Masala Dosa", Price: decimal.NewFromInt(60), Quantity: 1}},
		Amount:  decimal.NewFromInt(62),
		Address: "Canteen Pickup",
	})
	require.NoError(t, err)

	orders, err := client.AllOrders(ctx, "staff-token")
	require.NoError(t, err)
	require.Len(t, orders, 1)

	require.NoError(t, client.UpdateOrderStatus(ctx, "staff-token", orders[0].ID, domain.OrderStatusPreparing))

	orders, err = client.AllOrders(ctx, "staff-token")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, orders[0].Status)

	err = client.UpdateOrderStatus(ctx, "staff-token", "missing", domain.OrderStatusReady)
	assert.Error(t, err)
}

func TestStaffEndpointsRequireBearer(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.AllOrders(context.Background(), "")
	assert.Error(t, err)
}

func TestAnalyticsAggregatesOrders(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		err := client.CreateOrder(ctx, "tok-1", api.CreateOrderRequest{
			Items:   []domain.OrderItem{{Name: "Samosa", Price: decimal.NewFromInt(15), Quantity: 2}},
			Amount:  decimal.NewFromInt(32),
			Address: "Canteen Pickup",
		})
		require.NoError(t, err)
	}

	stats, err := client.Analytics(ctx, "staff-token")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.True(t, decimal.NewFromInt(64).Equal(stats.TotalRevenue))
	require.NotNil(t, stats.TopItem)
	assert.Equal(t, "Samosa", stats.TopItem.Name)
	require.Len(t, stats.OrdersPerDay, 1)
	assert.Equal(t, 2, stats.OrdersPerDay[0].Count)
}
