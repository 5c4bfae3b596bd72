package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respondJSON(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(data))
}

func TestFetchCart_DecodesMixedEntryShapes(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/cart/get", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "tok-1", req.Header.Get("token"))
		respondJSON(t, w, map[string]any{
			"success":  true,
			"cartData": map[string]any{"a": 2, "b": map[string]any{"quantity": 3, "notes": "no onions"}},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	cart, err := NewClient(srv.URL).FetchCart(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, cart, 2)
	assert.Equal(t, 2, cart["a"].Quantity())
	assert.Equal(t, "no onions", cart["b"].Notes())
}

func TestSetQuantity_SendsNewAbsoluteQuantity(t *testing.T) {
	var got updateCartRequest
	r := chi.NewRouter()
	r.Put("/api/cart/updateCart", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		respondJSON(t, w, map[string]any{"success": true})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	err := NewClient(srv.URL).SetQuantity(context.Background(), "tok", "food-9", 4)
	require.NoError(t, err)
	assert.Equal(t, "food-9", got.FoodID)
	assert.Equal(t, 4, got.Quantity)
}

func TestSetQuantity_BackendReportedFailure(t *testing.T) {
	r := chi.NewRouter()
	r.Put("/api/cart/updateCart", func(w http.ResponseWriter, req *http.Request) {
		respondJSON(t, w, map[string]any{"success": false, "message": "item out of stock"})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	err := NewClient(srv.URL).SetQuantity(context.Background(), "tok", "food-9", 4)
	require.ErrorIs(t, err, ErrBackendRejected)
	assert.Contains(t, err.Error(), "item out of stock")
}

func TestDeleteCartLine_UsesPathParam(t *testing.T) {
	var gotID string
	r := chi.NewRouter()
	r.Delete("/api/cart/remove/{foodId}", func(w http.ResponseWriter, req *http.Request) {
		gotID = chi.URLParam(req, "foodId")
		respondJSON(t, w, map[string]any{"success": true})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).DeleteCartLine(context.Background(), "tok", "food-3"))
	assert.Equal(t, "food-3", gotID)
}

func TestAllOrders_BearerAuth(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/order/allOrders", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Bearer staff-tok", req.Header.Get("Authorization"))
		respondJSON(t, w, map[string]any{
			"success": true,
			"data": []map[string]any{
				{"_id": "o1", "tableNumber": 4, "status": "pending", "items": []any{}},
			},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	orders, err := NewClient(srv.URL).AllOrders(context.Background(), "staff-tok")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, 4, orders[0].TableNumber)
}

func TestDo_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).UserOrders(context.Background(), "bad-tok")
	require.ErrorIs(t, err, ErrBackendRejected)
}

func TestDo_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	client := NewClient(srv.URL)
	srv.Close() // every request now fails at the transport

	for i := 0; i < 6; i++ {
		err := client.SetQuantity(context.Background(), "tok", "x", 1)
		require.ErrorIs(t, err, ErrTransport)
	}

	// Breaker is open now; calls short-circuit without touching the network.
	err := client.SetQuantity(context.Background(), "tok", "x", 1)
	require.ErrorIs(t, err, ErrTransport)
}

func TestAnalytics_DecodesStats(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/order/analytics", func(w http.ResponseWriter, req *http.Request) {
		respondJSON(t, w, map[string]any{
			"success": true,
			"data": map[string]any{
				"totalRevenue": 1250,
				"totalOrders":  40,
				"topItem":      map[string]any{"name": "Masala Dosa"},
				"ordersPerDay": []map[string]any{{"day": "Mon", "count": 7}},
				"payments":     map[string]any{"cash": 10, "card": 12, "upi": 18},
			},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	stats, err := NewClient(srv.URL).Analytics(context.Background(), "staff-tok")
	require.NoError(t, err)
	assert.Equal(t, 40, stats.TotalOrders)
	assert.Equal(t, "1250", stats.TotalRevenue.String())
	require.NotNil(t, stats.TopItem)
	assert.Equal(t, "Masala Dosa", stats.TopItem.Name)
	assert.Equal(t, 18, stats.Payments.UPI)
}
