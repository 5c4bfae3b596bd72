package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Amresh-01/Canteeno/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Items   []domain.OrderItem `json:"items"`
	Amount  decimal.Decimal    `json:"amount"`
	Address string             `json:"address"`
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// UserOrders fetches the caller's past orders.
func (c *Client) UserOrders(ctx context.Context, token string) ([]domain.Order, error) {
	env, err := c.doChecked(ctx, http.MethodPost, "/api/order/userorders", authSession, token, struct{}{})
	if err != nil {
		return nil, err
	}
	return decodeOrders(env.Data)
}

// CreateOrder submits a new order for the session.
func (c *Client) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) error {
	_, err := c.doChecked(ctx, http.MethodPost, "/api/order/createOrder", authSession, token, req)
	return err
}

// AllOrders fetches every order. Staff only.
func (c *Client) AllOrders(ctx context.Context, bearer string) ([]domain.Order, error) {
	env, err := c.doChecked(ctx, http.MethodGet, "/order/allOrders", authBearer, bearer, nil)
	if err != nil {
		return nil, err
	}
	return decodeOrders(env.Data)
}

// UpdateOrderStatus persists a new status for an order. Staff only.
func (c *Client) UpdateOrderStatus(ctx context.Context, bearer, orderID string, status domain.OrderStatus) error {
	_, err := c.doChecked(ctx, http.MethodPut, "/order/status/"+orderID, authBearer, bearer,
		updateStatusRequest{Status: status})
	return err
}

// Analytics fetches the aggregate order statistics. Staff only.
func (c *Client) Analytics(ctx context.Context, bearer string) (domain.Stats, error) {
	env, err := c.doChecked(ctx, http.MethodGet, "/order/analytics", authBearer, bearer, nil)
	if err != nil {
		return domain.Stats{}, err
	}

	var stats domain.Stats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		return domain.Stats{}, fmt.Errorf("decode analytics: %w", err)
	}
	return stats, nil
}

func decodeOrders(data json.RawMessage) ([]domain.Order, error) {
	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}
