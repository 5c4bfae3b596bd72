package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Amresh-01/Canteeno/internal/domain"
)

type updateCartRequest struct {
	FoodID   string `json:"foodId"`
	Quantity int    `json:"quantity"`
}

// FetchCart returns the authoritative cart for the session.
func (c *Client) FetchCart(ctx context.Context, token string) (domain.Cart, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/cart/get", authSession, token, nil)
	if err != nil {
		return nil, err
	}

	cart := domain.Cart{}
	if len(env.CartData) > 0 {
		if err := json.Unmarshal(env.CartData, &cart); err != nil {
			return nil, fmt.Errorf("decode cart data: %w", err)
		}
	}
	return cart, nil
}

// SetQuantity tells the backend the new absolute quantity for a cart line.
func (c *Client) SetQuantity(ctx context.Context, token, foodID string, quantity int) error {
	_, err := c.doChecked(ctx, http.MethodPut, "/api/cart/updateCart", authSession, token,
		updateCartRequest{FoodID: foodID, Quantity: quantity})
	return err
}

// DeleteCartLine removes a cart line entirely, whatever its quantity.
func (c *Client) DeleteCartLine(ctx context.Context, token, foodID string) error {
	_, err := c.doChecked(ctx, http.MethodDelete, "/api/cart/remove/"+foodID, authSession, token, nil)
	return err
}
