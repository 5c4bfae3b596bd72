package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Amresh-01/Canteeno/internal/domain"
)

// ListFood fetches the menu catalog. No auth required.
func (c *Client) ListFood(ctx context.Context) ([]domain.MenuItem, error) {
	env, err := c.doChecked(ctx, http.MethodGet, "/api/food/list", authNone, "", nil)
	if err != nil {
		return nil, err
	}

	var items []domain.MenuItem
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("decode food list: %w", err)
	}
	return items, nil
}
