package domain

import "github.com/shopspring/decimal"

func init() {
	// The backend serializes prices as bare JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// MenuItem is one dish in the food catalog. Read-only to the cart subsystem.
type MenuItem struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
}
