package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CartEntry is a single cart line. The backend stores cart lines in two wire
// shapes that have to coexist: a bare non-negative number (the quantity, no
// notes) written by the old cart endpoints, and an object
// {"quantity": n, "notes": s} written by the current ones. Both decode into
// this one type; the legacy flag records which shape the value arrived in so
// a round-trip preserves it.
type CartEntry struct {
	quantity int
	notes    string
	legacy   bool
}

// NewCartEntry builds an entry in the current object shape.
func NewCartEntry(quantity int, notes string) CartEntry {
	return CartEntry{quantity: quantity, notes: notes}
}

// NewLegacyCartEntry builds an entry in the bare-number shape.
func NewLegacyCartEntry(quantity int) CartEntry {
	return CartEntry{quantity: quantity, legacy: true}
}

// Quantity returns the entry's quantity regardless of wire shape.
// The zero value (an absent entry) reports 0.
func (e CartEntry) Quantity() int {
	return e.quantity
}

// Notes returns the entry's notes. Legacy entries have none.
func (e CartEntry) Notes() string {
	if e.legacy {
		return ""
	}
	return e.notes
}

// WithNotes returns a copy carrying the given notes, always upgraded to the
// object shape. The receiver is not modified.
func (e CartEntry) WithNotes(notes string) CartEntry {
	return CartEntry{quantity: e.quantity, notes: notes}
}

// IsLegacy reports whether the entry arrived as a bare number.
func (e CartEntry) IsLegacy() bool {
	return e.legacy
}

func (e CartEntry) MarshalJSON() ([]byte, error) {
	if e.legacy {
		return json.Marshal(e.quantity)
	}
	return json.Marshal(struct {
		Quantity int    `json:"quantity"`
		Notes    string `json:"notes"`
	}{e.quantity, e.notes})
}

func (e *CartEntry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '{' {
		var quantity int
		if err := json.Unmarshal(trimmed, &quantity); err != nil {
			return fmt.Errorf("cart entry is neither a quantity nor an object: %w", err)
		}
		*e = CartEntry{quantity: quantity, legacy: true}
		return nil
	}

	var obj struct {
		Quantity int    `json:"quantity"`
		Notes    string `json:"notes"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return fmt.Errorf("decode cart entry: %w", err)
	}
	*e = CartEntry{quantity: obj.Quantity, notes: obj.Notes}
	return nil
}

// Cart is the wire shape of the authoritative cart: item id -> entry.
type Cart map[string]CartEntry
