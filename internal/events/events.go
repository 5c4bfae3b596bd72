// Package events carries the realtime order notifications the kitchen
// display consumes: a new order was created, or an order's status changed.
// Each event carries the full order object.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/Amresh-01/Canteeno/internal/domain"
)

type EventType string

const (
	// EventNewOrder announces a freshly created order.
	EventNewOrder EventType = "kds-new-order"
	// EventStatusUpdated announces an order whose status changed.
	EventStatusUpdated EventType = "kds-status-updated"
)

type OrderEvent struct {
	Type  EventType    `json:"event"`
	Order domain.Order `json:"order"`
}

// Decode parses one wire message into an OrderEvent.
func Decode(data []byte) (OrderEvent, error) {
	var ev OrderEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return OrderEvent{}, fmt.Errorf("decode order event: %w", err)
	}
	switch ev.Type {
	case EventNewOrder, EventStatusUpdated:
		return ev, nil
	default:
		return OrderEvent{}, fmt.Errorf("unknown event type %q", ev.Type)
	}
}

// Encode serializes an OrderEvent for the wire.
func Encode(ev OrderEvent) ([]byte, error) {
	return json.Marshal(ev)
}
