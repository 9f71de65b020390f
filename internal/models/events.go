package models

import "time"

// Event types
const (
	EventTypeItemAdded = "ORDER_ITEM_ADDED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ItemAddedEvent published after an item is added to an order
type ItemAddedEvent struct {
	BaseEvent
	OrderID        int64   `json:"order_id"`
	ItemID         int64   `json:"item_id"`
	Quantity       int     `json:"quantity"`
	RemainingStock int     `json:"remaining_stock"`
	OrderTotal     float64 `json:"order_total"`
}
