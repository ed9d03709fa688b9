package models

import "time"

// Event types
const (
	EventTypeFulfillmentRequested = "FULFILLMENT_REQUESTED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// FulfillmentRequestedEvent is published when fulfilling an order failed
// and should be re-attempted by the retry worker.
type FulfillmentRequestedEvent struct {
	BaseEvent
	SessionID string `json:"session_id"`
	Attempt   int    `json:"attempt"`
	Reason    string `json:"reason"`
}
