package models

import (
	"time"

	"github.com/google/uuid"
)

// Order event types published to the task topic.
const (
	EventOrderCreated    = "order.created"
	EventOrderProcessing = "order.processing"
	EventOrderCompleted  = "order.completed"
	EventOrderCancelled  = "order.cancelled"
)

// OrderEvent is the payload published for every order lifecycle change.
// EventID is the idempotency key consumers dedupe on, since delivery is
// at-least-once.
type OrderEvent struct {
	EventID    uuid.UUID   `json:"event_id"`
	Type       string      `json:"type"`
	OrderID    uuid.UUID   `json:"order_id"`
	CustomerID uuid.UUID   `json:"customer_id"`
	Status     OrderStatus `json:"status"`
	Total      int64       `json:"total"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// NewOrderEvent builds an event for the order's current state.
func NewOrderEvent(eventType string, order *Order) OrderEvent {
	return OrderEvent{
		EventID:    uuid.New(),
		Type:       eventType,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		Total:      order.Total,
		OccurredAt: time.Now().UTC(),
	}
}

// EventTypeForStatus maps an order status to its lifecycle event type.
func EventTypeForStatus(s OrderStatus) string {
	switch s {
	case StatusProcessing:
		return EventOrderProcessing
	case StatusCompleted:
		return EventOrderCompleted
	case StatusCancelled:
		return EventOrderCancelled
	default:
		return EventOrderCreated
	}
}
