package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChannelEmail = "email"

	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

// NotificationLog records one delivered (or attempted) notification.
// EventID is unique: redelivered queue events insert nothing and are skipped,
// which is what makes the consumer idempotent.
type NotificationLog struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"event_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	Recipient  string    `json:"recipient"`
	Type       string    `json:"type"`
	Channel    string    `json:"channel"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// NotificationFilter narrows log listings.
type NotificationFilter struct {
	CustomerID *uuid.UUID
	Status     string
	Page       int
	PageSize   int
}
