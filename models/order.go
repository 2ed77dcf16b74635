package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// Aggregate-level failures surfaced by Order mutations.
var (
	ErrInvalidItem        = errors.New("invalid item quantity")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrItemNotFound       = errors.New("order item not found")
)

// transitions is the full status state machine. Anything missing here is
// rejected; completed and cancelled are terminal.
var transitions = map[OrderStatus]map[OrderStatus]bool{
	StatusPending: {
		StatusProcessing: true,
		StatusCancelled:  true,
	},
	StatusProcessing: {
		StatusCompleted: true,
		StatusCancelled: true,
	},
}

// Order owns its items. Total and Status are maintained exclusively through
// AddItem/RemoveItem/Transition so they are never observably stale. Version
// backs optimistic locking in the repository.
type Order struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	Total      int64          `gorm:"not null;default:0" json:"total"`
	Status     OrderStatus    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Version    int64          `gorm:"not null;default:1" json:"-"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Items      []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem references a Product without owning it. UnitPrice is a snapshot
// taken when the item was added; later catalog price changes do not touch it.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
}

// LineTotal is quantity times the snapshotted unit price.
func (i OrderItem) LineTotal() int64 {
	return int64(i.Quantity) * i.UnitPrice
}

// NewOrder creates an empty pending order for a customer.
func NewOrder(customerID uuid.UUID) *Order {
	return &Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		Status:     StatusPending,
		Version:    1,
	}
}

// AddItem appends a line item, snapshotting the product's current price.
// Items can only be added while the order is pending.
func (o *Order) AddItem(product *Product, quantity int) (*OrderItem, error) {
	if o.Status != StatusPending {
		return nil, ErrInvalidTransition
	}
	if quantity <= 0 {
		return nil, ErrInvalidItem
	}
	if product == nil {
		return nil, ErrProductUnavailable
	}

	item := OrderItem{
		ID:        uuid.New(),
		OrderID:   o.ID,
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	}
	o.Items = append(o.Items, item)
	o.RecomputeTotal()
	return &o.Items[len(o.Items)-1], nil
}

// RemoveItem drops a line item by id. Only allowed while pending.
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if o.Status != StatusPending {
		return ErrInvalidTransition
	}
	for i, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.RecomputeTotal()
			return nil
		}
	}
	return ErrItemNotFound
}

// RecomputeTotal sets Total to the sum of all line totals.
func (o *Order) RecomputeTotal() {
	var total int64
	for _, item := range o.Items {
		total += item.LineTotal()
	}
	o.Total = total
}

// Transition moves the order to a new status per the state machine.
// Moving an empty pending order into processing is rejected.
func (o *Order) Transition(to OrderStatus) error {
	allowed, ok := transitions[o.Status]
	if !ok || !allowed[to] {
		return ErrInvalidTransition
	}
	if o.Status == StatusPending && to == StatusProcessing && len(o.Items) == 0 {
		return ErrInvalidTransition
	}
	o.Status = to
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (o *Order) IsTerminal() bool {
	return o.Status == StatusCompleted || o.Status == StatusCancelled
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
