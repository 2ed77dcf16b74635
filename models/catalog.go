package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the catalog tree. The tree is encoded as parent
// links; the catalog service keeps it cycle-free at write time.
type Category struct {
	ID       uuid.UUID  `json:"id" bson:"_id"`
	Name     string     `json:"name" bson:"name"`
	ParentID *uuid.UUID `json:"parent_id,omitempty" bson:"parent_id,omitempty"` // nil for top-level categories
}

// Product is a purchasable catalog entry. Price is in minor currency units
// (cents) so line totals stay exact integer arithmetic.
type Product struct {
	ID          uuid.UUID   `json:"id" bson:"_id"`
	Name        string      `json:"name" bson:"name"`
	Description string      `json:"description" bson:"description"`
	Price       int64       `json:"price" bson:"price"`
	CategoryIDs []uuid.UUID `json:"category_ids" bson:"category_ids"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
}
