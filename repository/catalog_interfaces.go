package repository

import (
	"context"

	"commerce-backend/models"

	"github.com/google/uuid"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	CategoryID *uuid.UUID
	MinPrice   *int64
	MaxPrice   *int64
	Page       int
	Limit      int
}

// ProductRepo defines the operations the catalog needs from the product
// store. It uses plain Go types (no mongo-driver types) to make swapping
// adapters easier.
type ProductRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Find(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// CategoryRepo defines the operations used for category tree management.
type CategoryRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	UpdateParent(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)
}
