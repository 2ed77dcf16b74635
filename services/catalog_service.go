package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"commerce-backend/models"
	"commerce-backend/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryCycle    = errors.New("category parent would create a cycle")
	ErrProductInUse     = errors.New("product is referenced by order items")
	ErrCategoryInUse    = errors.New("category still has children or products")
)

const productCacheTTL = 5 * time.Minute

// OrderItemCounter is the one order-side question the catalog needs answered:
// whether any line items still reference a product.
type OrderItemCounter interface {
	CountItemsByProductID(ctx context.Context, productID uuid.UUID) (int64, error)
}

type ProductCreateRequest struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	Price       int64       `json:"price" binding:"min=0"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

type ProductUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
}

type CategoryCreateRequest struct {
	Name     string     `json:"name" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// CategoryWithAncestors is a category plus its ancestor chain, nearest
// parent first.
type CategoryWithAncestors struct {
	Category  models.Category   `json:"category"`
	Ancestors []models.Category `json:"ancestors"`
}

// CategoryNode is a category with its resolved children, for tree listings.
type CategoryNode struct {
	models.Category
	Children []*CategoryNode `json:"children,omitempty"`
}

// CatalogService owns products and the category tree. Product reads on the
// order path go through a Redis read-through cache; mutations invalidate it.
type CatalogService struct {
	products   repository.ProductRepo
	categories repository.CategoryRepo
	orderItems OrderItemCounter
	cache      *redis.Client
	logger     *zap.Logger
}

func NewCatalogService(products repository.ProductRepo, categories repository.CategoryRepo, orderItems OrderItemCounter, cache *redis.Client, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		orderItems: orderItems,
		cache:      cache,
		logger:     logger,
	}
}

func productCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id)
}

// GetProduct resolves a product by id, serving from cache when possible.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, productCacheKey(id)).Result(); err == nil {
			var p models.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(p); err == nil {
			s.cache.Set(ctx, productCacheKey(id), data, productCacheTTL)
		}
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	return s.products.Find(ctx, filter)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req ProductCreateRequest) (*models.Product, error) {
	if req.Price < 0 {
		return nil, fmt.Errorf("price must not be negative")
	}
	for _, cid := range req.CategoryIDs {
		if _, err := s.categories.FindByID(ctx, cid); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryIDs: req.CategoryIDs,
		CreatedAt:   time.Now().UTC(),
	}
	if product.CategoryIDs == nil {
		product.CategoryIDs = []uuid.UUID{}
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req ProductUpdateRequest) (*models.Product, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("price must not be negative")
		}
		updates["price"] = *req.Price
	}
	if len(updates) > 0 {
		if err := s.products.Update(ctx, id, updates); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
	}
	s.invalidateProduct(ctx, id)
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product unless order items still reference it.
// Orders snapshot prices, but the reference itself is protected.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	count, err := s.orderItems.CountItemsByProductID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrProductInUse
	}
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProductNotFound
		}
		return err
	}
	s.invalidateProduct(ctx, id)
	return nil
}

func (s *CatalogService) invalidateProduct(ctx context.Context, id uuid.UUID) {
	if s.cache != nil {
		s.cache.Del(ctx, productCacheKey(id))
	}
}

func (s *CatalogService) CreateCategory(ctx context.Context, req CategoryCreateRequest) (*models.Category, error) {
	if _, err := s.categories.FindByName(ctx, req.Name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.categories.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	category := &models.Category{
		ID:       uuid.New(),
		Name:     req.Name,
		ParentID: req.ParentID,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory resolves a category together with its ancestor chain, nearest
// parent first. The walk keeps a visited set so a corrupt tree cannot loop.
func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*CategoryWithAncestors, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	var ancestors []models.Category
	visited := map[uuid.UUID]bool{category.ID: true}
	cur := category
	for cur.ParentID != nil {
		if visited[*cur.ParentID] {
			return nil, ErrCategoryCycle
		}
		parent, err := s.categories.FindByID(ctx, *cur.ParentID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				break
			}
			return nil, err
		}
		visited[parent.ID] = true
		ancestors = append(ancestors, *parent)
		cur = parent
	}

	return &CategoryWithAncestors{Category: *category, Ancestors: ancestors}, nil
}

// ReparentCategory moves a category under a new parent (or to the root when
// parentID is nil). Assignments that would close a cycle are rejected before
// any write.
func (s *CatalogService) ReparentCategory(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrCategoryNotFound
		}
		return err
	}

	if parentID != nil {
		if *parentID == id {
			return ErrCategoryCycle
		}
		visited := map[uuid.UUID]bool{id: true}
		cur := *parentID
		for {
			if visited[cur] {
				return ErrCategoryCycle
			}
			visited[cur] = true
			node, err := s.categories.FindByID(ctx, cur)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return ErrCategoryNotFound
				}
				return err
			}
			if node.ParentID == nil {
				break
			}
			cur = *node.ParentID
		}
	}

	return s.categories.UpdateParent(ctx, id, parentID)
}

// DeleteCategory refuses to remove a category that still anchors children or
// products, mirroring the protect-on-delete rule for products.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	hasChildren, err := s.categories.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return ErrCategoryInUse
	}
	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

// CategoryTree assembles the full tree from the flat parent-link table.
func (s *CatalogService) CategoryTree(ctx context.Context) ([]*CategoryNode, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uuid.UUID]*CategoryNode, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &CategoryNode{Category: c}
	}

	var roots []*CategoryNode
	for _, node := range nodes {
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*node.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}
	return roots, nil
}
