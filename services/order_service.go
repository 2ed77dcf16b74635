package services

import (
	"context"
	"errors"

	"commerce-backend/kafka"
	"commerce-backend/models"
	"commerce-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

// ProductResolver is the slice of the catalog the order path needs: price
// and existence at add-time. Satisfied by *CatalogService.
type ProductResolver interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,dive"`
}

type MetaData struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalOrders int64 `json:"total_orders"`
	TotalPages  int64 `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   MetaData       `json:"meta"`
}

// OrderService orchestrates order creation and lifecycle against the
// customer directory, the catalog and the order store. Lifecycle events go
// out through the producer fire-and-forget: a failed publish is logged and
// never fails the request.
type OrderService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	catalog   ProductResolver
	producer  kafka.ProducerAPI
	logger    *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, customers repository.CustomerRepository, catalog ProductResolver, producer kafka.ProducerAPI, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		customers: customers,
		catalog:   catalog,
		producer:  producer,
		logger:    logger,
	}
}

// CreateOrder validates everything before any write: the customer must
// exist and every product must be purchasable. The order and all its items
// are then persisted in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, customerID uuid.UUID, req *CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, models.ErrInvalidItem
	}

	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	order := models.NewOrder(customerID)
	for _, it := range req.Items {
		product, err := s.resolveProduct(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if _, err := order.AddItem(product, it.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orders.CreateWithItems(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, models.EventOrderCreated, order)
	return order, nil
}

// AddItem appends a line item to a pending order owned by the customer.
// The unit price is snapshotted from the catalog at call time.
func (s *OrderService) AddItem(ctx context.Context, customerID, orderID, productID uuid.UUID, quantity int) (*models.Order, error) {
	order, err := s.ownedOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}

	product, err := s.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, err := order.AddItem(product, quantity); err != nil {
		return nil, err
	}

	if err := s.orders.ReplaceItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// RemoveItem drops a line item from a pending order owned by the customer.
func (s *OrderService) RemoveItem(ctx context.Context, customerID, orderID, itemID uuid.UUID) (*models.Order, error) {
	order, err := s.ownedOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.orders.ReplaceItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus drives one transition of the status state machine. The
// write is optimistic: a stale read loses and surfaces as a concurrency
// conflict for the caller to retry.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus models.OrderStatus) (*models.Order, error) {
	if !models.ValidStatus(newStatus) {
		return nil, models.ErrInvalidTransition
	}

	order, err := s.orderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Transition(newStatus); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, models.EventTypeForStatus(order.Status), order)
	return order, nil
}

// CancelOrder is sugar for a transition into cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.UpdateOrderStatus(ctx, orderID, models.StatusCancelled)
}

// GetOrder retrieves an order scoped to its owning customer.
func (s *OrderService) GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	return s.ownedOrder(ctx, customerID, orderID)
}

// GetCustomerOrders retrieves paginated orders for one customer.
func (s *OrderService) GetCustomerOrders(ctx context.Context, customerID uuid.UUID, page, limit int) (*OrderListResponse, error) {
	orders, total, err := s.orders.FindByCustomerID(ctx, customerID, page, limit)
	if err != nil {
		return nil, err
	}
	return listResponse(orders, total, page, limit), nil
}

// GetAllOrders retrieves paginated orders across customers (managers only;
// the route enforces the role).
func (s *OrderService) GetAllOrders(ctx context.Context, page, limit int) (*OrderListResponse, error) {
	orders, total, err := s.orders.FindAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return listResponse(orders, total, page, limit), nil
}

func (s *OrderService) orderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// ownedOrder loads an order and hides it from non-owners.
func (s *OrderService) ownedOrder(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) resolveProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, models.ErrProductUnavailable
		}
		return nil, err
	}
	return product, nil
}

func (s *OrderService) publishEvent(ctx context.Context, eventType string, order *models.Order) {
	if s.producer == nil {
		return
	}
	evt := models.NewOrderEvent(eventType, order)
	if err := s.producer.SendOrderEvent(ctx, evt); err != nil {
		s.logger.Warn("failed to publish order event",
			zap.String("type", eventType),
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
}

func listResponse(orders []models.Order, total int64, page, limit int) *OrderListResponse {
	return &OrderListResponse{
		Orders: orders,
		Meta: MetaData{
			Page:        page,
			Limit:       limit,
			TotalOrders: total,
			TotalPages:  calculateTotalPages(total, limit),
			HasMore:     total > int64(page*limit),
		},
	}
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
