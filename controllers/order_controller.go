package controllers

import (
	"net/http"

	"commerce-backend/middleware"
	"commerce-backend/models"
	"commerce-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderController struct {
	orderService    *services.OrderService
	customerService *services.CustomerService
}

func NewOrderController(orderService *services.OrderService, customerService *services.CustomerService) *OrderController {
	return &OrderController{
		orderService:    orderService,
		customerService: customerService,
	}
}

// resolveCustomer maps the authenticated user to their customer profile.
func (oc *OrderController) resolveCustomer(ctx *gin.Context) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, false
	}

	customer, err := oc.customerService.ResolveByUser(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return uuid.Nil, false
	}
	return customer.ID, true
}

// CreateOrder handles order creation requests.
func (oc *OrderController) CreateOrder(ctx *gin.Context) {
	customerID, ok := oc.resolveCustomer(ctx)
	if !ok {
		return
	}

	var req services.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, err := oc.orderService.CreateOrder(ctx.Request.Context(), customerID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

// GetOrders returns paginated orders for the authenticated customer.
func (oc *OrderController) GetOrders(ctx *gin.Context) {
	customerID, ok := oc.resolveCustomer(ctx)
	if !ok {
		return
	}

	page, limit := parsePaginationParams(ctx)

	result, err := oc.orderService.GetCustomerOrders(ctx.Request.Context(), customerID, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetOrderByID returns one of the authenticated customer's orders.
func (oc *OrderController) GetOrderByID(ctx *gin.Context) {
	customerID, ok := oc.resolveCustomer(ctx)
	if !ok {
		return
	}

	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	order, err := oc.orderService.GetOrder(ctx.Request.Context(), customerID, orderID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, order)
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// AddItem appends a line item to a pending order.
func (oc *OrderController) AddItem(ctx *gin.Context) {
	customerID, ok := oc.resolveCustomer(ctx)
	if !ok {
		return
	}

	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req addItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, err := oc.orderService.AddItem(ctx.Request.Context(), customerID, orderID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// RemoveItem deletes a line item from a pending order.
func (oc *OrderController) RemoveItem(ctx *gin.Context) {
	customerID, ok := oc.resolveCustomer(ctx)
	if !ok {
		return
	}

	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(ctx, "itemId")
	if !ok {
		return
	}

	order, err := oc.orderService.RemoveItem(ctx.Request.Context(), customerID, orderID, itemID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, order)
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,order_status"`
}

// UpdateStatus drives an order through its lifecycle. Restricted to order
// managers by the route.
func (oc *OrderController) UpdateStatus(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, err := oc.orderService.UpdateOrderStatus(ctx.Request.Context(), orderID, req.Status)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// CancelOrder cancels one of the authenticated customer's own orders. Order
// managers cancel through UpdateStatus instead.
func (oc *OrderController) CancelOrder(ctx *gin.Context) {
	customerID, ok := oc.resolveCustomer(ctx)
	if !ok {
		return
	}

	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	// Ownership check first so a foreign order reads as not found.
	if _, err := oc.orderService.GetOrder(ctx.Request.Context(), customerID, orderID); err != nil {
		respondError(ctx, err)
		return
	}

	order, err := oc.orderService.CancelOrder(ctx.Request.Context(), orderID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// GetAllOrders returns paginated orders across all customers. Restricted to
// order managers by the route.
func (oc *OrderController) GetAllOrders(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	result, err := oc.orderService.GetAllOrders(ctx.Request.Context(), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
