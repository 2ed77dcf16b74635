package controllers

import (
	"net/http"
	"strconv"

	"commerce-backend/repository"
	"commerce-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// GetProducts returns a filtered, paginated product listing.
func (pc *ProductController) GetProducts(ctx *gin.Context) {
	filter := repository.ProductFilter{}
	filter.Page, filter.Limit = parsePaginationParams(ctx)

	if raw := ctx.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		filter.CategoryID = &id
	}
	if raw := ctx.Query("min_price"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
			return
		}
		filter.MinPrice = &v
	}
	if raw := ctx.Query("max_price"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
			return
		}
		filter.MaxPrice = &v
	}

	products, total, err := pc.catalog.ListProducts(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"meta": gin.H{
			"page":  filter.Page,
			"limit": filter.Limit,
			"total": total,
		},
	})
}

// GetProductByID returns a single product.
func (pc *ProductController) GetProductByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	product, err := pc.catalog.GetProduct(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// CreateProduct adds a product to the catalog. Product managers only.
func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	var req services.ProductCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, err := pc.catalog.CreateProduct(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial update to a product.
func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req services.ProductUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, err := pc.catalog.UpdateProduct(ctx.Request.Context(), id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product unless order items still reference it.
func (pc *ProductController) DeleteProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := pc.catalog.DeleteProduct(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
