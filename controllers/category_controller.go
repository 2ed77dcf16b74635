package controllers

import (
	"net/http"

	"commerce-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoryController struct {
	catalog *services.CatalogService
}

func NewCategoryController(catalog *services.CatalogService) *CategoryController {
	return &CategoryController{catalog: catalog}
}

// GetCategories returns the full category tree.
func (cc *CategoryController) GetCategories(ctx *gin.Context) {
	tree, err := cc.catalog.CategoryTree(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": tree})
}

// GetCategoryByID returns a category with its ancestor chain.
func (cc *CategoryController) GetCategoryByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	category, err := cc.catalog.GetCategory(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// CreateCategory adds a category, optionally under a parent.
func (cc *CategoryController) CreateCategory(ctx *gin.Context) {
	var req services.CategoryCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	category, err := cc.catalog.CreateCategory(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

type reparentRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

// ReparentCategory moves a category under a new parent (or to the root when
// parent_id is null).
func (cc *CategoryController) ReparentCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req reparentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := cc.catalog.ReparentCategory(ctx.Request.Context(), id, req.ParentID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Category moved"})
}

// DeleteCategory removes an empty category.
func (cc *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := cc.catalog.DeleteCategory(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
