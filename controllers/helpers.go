package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"commerce-backend/apperrors"
	"commerce-backend/models"
	"commerce-backend/repository"
	"commerce-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func parsePaginationParams(ctx *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func parseIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// respondError translates a service or domain error into an HTTP response.
func respondError(ctx *gin.Context, err error) {
	appErr := toAppError(err)
	ctx.JSON(appErr.Code, gin.H{"error": appErr.Message})
}

// toAppError maps domain sentinels onto the shared error type. Anything
// unrecognized becomes a generic 500 so internals never leak to clients.
func toAppError(err error) *apperrors.Error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, models.ErrItemNotFound):
		return apperrors.New(http.StatusNotFound, err.Error(), err)
	case errors.Is(err, models.ErrInvalidItem),
		errors.Is(err, models.ErrProductUnavailable),
		errors.Is(err, services.ErrCategoryCycle):
		return apperrors.New(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, services.ErrCategoryExists),
		errors.Is(err, services.ErrProductInUse),
		errors.Is(err, services.ErrCategoryInUse),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken):
		return apperrors.New(http.StatusConflict, err.Error(), err)
	case errors.Is(err, repository.ErrConcurrencyConflict):
		return apperrors.New(http.StatusConflict, "Order was modified concurrently, please retry", err)
	case errors.Is(err, services.ErrInvalidCredentials):
		return apperrors.New(http.StatusUnauthorized, err.Error(), err)
	default:
		return apperrors.ErrInternalServer
	}
}
