package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"commerce-backend/models"
	"commerce-backend/repository"
	"commerce-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func recordError(err error) int {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	respondError(ctx, err)
	return w.Code
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"order not found", services.ErrOrderNotFound, http.StatusNotFound},
		{"product not found", services.ErrProductNotFound, http.StatusNotFound},
		{"item not found", models.ErrItemNotFound, http.StatusNotFound},
		{"invalid item", models.ErrInvalidItem, http.StatusBadRequest},
		{"product unavailable", models.ErrProductUnavailable, http.StatusBadRequest},
		{"category cycle", services.ErrCategoryCycle, http.StatusBadRequest},
		{"invalid transition", models.ErrInvalidTransition, http.StatusConflict},
		{"product in use", services.ErrProductInUse, http.StatusConflict},
		{"concurrency conflict", repository.ErrConcurrencyConflict, http.StatusConflict},
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, recordError(tc.err))
		})
	}
}

func TestParsePaginationDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, "/?page=0&limit=9999", nil)
	page, limit := parsePaginationParams(ctx)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	ctx, _ = gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, "/?page=3&limit=25", nil)
	page, limit = parsePaginationParams(ctx)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
}
