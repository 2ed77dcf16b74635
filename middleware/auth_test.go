package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"commerce-backend/auth"
	"commerce-backend/middleware"
	"commerce-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func newAuthRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{middleware.AuthMiddleware(secret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id, err := middleware.GetUserID(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id, "role": middleware.GetRole(c)})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token, err := auth.GenerateToken(secret, uuid.New(), "customer", time.Hour)
	require.NoError(t, err)

	w := doRequest(newAuthRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	w := doRequest(newAuthRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	w := doRequest(newAuthRouter(), "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	w := doRequest(newAuthRouter(), "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	token, err := auth.GenerateToken([]byte("other"), uuid.New(), "customer", time.Hour)
	require.NoError(t, err)

	w := doRequest(newAuthRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleAllows(t *testing.T) {
	token, err := auth.GenerateToken(secret, uuid.New(), string(models.RoleAdmin), time.Hour)
	require.NoError(t, err)

	r := newAuthRouter(middleware.RequireRole(models.RoleAdmin, models.RoleOrderManager))
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleDenies(t *testing.T) {
	token, err := auth.GenerateToken(secret, uuid.New(), string(models.RoleCustomer), time.Hour)
	require.NoError(t, err)

	r := newAuthRouter(middleware.RequireRole(models.RoleAdmin))
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
