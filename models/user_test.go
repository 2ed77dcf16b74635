package models_test

import (
	"testing"

	"commerce-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	user := &models.User{}
	require.NoError(t, user.SetPassword("s3cret-pass"))

	assert.NotEqual(t, "s3cret-pass", user.Password)
	assert.True(t, user.CheckPassword("s3cret-pass"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role           models.Role
		manageProducts bool
		manageOrders   bool
	}{
		{models.RoleCustomer, false, false},
		{models.RoleAdmin, true, true},
		{models.RoleProductManager, true, false},
		{models.RoleOrderManager, false, true},
	}

	for _, tc := range cases {
		u := models.User{Role: tc.role}
		assert.Equal(t, tc.manageProducts, u.CanManageProducts(), "role %s", tc.role)
		assert.Equal(t, tc.manageOrders, u.CanManageOrders(), "role %s", tc.role)
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, models.ValidRole(models.RoleCustomer))
	assert.True(t, models.ValidRole(models.RoleOrderManager))
	assert.False(t, models.ValidRole("superuser"))
}
