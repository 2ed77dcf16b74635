package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role is the single source of truth for a user's capabilities.
// Capability checks below are derived from it; nothing is stored twice.
type Role string

const (
	RoleCustomer       Role = "customer"
	RoleAdmin          Role = "admin"
	RoleProductManager Role = "product_manager"
	RoleOrderManager   Role = "order_manager"
)

// ValidRole reports whether r is one of the known role values.
func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleProductManager, RoleOrderManager:
		return true
	}
	return false
}

// User model
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      Role      `gorm:"type:varchar(32);not null;default:'customer'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageProducts reports whether the user may create or modify catalog entries.
func (u *User) CanManageProducts() bool {
	return u.Role == RoleAdmin || u.Role == RoleProductManager
}

// CanManageOrders reports whether the user may drive order status transitions.
func (u *User) CanManageOrders() bool {
	return u.Role == RoleAdmin || u.Role == RoleOrderManager
}
