package services

import (
	"context"
	"errors"

	"commerce-backend/models"
	"commerce-backend/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCustomerNotFound = errors.New("customer not found")

// CustomerService maps authenticated identities to customer profiles.
// Profiles are written at registration; the order path only reads them.
type CustomerService struct {
	customers repository.CustomerRepository
}

func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// ResolveByUser returns the customer profile owned by a user identity.
func (s *CustomerService) ResolveByUser(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	customer, err := s.customers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}
