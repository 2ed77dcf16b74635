package services

import (
	"context"
	"errors"
	"time"

	"commerce-backend/auth"
	"commerce-backend/models"
	"commerce-backend/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthService registers identities and issues tokens. Registration writes
// the User and its Customer profile in one transaction so the directory is
// never missing a profile for a live account.
type AuthService struct {
	db        *gorm.DB
	users     repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func NewAuthService(db *gorm.DB, users repository.UserRepository, jwtSecret []byte, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		db:        db,
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, *models.Customer, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     models.RoleCustomer,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, nil, err
	}

	customer := &models.Customer{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		customer.UserID = user.ID
		return tx.Create(customer).Error
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	return user, customer, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.CheckPassword(req.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtSecret, user.ID, string(user.Role), s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
