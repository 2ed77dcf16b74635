package services

import (
	"context"
	"errors"
	"fmt"

	"commerce-backend/models"
	"commerce-backend/repository"
	"commerce-backend/sender"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type NotificationService interface {
	ProcessOrderEvent(ctx context.Context, evt *models.OrderEvent) error
	GetLogs(ctx context.Context, filter models.NotificationFilter) ([]models.NotificationLog, int64, error)
}

type notificationService struct {
	repo      repository.NotificationRepository
	customers repository.CustomerRepository
	email     sender.EmailSender
	logger    *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, customers repository.CustomerRepository, email sender.EmailSender, logger *zap.Logger) NotificationService {
	return &notificationService{
		repo:      repo,
		customers: customers,
		email:     email,
		logger:    logger,
	}
}

// ProcessOrderEvent handles one order lifecycle event from the queue.
// Delivery is at-least-once, so the event id is claimed in the log table
// first; a redelivered event claims nothing and is skipped.
func (s *notificationService) ProcessOrderEvent(ctx context.Context, evt *models.OrderEvent) error {
	customer, err := s.customers.FindByID(ctx, evt.CustomerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	entry := &models.NotificationLog{
		EventID:    evt.EventID,
		CustomerID: evt.CustomerID,
		Type:       evt.Type,
		Channel:    models.ChannelEmail,
		Status:     models.NotificationPending,
	}
	if customer != nil {
		entry.Recipient = customer.Email
	}

	inserted, err := s.repo.SaveLog(ctx, entry)
	if err != nil {
		return err
	}
	if !inserted {
		s.logger.Debug("skipping already processed event",
			zap.String("event_id", evt.EventID.String()),
		)
		return nil
	}

	if customer == nil {
		// No recipient to notify. Record it and move on rather than
		// redelivering forever.
		return s.repo.UpdateStatus(ctx, evt.EventID, models.NotificationFailed, "customer not found")
	}

	subject, body := renderOrderEvent(evt, customer)
	if _, sendErr := s.email.SendEmail(ctx, customer.Email, subject, body); sendErr != nil {
		s.logger.Error("notification send failed",
			zap.String("event_id", evt.EventID.String()),
			zap.String("recipient", customer.Email),
			zap.Error(sendErr),
		)
		return s.repo.UpdateStatus(ctx, evt.EventID, models.NotificationFailed, sendErr.Error())
	}

	return s.repo.UpdateStatus(ctx, evt.EventID, models.NotificationSent, "")
}

func (s *notificationService) GetLogs(ctx context.Context, filter models.NotificationFilter) ([]models.NotificationLog, int64, error) {
	return s.repo.GetLogs(ctx, filter)
}

func renderOrderEvent(evt *models.OrderEvent, customer *models.Customer) (subject, body string) {
	total := formatAmount(evt.Total)
	switch evt.Type {
	case models.EventOrderCreated:
		subject = "Order received"
		body = fmt.Sprintf("<p>Hi %s,</p><p>We received your order %s for %s. We'll let you know when it's on its way.</p>",
			customer.FullName, evt.OrderID, total)
	case models.EventOrderProcessing:
		subject = "Your order is being processed"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Order %s is now being processed.</p>",
			customer.FullName, evt.OrderID)
	case models.EventOrderCompleted:
		subject = "Your order is complete"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Order %s (%s) has been completed. Thanks for shopping with us!</p>",
			customer.FullName, evt.OrderID, total)
	case models.EventOrderCancelled:
		subject = "Your order was cancelled"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Order %s has been cancelled.</p>",
			customer.FullName, evt.OrderID)
	default:
		subject = "Order update"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Order %s was updated to %s.</p>",
			customer.FullName, evt.OrderID, evt.Status)
	}
	return subject, body
}

// formatAmount renders minor units as a decimal string, e.g. 2500 -> "25.00".
func formatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
