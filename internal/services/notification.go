package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront-dev/storefront-platform/internal/errors"
	"github.com/storefront-dev/storefront-platform/internal/models"
	repository "github.com/storefront-dev/storefront-platform/internal/repositories"
	"github.com/storefront-dev/storefront-platform/pkg/sendgrid"
)

type NotificationService interface {
	SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.Notification, error)
	ListNotifications(ctx context.Context, recipient string, page, size int) ([]*models.Notification, int, error)
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendgrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, emailService sendgrid.EmailService) NotificationService {
	return &notificationService{repo: repo, emailService: emailService}
}

// SendEmail implements NotificationService. The record is created first so
// a delivery failure still leaves an audit trail.
func (s *notificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.Notification, error) {

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeEmail,
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.NotificationStatusPending,
	}

	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		return nil, errors.DatabaseError("Failed to record notification").WithError(err)
	}

	if err := s.emailService.Send(ctx, req); err != nil {

		notification.Status = models.NotificationStatusFailed
		notification.Error = err.Error()

		_ = s.repo.UpdateNotificationStatus(ctx, notification.ID, models.NotificationStatusFailed, err.Error())

		return notification, errors.ThirdPartyError("Failed to send email").WithError(err)
	}

	notification.Status = models.NotificationStatusSent

	if err := s.repo.UpdateNotificationStatus(ctx, notification.ID, models.NotificationStatusSent, ""); err != nil {
		return nil, errors.DatabaseError("Failed to update notification status").WithError(err)
	}

	return notification, nil
}

// ListNotifications implements NotificationService.
func (s *notificationService) ListNotifications(ctx context.Context, recipient string, page, size int) ([]*models.Notification, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 10
	}

	notifications, total, err := s.repo.ListNotifications(ctx, recipient, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch notifications").WithError(err)
	}

	return notifications, total, nil
}
