package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront-dev/storefront-platform/internal/errors"
	"github.com/storefront-dev/storefront-platform/internal/models"
	repository "github.com/storefront-dev/storefront-platform/internal/repositories"
	"github.com/storefront-dev/storefront-platform/pkg/paypal"
)

type PaymentService interface {
	CapturePayment(ctx context.Context, userID uuid.UUID, req *models.CapturePaymentRequest) (*models.CapturePaymentResponse, error)
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListPaymentsByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Payment, int, error)
}

type paymentService struct {
	repo          repository.PaymentRepository
	userRepo      repository.UserRepository
	paypalClient  paypal.Client
	notifications NotificationService
}

func NewPaymentService(repo repository.PaymentRepository, userRepo repository.UserRepository, paypalClient paypal.Client, notifications NotificationService) PaymentService {
	return &paymentService{repo: repo, userRepo: userRepo, paypalClient: paypalClient, notifications: notifications}
}

// CapturePayment implements PaymentService. Fails closed: anything short of
// a COMPLETED capture surfaces as an error and nothing is recorded locally.
// There is no retry here; the provider rejects a second capture of the same
// order itself.
func (s *paymentService) CapturePayment(ctx context.Context, userID uuid.UUID, req *models.CapturePaymentRequest) (*models.CapturePaymentResponse, error) {

	result, err := s.paypalClient.CaptureOrder(ctx, req.OrderID)
	if err != nil {
		return nil, errors.ThirdPartyError("Payment capture failed").WithError(err)
	}

	amount, err := decimal.NewFromString(result.Amount)
	if err != nil {
		// the money moved but the response is unparseable, keep the record
		// with a zero amount rather than dropping it
		slog.Error("Unparseable capture amount",
			slog.String("orderId", req.OrderID),
			slog.String("amount", result.Amount))

		amount = decimal.Zero
	}

	payment := &models.Payment{
		ID:              uuid.New(),
		UserID:          userID,
		ProviderOrderID: result.OrderID,
		Amount:          amount,
		Currency:        result.Currency,
		Status:          models.PaymentStatusCompleted,
	}

	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		// capture already happened upstream, this must be loud
		slog.Error("Captured payment could not be recorded",
			slog.String("orderId", req.OrderID),
			slog.String("error", err.Error()))

		return nil, errors.DatabaseError("Failed to record payment").WithError(err)
	}

	s.sendConfirmation(ctx, userID, payment)

	return &models.CapturePaymentResponse{
		Payment: payment,
		Status:  result.Status,
		Message: "Payment captured successfully.",
	}, nil
}

// sendConfirmation is best effort; a failed email never fails the capture.
func (s *paymentService) sendConfirmation(ctx context.Context, userID uuid.UUID, payment *models.Payment) {

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		slog.Warn("Skipping payment confirmation email, user lookup failed",
			slog.String("userId", userID.String()),
			slog.String("error", err.Error()))

		return
	}

	_, err = s.notifications.SendEmail(ctx, &models.EmailNotificationRequest{
		Recipient: user.Email,
		Subject:   "Your order is confirmed",
		Content: fmt.Sprintf("Hi %s, we received your payment of %s %s for order %s.",
			user.Name, payment.Amount.StringFixed(2), payment.Currency, payment.ProviderOrderID),
	})
	if err != nil {
		slog.Warn("Failed to send payment confirmation email",
			slog.String("userId", userID.String()),
			slog.String("error", err.Error()))
	}
}

// GetPaymentByID implements PaymentService.
func (s *paymentService) GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {

	payment, err := s.repo.GetPaymentByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Payment not found").WithError(err)
	}

	return payment, nil
}

// ListPaymentsByUser implements PaymentService.
func (s *paymentService) ListPaymentsByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Payment, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 10
	}

	payments, total, err := s.repo.ListPaymentsByUser(ctx, userID, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch payments").WithError(err)
	}

	return payments, total, nil
}
