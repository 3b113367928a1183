package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	appErrors "github.com/storefront-dev/storefront-platform/internal/errors"
	"github.com/storefront-dev/storefront-platform/internal/models"
	service "github.com/storefront-dev/storefront-platform/internal/services"
	"github.com/storefront-dev/storefront-platform/pkg/paypal"
)

func TestCapturePayment(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	orderID := "5O190127TN364715T"

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockPaymentRepository)
		mockUserRepo := new(MockUserRepository)
		mockPayPal := new(MockPayPalClient)
		mockNotifications := new(MockNotificationService)
		paymentService := service.NewPaymentService(mockRepo, mockUserRepo, mockPayPal, mockNotifications)

		mockPayPal.On("CaptureOrder", mock.Anything, orderID).Return(&paypal.CaptureResult{
			OrderID:  orderID,
			Status:   "COMPLETED",
			Amount:   "43.20",
			Currency: "USD",
		}, nil).Once()
		mockRepo.On("CreatePayment", mock.Anything, mock.MatchedBy(func(payment *models.Payment) bool {
			return payment.UserID == userID &&
				payment.ProviderOrderID == orderID &&
				payment.Amount.StringFixed(2) == "43.20" &&
				payment.Currency == "USD" &&
				payment.Status == models.PaymentStatusCompleted
		})).Return(nil).Once()
		mockUserRepo.On("GetUserById", mock.Anything, userID).Return(&models.User{
			ID:    userID,
			Name:  "Test User",
			Email: "test@example.com",
		}, nil).Once()
		mockNotifications.On("SendEmail", mock.Anything, mock.MatchedBy(func(req *models.EmailNotificationRequest) bool {
			return req.Recipient == "test@example.com" && req.Subject == "Your order is confirmed"
		})).Return(&models.Notification{}, nil).Once()

		// Act
		resp, err := paymentService.CapturePayment(ctx, userID, &models.CapturePaymentRequest{OrderID: orderID})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "COMPLETED", resp.Status)
		assert.Equal(t, orderID, resp.Payment.ProviderOrderID)
		mockRepo.AssertExpectations(t)
		mockPayPal.AssertExpectations(t)
		mockNotifications.AssertExpectations(t)
	})

	t.Run("Failure - Capture Declined Records Nothing", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockPaymentRepository)
		mockUserRepo := new(MockUserRepository)
		mockPayPal := new(MockPayPalClient)
		mockNotifications := new(MockNotificationService)
		paymentService := service.NewPaymentService(mockRepo, mockUserRepo, mockPayPal, mockNotifications)

		declined := &paypal.CaptureResult{OrderID: orderID, Status: "DECLINED"}
		mockPayPal.On("CaptureOrder", mock.Anything, orderID).
			Return(declined, paypal.ErrCaptureNotCompleted).Once()

		// Act
		resp, err := paymentService.CapturePayment(ctx, userID, &models.CapturePaymentRequest{OrderID: orderID})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
		assert.ErrorIs(t, err, paypal.ErrCaptureNotCompleted)
		mockRepo.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
		mockNotifications.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Provider Unreachable", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockPaymentRepository)
		mockUserRepo := new(MockUserRepository)
		mockPayPal := new(MockPayPalClient)
		mockNotifications := new(MockNotificationService)
		paymentService := service.NewPaymentService(mockRepo, mockUserRepo, mockPayPal, mockNotifications)

		mockPayPal.On("CaptureOrder", mock.Anything, orderID).
			Return(nil, errors.New("connection refused")).Once()

		// Act
		_, err := paymentService.CapturePayment(ctx, userID, &models.CapturePaymentRequest{OrderID: orderID})

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
		mockRepo.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Record Write Fails After Capture", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockPaymentRepository)
		mockUserRepo := new(MockUserRepository)
		mockPayPal := new(MockPayPalClient)
		mockNotifications := new(MockNotificationService)
		paymentService := service.NewPaymentService(mockRepo, mockUserRepo, mockPayPal, mockNotifications)

		mockPayPal.On("CaptureOrder", mock.Anything, orderID).Return(&paypal.CaptureResult{
			OrderID: orderID, Status: "COMPLETED", Amount: "10.00", Currency: "USD",
		}, nil).Once()
		mockRepo.On("CreatePayment", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()

		// Act
		_, err := paymentService.CapturePayment(ctx, userID, &models.CapturePaymentRequest{OrderID: orderID})

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		mockNotifications.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})

	t.Run("Success - Email Failure Does Not Fail The Capture", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockPaymentRepository)
		mockUserRepo := new(MockUserRepository)
		mockPayPal := new(MockPayPalClient)
		mockNotifications := new(MockNotificationService)
		paymentService := service.NewPaymentService(mockRepo, mockUserRepo, mockPayPal, mockNotifications)

		mockPayPal.On("CaptureOrder", mock.Anything, orderID).Return(&paypal.CaptureResult{
			OrderID: orderID, Status: "COMPLETED", Amount: "10.00", Currency: "USD",
		}, nil).Once()
		mockRepo.On("CreatePayment", mock.Anything, mock.Anything).Return(nil).Once()
		mockUserRepo.On("GetUserById", mock.Anything, userID).Return(&models.User{
			ID: userID, Email: "test@example.com",
		}, nil).Once()
		mockNotifications.On("SendEmail", mock.Anything, mock.Anything).
			Return(nil, errors.New("sendgrid down")).Once()

		// Act
		resp, err := paymentService.CapturePayment(ctx, userID, &models.CapturePaymentRequest{OrderID: orderID})

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, resp)
	})
}

func TestGetPaymentByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockPaymentRepository)
		paymentService := service.NewPaymentService(mockRepo, new(MockUserRepository), new(MockPayPalClient), new(MockNotificationService))

		paymentID := uuid.New()
		mockRepo.On("GetPaymentByID", mock.Anything, paymentID).Return(nil, errors.New("no rows")).Once()

		// Act
		payment, err := paymentService.GetPaymentByID(ctx, paymentID)

		// Assert
		assert.Nil(t, payment)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
