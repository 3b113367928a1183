package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/storefront-dev/storefront-platform/internal/models"
	"github.com/storefront-dev/storefront-platform/pkg/paypal"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetCart(ctx context.Context, userID uuid.UUID, currency string) (*models.Cart, error) {
	args := m.Called(ctx, userID, currency)
	if cart := args.Get(0); cart != nil {
		return cart.(*models.Cart), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID, currency string) (*models.Cart, error) {
	args := m.Called(ctx, userID, currency)
	if cart := args.Get(0); cart != nil {
		return cart.(*models.Cart), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartRepository) UpsertItem(ctx context.Context, cart *models.Cart, item *models.CartItem) error {
	return m.Called(ctx, cart, item).Error(0)
}

func (m *MockCartRepository) UpdateItemQuantity(ctx context.Context, cart *models.Cart, item *models.CartItem) error {
	return m.Called(ctx, cart, item).Error(0)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, cart *models.Cart, itemID uuid.UUID) error {
	return m.Called(ctx, cart, itemID).Error(0)
}

func (m *MockCartRepository) ClearCart(ctx context.Context, cart *models.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if product := args.Get(0); product != nil {
		return product.(*models.Product), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error) {
	args := m.Called(ctx, filter)
	if products := args.Get(0); products != nil {
		return products.([]*models.Product), args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentRepository) GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if payment := args.Get(0); payment != nil {
		return payment.(*models.Payment), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Payment, int, error) {
	args := m.Called(ctx, userID, page, size)
	if payments := args.Get(0); payments != nil {
		return payments.([]*models.Payment), args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserById(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}

	return nil, args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.Notification, error) {
	args := m.Called(ctx, req)
	if notification := args.Get(0); notification != nil {
		return notification.(*models.Notification), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockNotificationService) ListNotifications(ctx context.Context, recipient string, page, size int) ([]*models.Notification, int, error) {
	args := m.Called(ctx, recipient, page, size)
	if notifications := args.Get(0); notifications != nil {
		return notifications.([]*models.Notification), args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

type MockPayPalClient struct {
	mock.Mock
}

func (m *MockPayPalClient) CaptureOrder(ctx context.Context, orderID string) (*paypal.CaptureResult, error) {
	args := m.Called(ctx, orderID)
	if result := args.Get(0); result != nil {
		return result.(*paypal.CaptureResult), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPayPalClient) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, value any) (bool, error) {
	args := m.Called(ctx, key, value)

	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCache) Close() error {
	return m.Called().Error(0)
}

// noCache is a pass-through cache for tests that do not exercise caching.
type noCache struct{}

func (noCache) Get(ctx context.Context, key string, value any) (bool, error) { return false, nil }

func (noCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error { return nil }

func (noCache) Delete(ctx context.Context, key string) error { return nil }

func (noCache) Close() error { return nil }

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *MockNotificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, sendErr string) error {
	return m.Called(ctx, id, status, sendErr).Error(0)
}

func (m *MockNotificationRepository) ListNotifications(ctx context.Context, recipient string, page, size int) ([]*models.Notification, int, error) {
	args := m.Called(ctx, recipient, page, size)
	if notifications := args.Get(0); notifications != nil {
		return notifications.([]*models.Notification), args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	return m.Called(ctx, req).Error(0)
}
