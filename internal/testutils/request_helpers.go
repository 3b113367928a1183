package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"

	"github.com/storefront-dev/storefront-platform/internal/api/middleware"
	"github.com/storefront-dev/storefront-platform/internal/models"
)

const testEmail = "test@example.com"

// newTestRequest builds the request every handler test starts from: path
// values applied and a discard logger in context, matching what the logging
// middleware would have installed.
func newTestRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return req.WithContext(context.WithValue(req.Context(), middleware.LoggerKey, logger))
}

// CreateTestRequestWithContext returns a request carrying authenticated
// claims for userID, as the auth middleware would produce.
func CreateTestRequestWithContext(method, target string, body io.Reader, userID uuid.UUID, pathParams map[string]string) *http.Request {
	req := newTestRequest(method, target, body, pathParams)

	claims := &models.Claims{UserID: userID, Email: testEmail}

	return req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, claims))
}

// CreateTestRequestWithoutContext returns a request with no claims, for
// exercising the unauthenticated paths.
func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	return newTestRequest(method, target, body, pathParams)
}
