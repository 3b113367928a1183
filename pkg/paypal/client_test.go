package paypal_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-dev/storefront-platform/pkg/paypal"
)

func captureBody(status string) string {
	return fmt.Sprintf(`{
		"id": "5O190127TN364715T",
		"status": %q,
		"purchase_units": [{
			"payments": {
				"captures": [{
					"amount": {"currency_code": "USD", "value": "43.20"}
				}]
			}
		}]
	}`, status)
}

// newProviderStub serves the token endpoint plus a canned capture response.
func newProviderStub(t *testing.T, captureStatus int, captureResponse string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client-id" || pass != "client-secret" {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token": "test-token", "token_type": "Bearer", "expires_in": 3600}`)
	})
	mux.HandleFunc("POST /v2/checkout/orders/{id}/capture", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(captureStatus)
		fmt.Fprint(w, captureResponse)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestCaptureOrder(t *testing.T) {
	t.Run("Success - Completed Capture", func(t *testing.T) {
		// Arrange
		server := newProviderStub(t, http.StatusCreated, captureBody("COMPLETED"))
		client := paypal.NewClient(server.URL, "client-id", "client-secret")

		// Act
		result, err := client.CaptureOrder(t.Context(), "5O190127TN364715T")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", result.Status)
		assert.Equal(t, "5O190127TN364715T", result.OrderID)
		assert.Equal(t, "43.20", result.Amount)
		assert.Equal(t, "USD", result.Currency)
	})

	t.Run("Failure - Declined Capture", func(t *testing.T) {
		// Arrange: provider answers 201 but with a non-completed status
		server := newProviderStub(t, http.StatusCreated, captureBody("DECLINED"))
		client := paypal.NewClient(server.URL, "client-id", "client-secret")

		// Act
		result, err := client.CaptureOrder(t.Context(), "5O190127TN364715T")

		// Assert
		assert.ErrorIs(t, err, paypal.ErrCaptureNotCompleted)
		require.NotNil(t, result)
		assert.Equal(t, "DECLINED", result.Status)
	})

	t.Run("Failure - Provider Error Status", func(t *testing.T) {
		// Arrange
		server := newProviderStub(t, http.StatusUnprocessableEntity, `{"name": "UNPROCESSABLE_ENTITY"}`)
		client := paypal.NewClient(server.URL, "client-id", "client-secret")

		// Act
		result, err := client.CaptureOrder(t.Context(), "5O190127TN364715T")

		// Assert
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.NotErrorIs(t, err, paypal.ErrCaptureNotCompleted)
	})

	t.Run("Failure - Bad Credentials", func(t *testing.T) {
		// Arrange
		server := newProviderStub(t, http.StatusCreated, captureBody("COMPLETED"))
		client := paypal.NewClient(server.URL, "client-id", "wrong-secret")

		// Act
		_, err := client.CaptureOrder(t.Context(), "5O190127TN364715T")

		// Assert
		assert.Error(t, err)
	})
}

func TestPing(t *testing.T) {
	// Arrange
	server := newProviderStub(t, http.StatusCreated, captureBody("COMPLETED"))
	client := paypal.NewClient(server.URL, "client-id", "client-secret")

	// Act
	err := client.Ping(t.Context())

	// Assert
	assert.NoError(t, err)
}
