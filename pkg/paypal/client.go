// Package paypal is a stateless wrapper over the payment provider's REST
// API: exchange client credentials for a token, then capture a
// previously-created order. It keeps no local state and offers no retry or
// idempotency; a double capture is the provider's to reject.
package paypal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrCaptureNotCompleted is returned when the provider answers with any
// capture status other than COMPLETED. The caller must treat it as a failed
// payment and record nothing.
var ErrCaptureNotCompleted = errors.New("capture not completed")

type Client interface {
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
	Ping(ctx context.Context) error
}

type CaptureResult struct {
	OrderID  string
	Status   string
	Amount   string
	Currency string
}

type captureResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				Amount struct {
					CurrencyCode string `json:"currency_code"`
					Value        string `json:"value"`
				} `json:"amount"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

type paypalClient struct {
	baseURL string
	// token source handles the client-credentials exchange and refresh
	httpClient *http.Client
}

func NewClient(baseURL, clientID, clientSecret string) Client {

	oauthCfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     baseURL + "/v1/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	httpClient := oauthCfg.Client(context.Background())
	httpClient.Timeout = 15 * time.Second

	return &paypalClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// CaptureOrder implements Client.
func (c *paypalClient) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {

	url := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.baseURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build capture request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("capture request failed: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read capture response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("capture returned status %d: %s", resp.StatusCode, string(body))
	}

	var captureResp captureResponse

	if err := json.Unmarshal(body, &captureResp); err != nil {
		return nil, fmt.Errorf("failed to parse capture response: %w", err)
	}

	result := &CaptureResult{
		OrderID: captureResp.ID,
		Status:  captureResp.Status,
	}

	if len(captureResp.PurchaseUnits) > 0 && len(captureResp.PurchaseUnits[0].Payments.Captures) > 0 {
		amount := captureResp.PurchaseUnits[0].Payments.Captures[0].Amount
		result.Amount = amount.Value
		result.Currency = amount.CurrencyCode
	}

	// fail closed on anything that isn't a completed capture
	if captureResp.Status != "COMPLETED" {
		return result, fmt.Errorf("%w: status %q for order %s", ErrCaptureNotCompleted, captureResp.Status, orderID)
	}

	return result, nil
}

// Ping implements Client. Forcing a token fetch exercises both network
// reachability and the configured credentials.
func (c *paypalClient) Ping(ctx context.Context) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/oauth2/token", nil)
	if err != nil {
		return fmt.Errorf("failed to build ping request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ping request failed: %w", err)
	}

	defer resp.Body.Close()

	return nil
}
