package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

// Request/response errors
var (
	ErrRequestFailed = errors.New("mercadopago: request failed")
	ErrUnavailable   = errors.New("mercadopago: API unavailable")
	ErrInvalidItems  = errors.New("mercadopago: invalid preference items")
)

var validate = validator.New()

// MercadoPagoAdapter talks to the Mercado Pago checkout API
type MercadoPagoAdapter struct {
	config     *MercadoPagoConfig
	httpClient *http.Client
}

// NewMercadoPagoAdapter creates a new adapter
func NewMercadoPagoAdapter(config *MercadoPagoConfig) (*MercadoPagoAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &MercadoPagoAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// PublicKey returns the client-side key for the payment widget
func (a *MercadoPagoAdapter) PublicKey() string {
	return a.config.PublicKey
}

// CreatePreference creates a payment preference. The item schema is strict:
// every line needs an id, a title, a quantity of at least one, a positive
// unit price and a three-letter uppercase currency.
func (a *MercadoPagoAdapter) CreatePreference(ctx context.Context, req *PreferenceRequest) (*Preference, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidItems, err)
	}
	for i, item := range req.Items {
		if !item.UnitPrice.IsPositive() {
			return nil, fmt.Errorf("%w: item %d unit_price must be positive", ErrInvalidItems, i)
		}
	}

	var pref Preference
	if err := a.doJSON(ctx, "POST", "/checkout/preferences", req, &pref); err != nil {
		return nil, err
	}
	if pref.ID == "" {
		return nil, fmt.Errorf("%w: preference response carried no id", ErrRequestFailed)
	}
	return &pref, nil
}

// GetPayment fetches a payment record by id
func (a *MercadoPagoAdapter) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	if paymentID == "" {
		return nil, fmt.Errorf("%w: empty payment id", ErrRequestFailed)
	}

	var payment Payment
	if err := a.doJSON(ctx, "GET", "/v1/payments/"+paymentID, nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// doJSON performs an authenticated JSON request against the API. Non-2xx
// responses embed the status and body verbatim for diagnosis.
func (a *MercadoPagoAdapter) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("mercadopago: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("mercadopago: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.config.AccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("mercadopago: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: HTTP %d: %s", ErrRequestFailed, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("mercadopago: failed to parse response: %w", err)
		}
	}
	return nil
}
