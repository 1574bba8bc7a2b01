package payment

import "errors"

const defaultMercadoPagoBaseURL = "https://api.mercadopago.com"

// MercadoPagoConfig contains configuration for the Mercado Pago checkout API
type MercadoPagoConfig struct {
	// AccessToken is the server-side bearer token (APP_USR-... / TEST-...)
	AccessToken string
	// PublicKey is the client-side key, exposed to the payment widget
	PublicKey string
	// WebhookSecret signs webhook notifications; empty disables verification
	WebhookSecret string
	// BaseURL overrides the API endpoint (tests, sandboxes)
	BaseURL string
}

// Errors for configuration validation
var (
	ErrMissingAccessToken = errors.New("mercadopago: missing access token")
)

// Validate validates the configuration
func (c *MercadoPagoConfig) Validate() error {
	if c.AccessToken == "" {
		return ErrMissingAccessToken
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultMercadoPagoBaseURL
	}
	return nil
}
