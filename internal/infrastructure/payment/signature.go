package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignatureConfigured reports whether webhook signature verification is on
func (a *MercadoPagoAdapter) SignatureConfigured() bool {
	return a.config.WebhookSecret != ""
}

// VerifySignature checks an HMAC-SHA256 signature over the raw webhook body.
// The header value may be the bare hex digest or prefixed as sha256=<hex>.
// Comparison is constant time. Returns true when no secret is configured.
func (a *MercadoPagoAdapter) VerifySignature(rawBody []byte, header string) bool {
	if a.config.WebhookSecret == "" {
		return true
	}
	if header == "" {
		return false
	}

	provided := strings.TrimSpace(header)
	provided = strings.TrimPrefix(provided, "sha256=")

	providedBytes, err := hex.DecodeString(provided)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(a.config.WebhookSecret))
	mac.Write(rawBody)
	return hmac.Equal(mac.Sum(nil), providedBytes)
}
