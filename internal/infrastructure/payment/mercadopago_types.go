package payment

import (
	"github.com/shopspring/decimal"
)

// PreferenceItem is one purchasable line of a payment preference
type PreferenceItem struct {
	ID          string          `json:"id" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CurrencyID  string          `json:"currency_id" validate:"required,len=3,uppercase"`
	Description string          `json:"description,omitempty"`
}

// Identification is the payer's national identity document
type Identification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

// Payer identifies the buyer on the preference
type Payer struct {
	Name           string          `json:"name,omitempty"`
	Surname        string          `json:"surname,omitempty"`
	Email          string          `json:"email,omitempty"`
	Identification *Identification `json:"identification,omitempty"`
}

// BackURLs are the pages the buyer is redirected to after paying
type BackURLs struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
	Pending string `json:"pending,omitempty"`
}

// PreferenceRequest is the payload for POST /checkout/preferences
type PreferenceRequest struct {
	Items []PreferenceItem `json:"items" validate:"required,min=1,dive"`
	Payer *Payer           `json:"payer,omitempty"`
	// ExternalReference is the local order number; webhook payloads echo it
	// back so notifications can be correlated with the order record
	ExternalReference string   `json:"external_reference,omitempty"`
	BackURLs          BackURLs `json:"back_urls"`
	// NotificationURL must be omitted entirely when the site has no public
	// HTTPS origin, otherwise the provider rejects the preference
	NotificationURL string `json:"notification_url,omitempty"`
	AutoReturn      string `json:"auto_return,omitempty"`
}

// Preference is the provider-side object the widget renders from
type Preference struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point,omitempty"`
	ExternalRef      string `json:"external_reference,omitempty"`
}

// Payment is the provider's payment record, fetched for reconciliation
type Payment struct {
	ID                int64           `json:"id"`
	Status            string          `json:"status"`
	StatusDetail      string          `json:"status_detail"`
	ExternalReference string          `json:"external_reference"`
	TransactionAmount decimal.Decimal `json:"transaction_amount"`
	Payer             PaymentPayer    `json:"payer"`
}

// PaymentPayer is the payer block of a payment record
type PaymentPayer struct {
	Email string `json:"email"`
}

// PaymentStatusApproved is the status that confirms an order
const PaymentStatusApproved = "approved"
