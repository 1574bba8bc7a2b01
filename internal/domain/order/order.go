package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// NumberPrefix is the fixed prefix of every order number
const NumberPrefix = "ORD-"

// Customer holds the buyer data captured at checkout
type Customer struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	DNI      int    `json:"dni"`
	Email    string `json:"email"`
}

// LineItem is one purchased line, priced server-side at order creation
type LineItem struct {
	ProductID  int             `json:"productId"`
	DocumentID string          `json:"documentId"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
	Size       string          `json:"size,omitempty"`
}

// Order is the record persisted in the CMS at checkout time. It is created
// once with PaymentConfirmed=false and mutated exactly once by the webhook
// flow to set the confirmation fields. Orders are never deleted.
type Order struct {
	Number           string          `json:"order"`
	Customer         Customer        `json:"customer"`
	Items            []LineItem      `json:"items"`
	Total            decimal.Decimal `json:"total"`
	PaymentConfirmed bool            `json:"orderPayment"`
	PayerEmail       string          `json:"payerEmail,omitempty"`
	PaymentID        string          `json:"mpPaymentId,omitempty"`
	PaymentStatus    string          `json:"mpPaymentStatus,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// New creates an order in the initial, unpaid state
func New(customer Customer, items []LineItem, total decimal.Decimal) (*Order, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		Number:    NewNumber(),
		Customer:  customer,
		Items:     items,
		Total:     total,
		CreatedAt: time.Now(),
	}, nil
}

// Validate checks the customer fields the checkout requires
func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.LastName) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer name and last name are required")
	}
	if c.DNI <= 0 {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer DNI must be a positive integer")
	}
	if !strings.Contains(c.Email, "@") {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer email is invalid")
	}
	return nil
}

// NewNumber generates a shareable order number: the fixed prefix plus a
// 12-character token derived from a random UUID. The token is the webhook
// correlation key (sent to the provider as external_reference).
func NewNumber() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:12]
	return NumberPrefix + token
}

// ConfirmPayment marks the order as paid. Confirming twice with the same
// payment id is a no-op; confirming with a different payment id is rejected.
func (o *Order) ConfirmPayment(paymentID, status, payerEmail string) error {
	if o.PaymentConfirmed {
		if o.PaymentID == paymentID {
			return nil
		}
		return shared.NewDomainError("INVALID_STATE", "Order payment already confirmed with a different payment")
	}

	o.PaymentConfirmed = true
	o.PaymentID = paymentID
	o.PaymentStatus = status
	o.PayerEmail = payerEmail
	return nil
}
