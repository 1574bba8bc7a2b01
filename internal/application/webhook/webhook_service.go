// Package webhook processes payment-provider notifications. The HTTP
// contract is acknowledge-always: whatever the payload looks like, the
// endpoint answers 200 so the provider stops retrying. All interpretation
// problems surface in logs and in the Result, never as HTTP errors.
package webhook

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/payment"
)

// Notification is one provider callback as received on the wire
type Notification struct {
	RawBody         []byte
	Query           url.Values
	SignatureHeader string
}

// Result describes what the processor did with a notification
type Result struct {
	EventType  string `json:"eventType"`
	PaymentID  string `json:"paymentId,omitempty"`
	Skipped    bool   `json:"skipped,omitempty"`
	SkipReason string `json:"skipReason,omitempty"`
}

// PaymentGateway is the provider-side surface the processor needs.
// Satisfied by *payment.MercadoPagoAdapter.
type PaymentGateway interface {
	GetPayment(ctx context.Context, paymentID string) (*payment.Payment, error)
	SignatureConfigured() bool
	VerifySignature(rawBody []byte, header string) bool
}

// OrderConfirmer applies a payment confirmation to the matching order.
// Satisfied by *checkout.OrderService.
type OrderConfirmer interface {
	UpdateOrderPayment(ctx context.Context, orderNumber, paymentID, status, payerEmail string) error
}

// Service normalizes, deduplicates and reconciles payment notifications.
// A nil gateway means no provider credentials are configured; notifications
// are still acknowledged and logged, just never reconciled.
type Service struct {
	gateway PaymentGateway
	orders  OrderConfirmer
	store   shared.IdempotencyStore
	log     *zap.Logger
}

// NewService creates a new webhook Service
func NewService(gateway PaymentGateway, orders OrderConfirmer, store shared.IdempotencyStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{gateway: gateway, orders: orders, store: store, log: log}
}

// Process handles one notification end to end. It never returns an error
// for malformed payloads; the returned Result records what happened.
func (s *Service) Process(ctx context.Context, n Notification) (*Result, error) {
	body := parseBody(n.RawBody)

	result := &Result{
		EventType: extractEventType(body, n.Query),
		PaymentID: extractPaymentID(body, n.Query),
	}
	action := extractAction(body)

	if s.gateway != nil && s.gateway.SignatureConfigured() {
		if !s.gateway.VerifySignature(n.RawBody, n.SignatureHeader) {
			s.log.Warn("webhook signature verification failed",
				zap.String("event_type", result.EventType),
				zap.String("payment_id", result.PaymentID))
			result.Skipped = true
			result.SkipReason = "invalid signature"
			return result, nil
		}
	}

	if result.PaymentID == "" {
		s.log.Info("webhook notification without payment id",
			zap.String("event_type", result.EventType))
		result.Skipped = true
		result.SkipReason = "no payment id"
		return result, nil
	}

	// The dedupe key carries the action so distinct lifecycle notifications
	// of one payment (payment.created, payment.updated) never collide
	eventID := result.EventType + ":" + result.PaymentID
	if action != "" {
		eventID = action + ":" + result.PaymentID
	}
	seen, err := s.store.IsProcessed(ctx, eventID)
	if err != nil {
		// A broken store must not drop notifications; process anyway
		s.log.Error("idempotency store failure, processing without dedupe",
			zap.String("event_id", eventID),
			zap.Error(err))
	} else if seen {
		s.log.Info("duplicate webhook notification suppressed",
			zap.String("event_id", eventID))
		result.Skipped = true
		result.SkipReason = "duplicate"
		return result, nil
	}

	if !strings.Contains(result.EventType, "payment") {
		s.log.Info("webhook notification ignored",
			zap.String("event_type", result.EventType),
			zap.String("payment_id", result.PaymentID))
		s.markProcessed(ctx, eventID)
		return result, nil
	}

	if s.gateway == nil {
		s.log.Warn("payment notification received without provider credentials",
			zap.String("payment_id", result.PaymentID))
		return result, nil
	}

	// Marked only after clean reconciliation so a transient provider or
	// order-store failure keeps the delivery retryable. Simultaneous
	// deliveries of one notification may both reconcile; the confirmation
	// write is idempotent for a given payment id.
	if s.reconcile(ctx, result.PaymentID) {
		s.markProcessed(ctx, eventID)
	}
	return result, nil
}

func (s *Service) markProcessed(ctx context.Context, eventID string) {
	if _, err := s.store.MarkProcessed(ctx, eventID, shared.DefaultIdempotencyTTL); err != nil {
		s.log.Error("failed to record processed notification",
			zap.String("event_id", eventID),
			zap.Error(err))
	}
}

// reconcile fetches the payment and, when approved, confirms the matching
// order. Failures are logged and swallowed so the provider always gets its
// acknowledgment; the return value reports whether the notification was
// handled cleanly and may be deduplicated from here on.
func (s *Service) reconcile(ctx context.Context, paymentID string) bool {
	p, err := s.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		s.log.Error("payment fetch failed",
			zap.String("payment_id", paymentID),
			zap.Error(err))
		return false
	}

	s.log.Info("payment notification processed",
		zap.String("payment_id", paymentID),
		zap.String("status", p.Status),
		zap.String("status_detail", p.StatusDetail),
		zap.String("external_reference", p.ExternalReference))

	if p.Status != payment.PaymentStatusApproved || p.ExternalReference == "" {
		return true
	}

	err = s.orders.UpdateOrderPayment(ctx, p.ExternalReference, strconv.FormatInt(p.ID, 10), p.Status, p.Payer.Email)
	if err != nil {
		s.log.Error("order confirmation failed",
			zap.String("order", p.ExternalReference),
			zap.String("payment_id", paymentID),
			zap.Error(err))
		return false
	}
	return true
}

// parseBody decodes the notification body into a generic map. An empty or
// unparseable body yields nil; the query string still carries enough to
// identify most notifications.
func parseBody(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	return body
}

// extractEventType reads the event type from the body fields the provider
// has used across payload generations, then from the query string
func extractEventType(body map[string]any, query url.Values) string {
	for _, field := range []string{"type", "topic", "action"} {
		if v, ok := body[field].(string); ok && v != "" {
			return v
		}
	}
	for _, param := range []string{"type", "topic"} {
		if v := query.Get(param); v != "" {
			return v
		}
	}
	return "unknown"
}

// extractAction reads the lifecycle action (payment.created,
// payment.updated) when the payload carries one
func extractAction(body map[string]any) string {
	if v, ok := body["action"].(string); ok {
		return v
	}
	return ""
}

// extractPaymentID normalizes the five payload shapes the provider sends.
// Precedence: data.id, resource.id, a /payments/ resource URL, a top-level
// id, then the query string.
func extractPaymentID(body map[string]any, query url.Values) string {
	if data, ok := body["data"].(map[string]any); ok {
		if id := stringValue(data["id"]); id != "" {
			return id
		}
	}
	if resource, ok := body["resource"].(map[string]any); ok {
		if id := stringValue(resource["id"]); id != "" {
			return id
		}
	}
	if resource, ok := body["resource"].(string); ok && strings.Contains(resource, "/payments/") {
		parts := strings.Split(strings.TrimSuffix(resource, "/"), "/")
		if id := parts[len(parts)-1]; id != "" {
			return id
		}
	}
	if id := stringValue(body["id"]); id != "" {
		return id
	}
	if id := query.Get("data.id"); id != "" {
		return id
	}
	return query.Get("id")
}

// stringValue renders a decoded JSON scalar as its wire form. Numeric ids
// arrive as JSON numbers and must not pick up an exponent or decimals.
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
