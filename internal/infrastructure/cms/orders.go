package cms

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

const ordersResource = "orders"

// orderInput is the write shape of an order record
type orderInput struct {
	Number           string           `json:"order"`
	Name             string           `json:"name"`
	LastName         string           `json:"lastName"`
	DNI              int              `json:"dni"`
	Email            string           `json:"email"`
	Items            []order.LineItem `json:"items"`
	Total            decimal.Decimal  `json:"total"`
	PaymentConfirmed bool             `json:"orderPayment"`
}

// OrderPaymentUpdate carries the confirmation fields the webhook flow sets
type OrderPaymentUpdate struct {
	PaymentConfirmed bool   `json:"orderPayment"`
	PayerEmail       string `json:"payerEmail,omitempty"`
	PaymentID        string `json:"mpPaymentId,omitempty"`
	PaymentStatus    string `json:"mpPaymentStatus,omitempty"`
}

// CreateOrder persists a new order record
func (c *Client) CreateOrder(ctx context.Context, o *order.Order) (*OrderRecord, error) {
	input := orderInput{
		Number:           o.Number,
		Name:             o.Customer.Name,
		LastName:         o.Customer.LastName,
		DNI:              o.Customer.DNI,
		Email:            o.Customer.Email,
		Items:            o.Items,
		Total:            o.Total,
		PaymentConfirmed: o.PaymentConfirmed,
	}

	env, err := c.do(ctx, "POST", "/api/"+ordersResource, nil, input)
	if err != nil {
		return nil, err
	}
	entry := env.entry()
	if entry == nil {
		return nil, fmt.Errorf("cms: create order returned no data")
	}
	return orderFromEntry(entry)
}

// ListOrders reads a filtered, paginated order collection
func (c *Client) ListOrders(ctx context.Context, opts ListOptions) ([]OrderRecord, *Pagination, error) {
	env, err := c.do(ctx, "GET", "/api/"+ordersResource, opts.query(), nil)
	if err != nil {
		return nil, nil, err
	}

	entries, err := env.entries()
	if err != nil {
		return nil, nil, err
	}

	records := make([]OrderRecord, 0, len(entries))
	for _, raw := range entries {
		rec, err := orderFromEntry(raw)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, *rec)
	}

	var pagination *Pagination
	if env.Meta != nil {
		pagination = env.Meta.Pagination
	}
	return records, pagination, nil
}

// GetOrder fetches one order by numeric id or document id
func (c *Client) GetOrder(ctx context.Context, idOrDocumentID string) (*OrderRecord, error) {
	var record *OrderRecord
	err := c.withNotFoundFallback(ctx, ordersResource, idOrDocumentID, func(id string) error {
		env, err := c.do(ctx, "GET", "/api/"+ordersResource+"/"+id, nil, nil)
		if err != nil {
			return err
		}
		entry := env.entry()
		if entry == nil {
			return fmt.Errorf("cms: order %q: %w", id, shared.ErrNotFound)
		}
		record, err = orderFromEntry(entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// FindOrderByNumber locates an order by its order number, the correlation
// key webhook payloads carry as external_reference
func (c *Client) FindOrderByNumber(ctx context.Context, number string) (*OrderRecord, error) {
	records, _, err := c.ListOrders(ctx, ListOptions{
		Filters:  map[string]string{"order": number},
		PageSize: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("cms: order number %q: %w", number, shared.ErrNotFound)
	}
	return &records[0], nil
}

// UpdateOrderPayment sets the payment-confirmation fields of an order
func (c *Client) UpdateOrderPayment(ctx context.Context, idOrDocumentID string, update OrderPaymentUpdate) error {
	return c.withNotFoundFallback(ctx, ordersResource, idOrDocumentID, func(id string) error {
		_, err := c.do(ctx, "PUT", "/api/"+ordersResource+"/"+id, nil, update)
		return err
	})
}
