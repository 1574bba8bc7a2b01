package cms

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/order"
)

const salesResource = "sales"

// saleInput is the write shape of a POS sale record
type saleInput struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"salePrice"`
	Date  time.Time       `json:"saleDate"`
}

// CreateSale persists a POS sale record
func (c *Client) CreateSale(ctx context.Context, s *order.Sale) (*order.Sale, error) {
	input := saleInput{Name: s.Name, Price: s.Price, Date: s.Date}

	env, err := c.do(ctx, "POST", "/api/"+salesResource, nil, input)
	if err != nil {
		return nil, err
	}
	entry := env.entry()
	if entry == nil {
		return nil, fmt.Errorf("cms: create sale returned no data")
	}
	return saleFromEntry(entry)
}

// ListSales reads a filtered, paginated sale collection
func (c *Client) ListSales(ctx context.Context, opts ListOptions) ([]order.Sale, *Pagination, error) {
	env, err := c.do(ctx, "GET", "/api/"+salesResource, opts.query(), nil)
	if err != nil {
		return nil, nil, err
	}

	entries, err := env.entries()
	if err != nil {
		return nil, nil, err
	}

	sales := make([]order.Sale, 0, len(entries))
	for _, raw := range entries {
		s, err := saleFromEntry(raw)
		if err != nil {
			return nil, nil, err
		}
		sales = append(sales, *s)
	}

	var pagination *Pagination
	if env.Meta != nil {
		pagination = env.Meta.Pagination
	}
	return sales, pagination, nil
}
