package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Sale is a flat point-of-sale record: what was sold, for how much, when.
// Created once per POS transaction and immutable afterwards.
type Sale struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"salePrice"`
	Date  time.Time       `json:"saleDate"`
}

// NewSale creates a POS sale record dated now
func NewSale(name string, price decimal.Decimal) (*Sale, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale name cannot be empty")
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale price must be positive")
	}
	return &Sale{
		Name:  strings.TrimSpace(name),
		Price: price,
		Date:  time.Now(),
	}, nil
}
