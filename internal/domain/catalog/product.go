package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Product represents a storefront product as served by the content API.
// The CMS record is authoritative; instances here are per-request snapshots
// and are never written back except through the content-API client.
type Product struct {
	ID         int             `json:"id"`
	DocumentID string          `json:"documentId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Offer      bool            `json:"offer"`
	OfferPrice decimal.Decimal `json:"offerPrice"`
	Stock      int             `json:"stock"`
	Show       bool            `json:"show"`
	Sizes      []Size          `json:"sizes,omitempty"`
	Categories []Category      `json:"typeProducts,omitempty"`
	Media      []Media         `json:"media,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Media represents an uploaded asset attached to a product
type Media struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alternativeText,omitempty"`
}

// NewProduct creates a product snapshot, validating the invariants the
// storefront relies on
func NewProduct(id int, documentID, name string, price decimal.Decimal, stock int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	return &Product{
		ID:         id,
		DocumentID: documentID,
		Name:       strings.TrimSpace(name),
		Price:      price,
		OfferPrice: decimal.Zero,
		Stock:      stock,
		Show:       true,
	}, nil
}

// EffectivePrice returns the price a buyer actually pays: the offer price
// when the offer flag is set, the list price otherwise
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.Offer {
		return p.OfferPrice
	}
	return p.Price
}

// HasSize reports whether the product carries the given size code.
// Comparison is against the normalized code.
func (p *Product) HasSize(code string) bool {
	normalized := NormalizeSizeCode(code)
	for _, s := range p.Sizes {
		if s.Code == normalized {
			return true
		}
	}
	return false
}

// SetOffer enables or disables the offer price
func (p *Product) SetOffer(offer bool, offerPrice decimal.Decimal) error {
	if offer && !offerPrice.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Offer price must be positive")
	}
	p.Offer = offer
	p.OfferPrice = offerPrice
	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
