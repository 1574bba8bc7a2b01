package cms

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
)

// productAttrs are the record fields of a product entry
type productAttrs struct {
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Offer        bool            `json:"offer"`
	OfferPrice   decimal.Decimal `json:"offerPrice"`
	Stock        int             `json:"stock"`
	Show         bool            `json:"show"`
	Sizes        entryList       `json:"sizes"`
	TypeProducts entryList       `json:"typeProducts"`
	Media        entryList       `json:"media"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func productFromEntry(raw json.RawMessage) (*catalog.Product, error) {
	var attrs productAttrs
	id, documentID, err := decodeEntry(raw, &attrs)
	if err != nil {
		return nil, err
	}

	p := &catalog.Product{
		ID:         id,
		DocumentID: documentID,
		Name:       attrs.Name,
		Price:      attrs.Price,
		Offer:      attrs.Offer,
		OfferPrice: attrs.OfferPrice,
		Stock:      attrs.Stock,
		Show:       attrs.Show,
		CreatedAt:  attrs.CreatedAt,
		UpdatedAt:  attrs.UpdatedAt,
	}

	for _, rawSize := range attrs.Sizes {
		s, err := sizeFromEntry(rawSize)
		if err != nil {
			return nil, err
		}
		p.Sizes = append(p.Sizes, *s)
	}
	for _, rawCat := range attrs.TypeProducts {
		c, err := categoryFromEntry(rawCat)
		if err != nil {
			return nil, err
		}
		p.Categories = append(p.Categories, *c)
	}
	for _, rawMedia := range attrs.Media {
		m, err := mediaFromEntry(rawMedia)
		if err != nil {
			return nil, err
		}
		p.Media = append(p.Media, *m)
	}
	return p, nil
}

type sizeAttrs struct {
	Code string `json:"size"`
}

func sizeFromEntry(raw json.RawMessage) (*catalog.Size, error) {
	var attrs sizeAttrs
	id, documentID, err := decodeEntry(raw, &attrs)
	if err != nil {
		return nil, err
	}
	return &catalog.Size{
		ID:         id,
		DocumentID: documentID,
		Code:       catalog.NormalizeSizeCode(attrs.Code),
	}, nil
}

type categoryAttrs struct {
	Label string `json:"type"`
}

func categoryFromEntry(raw json.RawMessage) (*catalog.Category, error) {
	var attrs categoryAttrs
	id, documentID, err := decodeEntry(raw, &attrs)
	if err != nil {
		return nil, err
	}
	return &catalog.Category{
		ID:         id,
		DocumentID: documentID,
		Label:      catalog.NormalizeCategoryLabel(attrs.Label),
	}, nil
}

type mediaAttrs struct {
	URL string `json:"url"`
	Alt string `json:"alternativeText"`
}

func mediaFromEntry(raw json.RawMessage) (*catalog.Media, error) {
	var attrs mediaAttrs
	id, _, err := decodeEntry(raw, &attrs)
	if err != nil {
		return nil, err
	}
	return &catalog.Media{ID: id, URL: attrs.URL, Alt: attrs.Alt}, nil
}

// orderAttrs are the record fields of an order entry. Line items are stored
// as a JSON component list.
type orderAttrs struct {
	Number           string           `json:"order"`
	Name             string           `json:"name"`
	LastName         string           `json:"lastName"`
	DNI              int              `json:"dni"`
	Email            string           `json:"email"`
	Items            []order.LineItem `json:"items"`
	Total            decimal.Decimal  `json:"total"`
	PaymentConfirmed bool             `json:"orderPayment"`
	PayerEmail       string           `json:"payerEmail"`
	PaymentID        string           `json:"mpPaymentId"`
	PaymentStatus    string           `json:"mpPaymentStatus"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// OrderRecord pairs the CMS record identity with the domain order, so
// callers can address the record again for updates
type OrderRecord struct {
	ID         int
	DocumentID string
	Order      order.Order
}

func orderFromEntry(raw json.RawMessage) (*OrderRecord, error) {
	var attrs orderAttrs
	id, documentID, err := decodeEntry(raw, &attrs)
	if err != nil {
		return nil, err
	}
	return &OrderRecord{
		ID:         id,
		DocumentID: documentID,
		Order: order.Order{
			Number: attrs.Number,
			Customer: order.Customer{
				Name:     attrs.Name,
				LastName: attrs.LastName,
				DNI:      attrs.DNI,
				Email:    attrs.Email,
			},
			Items:            attrs.Items,
			Total:            attrs.Total,
			PaymentConfirmed: attrs.PaymentConfirmed,
			PayerEmail:       attrs.PayerEmail,
			PaymentID:        attrs.PaymentID,
			PaymentStatus:    attrs.PaymentStatus,
			CreatedAt:        attrs.CreatedAt,
		},
	}, nil
}

type saleAttrs struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"salePrice"`
	Date  time.Time       `json:"saleDate"`
}

func saleFromEntry(raw json.RawMessage) (*order.Sale, error) {
	var attrs saleAttrs
	if _, _, err := decodeEntry(raw, &attrs); err != nil {
		return nil, err
	}
	return &order.Sale{Name: attrs.Name, Price: attrs.Price, Date: attrs.Date}, nil
}
