package checkout

import (
	"github.com/shopspring/decimal"
)

// CustomerInput is the buyer block of a checkout request
type CustomerInput struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	LastName string `json:"lastName" binding:"required,min=1,max=100"`
	DNI      int    `json:"dni" binding:"required,min=1"`
	Email    string `json:"email" binding:"required,email"`
}

// CartItemInput is one claimed cart line. The claimed price, if any, is
// ignored; checkout re-derives prices from the catalog.
type CartItemInput struct {
	ProductID  int    `json:"productId" binding:"required,min=1"`
	DocumentID string `json:"documentId" binding:"required"`
	Size       string `json:"size"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest represents the storefront checkout submission
type CheckoutRequest struct {
	Customer CustomerInput   `json:"customer" binding:"required"`
	Items    []CartItemInput `json:"items" binding:"required,min=1,dive"`
}

// CheckoutResult is what the storefront needs to hand the buyer over to
// the payment widget
type CheckoutResult struct {
	PreferenceID string `json:"preferenceId"`
	InitPoint    string `json:"initPoint"`
	OrderNumber  string `json:"orderNumber"`
}

// RegisterSaleRequest represents a point-of-sale transaction
type RegisterSaleRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	// SalePrice overrides the derived price, for in-store discounts
	SalePrice *decimal.Decimal `json:"salePrice"`
}
