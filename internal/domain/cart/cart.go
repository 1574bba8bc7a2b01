// Package cart implements the pure cart calculations shared by the online
// checkout and the point-of-sale flow. Functions are total, perform no I/O
// and never mutate their inputs; callers always receive a fresh slice.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
)

// Item is a single cart line: a product snapshot, an optional size and a
// positive quantity. The snapshot's price is never trusted for money
// movement; checkout re-derives prices from the CMS.
type Item struct {
	Product  catalog.Product `json:"product"`
	Size     string          `json:"size,omitempty"`
	Quantity int             `json:"quantity"`
}

// Cart is an ordered list of items
type Cart []Item

// Add merges the product into the cart. An existing line for the same
// product id gets its quantity summed; otherwise a new line is appended.
// Non-positive quantities default to 1.
func Add(c Cart, product catalog.Product, size string, qty int) Cart {
	if qty <= 0 {
		qty = 1
	}

	out := make(Cart, len(c))
	copy(out, c)

	for i := range out {
		if out[i].Product.ID == product.ID {
			out[i].Quantity += qty
			return out
		}
	}

	return append(out, Item{Product: product, Size: size, Quantity: qty})
}

// SetQuantity replaces the quantity of the line for productID. A quantity
// of zero or less removes the line. Unknown ids leave the cart unchanged.
func SetQuantity(c Cart, productID, qty int) Cart {
	if qty <= 0 {
		return Remove(c, productID)
	}

	out := make(Cart, len(c))
	copy(out, c)
	for i := range out {
		if out[i].Product.ID == productID {
			out[i].Quantity = qty
		}
	}
	return out
}

// Remove drops the line for productID
func Remove(c Cart, productID int) Cart {
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if item.Product.ID != productID {
			out = append(out, item)
		}
	}
	return out
}

// Clear returns the empty cart
func Clear() Cart {
	return nil
}

// Subtotal is the line total: effective unit price times quantity
func Subtotal(item Item) decimal.Decimal {
	return item.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Total sums the subtotals of every line
func Total(c Cart) decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(Subtotal(item))
	}
	return total
}

// HasSufficientStock reports whether every line's quantity is covered by its
// product snapshot's stock
func HasSufficientStock(c Cart) bool {
	for _, item := range c {
		if item.Product.Stock < item.Quantity {
			return false
		}
	}
	return true
}
