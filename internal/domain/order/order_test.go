package order

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer() Customer {
	return Customer{Name: "Ana", LastName: "Pérez", DNI: 30123456, Email: "ana@example.com"}
}

func validItems() []LineItem {
	return []LineItem{{
		ProductID:  1,
		DocumentID: "doc-1",
		Name:       "Remera",
		UnitPrice:  decimal.NewFromInt(100),
		Quantity:   2,
	}}
}

func TestNew(t *testing.T) {
	t.Run("creates unpaid order", func(t *testing.T) {
		o, err := New(validCustomer(), validItems(), decimal.NewFromInt(200))
		require.NoError(t, err)

		assert.False(t, o.PaymentConfirmed)
		assert.True(t, strings.HasPrefix(o.Number, NumberPrefix))
		assert.Empty(t, o.PaymentID)
		assert.False(t, o.CreatedAt.IsZero())
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		_, err := New(validCustomer(), nil, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects invalid customer", func(t *testing.T) {
		c := validCustomer()
		c.DNI = 0
		_, err := New(c, validItems(), decimal.NewFromInt(200))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DNI")
	})
}

func TestCustomer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Customer)
		wantErr bool
	}{
		{"valid", func(c *Customer) {}, false},
		{"missing name", func(c *Customer) { c.Name = " " }, true},
		{"missing last name", func(c *Customer) { c.LastName = "" }, true},
		{"zero dni", func(c *Customer) { c.DNI = 0 }, true},
		{"negative dni", func(c *Customer) { c.DNI = -4 }, true},
		{"bad email", func(c *Customer) { c.Email = "not-an-email" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCustomer()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewNumber(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		n := NewNumber()
		assert.True(t, strings.HasPrefix(n, NumberPrefix))
		assert.Len(t, n, len(NumberPrefix)+12)
		assert.False(t, seen[n], "numbers must not repeat")
		seen[n] = true
	}
}

func TestOrder_ConfirmPayment(t *testing.T) {
	newOrder := func(t *testing.T) *Order {
		o, err := New(validCustomer(), validItems(), decimal.NewFromInt(200))
		require.NoError(t, err)
		return o
	}

	t.Run("confirms once", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.ConfirmPayment("12345", "approved", "payer@example.com"))

		assert.True(t, o.PaymentConfirmed)
		assert.Equal(t, "12345", o.PaymentID)
		assert.Equal(t, "approved", o.PaymentStatus)
		assert.Equal(t, "payer@example.com", o.PayerEmail)
	})

	t.Run("same payment id is idempotent", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.ConfirmPayment("12345", "approved", "a@b.com"))
		assert.NoError(t, o.ConfirmPayment("12345", "approved", "a@b.com"))
	})

	t.Run("conflicting payment id is rejected", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.ConfirmPayment("12345", "approved", "a@b.com"))
		assert.Error(t, o.ConfirmPayment("99999", "approved", "a@b.com"))
	})
}

func TestNewSale(t *testing.T) {
	t.Run("creates dated sale", func(t *testing.T) {
		s, err := NewSale("Remera XL", decimal.NewFromInt(15000))
		require.NoError(t, err)
		assert.Equal(t, "Remera XL", s.Name)
		assert.False(t, s.Date.IsZero())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewSale("  ", decimal.NewFromInt(1))
		require.Error(t, err)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		_, err := NewSale("Remera", decimal.Zero)
		require.Error(t, err)
	})
}
