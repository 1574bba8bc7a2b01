package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		p, err := NewProduct(7, "doc-abc", "Remera Oversize", decimal.NewFromInt(15000), 12)
		require.NoError(t, err)
		require.NotNil(t, p)

		assert.Equal(t, 7, p.ID)
		assert.Equal(t, "doc-abc", p.DocumentID)
		assert.Equal(t, "Remera Oversize", p.Name)
		assert.True(t, p.Show)
		assert.False(t, p.Offer)
		assert.True(t, p.OfferPrice.IsZero())
	})

	t.Run("trims the name", func(t *testing.T) {
		p, err := NewProduct(1, "d", "  Buzo  ", decimal.NewFromInt(100), 1)
		require.NoError(t, err)
		assert.Equal(t, "Buzo", p.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct(1, "d", "   ", decimal.NewFromInt(100), 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct(1, "d", "Buzo", decimal.NewFromInt(-1), 1)
		require.Error(t, err)
	})

	t.Run("fails with negative stock", func(t *testing.T) {
		_, err := NewProduct(1, "d", "Buzo", decimal.NewFromInt(1), -1)
		require.Error(t, err)
	})
}

func TestProduct_EffectivePrice(t *testing.T) {
	p, err := NewProduct(1, "d", "Campera", decimal.NewFromInt(20000), 5)
	require.NoError(t, err)

	assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(20000)))

	require.NoError(t, p.SetOffer(true, decimal.NewFromInt(12000)))
	assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(12000)))

	require.NoError(t, p.SetOffer(false, decimal.Zero))
	assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(20000)))
}

func TestProduct_SetOffer(t *testing.T) {
	p, err := NewProduct(1, "d", "Campera", decimal.NewFromInt(20000), 5)
	require.NoError(t, err)

	err = p.SetOffer(true, decimal.Zero)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestProduct_HasSize(t *testing.T) {
	p, err := NewProduct(1, "d", "Remera", decimal.NewFromInt(100), 5)
	require.NoError(t, err)

	s, err := NewSize(1, "s1", "xl")
	require.NoError(t, err)
	p.Sizes = []Size{*s}

	assert.True(t, p.HasSize("XL"))
	assert.True(t, p.HasSize("x-l"))
	assert.False(t, p.HasSize("M"))
}

func TestNormalizeSizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"xl", "XL"},
		{" x-l ", "XL"},
		{"38.5", "385"},
		{"  ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSizeCode(tt.in), "input %q", tt.in)
	}
}

func TestNewSize(t *testing.T) {
	_, err := NewSize(1, "s1", "--")
	require.Error(t, err)

	s, err := NewSize(2, "s2", "m")
	require.NoError(t, err)
	assert.Equal(t, "M", s.Code)
}

func TestNormalizeCategoryLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Remeras", "remeras"},
		{"  Buzos   de  Invierno ", "buzos de invierno"},
		{"Camperas!!", "camperas"},
		{"***", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCategoryLabel(tt.in), "input %q", tt.in)
	}
}

func TestNewCategory(t *testing.T) {
	_, err := NewCategory(1, "c1", "!!")
	require.Error(t, err)

	c, err := NewCategory(2, "c2", "Remeras ")
	require.NoError(t, err)
	assert.Equal(t, "remeras", c.Label)
}
