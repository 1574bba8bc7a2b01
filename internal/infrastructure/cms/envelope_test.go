package cms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const v5Product = `{
	"id": 12,
	"documentId": "abc123xyz",
	"name": "Remera Oversize",
	"price": 15000,
	"offer": true,
	"offerPrice": 12000,
	"stock": 8,
	"show": true,
	"sizes": [{"id": 1, "documentId": "s1", "size": "xl"}],
	"typeProducts": [{"id": 3, "documentId": "t1", "type": "Remeras"}]
}`

const v4Product = `{
	"id": 12,
	"attributes": {
		"documentId": "abc123xyz",
		"name": "Remera Oversize",
		"price": 15000,
		"offer": true,
		"offerPrice": 12000,
		"stock": 8,
		"show": true,
		"sizes": {"data": [{"id": 1, "attributes": {"size": "xl"}}]},
		"typeProducts": {"data": [{"id": 3, "attributes": {"type": "Remeras"}}]}
	}
}`

func TestProductFromEntry_BothGenerations(t *testing.T) {
	for name, payload := range map[string]string{"v5 flat": v5Product, "v4 nested": v4Product} {
		t.Run(name, func(t *testing.T) {
			p, err := productFromEntry(json.RawMessage(payload))
			require.NoError(t, err)

			assert.Equal(t, 12, p.ID)
			assert.Equal(t, "abc123xyz", p.DocumentID)
			assert.Equal(t, "Remera Oversize", p.Name)
			assert.True(t, p.Offer)
			assert.True(t, p.Price.Equal(decimalFromInt(15000)))
			assert.True(t, p.OfferPrice.Equal(decimalFromInt(12000)))
			assert.Equal(t, 8, p.Stock)

			require.Len(t, p.Sizes, 1)
			assert.Equal(t, "XL", p.Sizes[0].Code)
			require.Len(t, p.Categories, 1)
			assert.Equal(t, "remeras", p.Categories[0].Label)
		})
	}
}

func TestProductFromEntry_EffectivePriceFollowsOffer(t *testing.T) {
	p, err := productFromEntry(json.RawMessage(v5Product))
	require.NoError(t, err)
	assert.True(t, p.EffectivePrice().Equal(decimalFromInt(12000)))
}

func TestDecodeEntry_Malformed(t *testing.T) {
	_, _, err := decodeEntry(json.RawMessage(`[1,2,3]`), nil)
	require.Error(t, err)
}

func TestEntryList_UnmarshalShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2},
		{"v4 wrapper", `{"data":[{"id":1}]}`, 1},
		{"v4 single", `{"data":{"id":1,"attributes":{}}}`, 1},
		{"null", `null`, 0},
		{"wrapped null", `{"data":null}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l entryList
			require.NoError(t, json.Unmarshal([]byte(tt.in), &l))
			assert.Len(t, l, tt.want)
		})
	}
}

func TestOrderFromEntry(t *testing.T) {
	payload := `{
		"id": 4,
		"documentId": "ord-doc",
		"order": "ORD-AB12CD34EF56",
		"name": "Ana",
		"lastName": "Pérez",
		"dni": 30123456,
		"email": "ana@example.com",
		"items": [{"productId": 1, "documentId": "p1", "name": "Remera", "unitPrice": 100, "quantity": 2}],
		"total": 200,
		"orderPayment": false
	}`

	rec, err := orderFromEntry(json.RawMessage(payload))
	require.NoError(t, err)

	assert.Equal(t, 4, rec.ID)
	assert.Equal(t, "ord-doc", rec.DocumentID)
	assert.Equal(t, "ORD-AB12CD34EF56", rec.Order.Number)
	assert.False(t, rec.Order.PaymentConfirmed)
	require.Len(t, rec.Order.Items, 1)
	assert.Equal(t, 2, rec.Order.Items[0].Quantity)
}
