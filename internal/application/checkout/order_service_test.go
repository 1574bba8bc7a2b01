package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cms"
)

func TestUpdateOrderPayment_ConfirmsOrder(t *testing.T) {
	orders := new(MockOrderStore)
	service := NewOrderService(orders, nil)

	record := &cms.OrderRecord{
		ID:         42,
		DocumentID: "ord-doc",
		Order:      order.Order{Number: "ORD-ABC123DEF456"},
	}
	orders.On("FindOrderByNumber", mock.Anything, "ORD-ABC123DEF456").Return(record, nil)
	orders.On("UpdateOrderPayment", mock.Anything, "ord-doc", cms.OrderPaymentUpdate{
		PaymentConfirmed: true,
		PayerEmail:       "payer@example.com",
		PaymentID:        "12345",
		PaymentStatus:    "approved",
	}).Return(nil)

	err := service.UpdateOrderPayment(context.Background(), "ORD-ABC123DEF456", "12345", "approved", "payer@example.com")

	require.NoError(t, err)
	orders.AssertExpectations(t)
}

func TestUpdateOrderPayment_FallsBackToNumericID(t *testing.T) {
	orders := new(MockOrderStore)
	service := NewOrderService(orders, nil)

	record := &cms.OrderRecord{ID: 42, Order: order.Order{Number: "ORD-X"}}
	orders.On("FindOrderByNumber", mock.Anything, "ORD-X").Return(record, nil)
	orders.On("UpdateOrderPayment", mock.Anything, "42", mock.Anything).Return(nil)

	err := service.UpdateOrderPayment(context.Background(), "ORD-X", "12345", "approved", "")

	require.NoError(t, err)
	orders.AssertExpectations(t)
}

func TestUpdateOrderPayment_UnknownOrderSwallowed(t *testing.T) {
	orders := new(MockOrderStore)
	service := NewOrderService(orders, nil)

	orders.On("FindOrderByNumber", mock.Anything, "ORD-MISSING").Return(nil, shared.ErrNotFound)

	err := service.UpdateOrderPayment(context.Background(), "ORD-MISSING", "12345", "approved", "")

	assert.NoError(t, err)
	orders.AssertNotCalled(t, "UpdateOrderPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderPayment_ConflictingConfirmationRejected(t *testing.T) {
	orders := new(MockOrderStore)
	service := NewOrderService(orders, nil)

	record := &cms.OrderRecord{
		ID: 42,
		Order: order.Order{
			Number:           "ORD-X",
			PaymentConfirmed: true,
			PaymentID:        "11111",
		},
	}
	orders.On("FindOrderByNumber", mock.Anything, "ORD-X").Return(record, nil)

	err := service.UpdateOrderPayment(context.Background(), "ORD-X", "22222", "approved", "")

	assert.ErrorIs(t, err, shared.ErrInvalidState)
	orders.AssertNotCalled(t, "UpdateOrderPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderPayment_SamePaymentIDIsIdempotent(t *testing.T) {
	orders := new(MockOrderStore)
	service := NewOrderService(orders, nil)

	record := &cms.OrderRecord{
		ID: 42,
		Order: order.Order{
			Number:           "ORD-X",
			PaymentConfirmed: true,
			PaymentID:        "11111",
		},
	}
	orders.On("FindOrderByNumber", mock.Anything, "ORD-X").Return(record, nil)
	orders.On("UpdateOrderPayment", mock.Anything, "42", mock.Anything).Return(nil)

	err := service.UpdateOrderPayment(context.Background(), "ORD-X", "11111", "approved", "")

	assert.NoError(t, err)
}
