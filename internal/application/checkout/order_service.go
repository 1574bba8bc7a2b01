package checkout

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cms"
)

// OrderService exposes orders to the back office and applies the one
// mutation an order ever receives: payment confirmation.
type OrderService struct {
	orders OrderStore
	log    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orders OrderStore, log *zap.Logger) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{orders: orders, log: log}
}

// List returns orders for the back office, newest first per the CMS default
func (s *OrderService) List(ctx context.Context, page, pageSize int) ([]cms.OrderRecord, *cms.Pagination, error) {
	return s.orders.ListOrders(ctx, cms.ListOptions{Page: page, PageSize: pageSize})
}

// Get returns one order by numeric id or document id
func (s *OrderService) Get(ctx context.Context, idOrDocumentID string) (*cms.OrderRecord, error) {
	return s.orders.GetOrder(ctx, idOrDocumentID)
}

// UpdateOrderPayment confirms an order's payment. The order number is the
// external reference the provider echoes back in webhook payloads. A
// missing order is logged and swallowed so a stray notification never
// breaks webhook acknowledgment.
func (s *OrderService) UpdateOrderPayment(ctx context.Context, orderNumber, paymentID, status, payerEmail string) error {
	record, err := s.orders.FindOrderByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.log.Warn("payment notification for unknown order",
				zap.String("order", orderNumber),
				zap.String("payment_id", paymentID))
			return nil
		}
		return err
	}

	if err := record.Order.ConfirmPayment(paymentID, status, payerEmail); err != nil {
		return err
	}

	address := record.DocumentID
	if address == "" {
		address = strconv.Itoa(record.ID)
	}

	update := cms.OrderPaymentUpdate{
		PaymentConfirmed: true,
		PayerEmail:       payerEmail,
		PaymentID:        paymentID,
		PaymentStatus:    status,
	}
	if err := s.orders.UpdateOrderPayment(ctx, address, update); err != nil {
		return err
	}

	s.log.Info("order payment confirmed",
		zap.String("order", orderNumber),
		zap.String("payment_id", paymentID),
		zap.String("status", status))
	return nil
}
