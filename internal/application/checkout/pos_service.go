package checkout

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cms"
)

// ProductStockUpdater writes the stock decrement back to the catalog.
// Satisfied by *cms.Client.
type ProductStockUpdater interface {
	GetProduct(ctx context.Context, idOrDocumentID string) (*catalog.Product, error)
	UpdateProduct(ctx context.Context, idOrDocumentID string, input cms.ProductInput) (*catalog.Product, error)
}

// SaleStore persists point-of-sale records. Satisfied by *cms.Client.
type SaleStore interface {
	CreateSale(ctx context.Context, s *order.Sale) (*order.Sale, error)
	ListSales(ctx context.Context, opts cms.ListOptions) ([]order.Sale, *cms.Pagination, error)
}

// POSService registers in-store sales: it decrements catalog stock and
// writes an immutable sale record. The read-then-write on stock is not
// atomic; the content API offers no conditional update, so two concurrent
// registrations can both read the same stock. A single-register shop makes
// this acceptable in practice.
type POSService struct {
	products ProductStockUpdater
	sales    SaleStore
	log      *zap.Logger
}

// NewPOSService creates a new POSService
func NewPOSService(products ProductStockUpdater, sales SaleStore, log *zap.Logger) *POSService {
	if log == nil {
		log = zap.NewNop()
	}
	return &POSService{products: products, sales: sales, log: log}
}

// RegisterSale records an in-store sale and decrements the product's stock
func (s *POSService) RegisterSale(ctx context.Context, req RegisterSaleRequest) (*order.Sale, error) {
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale quantity must be positive")
	}
	if req.SalePrice != nil && !req.SalePrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale price must be positive")
	}

	product, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	size := catalog.NormalizeSizeCode(req.Size)
	if size != "" && !product.HasSize(size) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Requested size is not available for this product")
	}

	if product.Stock < req.Quantity {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock for this sale")
	}

	newStock := product.Stock - req.Quantity
	if _, err := s.products.UpdateProduct(ctx, req.ProductID, cms.ProductInput{Stock: &newStock}); err != nil {
		return nil, err
	}

	price := product.EffectivePrice().Mul(decimal.NewFromInt(int64(req.Quantity)))
	if req.SalePrice != nil {
		price = *req.SalePrice
	}

	name := product.Name
	if size != "" {
		name = name + " (" + size + ")"
	}

	sale, err := order.NewSale(name, price)
	if err != nil {
		return nil, err
	}

	created, err := s.sales.CreateSale(ctx, sale)
	if err != nil {
		// Stock is already decremented; the sale record is the source of
		// truth for revenue, so surface the failure loudly
		s.log.Error("sale record creation failed after stock decrement",
			zap.String("product", req.ProductID),
			zap.Int("new_stock", newStock),
			zap.Error(err))
		return nil, err
	}

	s.log.Info("sale registered",
		zap.String("product", req.ProductID),
		zap.String("name", name),
		zap.Int("quantity", req.Quantity),
		zap.String("price", price.String()))

	return created, nil
}

// ListSales returns the sale history for the back office
func (s *POSService) ListSales(ctx context.Context, page, pageSize int) ([]order.Sale, *cms.Pagination, error) {
	return s.sales.ListSales(ctx, cms.ListOptions{Page: page, PageSize: pageSize})
}
