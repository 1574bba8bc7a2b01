package checkout

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cms"
	"github.com/storefront/backend/internal/infrastructure/payment"
)

// maxConcurrentFetches bounds the per-checkout product lookups
const maxConcurrentFetches = 4

// ProductFetcher resolves cart claims against the catalog.
// Satisfied by *cms.Client.
type ProductFetcher interface {
	GetProductByDocumentID(ctx context.Context, documentID string) (*catalog.Product, error)
}

// OrderStore persists and addresses order records. Satisfied by *cms.Client.
type OrderStore interface {
	CreateOrder(ctx context.Context, o *order.Order) (*cms.OrderRecord, error)
	ListOrders(ctx context.Context, opts cms.ListOptions) ([]cms.OrderRecord, *cms.Pagination, error)
	GetOrder(ctx context.Context, idOrDocumentID string) (*cms.OrderRecord, error)
	FindOrderByNumber(ctx context.Context, number string) (*cms.OrderRecord, error)
	UpdateOrderPayment(ctx context.Context, idOrDocumentID string, update cms.OrderPaymentUpdate) error
}

// PreferenceCreator opens a payment preference with the provider.
// Satisfied by *payment.MercadoPagoAdapter.
type PreferenceCreator interface {
	CreatePreference(ctx context.Context, req *payment.PreferenceRequest) (*payment.Preference, error)
}

// Config holds the checkout-flow settings derived from site and provider
// configuration
type Config struct {
	Currency    string
	SiteURL     string
	SuccessPath string
	FailurePath string
	PendingPath string
	// NotificationURL is attached to preferences when non-empty. Empty
	// means the site has no public HTTPS origin and the provider must not
	// receive a callback URL.
	NotificationURL string
}

// CheckoutService orchestrates the online checkout: cart validation,
// server-side pricing, order persistence and preference creation
type CheckoutService struct {
	products ProductFetcher
	orders   OrderStore
	payments PreferenceCreator
	cfg      Config
	log      *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(products ProductFetcher, orders OrderStore, payments PreferenceCreator, cfg Config, log *zap.Logger) *CheckoutService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckoutService{
		products: products,
		orders:   orders,
		payments: payments,
		cfg:      cfg,
		log:      log,
	}
}

// finding is one reason a cart line failed validation. Findings are logged
// in full; the customer only sees a generic validation failure.
type finding struct {
	Index      int
	DocumentID string
	Reason     string
}

// Checkout validates the cart, re-prices it server-side, persists the order
// in the unpaid state and opens a payment preference. Nothing is persisted
// when validation fails.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if s.payments == nil {
		return nil, payment.ErrUnavailable
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("CART_VALIDATION", "Cart is empty")
	}

	customer := order.Customer{
		Name:     req.Customer.Name,
		LastName: req.Customer.LastName,
		DNI:      req.Customer.DNI,
		Email:    req.Customer.Email,
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	products, findings := s.fetchProducts(ctx, req.Items)
	findings = append(findings, validateItems(req.Items, products)...)
	if len(findings) > 0 {
		fields := make([]zap.Field, 0, len(findings))
		for i, f := range findings {
			fields = append(fields, zap.String(
				fmt.Sprintf("finding_%d", i),
				fmt.Sprintf("item %d (%s): %s", f.Index, f.DocumentID, f.Reason),
			))
		}
		s.log.Warn("checkout cart validation failed", fields...)
		return nil, shared.ErrCartValidation
	}

	items, total := priceItems(req.Items, products)

	o, err := order.New(customer, items, total)
	if err != nil {
		return nil, err
	}

	record, err := s.orders.CreateOrder(ctx, o)
	if err != nil {
		return nil, err
	}

	pref, err := s.payments.CreatePreference(ctx, s.buildPreference(o))
	if err != nil {
		s.log.Error("preference creation failed after order persistence",
			zap.String("order", o.Number),
			zap.Int("record_id", record.ID),
			zap.Error(err))
		return nil, err
	}

	s.log.Info("checkout completed",
		zap.String("order", o.Number),
		zap.String("preference_id", pref.ID),
		zap.String("total", total.String()))

	return &CheckoutResult{
		PreferenceID: pref.ID,
		InitPoint:    pref.InitPoint,
		OrderNumber:  o.Number,
	}, nil
}

// fetchProducts resolves every claimed document id concurrently. A failed
// fetch becomes a finding instead of aborting the whole checkout, so the
// log shows every broken line at once.
func (s *CheckoutService) fetchProducts(ctx context.Context, items []CartItemInput) ([]*catalog.Product, []finding) {
	products := make([]*catalog.Product, len(items))
	findings := make([]finding, 0)

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentFetches)

	for i, item := range items {
		wg.Add(1)
		go func(i int, item CartItemInput) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			p, err := s.products.GetProductByDocumentID(ctx, item.DocumentID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				findings = append(findings, finding{
					Index:      i,
					DocumentID: item.DocumentID,
					Reason:     "product not found",
				})
				return
			}
			products[i] = p
		}(i, item)
	}
	wg.Wait()

	return products, findings
}

// validateItems checks each resolved product against the cart's claims
func validateItems(items []CartItemInput, products []*catalog.Product) []finding {
	findings := make([]finding, 0)
	for i, item := range items {
		p := products[i]
		if p == nil {
			continue // already recorded as a fetch finding
		}
		if p.ID != item.ProductID {
			findings = append(findings, finding{
				Index:      i,
				DocumentID: item.DocumentID,
				Reason:     fmt.Sprintf("product id mismatch: claimed %d, catalog has %d", item.ProductID, p.ID),
			})
			continue
		}
		if item.Size != "" && !p.HasSize(item.Size) {
			findings = append(findings, finding{
				Index:      i,
				DocumentID: item.DocumentID,
				Reason:     fmt.Sprintf("size %q not available", item.Size),
			})
		}
	}
	return findings
}

// priceItems builds the authoritative order lines. Unit prices always come
// from the catalog's effective price, never from the request.
func priceItems(items []CartItemInput, products []*catalog.Product) ([]order.LineItem, decimal.Decimal) {
	lines := make([]order.LineItem, 0, len(items))
	total := decimal.Zero
	for i, item := range items {
		p := products[i]
		unit := p.EffectivePrice()
		lines = append(lines, order.LineItem{
			ProductID:  p.ID,
			DocumentID: p.DocumentID,
			Name:       p.Name,
			UnitPrice:  unit,
			Quantity:   item.Quantity,
			Size:       catalog.NormalizeSizeCode(item.Size),
		})
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return lines, total
}

// buildPreference maps the persisted order onto the provider's preference
// payload
func (s *CheckoutService) buildPreference(o *order.Order) *payment.PreferenceRequest {
	items := make([]payment.PreferenceItem, 0, len(o.Items))
	for _, line := range o.Items {
		title := line.Name
		if line.Size != "" {
			title = title + " (" + line.Size + ")"
		}
		items = append(items, payment.PreferenceItem{
			ID:         strconv.Itoa(line.ProductID),
			Title:      title,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			CurrencyID: s.cfg.Currency,
		})
	}

	site := strings.TrimSuffix(s.cfg.SiteURL, "/")
	return &payment.PreferenceRequest{
		Items: items,
		Payer: &payment.Payer{
			Name:    o.Customer.Name,
			Surname: o.Customer.LastName,
			Email:   o.Customer.Email,
			Identification: &payment.Identification{
				Type:   "DNI",
				Number: strconv.Itoa(o.Customer.DNI),
			},
		},
		ExternalReference: o.Number,
		BackURLs: payment.BackURLs{
			Success: site + s.cfg.SuccessPath,
			Failure: site + s.cfg.FailurePath,
			Pending: site + s.cfg.PendingPath,
		},
		NotificationURL: s.cfg.NotificationURL,
		AutoReturn:      "approved",
	}
}
