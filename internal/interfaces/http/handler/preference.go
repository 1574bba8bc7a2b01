package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/infrastructure/payment"
)

// PreferenceHandler exposes the payment-preference endpoint. The storefront
// widget normally goes through /checkout; this endpoint exists for flows
// that already priced their items and only need the provider hand-off.
type PreferenceHandler struct {
	BaseHandler
	adapter *payment.MercadoPagoAdapter
}

// NewPreferenceHandler creates a new PreferenceHandler. A nil adapter means
// no provider credentials are configured; the endpoint answers 503.
func NewPreferenceHandler(adapter *payment.MercadoPagoAdapter) *PreferenceHandler {
	return &PreferenceHandler{adapter: adapter}
}

// RegisterRoutes registers the payment routes
func (h *PreferenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments/mp")
	{
		payments.POST("/preference", h.CreatePreference)
		payments.GET("/public-key", h.PublicKey)
	}
}

// PreferenceItemRequest is one line of a preference request
type PreferenceItemRequest struct {
	ID          string          `json:"id" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	CurrencyID  string          `json:"currency_id" binding:"required,len=3,uppercase"`
	Description string          `json:"description"`
}

// CreatePreferenceRequest is the payload for the preference endpoint
type CreatePreferenceRequest struct {
	Items             []PreferenceItemRequest `json:"items" binding:"required,min=1,dive"`
	ExternalReference string                  `json:"external_reference"`
	NotificationURL   string                  `json:"notification_url" binding:"omitempty,url"`
	BackURLs          payment.BackURLs        `json:"back_urls"`
	AutoReturn        string                  `json:"auto_return" binding:"omitempty,oneof=approved all"`
}

// CreatePreference forwards a preference request to the provider
func (h *PreferenceHandler) CreatePreference(c *gin.Context) {
	if h.adapter == nil {
		h.ServiceUnavailable(c, "Payment provider is not configured")
		return
	}

	var req CreatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]payment.PreferenceItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, payment.PreferenceItem{
			ID:          item.ID,
			Title:       item.Title,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			CurrencyID:  item.CurrencyID,
			Description: item.Description,
		})
	}

	pref, err := h.adapter.CreatePreference(c.Request.Context(), &payment.PreferenceRequest{
		Items:             items,
		ExternalReference: req.ExternalReference,
		NotificationURL:   req.NotificationURL,
		BackURLs:          req.BackURLs,
		AutoReturn:        req.AutoReturn,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, pref)
}

// PublicKey returns the provider public key the widget initializes with
func (h *PreferenceHandler) PublicKey(c *gin.Context) {
	if h.adapter == nil || h.adapter.PublicKey() == "" {
		h.ServiceUnavailable(c, "Payment provider is not configured")
		return
	}
	h.Success(c, gin.H{"publicKey": h.adapter.PublicKey()})
}
