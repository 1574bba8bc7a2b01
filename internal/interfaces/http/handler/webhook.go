package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	webhookapp "github.com/storefront/backend/internal/application/webhook"
)

// WebhookHandler receives payment-provider notifications. The contract is
// acknowledge-always: the endpoint answers 200 no matter what the payload
// looks like, so the provider stops retrying. Problems are logged and
// reflected in the response body only.
type WebhookHandler struct {
	service *webhookapp.Service
	log     *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(service *webhookapp.Service, log *zap.Logger) *WebhookHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WebhookHandler{service: service, log: log}
}

// RegisterRoutes registers the webhook routes directly on the engine; the
// notification path is part of the provider contract and carries no API
// version prefix.
func (h *WebhookHandler) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/api/webhooks/mercadopago", h.Receive)
	// Providers probe the endpoint before saving it
	engine.GET("/api/webhooks/mercadopago", h.Probe)
	engine.HEAD("/api/webhooks/mercadopago", h.Probe)
	engine.OPTIONS("/api/webhooks/mercadopago", h.Probe)
}

// Receive processes one notification
func (h *WebhookHandler) Receive(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.Warn("failed to read webhook body", zap.Error(err))
		rawBody = nil
	}

	signature := c.GetHeader("x-signature")
	if signature == "" {
		signature = c.GetHeader("x-hub-signature-256")
	}

	result, err := h.service.Process(c.Request.Context(), webhookapp.Notification{
		RawBody:         rawBody,
		Query:           c.Request.URL.Query(),
		SignatureHeader: signature,
	})
	if err != nil {
		h.log.Error("webhook processing failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	resp := gin.H{"received": true}
	if result.Skipped {
		resp["skipped"] = result.SkipReason
	}
	c.JSON(http.StatusOK, resp)
}

// Probe acknowledges provider reachability checks
func (h *WebhookHandler) Probe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
