package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// SaleHandler handles the point-of-sale endpoints
type SaleHandler struct {
	BaseHandler
	posService *checkoutapp.POSService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(posService *checkoutapp.POSService) *SaleHandler {
	return &SaleHandler{posService: posService}
}

// RegisterAdminRoutes registers the back-office sale routes
func (h *SaleHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.GET("", h.List)
		sales.POST("", h.Register)
	}
}

// List returns the sale history
func (h *SaleHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	req.Normalize()

	sales, pagination, err := h.posService.ListSales(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithPagination(c, sales, pagination)
}

// Register records an in-store sale and decrements stock
func (h *SaleHandler) Register(c *gin.Context) {
	var req checkoutapp.RegisterSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sale, err := h.posService.RegisterSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}
