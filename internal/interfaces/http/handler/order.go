package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// OrderHandler exposes orders to the back office
type OrderHandler struct {
	BaseHandler
	orderService *checkoutapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *checkoutapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterAdminRoutes registers the back-office order routes
func (h *OrderHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
	}
}

// List returns orders for the back office
func (h *OrderHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	req.Normalize()

	records, pagination, err := h.orderService.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithPagination(c, records, pagination)
}

// Get returns one order by numeric id or document id
func (h *OrderHandler) Get(c *gin.Context) {
	record, err := h.orderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}
