package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// SizeHandler handles size catalog endpoints
type SizeHandler struct {
	BaseHandler
	sizeService *catalogapp.SizeService
}

// NewSizeHandler creates a new SizeHandler
func NewSizeHandler(sizeService *catalogapp.SizeService) *SizeHandler {
	return &SizeHandler{sizeService: sizeService}
}

// RegisterRoutes registers the public, read-only size routes
func (h *SizeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sizes", h.List)
}

// RegisterAdminRoutes registers the back-office size routes
func (h *SizeHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	sizes := rg.Group("/sizes")
	{
		sizes.POST("", h.Create)
		sizes.PUT("/:id", h.Update)
		sizes.DELETE("/:id", h.Delete)
	}
}

// List returns all sizes
func (h *SizeHandler) List(c *gin.Context) {
	sizes, err := h.sizeService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sizes)
}

// Create creates a size
func (h *SizeHandler) Create(c *gin.Context) {
	var req catalogapp.CreateSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	size, err := h.sizeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, size)
}

// Update replaces a size's code
func (h *SizeHandler) Update(c *gin.Context) {
	var req catalogapp.CreateSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	size, err := h.sizeService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, size)
}

// Delete removes a size
func (h *SizeHandler) Delete(c *gin.Context) {
	if err := h.sizeService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
