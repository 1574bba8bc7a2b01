package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/infrastructure/cms"
)

// ListProductsRequest represents a filtered, paginated product listing
type ListProductsRequest struct {
	// Category filters by category label (the storefront's shelf pages)
	Category string `form:"category"`
	// VisibleOnly restricts the listing to products with show=true
	VisibleOnly bool `form:"visible"`
	Page        int  `form:"page" binding:"omitempty,min=1"`
	PageSize    int  `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

func (r ListProductsRequest) options() cms.ListOptions {
	opts := cms.ListOptions{
		Page:     r.Page,
		PageSize: r.PageSize,
	}
	filters := map[string]string{}
	if r.Category != "" {
		filters["typeProducts.type"] = r.Category
	}
	if r.VisibleOnly {
		filters["show"] = "true"
	}
	if len(filters) > 0 {
		opts.Filters = filters
	}
	return opts
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name       string           `json:"name" binding:"required,min=1,max=200"`
	Price      decimal.Decimal  `json:"price" binding:"required"`
	Offer      bool             `json:"offer"`
	OfferPrice *decimal.Decimal `json:"offerPrice"`
	Stock      int              `json:"stock" binding:"min=0"`
	Show       bool             `json:"show"`
	Sizes      []int            `json:"sizes"`
	Categories []int            `json:"categories"`
	Media      []int            `json:"media"`
}

// UpdateProductRequest represents a partial product update. Nil fields are
// left untouched.
type UpdateProductRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Price      *decimal.Decimal `json:"price"`
	Offer      *bool            `json:"offer"`
	OfferPrice *decimal.Decimal `json:"offerPrice"`
	Stock      *int             `json:"stock" binding:"omitempty,min=0"`
	Show       *bool            `json:"show"`
	Sizes      []int            `json:"sizes"`
	Categories []int            `json:"categories"`
	Media      []int            `json:"media"`
}

// CreateSizeRequest represents a request to create a size
type CreateSizeRequest struct {
	Code string `json:"size" binding:"required,min=1,max=10"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Label string `json:"type" binding:"required,min=1,max=50"`
}
