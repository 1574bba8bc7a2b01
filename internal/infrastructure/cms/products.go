package cms

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

const productsResource = "products"

// ProductInput carries the writable fields of a product. Pointer fields are
// omitted when nil so partial updates leave the record untouched.
type ProductInput struct {
	Name       *string          `json:"name,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Offer      *bool            `json:"offer,omitempty"`
	OfferPrice *decimal.Decimal `json:"offerPrice,omitempty"`
	Stock      *int             `json:"stock,omitempty"`
	Show       *bool            `json:"show,omitempty"`
	// Sizes and TypeProducts are relation id lists
	Sizes        []int `json:"sizes,omitempty"`
	TypeProducts []int `json:"typeProducts,omitempty"`
	Media        []int `json:"media,omitempty"`
}

// ListProducts reads a filtered, paginated product collection
func (c *Client) ListProducts(ctx context.Context, opts ListOptions) ([]catalog.Product, *Pagination, error) {
	opts.Populate = true
	env, err := c.do(ctx, "GET", "/api/"+productsResource, opts.query(), nil)
	if err != nil {
		return nil, nil, err
	}

	entries, err := env.entries()
	if err != nil {
		return nil, nil, err
	}

	products := make([]catalog.Product, 0, len(entries))
	for _, raw := range entries {
		p, err := productFromEntry(raw)
		if err != nil {
			return nil, nil, err
		}
		products = append(products, *p)
	}

	var pagination *Pagination
	if env.Meta != nil {
		pagination = env.Meta.Pagination
	}
	return products, pagination, nil
}

// GetProduct fetches one product by numeric id or document id, using the
// id-resolution fallback for document ids the API version cannot address
func (c *Client) GetProduct(ctx context.Context, idOrDocumentID string) (*catalog.Product, error) {
	var product *catalog.Product
	err := c.withNotFoundFallback(ctx, productsResource, idOrDocumentID, func(id string) error {
		q := ListOptions{Populate: true}.query()
		env, err := c.do(ctx, "GET", "/api/"+productsResource+"/"+id, q, nil)
		if err != nil {
			return err
		}
		entry := env.entry()
		if entry == nil {
			return fmt.Errorf("cms: product %q: %w", id, shared.ErrNotFound)
		}
		product, err = productFromEntry(entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetProductByDocumentID fetches one product through a filtered collection
// lookup, which works on every API generation
func (c *Client) GetProductByDocumentID(ctx context.Context, documentID string) (*catalog.Product, error) {
	products, _, err := c.ListProducts(ctx, ListOptions{
		Filters:  map[string]string{"documentId": documentID},
		PageSize: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("cms: product %q: %w", documentID, shared.ErrNotFound)
	}
	return &products[0], nil
}

// CreateProduct creates a product record
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*catalog.Product, error) {
	env, err := c.do(ctx, "POST", "/api/"+productsResource, nil, input)
	if err != nil {
		return nil, err
	}
	entry := env.entry()
	if entry == nil {
		return nil, fmt.Errorf("cms: create product returned no data")
	}
	return productFromEntry(entry)
}

// UpdateProduct updates a product addressed by numeric id or document id
func (c *Client) UpdateProduct(ctx context.Context, idOrDocumentID string, input ProductInput) (*catalog.Product, error) {
	var product *catalog.Product
	err := c.withNotFoundFallback(ctx, productsResource, idOrDocumentID, func(id string) error {
		env, err := c.do(ctx, "PUT", "/api/"+productsResource+"/"+id, nil, input)
		if err != nil {
			return err
		}
		entry := env.entry()
		if entry == nil {
			return fmt.Errorf("cms: update product %q returned no data", id)
		}
		product, err = productFromEntry(entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product addressed by numeric id or document id
func (c *Client) DeleteProduct(ctx context.Context, idOrDocumentID string) error {
	return c.withNotFoundFallback(ctx, productsResource, idOrDocumentID, func(id string) error {
		_, err := c.do(ctx, "DELETE", "/api/"+productsResource+"/"+id, nil, nil)
		return err
	})
}
