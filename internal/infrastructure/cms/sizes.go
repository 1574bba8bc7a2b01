package cms

import (
	"context"
	"fmt"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

const sizesResource = "sizes"

// SizeInput carries the writable fields of a size
type SizeInput struct {
	Code string `json:"size"`
}

// ListSizes reads the size collection
func (c *Client) ListSizes(ctx context.Context, opts ListOptions) ([]catalog.Size, *Pagination, error) {
	env, err := c.do(ctx, "GET", "/api/"+sizesResource, opts.query(), nil)
	if err != nil {
		return nil, nil, err
	}

	entries, err := env.entries()
	if err != nil {
		return nil, nil, err
	}

	sizes := make([]catalog.Size, 0, len(entries))
	for _, raw := range entries {
		s, err := sizeFromEntry(raw)
		if err != nil {
			return nil, nil, err
		}
		sizes = append(sizes, *s)
	}

	var pagination *Pagination
	if env.Meta != nil {
		pagination = env.Meta.Pagination
	}
	return sizes, pagination, nil
}

// GetSize fetches one size by numeric id or document id
func (c *Client) GetSize(ctx context.Context, idOrDocumentID string) (*catalog.Size, error) {
	var size *catalog.Size
	err := c.withNotFoundFallback(ctx, sizesResource, idOrDocumentID, func(id string) error {
		env, err := c.do(ctx, "GET", "/api/"+sizesResource+"/"+id, nil, nil)
		if err != nil {
			return err
		}
		entry := env.entry()
		if entry == nil {
			return fmt.Errorf("cms: size %q: %w", id, shared.ErrNotFound)
		}
		size, err = sizeFromEntry(entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	return size, nil
}

// CreateSize creates a size record
func (c *Client) CreateSize(ctx context.Context, input SizeInput) (*catalog.Size, error) {
	env, err := c.do(ctx, "POST", "/api/"+sizesResource, nil, input)
	if err != nil {
		return nil, err
	}
	entry := env.entry()
	if entry == nil {
		return nil, fmt.Errorf("cms: create size returned no data")
	}
	return sizeFromEntry(entry)
}

// UpdateSize updates a size addressed by numeric id or document id
func (c *Client) UpdateSize(ctx context.Context, idOrDocumentID string, input SizeInput) (*catalog.Size, error) {
	var size *catalog.Size
	err := c.withNotFoundFallback(ctx, sizesResource, idOrDocumentID, func(id string) error {
		env, err := c.do(ctx, "PUT", "/api/"+sizesResource+"/"+id, nil, input)
		if err != nil {
			return err
		}
		entry := env.entry()
		if entry == nil {
			return fmt.Errorf("cms: update size %q returned no data", id)
		}
		size, err = sizeFromEntry(entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	return size, nil
}

// DeleteSize deletes a size addressed by numeric id or document id
func (c *Client) DeleteSize(ctx context.Context, idOrDocumentID string) error {
	return c.withNotFoundFallback(ctx, sizesResource, idOrDocumentID, func(id string) error {
		_, err := c.do(ctx, "DELETE", "/api/"+sizesResource+"/"+id, nil, nil)
		return err
	})
}
