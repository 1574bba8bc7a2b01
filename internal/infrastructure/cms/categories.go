package cms

import (
	"context"
	"fmt"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// The CMS models categories as the "type-products" collection
const categoriesResource = "type-products"

// CategoryInput carries the writable fields of a category
type CategoryInput struct {
	Label string `json:"type"`
}

// ListCategories reads the category collection
func (c *Client) ListCategories(ctx context.Context, opts ListOptions) ([]catalog.Category, *Pagination, error) {
	env, err := c.do(ctx, "GET", "/api/"+categoriesResource, opts.query(), nil)
	if err != nil {
		return nil, nil, err
	}

	entries, err := env.entries()
	if err != nil {
		return nil, nil, err
	}

	categories := make([]catalog.Category, 0, len(entries))
	for _, raw := range entries {
		cat, err := categoryFromEntry(raw)
		if err != nil {
			return nil, nil, err
		}
		categories = append(categories, *cat)
	}

	var pagination *Pagination
	if env.Meta != nil {
		pagination = env.Meta.Pagination
	}
	return categories, pagination, nil
}

// GetCategory fetches one category by numeric id or document id
func (c *Client) GetCategory(ctx context.Context, idOrDocumentID string) (*catalog.Category, error) {
	var category *catalog.Category
	err := c.withNotFoundFallback(ctx, categoriesResource, idOrDocumentID, func(id string) error {
		env, err := c.do(ctx, "GET", "/api/"+categoriesResource+"/"+id, nil, nil)
		if err != nil {
			return err
		}
		entry := env.entry()
		if entry == nil {
			return fmt.Errorf("cms: category %q: %w", id, shared.ErrNotFound)
		}
		category, err = categoryFromEntry(entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// CreateCategory creates a category record
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*catalog.Category, error) {
	env, err := c.do(ctx, "POST", "/api/"+categoriesResource, nil, input)
	if err != nil {
		return nil, err
	}
	entry := env.entry()
	if entry == nil {
		return nil, fmt.Errorf("cms: create category returned no data")
	}
	return categoryFromEntry(entry)
}

// UpdateCategory updates a category addressed by numeric id or document id
func (c *Client) UpdateCategory(ctx context.Context, idOrDocumentID string, input CategoryInput) (*catalog.Category, error) {
	var category *catalog.Category
	err := c.withNotFoundFallback(ctx, categoriesResource, idOrDocumentID, func(id string) error {
		env, err := c.do(ctx, "PUT", "/api/"+categoriesResource+"/"+id, nil, input)
		if err != nil {
			return err
		}
		entry := env.entry()
		if entry == nil {
			return fmt.Errorf("cms: update category %q returned no data", id)
		}
		category, err = categoryFromEntry(entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category addressed by numeric id or document id
func (c *Client) DeleteCategory(ctx context.Context, idOrDocumentID string) error {
	return c.withNotFoundFallback(ctx, categoriesResource, idOrDocumentID, func(id string) error {
		_, err := c.do(ctx, "DELETE", "/api/"+categoriesResource+"/"+id, nil, nil)
		return err
	})
}
