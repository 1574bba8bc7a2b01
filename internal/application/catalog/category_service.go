package catalog

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cms"
)

// CategoryStore is the slice of the content-API client the category service
// needs. Satisfied by *cms.Client.
type CategoryStore interface {
	ListCategories(ctx context.Context, opts cms.ListOptions) ([]catalog.Category, *cms.Pagination, error)
	GetCategory(ctx context.Context, idOrDocumentID string) (*catalog.Category, error)
	CreateCategory(ctx context.Context, input cms.CategoryInput) (*catalog.Category, error)
	UpdateCategory(ctx context.Context, idOrDocumentID string, input cms.CategoryInput) (*catalog.Category, error)
	DeleteCategory(ctx context.Context, idOrDocumentID string) error
}

// CategoryService handles the category dimension of the catalog
type CategoryService struct {
	store CategoryStore
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

// List returns all categories
func (s *CategoryService) List(ctx context.Context) ([]catalog.Category, error) {
	categories, _, err := s.store.ListCategories(ctx, cms.ListOptions{})
	return categories, err
}

// Get returns one category by numeric id or document id
func (s *CategoryService) Get(ctx context.Context, idOrDocumentID string) (*catalog.Category, error) {
	return s.store.GetCategory(ctx, idOrDocumentID)
}

// Create creates a category with a normalized label
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*catalog.Category, error) {
	label := catalog.NormalizeCategoryLabel(req.Label)
	if label == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category label must contain letters or digits")
	}
	return s.store.CreateCategory(ctx, cms.CategoryInput{Label: label})
}

// Update replaces a category's label
func (s *CategoryService) Update(ctx context.Context, idOrDocumentID string, req CreateCategoryRequest) (*catalog.Category, error) {
	label := catalog.NormalizeCategoryLabel(req.Label)
	if label == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category label must contain letters or digits")
	}
	return s.store.UpdateCategory(ctx, idOrDocumentID, cms.CategoryInput{Label: label})
}

// Delete removes a category
func (s *CategoryService) Delete(ctx context.Context, idOrDocumentID string) error {
	return s.store.DeleteCategory(ctx, idOrDocumentID)
}
