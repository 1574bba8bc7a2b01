package catalog

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cms"
)

// SizeStore is the slice of the content-API client the size service needs.
// Satisfied by *cms.Client.
type SizeStore interface {
	ListSizes(ctx context.Context, opts cms.ListOptions) ([]catalog.Size, *cms.Pagination, error)
	GetSize(ctx context.Context, idOrDocumentID string) (*catalog.Size, error)
	CreateSize(ctx context.Context, input cms.SizeInput) (*catalog.Size, error)
	UpdateSize(ctx context.Context, idOrDocumentID string, input cms.SizeInput) (*catalog.Size, error)
	DeleteSize(ctx context.Context, idOrDocumentID string) error
}

// SizeService handles the size dimension of the catalog
type SizeService struct {
	store SizeStore
}

// NewSizeService creates a new SizeService
func NewSizeService(store SizeStore) *SizeService {
	return &SizeService{store: store}
}

// List returns all sizes
func (s *SizeService) List(ctx context.Context) ([]catalog.Size, error) {
	sizes, _, err := s.store.ListSizes(ctx, cms.ListOptions{})
	return sizes, err
}

// Get returns one size by numeric id or document id
func (s *SizeService) Get(ctx context.Context, idOrDocumentID string) (*catalog.Size, error) {
	return s.store.GetSize(ctx, idOrDocumentID)
}

// Create creates a size. The code is normalized before storage so lookups
// stay case-insensitive.
func (s *SizeService) Create(ctx context.Context, req CreateSizeRequest) (*catalog.Size, error) {
	code := catalog.NormalizeSizeCode(req.Code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Size code must contain letters or digits")
	}
	return s.store.CreateSize(ctx, cms.SizeInput{Code: code})
}

// Update replaces a size's code
func (s *SizeService) Update(ctx context.Context, idOrDocumentID string, req CreateSizeRequest) (*catalog.Size, error) {
	code := catalog.NormalizeSizeCode(req.Code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Size code must contain letters or digits")
	}
	return s.store.UpdateSize(ctx, idOrDocumentID, cms.SizeInput{Code: code})
}

// Delete removes a size
func (s *SizeService) Delete(ctx context.Context, idOrDocumentID string) error {
	return s.store.DeleteSize(ctx, idOrDocumentID)
}
