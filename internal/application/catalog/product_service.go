package catalog

import (
	"context"
	"errors"
	"io"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cms"
)

// ProductStore is the slice of the content-API client the product service
// needs. Satisfied by *cms.Client.
type ProductStore interface {
	ListProducts(ctx context.Context, opts cms.ListOptions) ([]catalog.Product, *cms.Pagination, error)
	GetProduct(ctx context.Context, idOrDocumentID string) (*catalog.Product, error)
	CreateProduct(ctx context.Context, input cms.ProductInput) (*catalog.Product, error)
	UpdateProduct(ctx context.Context, idOrDocumentID string, input cms.ProductInput) (*catalog.Product, error)
	DeleteProduct(ctx context.Context, idOrDocumentID string) error
}

// MediaStore handles product media assets. Satisfied by *cms.Client.
type MediaStore interface {
	UploadFile(ctx context.Context, filename string, contents io.Reader) ([]catalog.Media, error)
	DeleteFile(ctx context.Context, fileID int) error
}

// ProductService handles product catalog operations
type ProductService struct {
	store ProductStore
	media MediaStore
}

// NewProductService creates a new ProductService
func NewProductService(store ProductStore, media MediaStore) *ProductService {
	return &ProductService{store: store, media: media}
}

// List returns a filtered, paginated product collection
func (s *ProductService) List(ctx context.Context, req ListProductsRequest) ([]catalog.Product, *cms.Pagination, error) {
	return s.store.ListProducts(ctx, req.options())
}

// Get returns one product by numeric id or document id
func (s *ProductService) Get(ctx context.Context, idOrDocumentID string) (*catalog.Product, error) {
	if idOrDocumentID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product id is required")
	}
	return s.store.GetProduct(ctx, idOrDocumentID)
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*catalog.Product, error) {
	if !req.Price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product price must be positive")
	}
	if req.Offer {
		if req.OfferPrice == nil || !req.OfferPrice.IsPositive() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Offer price must be positive when the offer flag is set")
		}
	}

	input := cms.ProductInput{
		Name:         &req.Name,
		Price:        &req.Price,
		Offer:        &req.Offer,
		OfferPrice:   req.OfferPrice,
		Stock:        &req.Stock,
		Show:         &req.Show,
		Sizes:        req.Sizes,
		TypeProducts: req.Categories,
		Media:        req.Media,
	}
	return s.store.CreateProduct(ctx, input)
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, idOrDocumentID string, req UpdateProductRequest) (*catalog.Product, error) {
	if req.Price != nil && !req.Price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product price must be positive")
	}
	if req.Offer != nil && *req.Offer {
		offerPrice := req.OfferPrice
		if offerPrice == nil {
			existing, err := s.store.GetProduct(ctx, idOrDocumentID)
			if err != nil {
				return nil, err
			}
			offerPrice = &existing.OfferPrice
		}
		if !offerPrice.IsPositive() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Offer price must be positive when the offer flag is set")
		}
	}

	input := cms.ProductInput{
		Name:         req.Name,
		Price:        req.Price,
		Offer:        req.Offer,
		OfferPrice:   req.OfferPrice,
		Stock:        req.Stock,
		Show:         req.Show,
		Sizes:        req.Sizes,
		TypeProducts: req.Categories,
		Media:        req.Media,
	}
	return s.store.UpdateProduct(ctx, idOrDocumentID, input)
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, idOrDocumentID string) error {
	return s.store.DeleteProduct(ctx, idOrDocumentID)
}

// UploadMedia stores a media file and returns the created assets
func (s *ProductService) UploadMedia(ctx context.Context, filename string, contents io.Reader) ([]catalog.Media, error) {
	if filename == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Filename is required")
	}
	return s.media.UploadFile(ctx, filename, contents)
}

// DeleteMedia removes a media asset by its numeric file id
func (s *ProductService) DeleteMedia(ctx context.Context, fileID int) error {
	if fileID <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "File id must be a positive integer")
	}
	err := s.media.DeleteFile(ctx, fileID)
	if err != nil && errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("NOT_FOUND", "Media asset not found")
	}
	return err
}
