package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/validator"
)

// CatalogBackend is the slice of the remote API catalog flows depend on.
type CatalogBackend interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	Popular(ctx context.Context) ([]domain.Product, error)
	Trendy(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductInput holds the parameters for creating or updating a listing.
type ProductInput struct {
	Name        string `json:"name" validate:"required"`
	Price       int64  `json:"price" validate:"gte=0"`
	Quantity    int    `json:"quantity" validate:"required,gte=1"`
	Color       string `json:"color"`
	Description string `json:"description"`
	ImageURL    string `json:"image"`
}

func (in ProductInput) product(id string) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        in.Name,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Color:       in.Color,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
}

// CatalogService serves catalog reads for shoppers and listing management
// for sellers. Listing reads degrade to empty results on failure so browse
// surfaces keep rendering; single-product reads and seller writes surface
// their errors.
type CatalogService struct {
	backend CatalogBackend
	logger  *slog.Logger
}

func NewCatalogService(backend CatalogBackend, logger *slog.Logger) *CatalogService {
	return &CatalogService{backend: backend, logger: logger}
}

// Products returns the full catalog, or an empty list if the backend is
// unreachable.
func (s *CatalogService) Products(ctx context.Context) []domain.Product {
	products, err := s.backend.Products(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load catalog, returning empty list", "error", err)
		return []domain.Product{}
	}
	return products
}

// Search returns products matching query, or an empty list on failure.
func (s *CatalogService) Search(ctx context.Context, query string) []domain.Product {
	products, err := s.backend.Search(ctx, query)
	if err != nil {
		s.logger.WarnContext(ctx, "product search failed, returning empty results",
			"query", query, "error", err)
		return []domain.Product{}
	}
	return products
}

// Popular returns the featured catalog slice, or an empty list on failure.
func (s *CatalogService) Popular(ctx context.Context) []domain.Product {
	products, err := s.backend.Popular(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load popular products", "error", err)
		return []domain.Product{}
	}
	return products
}

// Trendy returns the trending catalog slice, or an empty list on failure.
func (s *CatalogService) Trendy(ctx context.Context) []domain.Product {
	products, err := s.backend.Trendy(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load trendy products", "error", err)
		return []domain.Product{}
	}
	return products
}

// Product fetches a single listing by id.
func (s *CatalogService) Product(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.backend.Product(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// CreateProduct adds a new listing on behalf of a seller.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	created, err := s.backend.CreateProduct(ctx, in.product(""))
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product listing created", "product_id", created.ID)
	return created, nil
}

// UpdateProduct replaces an existing listing.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	updated, err := s.backend.UpdateProduct(ctx, in.product(id))
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

// DeleteProduct removes a listing.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.backend.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
