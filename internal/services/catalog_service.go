package services

import (
	"context"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/models"
)

// CatalogClient is the slice of the backend client the catalog screens use.
type CatalogClient interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, input models.ProductInput) error
	UpdateProduct(ctx context.Context, id int64, input models.ProductInput) error
	DeleteProduct(ctx context.Context, id int64) error
}

// CatalogService handles catalog reads and the admin CRUD peripheral.
type CatalogService struct {
	client CatalogClient
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(client CatalogClient) *CatalogService {
	return &CatalogService{
		client: client,
	}
}

// ListProducts retrieves the catalog, always as a fresh fetch.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.client.ListProducts(ctx)
}

// CreateProduct adds a catalog entry via the backend.
func (s *CatalogService) CreateProduct(ctx context.Context, input models.ProductInput) error {
	return s.client.CreateProduct(ctx, input)
}

// UpdateProduct updates a catalog entry via the backend.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, input models.ProductInput) error {
	return s.client.UpdateProduct(ctx, id, input)
}

// DeleteProduct removes a catalog entry via the backend.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return s.client.DeleteProduct(ctx, id)
}
