package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/models"
)

// ListProducts fetches the full catalog. Called on view load, after every
// settled sale and after every admin mutation; there is deliberately no
// client-side cache to invalidate.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct adds a catalog entry. Admin peripheral only.
func (c *Client) CreateProduct(ctx context.Context, input models.ProductInput) error {
	var resp statusResponse
	if err := c.do(ctx, http.MethodPost, "/api/products", input, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &BusinessError{Message: resp.Message}
	}
	return nil
}

// UpdateProduct replaces a catalog entry's name, price and stock.
func (c *Client) UpdateProduct(ctx context.Context, id int64, input models.ProductInput) error {
	var resp statusResponse
	path := fmt.Sprintf("/api/products/%d", id)
	if err := c.do(ctx, http.MethodPut, path, input, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &BusinessError{Message: resp.Message}
	}
	return nil
}

// DeleteProduct removes a catalog entry.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	var resp statusResponse
	path := fmt.Sprintf("/api/products/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &BusinessError{Message: resp.Message}
	}
	return nil
}
