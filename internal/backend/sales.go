package backend

import (
	"context"
	"net/http"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/models"
)

// SubmitSale posts the cart as one atomic sale. The backend performs the
// authoritative stock check; an explicit refusal comes back as BusinessError
// carrying the backend's message verbatim.
func (c *Client) SubmitSale(ctx context.Context, req models.SaleRequest) (*models.SaleResult, error) {
	var result models.SaleResult
	if err := c.do(ctx, http.MethodPost, "/api/sales", req, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &BusinessError{Message: result.Message}
	}
	return &result, nil
}

// ReceiptURL builds the address of the receipt document for a settled sale.
// The document itself is opened by the UI in a new context, never parsed here.
func (c *Client) ReceiptURL(id models.SaleID) string {
	return c.baseURL + "/api/receipt/" + id.String()
}

// Login forwards credentials to the backend. A success:false answer is not an
// error at this layer; the caller inspects the result.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	req := models.LoginRequest{Username: username, Password: password}
	var result models.LoginResult
	if err := c.do(ctx, http.MethodPost, "/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
