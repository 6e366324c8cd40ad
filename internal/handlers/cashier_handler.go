package handlers

import (
	"errors"
	"log"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/backend"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/checkout"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/models"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CashierHandler handles the checkout surface: the cart and the process-sale
// action. Every route resolves the caller's session to its coordinator; the
// coordinator serializes all cart access.
type CashierHandler struct {
	sessions *services.SessionService
}

// NewCashierHandler creates a new CashierHandler.
func NewCashierHandler(sessions *services.SessionService) *CashierHandler {
	return &CashierHandler{
		sessions: sessions,
	}
}

// RegisterRoutes registers the cashier routes. The role guard is attached
// per route: the cart and sales paths share the /api prefix with the admin
// routes, so a prefix-wide guard would spill onto them.
func (h *CashierHandler) RegisterRoutes(router fiber.Router, cashierOnly fiber.Handler) {
	router.Post("/cart/items", cashierOnly, h.HandleAddToCart)
	router.Get("/cart", cashierOnly, h.HandleGetCart)
	router.Delete("/cart", cashierOnly, h.HandleClearCart)
	router.Post("/sales", cashierOnly, h.HandleProcessSale)
}

// coordinator resolves the session claim to its checkout coordinator. On
// failure it writes the error response and returns nil.
func (h *CashierHandler) coordinator(c *fiber.Ctx) *checkout.Coordinator {
	sessionID, ok := c.Locals("session_id").(string)
	if !ok || sessionID == "" {
		c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No checkout session",
		})
		return nil
	}
	co, ok := h.sessions.Get(sessionID)
	if !ok {
		c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Checkout session expired. Please log in again.",
		})
		return nil
	}
	return co
}

// renderCart is the cashier view of the coordinator: lines, display total,
// submission status, the receipt link currently on display and the message
// of the last failed submission, if any.
func renderCart(co *checkout.Coordinator) fiber.Map {
	return fiber.Map{
		"lines":       co.Lines(),
		"total":       co.FormatTotal(),
		"status":      co.Status(),
		"receipt_url": co.ReceiptURL(),
		"last_error":  co.LastError(),
	}
}

// HandleAddToCart puts one unit of the posted product into the cart. The body
// is the product as displayed on the grid, so the price snapshotted is the
// price the cashier saw.
func (h *CashierHandler) HandleAddToCart(c *fiber.Ctx) error {
	co := h.coordinator(c)
	if co == nil {
		return nil
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing add-to-cart body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := co.AddProduct(product); err != nil {
		if errors.Is(err, checkout.ErrSubmissionInFlight) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "A sale is being processed. Please wait.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add product to cart",
			"error":   err.Error(),
		})
	}

	return c.JSON(renderCart(co))
}

// HandleGetCart returns the current cart view.
func (h *CashierHandler) HandleGetCart(c *fiber.Ctx) error {
	co := h.coordinator(c)
	if co == nil {
		return nil
	}
	return c.JSON(renderCart(co))
}

// HandleClearCart cancels the in-progress cart.
func (h *CashierHandler) HandleClearCart(c *fiber.Ctx) error {
	co := h.coordinator(c)
	if co == nil {
		return nil
	}

	if err := co.ClearCart(); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "A sale is being processed. Please wait.",
		})
	}
	return c.JSON(renderCart(co))
}

// HandleProcessSale submits the cart as one atomic sale. Error mapping
// follows the submission contract: an empty cart or in-flight submission is
// rejected locally, a backend refusal carries its message verbatim and keeps
// the cart, network and protocol trouble get a generic notice.
func (h *CashierHandler) HandleProcessSale(c *fiber.Ctx) error {
	co := h.coordinator(c)
	if co == nil {
		return nil
	}

	result, err := co.Submit(c.Context())
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Cart is empty.",
			})
		case errors.Is(err, checkout.ErrSubmissionInFlight):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "A sale is already being processed.",
			})
		}

		log.Printf("Sale submission failed: %v", err)
		var bizErr *backend.BusinessError
		if errors.As(err, &bizErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": bizErr.Message,
				"cart":    renderCart(co),
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"message": checkout.GenericFailureMessage,
			"cart":    renderCart(co),
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"sale_id":       result.SaleID,
		"receipt_url":   result.ReceiptURL,
		"products":      result.Products,
		"catalog_stale": result.CatalogStale,
		"cart":          renderCart(co),
	})
}
