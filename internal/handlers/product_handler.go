package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/backend"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/models"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog: reads for everyone
// logged in, mutations for the admin role only.
type ProductHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog routes. adminOnly guards the mutation
// routes; the product list itself is visible to any authenticated role.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, adminOnly fiber.Handler) {
	router.Get("/products", h.HandleGetProducts)
	router.Post("/products", adminOnly, h.HandleCreateProduct)
	router.Put("/products/:id", adminOnly, h.HandleUpdateProduct)
	router.Delete("/products/:id", adminOnly, h.HandleDeleteProduct)
}

// HandleGetProducts returns the catalog as a fresh fetch from the backend.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.Context())
	if err != nil {
		log.Printf("Error fetching catalog: %v", err)
		return c.Status(statusForBackendError(err)).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleCreateProduct adds a product and answers with the re-fetched catalog.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	input, ok := h.parseProductInput(c)
	if !ok {
		return nil
	}

	if err := h.service.CreateProduct(c.Context(), *input); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(statusForBackendError(err)).JSON(fiber.Map{
			"success": false,
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}

	return h.respondWithCatalog(c, fiber.StatusCreated, "Product added successfully.")
}

// HandleUpdateProduct updates a product and answers with the re-fetched catalog.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": fmt.Sprintf("Invalid product ID: %s", c.Params("id")),
		})
	}

	input, ok := h.parseProductInput(c)
	if !ok {
		return nil
	}

	if err := h.service.UpdateProduct(c.Context(), id, *input); err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return c.Status(statusForBackendError(err)).JSON(fiber.Map{
			"success": false,
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}

	return h.respondWithCatalog(c, fiber.StatusOK, "Product updated successfully.")
}

// HandleDeleteProduct removes a product and answers with the re-fetched catalog.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": fmt.Sprintf("Invalid product ID: %s", c.Params("id")),
		})
	}

	if err := h.service.DeleteProduct(c.Context(), id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return c.Status(statusForBackendError(err)).JSON(fiber.Map{
			"success": false,
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}

	return h.respondWithCatalog(c, fiber.StatusOK, "Product deleted successfully.")
}

// parseProductInput parses and validates the admin form body. On failure it
// writes the error response and returns ok=false.
func (h *ProductHandler) parseProductInput(c *fiber.Ctx) (*models.ProductInput, bool) {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return nil, false
	}

	if err := h.validate.Struct(input); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  errorMessages,
		})
		return nil, false
	}
	return &input, true
}

// respondWithCatalog re-invokes the catalog client after a mutation so the
// admin view reflects the change. The mutation already succeeded, so a failed
// refresh is reported as a stale catalog rather than a failed operation.
func (h *ProductHandler) respondWithCatalog(c *fiber.Ctx, status int, message string) error {
	products, err := h.service.ListProducts(c.Context())
	if err != nil {
		log.Printf("Warning: catalog refresh after mutation failed: %v", err)
		return c.Status(status).JSON(fiber.Map{
			"success":       true,
			"message":       message,
			"catalog_stale": true,
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"success":  true,
		"message":  message,
		"products": products,
	})
}

// statusForBackendError maps the backend error taxonomy onto HTTP statuses:
// an explicit backend refusal is the caller's mistake, everything else is a
// bad upstream.
func statusForBackendError(err error) int {
	var bizErr *backend.BusinessError
	if errors.As(err, &bizErr) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusBadGateway
}
