package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/backend"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/models"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/login", h.HandleLogin)
}

// RegisterSessionRoutes registers the routes that require a session token.
func (h *AuthHandler) RegisterSessionRoutes(router fiber.Router) {
	router.Post("/logout", h.HandleLogout)
}

// HandleLogin forwards credentials to the store backend and, on success,
// answers with the role and a terminal session token. A denial comes back as
// a 200 with success:false, mirroring the backend's own login contract.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	// Validate the login request
	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	session, err := h.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		var bizErr *backend.BusinessError
		if errors.As(err, &bizErr) {
			return c.JSON(fiber.Map{
				"success": false,
				"message": bizErr.Message,
			})
		}
		log.Printf("Error during login for user %s: %v", req.Username, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"message": "The store backend could not be reached. Please try again.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"role":    session.Role,
		"token":   session.Token,
	})
}

// HandleLogout closes the caller's terminal session. The cart behind it is
// gone for good; the token itself simply stops resolving to a session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if sessionID, ok := c.Locals("session_id").(string); ok && sessionID != "" {
		h.authService.Logout(sessionID)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "You have been logged out.",
	})
}
