package middleware

import (
	"log"
	"strings"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware to check for a valid session token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		tokenString := parts[1]

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		// Store claims in Fiber context for subsequent handlers
		c.Locals("username", claims["username"])
		c.Locals("role", claims["role"])
		c.Locals("session_id", claims["session_id"])

		// Continue to the next handler
		return c.Next()
	}
}

// RoleRequired gates a route group to one role. It must run after
// AuthRequired, which puts the role claim in the context.
func RoleRequired(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claim, ok := c.Locals("role").(string); !ok || claim != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You do not have permission to access this page.",
			})
		}
		return c.Next()
	}
}
