package handlers

import (
	"errors"
	"log"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// JournalHandler exposes the local sales journal for end-of-day
// reconciliation. Admin only.
type JournalHandler struct {
	repo repositories.JournalRepository
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(repo repositories.JournalRepository) *JournalHandler {
	return &JournalHandler{
		repo: repo,
	}
}

// RegisterRoutes registers the journal routes. The role guard is attached
// per route; the journal shares its path space with the cashier routes.
func (h *JournalHandler) RegisterRoutes(router fiber.Router, adminOnly fiber.Handler) {
	router.Get("/journal", adminOnly, h.HandleGetJournal)
	router.Get("/journal/:sale_id", adminOnly, h.HandleGetJournalEntry)
}

// HandleGetJournal returns all journal entries, oldest first.
func (h *JournalHandler) HandleGetJournal(c *fiber.Ctx) error {
	entries, err := h.repo.GetAll()
	if err != nil {
		log.Printf("Error reading sales journal: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not read sales journal",
			"error":   err.Error(),
		})
	}
	return c.JSON(entries)
}

// HandleGetJournalEntry returns the journal entry for one settled sale.
func (h *JournalHandler) HandleGetJournalEntry(c *fiber.Ctx) error {
	entry, err := h.repo.GetBySaleID(c.Params("sale_id"))
	if err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No journal entry for this sale",
			})
		}
		log.Printf("Error reading sales journal: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not read sales journal",
			"error":   err.Error(),
		})
	}
	return c.JSON(entry)
}
