package repositories

import (
	"errors"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/models"
)

// ErrEntryNotFound is returned when no journal entry exists for a sale ID.
var ErrEntryNotFound = errors.New("journal entry not found")

// JournalRepository defines the interface for the local sales journal.
type JournalRepository interface {
	Append(entry *models.JournalEntry) error
	GetAll() ([]models.JournalEntry, error)
	GetBySaleID(saleID string) (*models.JournalEntry, error)
}
