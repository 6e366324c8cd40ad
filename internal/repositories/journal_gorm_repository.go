package repositories

import (
	"fmt"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMJournalRepository is a GORM implementation of JournalRepository.
type GORMJournalRepository struct {
	db *gorm.DB
}

// NewGORMJournalRepository creates a new instance of GORMJournalRepository.
func NewGORMJournalRepository(db *gorm.DB) *GORMJournalRepository {
	return &GORMJournalRepository{
		db: db,
	}
}

// Append records a settled sale in the journal.
func (r *GORMJournalRepository) Append(entry *models.JournalEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

// GetAll retrieves all journal entries, oldest first.
func (r *GORMJournalRepository) GetAll() ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	if err := r.db.Order("created_at asc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get journal entries: %w", err)
	}
	return entries, nil
}

// GetBySaleID retrieves the journal entry for a settled sale.
func (r *GORMJournalRepository) GetBySaleID(saleID string) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := r.db.First(&entry, "sale_id = ?", saleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get journal entry for sale %s: %w", saleID, err)
	}
	return &entry, nil
}
