package repositories

import (
	"sync"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/models"

	"github.com/google/uuid"
)

// MockJournalRepository is an in-memory implementation of JournalRepository.
// Entries are kept in append order.
type MockJournalRepository struct {
	entries []models.JournalEntry
	mu      sync.RWMutex
}

// NewMockJournalRepository creates a new instance of MockJournalRepository.
func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{}
}

// Append records a settled sale.
func (r *MockJournalRepository) Append(entry *models.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

// GetAll returns all journal entries in append order.
func (r *MockJournalRepository) GetAll() ([]models.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.JournalEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

// GetBySaleID returns the entry for a sale ID.
func (r *MockJournalRepository) GetBySaleID(saleID string) (*models.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if r.entries[i].SaleID == saleID {
			entry := r.entries[i]
			return &entry, nil
		}
	}
	return nil, ErrEntryNotFound
}
