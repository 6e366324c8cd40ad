package models

import "gorm.io/gorm"

// JournalEntry is the terminal's local record of a settled sale, kept for
// end-of-day reconciliation against the backend. The backend remains the
// system of record; losing the journal loses nothing but convenience.
type JournalEntry struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SaleID     string  `json:"sale_id" gorm:"index;type:varchar(64)"`
	Cashier    string  `json:"cashier" gorm:"type:varchar(100)"`
	Total      float64 `json:"total"`
	LineCount  int     `json:"line_count"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
