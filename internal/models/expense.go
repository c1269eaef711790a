package models

import "time"

// Expense is money spent by the business, e.g. rent or a wreck purchase.
type Expense struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt   time.Time `json:"-"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Description string    `gorm:"size:500;not null" json:"description"`
	Amount      float64   `gorm:"not null" json:"amount"`
}
