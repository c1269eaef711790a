package models

import "time"

// Customer is a buyer that invoices are addressed to.
type Customer struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name    string `gorm:"size:255;not null" json:"name"`
	Address string `gorm:"size:500" json:"address"`
	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:255" json:"email"`

	VATNumber string `gorm:"column:vat_number;size:50" json:"vatNumber,omitempty"`
}
