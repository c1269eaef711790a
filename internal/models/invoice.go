package models

import "time"

// InvoiceStatus represents the status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "Draft"
	InvoiceStatusSent      InvoiceStatus = "Sent"
	InvoiceStatusPaid      InvoiceStatus = "Paid"
	InvoiceStatusOverdue   InvoiceStatus = "Overdue"
	InvoiceStatusCancelled InvoiceStatus = "Cancelled"
)

// InvoiceStatuses lists every accepted status value.
var InvoiceStatuses = []string{
	string(InvoiceStatusDraft),
	string(InvoiceStatusSent),
	string(InvoiceStatusPaid),
	string(InvoiceStatusOverdue),
	string(InvoiceStatusCancelled),
}

// Invoice is a sale to a customer.
type Invoice struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	InvoiceNumber string `gorm:"size:50;index" json:"invoiceNumber"`

	// CustomerID is a soft reference; the customer may have been deleted.
	CustomerID string `gorm:"size:64;index" json:"customerId"`

	Date    time.Time  `gorm:"not null" json:"date"`
	DueDate *time.Time `json:"dueDate,omitempty"`

	Status InvoiceStatus `gorm:"size:20;not null" json:"status"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
}

// IsDraft returns true if the invoice is in draft status.
func (i *Invoice) IsDraft() bool {
	return i.Status == InvoiceStatusDraft
}

// HasPart reports whether a line for sku is already present.
func (i *Invoice) HasPart(sku string) bool {
	for _, item := range i.Items {
		if item.PartSKU == sku {
			return true
		}
	}
	return false
}

// InvoiceItem is one invoice line. Description and UnitPrice are snapshots
// taken when the line was added and do not follow later part edits.
type InvoiceItem struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	InvoiceID string `gorm:"size:64;index;not null" json:"-"`
	Position  int    `gorm:"not null" json:"-"`

	PartSKU     string  `gorm:"column:part_sku;size:100" json:"partSKU"`
	Description string  `gorm:"size:500" json:"description"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unitPrice"`
}

// LineTotal returns quantity times unit price.
func (item *InvoiceItem) LineTotal() float64 {
	return float64(item.Quantity) * item.UnitPrice
}
