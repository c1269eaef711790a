package models

import (
	"time"

	"gorm.io/datatypes"
)

// SettingsID is the primary key of the single settings row.
const SettingsID = 1

// CompanyInfo is the seller block printed on invoices.
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	VatID   string `json:"vatId"`
}

// AppSettings holds the company block, VAT rate and display currency.
type AppSettings struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UpdatedAt time.Time `json:"-"`

	CompanyInfo datatypes.JSONType[CompanyInfo] `json:"companyInfo"`

	// VATRate is a fraction, e.g. 0.19 for 19%.
	VATRate        float64 `gorm:"column:vat_rate;not null" json:"vatRate"`
	CurrencySymbol string  `gorm:"size:10;not null" json:"currencySymbol"`
	CurrencyCode   string  `gorm:"size:3;not null" json:"currencyCode"`
}

// Company returns the decoded company block.
func (s *AppSettings) Company() CompanyInfo {
	return s.CompanyInfo.Data()
}

// DefaultSettings returns the settings created on first access.
func DefaultSettings() AppSettings {
	return AppSettings{
		ID: SettingsID,
		CompanyInfo: datatypes.NewJSONType(CompanyInfo{
			Name:    "AutoPart-Manager Pro",
			Address: "10 Rue de la Technologie, El Ghazela, Tunis",
			Phone:   "+216 70 123 456",
			Email:   "contact@autopart-manager.tn",
			VatID:   "TN 00 123456/A/B/000",
		}),
		VATRate:        0.19,
		CurrencySymbol: "TND",
		CurrencyCode:   "TND",
	}
}
