package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/services"
)

func sampleData(lang string) InvoiceData {
	date := time.Date(2024, time.May, 2, 10, 0, 0, 0, time.UTC)
	due := date.AddDate(0, 0, 30)
	items := []models.InvoiceItem{
		{PartSKU: "VW-GOLF4-ALT-001", Description: "Alternateur (Volkswagen Golf IV)", Quantity: 1, UnitPrice: 250},
		{PartSKU: "PEU-208-DR-G-001", Description: "Porte avant gauche (Peugeot 208)", Quantity: 2, UnitPrice: 100},
	}
	settings := models.DefaultSettings()
	return InvoiceData{
		Lang: lang,
		Invoice: models.Invoice{
			ID:            "INV-1",
			InvoiceNumber: "FACT-2024-0001",
			CustomerID:    "CUST-001",
			Date:          date,
			DueDate:       &due,
			Status:        models.InvoiceStatusSent,
			Items:         items,
		},
		Customer: models.Customer{ID: "CUST-001", Name: "Jean Dupont", Address: "12 Rue de la Paix, Tunis", VATNumber: "TN 1234567/A"},
		Settings: settings,
		Totals:   services.ComputeTotals(items, settings.VATRate).Rounded(3),
	}
}

func TestInvoicePDF(t *testing.T) {
	for _, lang := range []string{"fr", "en"} {
		t.Run(lang, func(t *testing.T) {
			out, err := InvoicePDF(sampleData(lang))
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if !bytes.HasPrefix(out, []byte("%PDF")) {
				t.Fatalf("output is not a PDF document")
			}
		})
	}
}

func TestInvoicePDFWithoutItems(t *testing.T) {
	d := sampleData("fr")
	d.Invoice.Items = nil
	d.Invoice.DueDate = nil
	d.Totals = services.Totals{}
	out, err := InvoicePDF(d)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty document")
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"fr", "Facture-FACT-2024-0001.pdf"},
		{"en", "Invoice-FACT-2024-0001.pdf"},
		{"xx", "Facture-FACT-2024-0001.pdf"},
	}
	for _, tt := range tests {
		if got := FileName(tt.lang, "FACT-2024-0001"); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)
	if got := formatDate("fr", d); got != "02/05/2024" {
		t.Errorf("fr = %q", got)
	}
	if got := formatDate("en", d); got != "05/02/2024" {
		t.Errorf("en = %q", got)
	}
}
