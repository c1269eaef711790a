package services

import "github.com/diewo77/autoparts/internal/models"

// Totals are the amounts printed at the bottom of an invoice.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	TaxAmount  float64 `json:"taxAmount"`
	GrandTotal float64 `json:"grandTotal"`
}

// ComputeTotals sums the lines and applies vatRate to the subtotal.
// No rounding happens here; use Rounded for display.
func ComputeTotals(items []models.InvoiceItem, vatRate float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	tax := subtotal * vatRate
	return Totals{Subtotal: subtotal, TaxAmount: tax, GrandTotal: subtotal + tax}
}

// Rounded rounds each amount to places decimals. The grand total is rounded
// from the exact value, not summed from the rounded parts.
func (t Totals) Rounded(places int32) Totals {
	return Totals{
		Subtotal:   Round(t.Subtotal, places),
		TaxAmount:  Round(t.TaxAmount, places),
		GrandTotal: Round(t.GrandTotal, places),
	}
}
