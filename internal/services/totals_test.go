package services

import (
	"testing"

	"github.com/diewo77/autoparts/internal/models"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name    string
		items   []models.InvoiceItem
		vatRate float64
		want    Totals
	}{
		{
			name: "two lines at 19%",
			items: []models.InvoiceItem{
				{PartSKU: "A", Quantity: 1, UnitPrice: 250},
				{PartSKU: "B", Quantity: 2, UnitPrice: 100},
			},
			vatRate: 0.19,
			want:    Totals{Subtotal: 450, TaxAmount: 85.5, GrandTotal: 535.5},
		},
		{name: "no items", vatRate: 0.19, want: Totals{}},
		{
			name:    "zero rate",
			items:   []models.InvoiceItem{{Quantity: 3, UnitPrice: 10}},
			vatRate: 0,
			want:    Totals{Subtotal: 30, TaxAmount: 0, GrandTotal: 30},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, tt.vatRate)
			if diff := got.Subtotal - tt.want.Subtotal; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Subtotal = %f, want %f", got.Subtotal, tt.want.Subtotal)
			}
			if diff := got.TaxAmount - tt.want.TaxAmount; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("TaxAmount = %f, want %f", got.TaxAmount, tt.want.TaxAmount)
			}
			if diff := got.GrandTotal - tt.want.GrandTotal; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("GrandTotal = %f, want %f", got.GrandTotal, tt.want.GrandTotal)
			}
		})
	}
}

func TestTotalsRounded(t *testing.T) {
	tot := ComputeTotals([]models.InvoiceItem{{Quantity: 1, UnitPrice: 10.0005}}, 0.19)
	got := tot.Rounded(3)
	if got.Subtotal != 10.001 {
		t.Errorf("Subtotal = %v, want 10.001", got.Subtotal)
	}
	if got.TaxAmount != 1.9 {
		t.Errorf("TaxAmount = %v, want 1.9", got.TaxAmount)
	}
	if got.GrandTotal != 11.901 {
		t.Errorf("GrandTotal = %v, want 11.901", got.GrandTotal)
	}
}

func TestCurrencyPlaces(t *testing.T) {
	tests := map[string]int32{"TND": 3, "tnd": 3, "EUR": 2, "USD": 2, "JPY": 0, "": 2}
	for code, want := range tests {
		if got := CurrencyPlaces(code); got != want {
			t.Errorf("CurrencyPlaces(%q) = %d, want %d", code, got, want)
		}
	}
}

func TestRoundAndFormat(t *testing.T) {
	if got := Round(2.5, 0); got != 3 {
		t.Errorf("Round(2.5, 0) = %v, want 3", got)
	}
	if got := Round(-2.5, 0); got != -3 {
		t.Errorf("Round(-2.5, 0) = %v, want -3", got)
	}
	if got := FormatAmount(535.5, 3); got != "535.500" {
		t.Errorf("FormatAmount = %q, want 535.500", got)
	}
	if got := FormatAmount(85.5, 2); got != "85.50" {
		t.Errorf("FormatAmount = %q, want 85.50", got)
	}
}
