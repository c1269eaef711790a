package services

import (
	"context"
	"strings"
	"testing"

	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/store/memory"
)

func TestSearchForInvoice(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := NewCatalogService(st)
	parts := []models.Part{
		{SKU: "VW-GOLF4-ALT-001", Name: "Alternateur", QuantityInStock: 5},
		{SKU: "PEU-208-DR-G-001", Name: "Portière avant gauche", QuantityInStock: 2},
		{SKU: "REN-CLIO3-BUMP-F-002", Name: "Pare-choc avant", QuantityInStock: 0},
	}
	for _, p := range parts {
		if _, err := svc.SavePart(ctx, p); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	tests := []struct {
		q    string
		want []string
	}{
		{"alt", []string{"VW-GOLF4-ALT-001"}},
		{"AVANT", []string{"PEU-208-DR-G-001"}},
		{"peu-208", []string{"PEU-208-DR-G-001"}},
		{"clio", nil},
		{"  ", nil},
	}
	for _, tt := range tests {
		got, err := svc.SearchForInvoice(ctx, tt.q)
		if err != nil {
			t.Fatalf("search %q: %v", tt.q, err)
		}
		var skus []string
		for _, p := range got {
			skus = append(skus, p.SKU)
		}
		if strings.Join(skus, ",") != strings.Join(tt.want, ",") {
			t.Errorf("search %q = %v, want %v", tt.q, skus, tt.want)
		}
	}
}

func TestSearchForInvoiceLimit(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := NewCatalogService(st)
	for _, sku := range []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7"} {
		if _, err := svc.SavePart(ctx, models.Part{SKU: sku, Name: "Phare", QuantityInStock: 1}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	got, err := svc.SearchForInvoice(ctx, "phare")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != SearchLimit {
		t.Errorf("got %d results, want %d", len(got), SearchLimit)
	}
}

func TestCustomerLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(memory.New())
	c, err := svc.SaveCustomer(ctx, models.Customer{Name: "Garage Solide"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(c.ID, "CUST-") {
		t.Errorf("unexpected id %q", c.ID)
	}
	name, err := svc.CustomerName(ctx, c.ID, "?")
	if err != nil || name != "Garage Solide" {
		t.Errorf("CustomerName = %q, %v", name, err)
	}
	if err := svc.DeleteCustomer(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	name, err = svc.CustomerName(ctx, c.ID, "Client inconnu")
	if err != nil || name != "Client inconnu" {
		t.Errorf("CustomerName after delete = %q, %v", name, err)
	}
}

func TestSettingsCreatedOnFirstAccess(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := NewSettingsService(st)
	s, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.CurrencyCode != "TND" || s.VATRate != 0.19 {
		t.Errorf("unexpected defaults %+v", s)
	}
	if _, err := st.Settings().Get(ctx); err != nil {
		t.Errorf("defaults not persisted: %v", err)
	}
}

func TestExpenseAdd(t *testing.T) {
	ctx := context.Background()
	svc := NewExpenseService(memory.New())
	svc.now = clockAt(2024)
	e, err := svc.Add(ctx, models.Expense{Description: "Loyer Atelier", Amount: 3500})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !strings.HasPrefix(e.ID, "EXP-") || !e.Date.Equal(clockAt(2024)()) {
		t.Errorf("unexpected expense %+v", e)
	}
	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %v, %v", list, err)
	}
	if err := svc.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
