// Package storetest holds behaviour checks shared by every store implementation.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/store"
	"gorm.io/datatypes"
)

// Run exercises st against the record store contract. newStore must
// return an empty store on every call.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("PartRoundTrip", func(t *testing.T) { testPartRoundTrip(t, newStore(t)) })
	t.Run("CustomerOrder", func(t *testing.T) { testCustomerOrder(t, newStore(t)) })
	t.Run("InvoiceRoundTrip", func(t *testing.T) { testInvoiceRoundTrip(t, newStore(t)) })
	t.Run("InvoiceItemsReplaced", func(t *testing.T) { testInvoiceItemsReplaced(t, newStore(t)) })
	t.Run("ExpenseOrder", func(t *testing.T) { testExpenseOrder(t, newStore(t)) })
	t.Run("Settings", func(t *testing.T) { testSettings(t, newStore(t)) })
	t.Run("DeleteMissing", func(t *testing.T) { testDeleteMissing(t, newStore(t)) })
	t.Run("TxRollback", func(t *testing.T) { testTxRollback(t, newStore(t)) })
	t.Run("TxCommit", func(t *testing.T) { testTxCommit(t, newStore(t)) })
}

func samplePart(sku string, qty int) models.Part {
	return models.Part{
		SKU:                sku,
		Name:               "Alternateur",
		Description:        "Alternateur Bosch 120A",
		SourceVehicleMake:  "Volkswagen",
		SourceVehicleModel: "Golf IV",
		SourceVehicleYear:  2002,
		Condition:          models.ConditionGradeA,
		WarehouseLocation:  "A-3-B",
		PurchasePrice:      80,
		SellingPrice:       250,
		QuantityInStock:    qty,
		Photos:             datatypes.JSONSlice[string]{"https://picsum.photos/id/10/200/200"},
	}
}

func testPartRoundTrip(t *testing.T, st store.Store) {
	ctx := context.Background()
	in := samplePart("VW-GOLF4-ALT-001", 5)
	if _, err := st.Parts().Put(ctx, in); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := st.Parts().Get(ctx, in.SKU)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != in.Name || got.Condition != in.Condition || got.SellingPrice != in.SellingPrice ||
		got.QuantityInStock != 5 || got.SourceVehicleYear != 2002 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Photos) != 1 || got.Photos[0] != in.Photos[0] {
		t.Fatalf("photos mismatch: %v", got.Photos)
	}

	// overwrite keeps a single record
	in.QuantityInStock = -1
	if _, err := st.Parts().Put(ctx, in); err != nil {
		t.Fatalf("put again: %v", err)
	}
	parts, err := st.Parts().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(parts) != 1 || parts[0].QuantityInStock != -1 {
		t.Fatalf("expected one part with stock -1, got %+v", parts)
	}

	if err := st.Parts().Delete(ctx, in.SKU); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.Parts().Get(ctx, in.SKU); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func testCustomerOrder(t *testing.T, st store.Store) {
	ctx := context.Background()
	for _, id := range []string{"CUST-001", "CUST-002"} {
		if _, err := st.Customers().Put(ctx, models.Customer{ID: id, Name: id, VATNumber: "TN1"}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
		time.Sleep(2 * time.Millisecond)
	}
	list, err := st.Customers().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "CUST-002" {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if list[1].VATNumber != "TN1" {
		t.Fatalf("vat number lost: %+v", list[1])
	}
}

func testInvoiceRoundTrip(t *testing.T, st store.Store) {
	ctx := context.Background()
	date := time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)
	due := date.AddDate(0, 0, 30)
	in := models.Invoice{
		ID:            "INV-001",
		InvoiceNumber: "FACT-2024-0001",
		CustomerID:    "CUST-001",
		Date:          date,
		DueDate:       &due,
		Status:        models.InvoiceStatusSent,
		Items: []models.InvoiceItem{
			{PartSKU: "B", Description: "second sku first", Quantity: 2, UnitPrice: 100},
			{PartSKU: "A", Description: "first sku second", Quantity: 1, UnitPrice: 250},
		},
	}
	if _, err := st.Invoices().Put(ctx, in); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := st.Invoices().Get(ctx, in.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.InvoiceNumber != in.InvoiceNumber || got.CustomerID != in.CustomerID || got.Status != in.Status {
		t.Fatalf("header mismatch: %+v", got)
	}
	if !got.Date.Equal(date) || got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Fatalf("date mismatch: %v %v", got.Date, got.DueDate)
	}
	if len(got.Items) != 2 || got.Items[0].PartSKU != "B" || got.Items[1].PartSKU != "A" {
		t.Fatalf("items order not preserved: %+v", got.Items)
	}
	if got.Items[0].Quantity != 2 || got.Items[0].UnitPrice != 100 || got.Items[0].Description != "second sku first" {
		t.Fatalf("item mismatch: %+v", got.Items[0])
	}
}

func testInvoiceItemsReplaced(t *testing.T, st store.Store) {
	ctx := context.Background()
	inv := models.Invoice{
		ID:     "INV-002",
		Date:   time.Now(),
		Status: models.InvoiceStatusDraft,
		Items:  []models.InvoiceItem{{PartSKU: "A", Quantity: 1, UnitPrice: 1}, {PartSKU: "B", Quantity: 1, UnitPrice: 1}},
	}
	if _, err := st.Invoices().Put(ctx, inv); err != nil {
		t.Fatalf("put: %v", err)
	}
	inv.Items = []models.InvoiceItem{{PartSKU: "C", Quantity: 3, UnitPrice: 2}}
	if _, err := st.Invoices().Put(ctx, inv); err != nil {
		t.Fatalf("put again: %v", err)
	}
	got, err := st.Invoices().Get(ctx, inv.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].PartSKU != "C" {
		t.Fatalf("expected items replaced, got %+v", got.Items)
	}

	if err := st.Invoices().Delete(ctx, inv.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err := st.Invoices().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no invoices, got %d", len(list))
	}
}

func testExpenseOrder(t *testing.T, st store.Store) {
	ctx := context.Background()
	now := time.Now()
	expenses := []models.Expense{
		{ID: "EXP-001", Date: now.AddDate(0, 0, -30), Description: "Loyer Atelier", Amount: 3500},
		{ID: "EXP-002", Date: now.AddDate(0, 0, -10), Description: "Achat épave Clio 3", Amount: 1500},
	}
	for _, e := range expenses {
		if _, err := st.Expenses().Put(ctx, e); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	list, err := st.Expenses().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "EXP-002" {
		t.Fatalf("expected most recent first, got %+v", list)
	}
	got, err := st.Expenses().Get(ctx, "EXP-001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount != 3500 || got.Description != "Loyer Atelier" {
		t.Fatalf("unexpected expense %+v", got)
	}
}

func testSettings(t *testing.T, st store.Store) {
	ctx := context.Background()
	if _, err := st.Settings().Get(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first save, got %v", err)
	}
	s := models.DefaultSettings()
	s.VATRate = 0.2
	if _, err := st.Settings().Put(ctx, s); err != nil {
		t.Fatalf("put: %v", err)
	}
	s.CurrencyCode = "EUR"
	s.CompanyInfo = datatypes.NewJSONType(models.CompanyInfo{Name: "Casse Auto"})
	if _, err := st.Settings().Put(ctx, s); err != nil {
		t.Fatalf("put again: %v", err)
	}
	got, err := st.Settings().Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.VATRate != 0.2 || got.CurrencyCode != "EUR" || got.Company().Name != "Casse Auto" {
		t.Fatalf("unexpected settings %+v", got)
	}
}

func testDeleteMissing(t *testing.T, st store.Store) {
	ctx := context.Background()
	if err := st.Parts().Delete(ctx, "nope"); err != nil {
		t.Errorf("parts: %v", err)
	}
	if err := st.Customers().Delete(ctx, "nope"); err != nil {
		t.Errorf("customers: %v", err)
	}
	if err := st.Invoices().Delete(ctx, "nope"); err != nil {
		t.Errorf("invoices: %v", err)
	}
	if err := st.Expenses().Delete(ctx, "nope"); err != nil {
		t.Errorf("expenses: %v", err)
	}
}

func testTxRollback(t *testing.T, st store.Store) {
	ctx := context.Background()
	if _, err := st.Parts().Put(ctx, samplePart("A", 5)); err != nil {
		t.Fatalf("put: %v", err)
	}
	boom := errors.New("boom")
	err := st.WithinTx(ctx, func(tx store.Store) error {
		if _, err := tx.Parts().Put(ctx, samplePart("A", 3)); err != nil {
			return err
		}
		if _, err := tx.Invoices().Put(ctx, models.Invoice{ID: "INV-X", Date: time.Now(), Status: models.InvoiceStatusSent}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	p, err := st.Parts().Get(ctx, "A")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.QuantityInStock != 5 {
		t.Fatalf("stock change survived rollback: %d", p.QuantityInStock)
	}
	if _, err := st.Invoices().Get(ctx, "INV-X"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("invoice survived rollback: %v", err)
	}
}

func testTxCommit(t *testing.T, st store.Store) {
	ctx := context.Background()
	err := st.WithinTx(ctx, func(tx store.Store) error {
		if _, err := tx.Parts().Put(ctx, samplePart("A", 1)); err != nil {
			return err
		}
		return tx.WithinTx(ctx, func(inner store.Store) error {
			_, err := inner.Customers().Put(ctx, models.Customer{ID: "CUST-1", Name: "Garage Solide"})
			return err
		})
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	if _, err := st.Parts().Get(ctx, "A"); err != nil {
		t.Fatalf("part not committed: %v", err)
	}
	if _, err := st.Customers().Get(ctx, "CUST-1"); err != nil {
		t.Fatalf("customer not committed: %v", err)
	}
}
