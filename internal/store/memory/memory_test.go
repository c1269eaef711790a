package memory

import (
	"context"
	"testing"

	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/store"
	"github.com/diewo77/autoparts/internal/store/storetest"
	"gorm.io/datatypes"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	st := New()
	p := models.Part{SKU: "A", Name: "x", Photos: datatypes.JSONSlice[string]{"one"}}
	if _, err := st.Parts().Put(ctx, p); err != nil {
		t.Fatalf("put: %v", err)
	}
	p.Photos[0] = "changed"

	got, _ := st.Parts().Get(ctx, "A")
	if got.Photos[0] != "one" {
		t.Fatalf("store shares slice with caller: %v", got.Photos)
	}
	got.Photos[0] = "mutated"
	again, _ := st.Parts().Get(ctx, "A")
	if again.Photos[0] != "one" {
		t.Fatalf("store shares slice with reader: %v", again.Photos)
	}

	inv := models.Invoice{ID: "I", Items: []models.InvoiceItem{{PartSKU: "A", Quantity: 1}}}
	if _, err := st.Invoices().Put(ctx, inv); err != nil {
		t.Fatalf("put invoice: %v", err)
	}
	inv.Items[0].Quantity = 9
	stored, _ := st.Invoices().Get(ctx, "I")
	if stored.Items[0].Quantity != 1 {
		t.Fatalf("invoice items shared with caller")
	}
}
