package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/store"
	"gorm.io/datatypes"
)

// Seed loads the demo workshop: three parts, two customers, two paid
// invoices, two expenses and the default settings. Dates are relative to now.
// Records that already exist are left untouched, so seeding twice is harmless.
func Seed(ctx context.Context, st store.Store, now time.Time) error {
	return st.WithinTx(ctx, func(tx store.Store) error {
		for _, p := range seedParts() {
			if err := putMissing(ctx, tx.Parts().Get, tx.Parts().Put, p.SKU, p); err != nil {
				return err
			}
		}
		for _, c := range seedCustomers() {
			if err := putMissing(ctx, tx.Customers().Get, tx.Customers().Put, c.ID, c); err != nil {
				return err
			}
		}
		for _, inv := range seedInvoices(now) {
			if err := putMissing(ctx, tx.Invoices().Get, tx.Invoices().Put, inv.ID, inv); err != nil {
				return err
			}
		}
		for _, e := range seedExpenses(now) {
			if err := putMissing(ctx, tx.Expenses().Get, tx.Expenses().Put, e.ID, e); err != nil {
				return err
			}
		}
		if _, err := tx.Settings().Get(ctx); errors.Is(err, store.ErrNotFound) {
			_, err = tx.Settings().Put(ctx, models.DefaultSettings())
			return err
		} else if err != nil {
			return err
		}
		return nil
	})
}

func putMissing[T any](ctx context.Context,
	get func(context.Context, string) (T, error),
	put func(context.Context, T) (T, error),
	id string, v T,
) error {
	_, err := get(ctx, id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("seed %s: %w", id, err)
	}
	if _, err := put(ctx, v); err != nil {
		return fmt.Errorf("seed %s: %w", id, err)
	}
	return nil
}

func seedParts() []models.Part {
	return []models.Part{
		{
			SKU: "VW-GOLF4-ALT-001", Name: "Alternateur", Description: "Alternateur Bosch 120A",
			SourceVehicleMake: "Volkswagen", SourceVehicleModel: "Golf IV", SourceVehicleYear: 2002,
			Condition: models.ConditionGradeA, WarehouseLocation: "A-3-B",
			PurchasePrice: 80, SellingPrice: 250, QuantityInStock: 5,
			Photos: datatypes.JSONSlice[string]{"https://picsum.photos/id/10/200/200"},
		},
		{
			SKU: "PEU-208-DR-G-001", Name: "Portière avant gauche", Description: "Portière avant gauche, couleur rouge",
			SourceVehicleMake: "Peugeot", SourceVehicleModel: "208", SourceVehicleYear: 2015,
			Condition: models.ConditionGradeB, WarehouseLocation: "C-1-A",
			PurchasePrice: 160, SellingPrice: 480, QuantityInStock: 2,
			Photos: datatypes.JSONSlice[string]{"https://picsum.photos/id/11/200/200"},
		},
		{
			SKU: "REN-CLIO3-BUMP-F-002", Name: "Pare-choc avant", Description: "Pare-choc avant avec phares antibrouillard",
			SourceVehicleMake: "Renault", SourceVehicleModel: "Clio 3", SourceVehicleYear: 2008,
			Condition: models.ConditionForParts, WarehouseLocation: "B-2-D",
			PurchasePrice: 130, SellingPrice: 400, QuantityInStock: 3,
			Photos: datatypes.JSONSlice[string]{"https://picsum.photos/id/12/200/200"},
		},
	}
}

// seedCustomers is ordered oldest first so Garage Solide lists first.
func seedCustomers() []models.Customer {
	return []models.Customer{
		{
			ID: "CUST-001", Name: "Jean Dupont", Address: "123 Rue de la Liberté, 2000 Le Bardo, Tunis",
			Phone: "71010101", Email: "jean.dupont@email.com", VATNumber: "TN123456789",
		},
		{
			ID: "CUST-002", Name: "Garage Solide", Address: "45 Avenue Habib Bourguiba, 1001 Tunis",
			Phone: "71234567", Email: "contact@garagesolide.tn",
		},
	}
}

func seedInvoices(now time.Time) []models.Invoice {
	number := func(n int) string { return fmt.Sprintf("FACT-%d-%04d", now.Year(), n) }
	return []models.Invoice{
		{
			ID: "INV-001", InvoiceNumber: number(1), CustomerID: "CUST-001",
			Date: now.AddDate(0, 0, -15), Status: models.InvoiceStatusPaid,
			Items: []models.InvoiceItem{
				{PartSKU: "VW-GOLF4-ALT-001", Description: "Alternateur Bosch 120A", Quantity: 1, UnitPrice: 250},
			},
		},
		{
			ID: "INV-002", InvoiceNumber: number(2), CustomerID: "CUST-002",
			Date: now, Status: models.InvoiceStatusPaid,
			Items: []models.InvoiceItem{
				{PartSKU: "REN-CLIO3-BUMP-F-002", Description: "Pare-choc avant", Quantity: 1, UnitPrice: 400},
				{PartSKU: "PEU-208-DR-G-001", Description: "Portière avant gauche", Quantity: 1, UnitPrice: 480},
			},
		},
	}
}

func seedExpenses(now time.Time) []models.Expense {
	return []models.Expense{
		{ID: "EXP-001", Date: now.AddDate(0, 0, -30), Description: "Loyer Atelier", Amount: 3500},
		{ID: "EXP-002", Date: now.AddDate(0, 0, -10), Description: "Achat épave Clio 3", Amount: 1500},
	}
}
