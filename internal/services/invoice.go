package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/store"
	"github.com/google/uuid"
)

// ErrItemExists is returned when a part is added twice to the same invoice.
var ErrItemExists = errors.New("part already on invoice")

// InvoiceRow is an invoice as shown in the invoice list.
type InvoiceRow struct {
	models.Invoice
	CustomerName string `json:"customerName"`
	Totals       Totals `json:"totals"`
}

// InvoiceService runs the invoice lifecycle. Saving and deleting update
// stock and the invoice in a single unit of work.
type InvoiceService struct {
	store    store.Store
	catalog  *CatalogService
	numberer *Numberer
	stock    StockAdjuster
	settings *SettingsService
	now      func() time.Time
}

func NewInvoiceService(st store.Store, numberer *Numberer, stock StockAdjuster, settings *SettingsService) *InvoiceService {
	return &InvoiceService{store: st, catalog: NewCatalogService(st), numberer: numberer, stock: stock, settings: settings, now: time.Now}
}

func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	return s.store.Invoices().List(ctx)
}

func (s *InvoiceService) Get(ctx context.Context, id string) (models.Invoice, error) {
	return s.store.Invoices().Get(ctx, id)
}

// Rows lists invoices with their customer name and rounded totals. Invoices
// whose customer was deleted get placeholder as name.
func (s *InvoiceService) Rows(ctx context.Context, placeholder string) ([]InvoiceRow, error) {
	invoices, err := s.store.Invoices().List(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.catalog.CustomerNames(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	places := CurrencyPlaces(settings.CurrencyCode)

	rows := make([]InvoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		name, ok := names[inv.CustomerID]
		if !ok {
			name = placeholder
		}
		rows = append(rows, InvoiceRow{
			Invoice:      inv,
			CustomerName: name,
			Totals:       ComputeTotals(inv.Items, settings.VATRate).Rounded(places),
		})
	}
	return rows, nil
}

// Totals computes inv's totals with the configured VAT rate, rounded to the
// currency's decimals.
func (s *InvoiceService) Totals(ctx context.Context, inv models.Invoice) (Totals, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return Totals{}, err
	}
	return ComputeTotals(inv.Items, settings.VATRate).Rounded(CurrencyPlaces(settings.CurrencyCode)), nil
}

// NewDraft prepares an unsaved draft dated today for the most recently added
// customer, carrying the next invoice number.
func (s *InvoiceService) NewDraft(ctx context.Context) (models.Invoice, error) {
	number, err := s.numberer.Next(ctx)
	if err != nil {
		return models.Invoice{}, err
	}
	customers, err := s.store.Customers().List(ctx)
	if err != nil {
		return models.Invoice{}, err
	}
	inv := models.Invoice{
		ID:            newInvoiceID(),
		InvoiceNumber: number,
		Date:          s.now(),
		Status:        models.InvoiceStatusDraft,
		Items:         []models.InvoiceItem{},
	}
	if len(customers) > 0 {
		inv.CustomerID = customers[0].ID
	}
	return inv, nil
}

// Save persists inv and applies the stock policy to the change. A missing id
// or status is filled in. A missing number or date is kept from the stored
// invoice, and only a new invoice gets a fresh number dated today.
func (s *InvoiceService) Save(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	if inv.ID == "" {
		inv.ID = newInvoiceID()
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusDraft
	}

	var saved models.Invoice
	err := s.store.WithinTx(ctx, func(tx store.Store) error {
		var prev *models.Invoice
		old, err := tx.Invoices().Get(ctx, inv.ID)
		switch {
		case err == nil:
			prev = &old
		case !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("load invoice %s: %w", inv.ID, err)
		}
		if err := s.fillDefaults(ctx, tx, prev, &inv); err != nil {
			return err
		}
		if err := s.stock.OnSave(ctx, tx.Parts(), prev, inv); err != nil {
			return err
		}
		saved, err = tx.Invoices().Put(ctx, inv)
		return err
	})
	if err != nil {
		return models.Invoice{}, err
	}
	return saved, nil
}

func (s *InvoiceService) fillDefaults(ctx context.Context, tx store.Store, prev *models.Invoice, inv *models.Invoice) error {
	if prev != nil {
		if inv.InvoiceNumber == "" {
			inv.InvoiceNumber = prev.InvoiceNumber
		}
		if inv.Date.IsZero() {
			inv.Date = prev.Date
		}
		return nil
	}
	if inv.InvoiceNumber == "" {
		number, err := s.numberer.nextFrom(ctx, tx.Invoices())
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number
	}
	if inv.Date.IsZero() {
		inv.Date = s.now()
	}
	return nil
}

// Delete removes an invoice. Deleting a missing invoice is not an error.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	return s.store.WithinTx(ctx, func(tx store.Store) error {
		prev, err := tx.Invoices().Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load invoice %s: %w", id, err)
		}
		if err := s.stock.OnDelete(ctx, tx.Parts(), prev); err != nil {
			return err
		}
		return tx.Invoices().Delete(ctx, id)
	})
}

// AddPart appends a line for sku to invoice id and saves it. The line
// snapshots the part's description and selling price with quantity 1.
func (s *InvoiceService) AddPart(ctx context.Context, id, sku string) (models.Invoice, error) {
	inv, err := s.store.Invoices().Get(ctx, id)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("invoice %s: %w", id, err)
	}
	part, err := s.store.Parts().Get(ctx, sku)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("part %s: %w", sku, err)
	}
	inv, err = AppendPart(inv, part)
	if err != nil {
		return models.Invoice{}, err
	}
	return s.Save(ctx, inv)
}

// AppendPart adds a quantity-1 line for part unless it is already present.
func AppendPart(inv models.Invoice, part models.Part) (models.Invoice, error) {
	if inv.HasPart(part.SKU) {
		return inv, ErrItemExists
	}
	inv.Items = append(slices.Clip(inv.Items), models.InvoiceItem{
		PartSKU:     part.SKU,
		Description: part.DisplayDescription(),
		Quantity:    1,
		UnitPrice:   part.SellingPrice,
	})
	return inv, nil
}

func newInvoiceID() string {
	return "INV-" + uuid.NewString()
}
