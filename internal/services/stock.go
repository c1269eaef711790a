package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/store"
)

// RestockPolicy decides whether invoiced quantities ever return to stock.
type RestockPolicy string

const (
	// RestockNever decrements stock once when an invoice leaves Draft and
	// never gives it back.
	RestockNever RestockPolicy = "never"
	// RestockOnCancel keeps stock in line with the invoices that hold it:
	// Sent, Paid and Overdue invoices hold their current line quantities,
	// Draft and Cancelled ones do not, and deleting a holding invoice
	// releases them.
	RestockOnCancel RestockPolicy = "on_cancel"
)

// ParseRestockPolicy accepts "never" or "on_cancel"; empty means never.
func ParseRestockPolicy(s string) (RestockPolicy, error) {
	switch RestockPolicy(s) {
	case "", RestockNever:
		return RestockNever, nil
	case RestockOnCancel:
		return RestockOnCancel, nil
	}
	return "", fmt.Errorf("unknown restock policy %q", s)
}

// IsFinalizing reports whether a save moves an invoice out of Draft.
func IsFinalizing(old, next models.InvoiceStatus) bool {
	return old == models.InvoiceStatusDraft && next != models.InvoiceStatusDraft
}

func holdsStock(status models.InvoiceStatus) bool {
	return status != models.InvoiceStatusDraft && status != models.InvoiceStatusCancelled
}

// StockAdjuster applies invoice status changes to part quantities.
type StockAdjuster struct {
	Policy RestockPolicy
}

// OnSave adjusts stock for the transition from prev to next. prev is nil
// for an invoice that has never been stored, which counts as Draft.
func (a StockAdjuster) OnSave(ctx context.Context, parts store.PartRepository, prev *models.Invoice, next models.Invoice) error {
	oldStatus := models.InvoiceStatusDraft
	if prev != nil {
		oldStatus = prev.Status
	}

	if a.Policy != RestockOnCancel {
		if IsFinalizing(oldStatus, next.Status) {
			return a.adjust(ctx, parts, quantities(next.Items, -1))
		}
		return nil
	}

	switch {
	case !holdsStock(oldStatus) && holdsStock(next.Status):
		return a.adjust(ctx, parts, quantities(next.Items, -1))
	case holdsStock(oldStatus) && !holdsStock(next.Status):
		return a.adjust(ctx, parts, quantities(prev.Items, +1))
	case holdsStock(oldStatus) && holdsStock(next.Status):
		// lines edited while held: give back the old ones, take the new ones
		return a.adjust(ctx, parts, merge(quantities(prev.Items, +1), quantities(next.Items, -1)))
	}
	return nil
}

// OnDelete releases the quantities of a deleted invoice when the policy restocks.
func (a StockAdjuster) OnDelete(ctx context.Context, parts store.PartRepository, prev models.Invoice) error {
	if a.Policy == RestockOnCancel && holdsStock(prev.Status) {
		return a.adjust(ctx, parts, quantities(prev.Items, +1))
	}
	return nil
}

// stockDelta is a signed quantity change for one SKU.
type stockDelta struct {
	sku   string
	delta int
}

// quantities turns invoice lines into sign*quantity changes, one per SKU in
// first-appearance order.
func quantities(items []models.InvoiceItem, sign int) []stockDelta {
	var out []stockDelta
	for _, item := range items {
		out = merge(out, []stockDelta{{sku: item.PartSKU, delta: sign * item.Quantity}})
	}
	return out
}

// merge sums b into a per SKU.
func merge(a, b []stockDelta) []stockDelta {
	out := slices.Clone(a)
	for _, d := range b {
		i := slices.IndexFunc(out, func(x stockDelta) bool { return x.sku == d.sku })
		if i < 0 {
			out = append(out, d)
			continue
		}
		out[i].delta += d.delta
	}
	return out
}

// adjust applies every non-zero delta. Parts that no longer exist are skipped.
func (a StockAdjuster) adjust(ctx context.Context, parts store.PartRepository, deltas []stockDelta) error {
	for _, d := range deltas {
		if d.delta == 0 {
			continue
		}
		p, err := parts.Get(ctx, d.sku)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("load part %s: %w", d.sku, err)
		}
		p.QuantityInStock += d.delta
		if _, err := parts.Put(ctx, p); err != nil {
			return fmt.Errorf("update stock for %s: %w", d.sku, err)
		}
	}
	return nil
}
