package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diewo77/autoparts/internal/models"
)

// DefaultInvoicePrefix is used when no prefix is configured.
const DefaultInvoicePrefix = "FACT"

// InvoiceLister is the read access the numberer needs.
type InvoiceLister interface {
	List(ctx context.Context) ([]models.Invoice, error)
}

// SequenceCounter hands out monotonically increasing values per key.
// floor is the number of invoices already known for the key; the first
// value returned for a key is floor+1.
type SequenceCounter interface {
	Next(ctx context.Context, key string, floor int64) (int64, error)
}

// Numberer builds invoice numbers of the form PREFIX-YYYY-NNNN.
//
// Without a counter the sequence is derived from the invoices already
// stored, which assumes a single editing session: two sessions asking at
// the same time get the same number.
type Numberer struct {
	invoices InvoiceLister
	prefix   string
	counter  SequenceCounter
	now      func() time.Time
}

// NumbererOption customizes a Numberer.
type NumbererOption func(*Numberer)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) NumbererOption {
	return func(n *Numberer) { n.now = now }
}

// WithCounter makes Next draw from an atomic counter instead of the store scan.
func WithCounter(c SequenceCounter) NumbererOption {
	return func(n *Numberer) { n.counter = c }
}

func NewNumberer(invoices InvoiceLister, prefix string, opts ...NumbererOption) *Numberer {
	if prefix == "" {
		prefix = DefaultInvoicePrefix
	}
	n := &Numberer{invoices: invoices, prefix: prefix, now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// YearPrefix returns "PREFIX-YYYY-" for year.
func (n *Numberer) YearPrefix(year int) string {
	return fmt.Sprintf("%s-%d-", n.prefix, year)
}

// Next returns the number the next invoice of the current year should get.
func (n *Numberer) Next(ctx context.Context) (string, error) {
	return n.nextFrom(ctx, n.invoices)
}

// nextFrom is Next counting the invoices visible through from, so a
// transaction sees its own writes.
func (n *Numberer) nextFrom(ctx context.Context, from InvoiceLister) (string, error) {
	yearPrefix := n.YearPrefix(n.now().Year())
	invoices, err := from.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list invoices: %w", err)
	}
	count := CountWithPrefix(invoices, yearPrefix)
	seq := count + 1
	if n.counter != nil {
		seq, err = n.counter.Next(ctx, yearPrefix, count)
		if err != nil {
			return "", fmt.Errorf("next sequence for %s: %w", yearPrefix, err)
		}
	}
	return fmt.Sprintf("%s%04d", yearPrefix, seq), nil
}

// CountWithPrefix counts invoices whose number starts with prefix.
func CountWithPrefix(invoices []models.Invoice, prefix string) int64 {
	var count int64
	for _, inv := range invoices {
		if strings.HasPrefix(inv.InvoiceNumber, prefix) {
			count++
		}
	}
	return count
}
