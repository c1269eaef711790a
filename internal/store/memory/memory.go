// Package memory is an in-process record store used for tests and demo mode.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/store"
)

// Store keeps every record in maps guarded by mu. Records are copied on the
// way in and out so callers never share slices with the store.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	parts     map[string]models.Part
	partOrder []string

	customers     map[string]models.Customer
	customerOrder []string

	invoices     map[string]models.Invoice
	invoiceOrder []string

	expenses     map[string]models.Expense
	expenseOrder []string

	settings *models.AppSettings
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		parts:     map[string]models.Part{},
		customers: map[string]models.Customer{},
		invoices:  map[string]models.Invoice{},
		expenses:  map[string]models.Expense{},
	}
}

func (s *Store) Parts() store.PartRepository         { return partRepo{s} }
func (s *Store) Customers() store.CustomerRepository { return customerRepo{s} }
func (s *Store) Invoices() store.InvoiceRepository   { return invoiceRepo{s} }
func (s *Store) Expenses() store.ExpenseRepository   { return expenseRepo{s} }
func (s *Store) Settings() store.SettingsRepository  { return settingsRepo{s} }

// WithinTx serializes units of work and rolls every map back to its state
// before fn when fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(tx store.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := s.snapshot()
	if err := fn(txStore{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// txStore is handed to units of work; nested WithinTx calls join the outer one.
type txStore struct{ *Store }

func (t txStore) WithinTx(_ context.Context, fn func(tx store.Store) error) error {
	return fn(t)
}

type snapshot struct {
	parts         map[string]models.Part
	partOrder     []string
	customers     map[string]models.Customer
	customerOrder []string
	invoices      map[string]models.Invoice
	invoiceOrder  []string
	expenses      map[string]models.Expense
	expenseOrder  []string
	settings      *models.AppSettings
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		parts:         cloneMap(s.parts),
		partOrder:     slices.Clone(s.partOrder),
		customers:     cloneMap(s.customers),
		customerOrder: slices.Clone(s.customerOrder),
		invoices:      cloneMap(s.invoices),
		invoiceOrder:  slices.Clone(s.invoiceOrder),
		expenses:      cloneMap(s.expenses),
		expenseOrder:  slices.Clone(s.expenseOrder),
	}
	if s.settings != nil {
		cp := *s.settings
		snap.settings = &cp
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts, s.partOrder = snap.parts, snap.partOrder
	s.customers, s.customerOrder = snap.customers, snap.customerOrder
	s.invoices, s.invoiceOrder = snap.invoices, snap.invoiceOrder
	s.expenses, s.expenseOrder = snap.expenses, snap.expenseOrder
	s.settings = snap.settings
}

// Stored values are never mutated in place, so a shallow map copy is enough.
func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func removeID(order []string, id string) []string {
	if i := slices.Index(order, id); i >= 0 {
		return slices.Delete(order, i, i+1)
	}
	return order
}

func copyPart(p models.Part) models.Part {
	p.Photos = slices.Clone(p.Photos)
	return p
}

func copyInvoice(inv models.Invoice) models.Invoice {
	inv.Items = slices.Clone(inv.Items)
	if inv.DueDate != nil {
		d := *inv.DueDate
		inv.DueDate = &d
	}
	return inv
}

type partRepo struct{ s *Store }

func (r partRepo) List(ctx context.Context) ([]models.Part, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Part, 0, len(r.s.partOrder))
	for _, sku := range r.s.partOrder {
		out = append(out, copyPart(r.s.parts[sku]))
	}
	return out, nil
}

func (r partRepo) Get(ctx context.Context, sku string) (models.Part, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.parts[sku]
	if !ok {
		return models.Part{}, store.ErrNotFound
	}
	return copyPart(p), nil
}

func (r partRepo) Put(ctx context.Context, p models.Part) (models.Part, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.parts[p.SKU]; !ok {
		r.s.partOrder = append(r.s.partOrder, p.SKU)
	}
	r.s.parts[p.SKU] = copyPart(p)
	return copyPart(p), nil
}

func (r partRepo) Delete(ctx context.Context, sku string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.parts, sku)
	r.s.partOrder = removeID(r.s.partOrder, sku)
	return nil
}

type customerRepo struct{ s *Store }

func (r customerRepo) List(ctx context.Context) ([]models.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Customer, 0, len(r.s.customerOrder))
	for i := len(r.s.customerOrder) - 1; i >= 0; i-- {
		out = append(out, r.s.customers[r.s.customerOrder[i]])
	}
	return out, nil
}

func (r customerRepo) Get(ctx context.Context, id string) (models.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return models.Customer{}, store.ErrNotFound
	}
	return c, nil
}

func (r customerRepo) Put(ctx context.Context, c models.Customer) (models.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		r.s.customerOrder = append(r.s.customerOrder, c.ID)
	}
	r.s.customers[c.ID] = c
	return c, nil
}

func (r customerRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.customers, id)
	r.s.customerOrder = removeID(r.s.customerOrder, id)
	return nil
}

type invoiceRepo struct{ s *Store }

func (r invoiceRepo) List(ctx context.Context) ([]models.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Invoice, 0, len(r.s.invoiceOrder))
	for _, id := range r.s.invoiceOrder {
		out = append(out, copyInvoice(r.s.invoices[id]))
	}
	return out, nil
}

func (r invoiceRepo) Get(ctx context.Context, id string) (models.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return models.Invoice{}, store.ErrNotFound
	}
	return copyInvoice(inv), nil
}

func (r invoiceRepo) Put(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[inv.ID]; !ok {
		r.s.invoiceOrder = append(r.s.invoiceOrder, inv.ID)
	}
	r.s.invoices[inv.ID] = copyInvoice(inv)
	return copyInvoice(inv), nil
}

func (r invoiceRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.invoices, id)
	r.s.invoiceOrder = removeID(r.s.invoiceOrder, id)
	return nil
}

type expenseRepo struct{ s *Store }

func (r expenseRepo) List(ctx context.Context) ([]models.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Expense, 0, len(r.s.expenseOrder))
	for i := len(r.s.expenseOrder) - 1; i >= 0; i-- {
		out = append(out, r.s.expenses[r.s.expenseOrder[i]])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r expenseRepo) Get(ctx context.Context, id string) (models.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.expenses[id]
	if !ok {
		return models.Expense{}, store.ErrNotFound
	}
	return e, nil
}

func (r expenseRepo) Put(ctx context.Context, e models.Expense) (models.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.expenses[e.ID]; !ok {
		r.s.expenseOrder = append(r.s.expenseOrder, e.ID)
	}
	r.s.expenses[e.ID] = e
	return e, nil
}

func (r expenseRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.expenses, id)
	r.s.expenseOrder = removeID(r.s.expenseOrder, id)
	return nil
}

type settingsRepo struct{ s *Store }

func (r settingsRepo) Get(ctx context.Context) (models.AppSettings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.settings == nil {
		return models.AppSettings{}, store.ErrNotFound
	}
	return *r.s.settings, nil
}

func (r settingsRepo) Put(ctx context.Context, settings models.AppSettings) (models.AppSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	settings.ID = models.SettingsID
	r.s.settings = &settings
	return settings, nil
}
