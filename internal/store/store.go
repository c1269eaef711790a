// Package store defines the record store used by the services.
//
// Each entity kind has its own repository with whole-record reads and
// writes. Implementations live in the memory and gormstore subpackages.
package store

import (
	"context"
	"errors"

	"github.com/diewo77/autoparts/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// PartRepository stores parts keyed by SKU.
type PartRepository interface {
	List(ctx context.Context) ([]models.Part, error)
	Get(ctx context.Context, sku string) (models.Part, error)
	Put(ctx context.Context, p models.Part) (models.Part, error)
	Delete(ctx context.Context, sku string) error
}

// CustomerRepository stores customers. List returns the newest first.
type CustomerRepository interface {
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id string) (models.Customer, error)
	Put(ctx context.Context, c models.Customer) (models.Customer, error)
	Delete(ctx context.Context, id string) error
}

// InvoiceRepository stores invoices with their items. List returns
// invoices in creation order.
type InvoiceRepository interface {
	List(ctx context.Context) ([]models.Invoice, error)
	Get(ctx context.Context, id string) (models.Invoice, error)
	Put(ctx context.Context, inv models.Invoice) (models.Invoice, error)
	Delete(ctx context.Context, id string) error
}

// ExpenseRepository stores expenses. List returns the most recent date first.
type ExpenseRepository interface {
	List(ctx context.Context) ([]models.Expense, error)
	Get(ctx context.Context, id string) (models.Expense, error)
	Put(ctx context.Context, e models.Expense) (models.Expense, error)
	Delete(ctx context.Context, id string) error
}

// SettingsRepository stores the settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (models.AppSettings, error)
	Put(ctx context.Context, s models.AppSettings) (models.AppSettings, error)
}

// Store groups the repositories. WithinTx runs fn as one unit of work:
// every write made through the Store passed to fn is kept only if fn
// returns nil.
type Store interface {
	Parts() PartRepository
	Customers() CustomerRepository
	Invoices() InvoiceRepository
	Expenses() ExpenseRepository
	Settings() SettingsRepository
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
