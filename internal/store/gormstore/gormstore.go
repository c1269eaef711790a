// Package gormstore implements the record store on top of gorm.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Parts() store.PartRepository         { return partRepo{s.db} }
func (s *Store) Customers() store.CustomerRepository { return customerRepo{s.db} }
func (s *Store) Invoices() store.InvoiceRepository   { return invoiceRepo{s.db} }
func (s *Store) Expenses() store.ExpenseRepository   { return expenseRepo{s.db} }
func (s *Store) Settings() store.SettingsRepository  { return settingsRepo{s.db} }

// WithinTx runs fn in a database transaction. Nested calls use savepoints.
func (s *Store) WithinTx(ctx context.Context, fn func(tx store.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

// upsert inserts v or overwrites every column but the primary key and created_at.
func upsert(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.OnConflict{UpdateAll: true})
}

type partRepo struct{ db *gorm.DB }

func (r partRepo) List(ctx context.Context) ([]models.Part, error) {
	var parts []models.Part
	if err := r.db.WithContext(ctx).Order("created_at, part_sku").Find(&parts).Error; err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	return parts, nil
}

func (r partRepo) Get(ctx context.Context, sku string) (models.Part, error) {
	var p models.Part
	if err := r.db.WithContext(ctx).Where("part_sku = ?", sku).First(&p).Error; err != nil {
		return models.Part{}, notFound(err)
	}
	return p, nil
}

func (r partRepo) Put(ctx context.Context, p models.Part) (models.Part, error) {
	if err := upsert(r.db.WithContext(ctx)).Create(&p).Error; err != nil {
		return models.Part{}, fmt.Errorf("save part %s: %w", p.SKU, err)
	}
	return p, nil
}

func (r partRepo) Delete(ctx context.Context, sku string) error {
	return r.db.WithContext(ctx).Where("part_sku = ?", sku).Delete(&models.Part{}).Error
}

type customerRepo struct{ db *gorm.DB }

func (r customerRepo) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (r customerRepo) Get(ctx context.Context, id string) (models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return models.Customer{}, notFound(err)
	}
	return c, nil
}

func (r customerRepo) Put(ctx context.Context, c models.Customer) (models.Customer, error) {
	if err := upsert(r.db.WithContext(ctx)).Create(&c).Error; err != nil {
		return models.Customer{}, fmt.Errorf("save customer %s: %w", c.ID, err)
	}
	return c, nil
}

func (r customerRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Customer{}).Error
}

type invoiceRepo struct{ db *gorm.DB }

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func (r invoiceRepo) List(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := preloadItems(r.db.WithContext(ctx)).Order("created_at, id").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

func (r invoiceRepo) Get(ctx context.Context, id string) (models.Invoice, error) {
	var inv models.Invoice
	if err := preloadItems(r.db.WithContext(ctx)).Where("id = ?", id).First(&inv).Error; err != nil {
		return models.Invoice{}, notFound(err)
	}
	return inv, nil
}

// Put replaces the invoice row and its whole item list.
func (r invoiceRepo) Put(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	items := slices.Clone(inv.Items)
	for i := range items {
		items[i].ID = 0
		items[i].InvoiceID = inv.ID
		items[i].Position = i
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsert(tx.Omit(clause.Associations)).Create(&inv).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Invoice{}, fmt.Errorf("save invoice %s: %w", inv.ID, err)
	}
	inv.Items = items
	return inv, nil
}

func (r invoiceRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Invoice{}).Error
	})
}

type expenseRepo struct{ db *gorm.DB }

func (r expenseRepo) List(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.WithContext(ctx).Order("date DESC, created_at DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (r expenseRepo) Get(ctx context.Context, id string) (models.Expense, error) {
	var e models.Expense
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return models.Expense{}, notFound(err)
	}
	return e, nil
}

func (r expenseRepo) Put(ctx context.Context, e models.Expense) (models.Expense, error) {
	if err := upsert(r.db.WithContext(ctx)).Create(&e).Error; err != nil {
		return models.Expense{}, fmt.Errorf("save expense %s: %w", e.ID, err)
	}
	return e, nil
}

func (r expenseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Expense{}).Error
}

type settingsRepo struct{ db *gorm.DB }

func (r settingsRepo) Get(ctx context.Context) (models.AppSettings, error) {
	var s models.AppSettings
	if err := r.db.WithContext(ctx).Where("id = ?", models.SettingsID).First(&s).Error; err != nil {
		return models.AppSettings{}, notFound(err)
	}
	return s, nil
}

func (r settingsRepo) Put(ctx context.Context, s models.AppSettings) (models.AppSettings, error) {
	s.ID = models.SettingsID
	if err := upsert(r.db.WithContext(ctx)).Create(&s).Error; err != nil {
		return models.AppSettings{}, fmt.Errorf("save settings: %w", err)
	}
	return s, nil
}
