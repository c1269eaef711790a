package services

import (
	"context"
	"time"

	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/store"
	"github.com/google/uuid"
)

type ExpenseService struct {
	store store.Store
	now   func() time.Time
}

func NewExpenseService(st store.Store) *ExpenseService {
	return &ExpenseService{store: st, now: time.Now}
}

func (s *ExpenseService) List(ctx context.Context) ([]models.Expense, error) {
	return s.store.Expenses().List(ctx)
}

// Add stores a new expense under a generated id. A zero date means today.
func (s *ExpenseService) Add(ctx context.Context, e models.Expense) (models.Expense, error) {
	e.ID = "EXP-" + uuid.NewString()
	if e.Date.IsZero() {
		e.Date = s.now()
	}
	return s.store.Expenses().Put(ctx, e)
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	return s.store.Expenses().Delete(ctx, id)
}
