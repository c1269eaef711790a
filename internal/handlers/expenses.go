package handlers

import (
	"net/http"

	"github.com/diewo77/autoparts/httpx"
	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/services"
	"github.com/diewo77/autoparts/validation"
)

type ExpenseHandler struct {
	Expenses *services.ExpenseService
}

func NewExpenseHandler(expenses *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{Expenses: expenses}
}

// List: GET /expenses – most recent first
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.Expenses.List(r.Context())
	if err != nil {
		writeError(w, r, "failed_to_list_expenses", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": expenses, "total": len(expenses)})
}

// Create: POST /expenses – the date defaults to now
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e models.Expense
	if !decode(w, r, &e) {
		return
	}
	v := make(validation.Violations)
	validation.Required("description", e.Description, v)
	validation.PositiveFloat("amount", e.Amount, v)
	if !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	saved, err := h.Expenses.Add(r.Context(), e)
	if err != nil {
		writeError(w, r, "failed_to_save_expense", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, saved)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Expenses.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, "failed_to_delete_expense", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
