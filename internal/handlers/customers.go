package handlers

import (
	"net/http"

	"github.com/diewo77/autoparts/httpx"
	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/services"
	"github.com/diewo77/autoparts/validation"
)

type CustomerHandler struct {
	Catalog *services.CatalogService
}

func NewCustomerHandler(catalog *services.CatalogService) *CustomerHandler {
	return &CustomerHandler{Catalog: catalog}
}

// List: GET /customers – newest first
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Catalog.ListCustomers(r.Context())
	if err != nil {
		writeError(w, r, "failed_to_list_customers", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": customers, "total": len(customers)})
}

func (h *CustomerHandler) View(w http.ResponseWriter, r *http.Request) {
	c, err := h.Catalog.GetCustomer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, "failed_to_load_customer", err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Create: POST /customers – an id is generated when none is given
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Customer
	if !decode(w, r, &c) {
		return
	}
	if v := validateCustomer(c); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	saved, err := h.Catalog.SaveCustomer(r.Context(), c)
	if err != nil {
		writeError(w, r, "failed_to_save_customer", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, saved)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.Catalog.GetCustomer(r.Context(), id); err != nil {
		writeError(w, r, "failed_to_load_customer", err)
		return
	}
	var c models.Customer
	if !decode(w, r, &c) {
		return
	}
	c.ID = id
	if v := validateCustomer(c); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	saved, err := h.Catalog.SaveCustomer(r.Context(), c)
	if err != nil {
		writeError(w, r, "failed_to_save_customer", err)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}

// Delete leaves invoices pointing at the customer untouched.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteCustomer(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, "failed_to_delete_customer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validateCustomer(c models.Customer) validation.Violations {
	v := make(validation.Violations)
	validation.Required("name", c.Name, v)
	return v
}
