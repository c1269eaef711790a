package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/diewo77/autoparts/httpx"
	"github.com/diewo77/autoparts/i18n"
	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/pdf"
	"github.com/diewo77/autoparts/internal/services"
	"github.com/diewo77/autoparts/internal/store"
	"github.com/diewo77/autoparts/validation"
)

// InvoiceHandler exposes the invoice lifecycle: drafting, editing, status
// changes, totals and the printable PDF.
type InvoiceHandler struct {
	Invoices *services.InvoiceService
	Catalog  *services.CatalogService
	Settings *services.SettingsService
}

func NewInvoiceHandler(invoices *services.InvoiceService, catalog *services.CatalogService, settings *services.SettingsService) *InvoiceHandler {
	return &InvoiceHandler{Invoices: invoices, Catalog: catalog, Settings: settings}
}

// List: GET /invoices – rows carry the customer name and rounded totals
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	placeholder := i18n.T(i18n.LangFrom(r.Context()), "unknown_customer")
	rows, err := h.Invoices.Rows(r.Context(), placeholder)
	if err != nil {
		writeError(w, r, "failed_to_list_invoices", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

// New: GET /invoices/new – an unsaved draft with the next number
func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) {
	draft, err := h.Invoices.NewDraft(r.Context())
	if err != nil {
		writeError(w, r, "failed_to_prepare_invoice", err)
		return
	}
	httpx.JSON(w, http.StatusOK, draft)
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var inv models.Invoice
	if !decode(w, r, &inv) {
		return
	}
	h.save(w, r, inv, http.StatusCreated)
}

// View: GET /invoices/{id}
func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Invoices.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, "failed_to_load_invoice", err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Update: PUT /invoices/{id} – also how an invoice changes status
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.Invoices.Get(r.Context(), id); err != nil {
		writeError(w, r, "failed_to_load_invoice", err)
		return
	}
	var inv models.Invoice
	if !decode(w, r, &inv) {
		return
	}
	inv.ID = id
	h.save(w, r, inv, http.StatusOK)
}

func (h *InvoiceHandler) save(w http.ResponseWriter, r *http.Request, inv models.Invoice, status int) {
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusDraft
	}
	if v := validateInvoice(inv); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	saved, err := h.Invoices.Save(r.Context(), inv)
	if err != nil {
		writeError(w, r, "failed_to_save_invoice", err)
		return
	}
	httpx.JSON(w, status, saved)
}

// Delete: DELETE /invoices/{id}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Invoices.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, "failed_to_delete_invoice", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Totals: GET /invoices/{id}/totals
func (h *InvoiceHandler) Totals(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Invoices.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, "failed_to_load_invoice", err)
		return
	}
	totals, err := h.Invoices.Totals(r.Context(), inv)
	if err != nil {
		writeError(w, r, "failed_to_compute_totals", err)
		return
	}
	httpx.JSON(w, http.StatusOK, totals)
}

// AddItem: POST /invoices/{id}/items {"partSKU": "..."}
func (h *InvoiceHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PartSKU string `json:"partSKU"`
	}
	if !decode(w, r, &req) {
		return
	}
	v := make(validation.Violations)
	validation.Required("partSKU", req.PartSKU, v)
	if !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	inv, err := h.Invoices.AddPart(r.Context(), r.PathValue("id"), strings.TrimSpace(req.PartSKU))
	if err != nil {
		writeError(w, r, "failed_to_add_item", err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// PDF: GET /invoices/{id}/pdf?lang= – the query language overrides the request's
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := i18n.LangFrom(ctx)
	if q := r.URL.Query().Get("lang"); i18n.Supported(q) {
		lang = q
	}

	inv, err := h.Invoices.Get(ctx, r.PathValue("id"))
	if err != nil {
		writeError(w, r, "failed_to_load_invoice", err)
		return
	}
	customer, err := h.Catalog.GetCustomer(ctx, inv.CustomerID)
	if errors.Is(err, store.ErrNotFound) {
		customer = models.Customer{ID: inv.CustomerID, Name: i18n.T(lang, "unknown_customer")}
	} else if err != nil {
		writeError(w, r, "failed_to_load_customer", err)
		return
	}
	settings, err := h.Settings.Get(ctx)
	if err != nil {
		writeError(w, r, "failed_to_load_settings", err)
		return
	}
	totals, err := h.Invoices.Totals(ctx, inv)
	if err != nil {
		writeError(w, r, "failed_to_compute_totals", err)
		return
	}

	body, err := pdf.InvoicePDF(pdf.InvoiceData{
		Lang:     lang,
		Invoice:  inv,
		Customer: customer,
		Settings: settings,
		Totals:   totals,
	})
	if err != nil {
		writeError(w, r, "pdf_generation_failed", err)
		return
	}
	httpx.Attachment(w, "application/pdf", pdf.FileName(lang, inv.InvoiceNumber), body)
}

func validateInvoice(inv models.Invoice) validation.Violations {
	v := make(validation.Violations)
	validation.OneOf("status", string(inv.Status), models.InvoiceStatuses, v)
	if !inv.IsDraft() && len(inv.Items) == 0 {
		v["items"] = "items_required_when_not_draft"
	}
	for i, item := range inv.Items {
		validation.Required(fmt.Sprintf("items[%d].partSKU", i), item.PartSKU, v)
		validation.PositiveInt(fmt.Sprintf("items[%d].quantity", i), item.Quantity, v)
		validation.NonNegativeFloat(fmt.Sprintf("items[%d].unitPrice", i), item.UnitPrice, v)
	}
	return v
}
