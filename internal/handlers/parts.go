package handlers

import (
	"net/http"
	"strings"

	"github.com/diewo77/autoparts/httpx"
	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/services"
	"github.com/diewo77/autoparts/validation"
)

// PartHandler serves the parts inventory.
type PartHandler struct {
	Catalog *services.CatalogService
}

func NewPartHandler(catalog *services.CatalogService) *PartHandler {
	return &PartHandler{Catalog: catalog}
}

// List: GET /parts
func (h *PartHandler) List(w http.ResponseWriter, r *http.Request) {
	parts, err := h.Catalog.ListParts(r.Context())
	if err != nil {
		writeError(w, r, "failed_to_list_parts", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": parts, "total": len(parts)})
}

// Search: GET /parts/search?q= – suggestions for the invoice editor
func (h *PartHandler) Search(w http.ResponseWriter, r *http.Request) {
	parts, err := h.Catalog.SearchForInvoice(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, "failed_to_search_parts", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": parts})
}

// View: GET /parts/{sku}
func (h *PartHandler) View(w http.ResponseWriter, r *http.Request) {
	part, err := h.Catalog.GetPart(r.Context(), r.PathValue("sku"))
	if err != nil {
		writeError(w, r, "failed_to_load_part", err)
		return
	}
	httpx.JSON(w, http.StatusOK, part)
}

// Create: POST /parts
func (h *PartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var part models.Part
	if !decode(w, r, &part) {
		return
	}
	part.SKU = strings.TrimSpace(part.SKU)
	if v := validatePart(part); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	saved, err := h.Catalog.SavePart(r.Context(), part)
	if err != nil {
		writeError(w, r, "failed_to_save_part", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, saved)
}

// Update: PUT /parts/{sku} – the SKU in the path wins over the body
func (h *PartHandler) Update(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	if _, err := h.Catalog.GetPart(r.Context(), sku); err != nil {
		writeError(w, r, "failed_to_load_part", err)
		return
	}
	var part models.Part
	if !decode(w, r, &part) {
		return
	}
	part.SKU = sku
	if v := validatePart(part); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	saved, err := h.Catalog.SavePart(r.Context(), part)
	if err != nil {
		writeError(w, r, "failed_to_save_part", err)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}

// Delete: DELETE /parts/{sku}
func (h *PartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeletePart(r.Context(), r.PathValue("sku")); err != nil {
		writeError(w, r, "failed_to_delete_part", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validatePart(p models.Part) validation.Violations {
	v := make(validation.Violations)
	validation.Required("partSKU", p.SKU, v)
	validation.Required("partName", p.Name, v)
	validation.PositiveFloat("sellingPrice", p.SellingPrice, v)
	validation.NonNegativeFloat("purchasePrice", p.PurchasePrice, v)
	validation.OneOf("condition", string(p.Condition), models.PartConditions, v)
	return v
}
