package handlers

import (
	"net/http"

	"github.com/diewo77/autoparts/httpx"
	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/services"
	"github.com/diewo77/autoparts/validation"
)

// SettingsHandler edits the company block, VAT rate and currency.
type SettingsHandler struct {
	Settings *services.SettingsService
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Settings: settings}
}

// Edit: GET /settings – defaults are created on first access
func (h *SettingsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	s, err := h.Settings.Get(r.Context())
	if err != nil {
		writeError(w, r, "failed_to_load_settings", err)
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}

// Update: PUT /settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var s models.AppSettings
	if !decode(w, r, &s) {
		return
	}
	company := s.Company()
	v := make(validation.Violations)
	validation.Required("companyInfo.name", company.Name, v)
	validation.RangeFloat("vatRate", s.VATRate, 0, 1, v)
	validation.Required("currencyCode", s.CurrencyCode, v)
	validation.Required("currencySymbol", s.CurrencySymbol, v)
	if !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	saved, err := h.Settings.Save(r.Context(), s)
	if err != nil {
		writeError(w, r, "failed_to_save_settings", err)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}
