package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/diewo77/autoparts/httpx"
	"github.com/diewo77/autoparts/i18n"
	"github.com/diewo77/autoparts/internal/services"
	"github.com/diewo77/autoparts/internal/store"
	"github.com/diewo77/autoparts/validation"
)

// writeError maps domain errors to HTTP statuses. Anything unexpected is
// logged and reported as a 500 with code.
func writeError(w http.ResponseWriter, r *http.Request, code string, err error) {
	lang := i18n.LangFrom(r.Context())
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", i18n.T(lang, "not_found"))
	case errors.Is(err, services.ErrItemExists):
		httpx.JSONError(w, http.StatusConflict, "item_already_added", i18n.T(lang, "item_already_added"))
	default:
		log.Printf("%s %s: %s: %v", r.Method, r.URL.Path, code, err)
		httpx.JSONError(w, http.StatusInternalServerError, code, nil)
	}
}

func writeViolations(w http.ResponseWriter, r *http.Request, v validation.Violations) {
	httpx.JSONError(w, http.StatusBadRequest, "validation_failed", i18n.TranslateAll(i18n.LangFrom(r.Context()), v))
}

// decode reads the JSON body into dst and answers 400 when it cannot.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(r, dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}
