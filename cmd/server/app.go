package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/diewo77/autoparts/httpx"
	"github.com/diewo77/autoparts/i18n"
	"github.com/diewo77/autoparts/internal/config"
	"github.com/diewo77/autoparts/internal/handlers"
	"github.com/diewo77/autoparts/internal/services"
	"github.com/diewo77/autoparts/internal/store"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux

	health    *handlers.HealthHandler
	parts     *handlers.PartHandler
	customers *handlers.CustomerHandler
	invoices  *handlers.InvoiceHandler
	expenses  *handlers.ExpenseHandler
	settings  *handlers.SettingsHandler
	dashboard *handlers.DashboardHandler
}

// AppOptions carries the optional collaborators of NewApp.
type AppOptions struct {
	// Counter replaces the store scan for invoice numbers when set.
	Counter services.SequenceCounter
	// Ping checks the database for the health endpoints.
	Ping func(ctx context.Context) error
}

// NewApp wires services and handlers over st.
func NewApp(st store.Store, cfg config.InvoicingConfig, opts AppOptions) (*App, error) {
	policy, err := services.ParseRestockPolicy(cfg.RestockPolicy)
	if err != nil {
		return nil, fmt.Errorf("invoicing config: %w", err)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invoicing config: timezone %q: %w", cfg.Timezone, err)
	}
	var numberOpts []services.NumbererOption
	if opts.Counter != nil {
		numberOpts = append(numberOpts, services.WithCounter(opts.Counter))
	}

	settings := services.NewSettingsService(st)
	catalog := services.NewCatalogService(st)
	numberer := services.NewNumberer(st.Invoices(), cfg.Prefix, numberOpts...)
	invoices := services.NewInvoiceService(st, numberer, services.StockAdjuster{Policy: policy}, settings)

	app := &App{
		mux:       http.NewServeMux(),
		health:    &handlers.HealthHandler{Ping: opts.Ping},
		parts:     handlers.NewPartHandler(catalog),
		customers: handlers.NewCustomerHandler(catalog),
		invoices:  handlers.NewInvoiceHandler(invoices, catalog, settings),
		expenses:  handlers.NewExpenseHandler(services.NewExpenseService(st)),
		settings:  handlers.NewSettingsHandler(settings),
		dashboard: handlers.NewDashboardHandler(services.NewMetricsService(st, settings, loc)),
	}
	app.setupRoutes()
	return app, nil
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	withRecover(withPreferences(a.mux)).ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	a.mux.HandleFunc("GET /health", a.health.Health)
	a.mux.HandleFunc("GET /healthz", a.health.Health)

	// Parts
	a.mux.HandleFunc("GET /parts", a.parts.List)
	a.mux.HandleFunc("POST /parts", a.parts.Create)
	a.mux.HandleFunc("GET /parts/search", a.parts.Search)
	a.mux.HandleFunc("GET /parts/{sku}", a.parts.View)
	a.mux.HandleFunc("PUT /parts/{sku}", a.parts.Update)
	a.mux.HandleFunc("DELETE /parts/{sku}", a.parts.Delete)

	// Customers
	a.mux.HandleFunc("GET /customers", a.customers.List)
	a.mux.HandleFunc("POST /customers", a.customers.Create)
	a.mux.HandleFunc("GET /customers/{id}", a.customers.View)
	a.mux.HandleFunc("PUT /customers/{id}", a.customers.Update)
	a.mux.HandleFunc("DELETE /customers/{id}", a.customers.Delete)

	// Invoices
	a.mux.HandleFunc("GET /invoices", a.invoices.List)
	a.mux.HandleFunc("GET /invoices/new", a.invoices.New)
	a.mux.HandleFunc("POST /invoices", a.invoices.Create)
	a.mux.HandleFunc("GET /invoices/{id}", a.invoices.View)
	a.mux.HandleFunc("PUT /invoices/{id}", a.invoices.Update)
	a.mux.HandleFunc("DELETE /invoices/{id}", a.invoices.Delete)
	a.mux.HandleFunc("GET /invoices/{id}/totals", a.invoices.Totals)
	a.mux.HandleFunc("POST /invoices/{id}/items", a.invoices.AddItem)
	a.mux.HandleFunc("GET /invoices/{id}/pdf", a.invoices.PDF)

	// Expenses
	a.mux.HandleFunc("GET /expenses", a.expenses.List)
	a.mux.HandleFunc("POST /expenses", a.expenses.Create)
	a.mux.HandleFunc("DELETE /expenses/{id}", a.expenses.Delete)

	// Settings and dashboard
	a.mux.HandleFunc("GET /settings", a.settings.Edit)
	a.mux.HandleFunc("PUT /settings", a.settings.Update)
	a.mux.HandleFunc("GET /dashboard", a.dashboard.Show)
}

// ─────────────────────────────────────────────────────────────────────────────
// Middleware
// ─────────────────────────────────────────────────────────────────────────────

// withPreferences picks the language from the query, the lang cookie or
// Accept-Language, in that order. A supported query value is remembered in
// the cookie.
func withPreferences(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		if c, err := r.Cookie("lang"); err == nil && i18n.Supported(c.Value) {
			lang = c.Value
		}
		if q := r.URL.Query().Get("lang"); i18n.Supported(q) {
			lang = q
			http.SetCookie(w, &http.Cookie{
				Name:     "lang",
				Value:    lang,
				Path:     "/",
				MaxAge:   86400 * 365,
				HttpOnly: true,
			})
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}

// withRecover turns a panic into a 500 JSON response.
func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
