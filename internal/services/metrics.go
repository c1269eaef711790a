package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/store"
)

const (
	// MonthlyWindow is how many of the most recent active months are reported.
	MonthlyWindow = 6
	// BestSellerLimit caps the best-seller ranking.
	BestSellerLimit = 5
	// MissingPartName labels best sellers whose part was deleted.
	MissingPartName = "N/A"
)

type monthKey struct {
	year  int
	month time.Month
}

// ComputeMetrics derives dashboard figures. Revenue counts the subtotal of
// Paid invoices only. Months are the calendar months of loc (UTC when nil)
// and only months with activity appear.
func ComputeMetrics(invoices []models.Invoice, expenses []models.Expense, parts []models.Part, loc *time.Location) models.DashboardMetrics {
	if loc == nil {
		loc = time.UTC
	}
	var m models.DashboardMetrics
	buckets := map[monthKey]*models.MonthlyFigure{}
	bucket := func(t time.Time) *models.MonthlyFigure {
		t = t.In(loc)
		k := monthKey{t.Year(), t.Month()}
		b, ok := buckets[k]
		if !ok {
			b = &models.MonthlyFigure{Year: k.year, Month: k.month}
			buckets[k] = b
		}
		return b
	}

	for _, inv := range invoices {
		if inv.Status != models.InvoiceStatusPaid {
			continue
		}
		subtotal := ComputeTotals(inv.Items, 0).Subtotal
		m.TotalRevenue += subtotal
		bucket(inv.Date).Revenue += subtotal
	}
	for _, e := range expenses {
		m.TotalExpenses += e.Amount
		bucket(e.Date).Expenses += e.Amount
	}
	m.Profit = m.TotalRevenue - m.TotalExpenses

	monthly := make([]models.MonthlyFigure, 0, len(buckets))
	for _, b := range buckets {
		monthly = append(monthly, *b)
	}
	sort.Slice(monthly, func(i, j int) bool {
		if monthly[i].Year != monthly[j].Year {
			return monthly[i].Year < monthly[j].Year
		}
		return monthly[i].Month < monthly[j].Month
	})
	if len(monthly) > MonthlyWindow {
		monthly = monthly[len(monthly)-MonthlyWindow:]
	}
	m.MonthlyData = monthly
	m.BestSellingParts = bestSellers(invoices, parts)
	return m
}

// bestSellers ranks SKUs by quantity over Paid and Sent invoices. Ties keep
// the order in which SKUs first appear.
func bestSellers(invoices []models.Invoice, parts []models.Part) []models.PartSales {
	sold := map[string]int{}
	var order []string
	for _, inv := range invoices {
		if inv.Status != models.InvoiceStatusPaid && inv.Status != models.InvoiceStatusSent {
			continue
		}
		for _, item := range inv.Items {
			if _, seen := sold[item.PartSKU]; !seen {
				order = append(order, item.PartSKU)
			}
			sold[item.PartSKU] += item.Quantity
		}
	}

	names := make(map[string]string, len(parts))
	for _, p := range parts {
		names[p.SKU] = p.Name
	}

	ranking := make([]models.PartSales, 0, len(order))
	for _, sku := range order {
		name, ok := names[sku]
		if !ok {
			name = MissingPartName
		}
		ranking = append(ranking, models.PartSales{PartSKU: sku, PartName: name, TotalSold: sold[sku]})
	}
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].TotalSold > ranking[j].TotalSold })
	if len(ranking) > BestSellerLimit {
		ranking = ranking[:BestSellerLimit]
	}
	return ranking
}

// roundMetrics rounds every amount of m to places decimals.
func roundMetrics(m models.DashboardMetrics, places int32) models.DashboardMetrics {
	m.TotalRevenue = Round(m.TotalRevenue, places)
	m.TotalExpenses = Round(m.TotalExpenses, places)
	m.Profit = Round(m.Profit, places)
	for i := range m.MonthlyData {
		m.MonthlyData[i].Revenue = Round(m.MonthlyData[i].Revenue, places)
		m.MonthlyData[i].Expenses = Round(m.MonthlyData[i].Expenses, places)
	}
	return m
}

// MetricsService recomputes dashboard metrics from the store on every call.
type MetricsService struct {
	store    store.Store
	settings *SettingsService
	loc      *time.Location
}

// NewMetricsService reports monthly figures in the calendar of loc.
func NewMetricsService(st store.Store, settings *SettingsService, loc *time.Location) *MetricsService {
	return &MetricsService{store: st, settings: settings, loc: loc}
}

// Dashboard returns metrics rounded for the configured currency.
func (s *MetricsService) Dashboard(ctx context.Context) (models.DashboardMetrics, error) {
	invoices, err := s.store.Invoices().List(ctx)
	if err != nil {
		return models.DashboardMetrics{}, fmt.Errorf("list invoices: %w", err)
	}
	expenses, err := s.store.Expenses().List(ctx)
	if err != nil {
		return models.DashboardMetrics{}, fmt.Errorf("list expenses: %w", err)
	}
	parts, err := s.store.Parts().List(ctx)
	if err != nil {
		return models.DashboardMetrics{}, fmt.Errorf("list parts: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return models.DashboardMetrics{}, err
	}
	return roundMetrics(ComputeMetrics(invoices, expenses, parts, s.loc), CurrencyPlaces(settings.CurrencyCode)), nil
}
