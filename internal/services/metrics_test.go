package services

import (
	"context"
	"testing"
	"time"

	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/store/memory"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 10, 0, 0, 0, time.UTC)
}

func inv(status models.InvoiceStatus, date time.Time, items ...models.InvoiceItem) models.Invoice {
	return models.Invoice{Status: status, Date: date, Items: items}
}

func line(sku string, qty int, price float64) models.InvoiceItem {
	return models.InvoiceItem{PartSKU: sku, Quantity: qty, UnitPrice: price}
}

func TestComputeMetricsRevenueOnlyPaid(t *testing.T) {
	d := day(2024, time.March, 5)
	invoices := []models.Invoice{
		inv(models.InvoiceStatusPaid, d, line("A", 1, 250)),
		inv(models.InvoiceStatusSent, d, line("A", 1, 1000)),
		inv(models.InvoiceStatusDraft, d, line("A", 1, 1000)),
		inv(models.InvoiceStatusCancelled, d, line("A", 1, 1000)),
		inv(models.InvoiceStatusOverdue, d, line("A", 1, 1000)),
	}
	expenses := []models.Expense{{Date: d, Amount: 100}}

	m := ComputeMetrics(invoices, expenses, nil, time.UTC)
	if m.TotalRevenue != 250 {
		t.Errorf("TotalRevenue = %v, want 250", m.TotalRevenue)
	}
	if m.TotalExpenses != 100 || m.Profit != 150 {
		t.Errorf("expenses/profit = %v/%v, want 100/150", m.TotalExpenses, m.Profit)
	}
	if len(m.MonthlyData) != 1 || m.MonthlyData[0].Revenue != 250 || m.MonthlyData[0].Expenses != 100 {
		t.Errorf("unexpected monthly data %+v", m.MonthlyData)
	}
}

func TestComputeMetricsRevenueExcludesTax(t *testing.T) {
	m := ComputeMetrics([]models.Invoice{inv(models.InvoiceStatusPaid, day(2024, 1, 1), line("A", 1, 250), line("B", 2, 100))}, nil, nil, time.UTC)
	if m.TotalRevenue != 450 {
		t.Errorf("TotalRevenue = %v, want 450", m.TotalRevenue)
	}
}

func TestComputeMetricsSparseMonths(t *testing.T) {
	invoices := []models.Invoice{
		inv(models.InvoiceStatusPaid, day(2024, time.March, 5), line("A", 1, 100)),
	}
	expenses := []models.Expense{{Date: day(2024, time.January, 20), Amount: 40}}

	m := ComputeMetrics(invoices, expenses, nil, time.UTC)
	if len(m.MonthlyData) != 2 {
		t.Fatalf("expected 2 buckets (no empty February), got %+v", m.MonthlyData)
	}
	jan, mar := m.MonthlyData[0], m.MonthlyData[1]
	if jan.Month != time.January || jan.Year != 2024 || jan.Expenses != 40 || jan.Revenue != 0 {
		t.Errorf("unexpected January bucket %+v", jan)
	}
	if mar.Month != time.March || mar.Revenue != 100 || mar.Expenses != 0 {
		t.Errorf("unexpected March bucket %+v", mar)
	}
}

func TestComputeMetricsBucketsInOneLocation(t *testing.T) {
	// same instant, stamped in two different zones
	late := time.Date(2024, time.January, 31, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600))
	invoices := []models.Invoice{inv(models.InvoiceStatusPaid, late, line("A", 1, 100))}
	expenses := []models.Expense{{Date: late.UTC(), Amount: 40}}

	for _, tt := range []struct {
		name  string
		loc   *time.Location
		month time.Month
	}{
		{"utc", time.UTC, time.February},
		{"behind utc", time.FixedZone("UTC-3", -3*3600), time.January},
		{"nil defaults to utc", nil, time.February},
	} {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeMetrics(invoices, expenses, nil, tt.loc)
			if len(m.MonthlyData) != 1 {
				t.Fatalf("expected one bucket, got %+v", m.MonthlyData)
			}
			got := m.MonthlyData[0]
			if got.Month != tt.month || got.Revenue != 100 || got.Expenses != 40 {
				t.Errorf("got %+v, want month %s with revenue and expense", got, tt.month)
			}
		})
	}
}

func TestComputeMetricsKeepsLastSixMonths(t *testing.T) {
	var expenses []models.Expense
	// eight active months spanning a year boundary, inserted out of order
	for _, d := range []time.Time{
		day(2024, time.February, 1), day(2023, time.July, 1), day(2023, time.December, 1),
		day(2024, time.January, 1), day(2023, time.August, 1), day(2023, time.October, 1),
		day(2023, time.November, 1), day(2023, time.September, 1),
	} {
		expenses = append(expenses, models.Expense{Date: d, Amount: 1})
	}

	m := ComputeMetrics(nil, expenses, nil, time.UTC)
	if len(m.MonthlyData) != MonthlyWindow {
		t.Fatalf("expected %d buckets, got %d", MonthlyWindow, len(m.MonthlyData))
	}
	first, last := m.MonthlyData[0], m.MonthlyData[len(m.MonthlyData)-1]
	if first.Year != 2023 || first.Month != time.September {
		t.Errorf("first bucket = %d-%d, want 2023-9", first.Year, first.Month)
	}
	if last.Year != 2024 || last.Month != time.February {
		t.Errorf("last bucket = %d-%d, want 2024-2", last.Year, last.Month)
	}
	if m.TotalExpenses != 8 {
		t.Errorf("totals must cover every expense, got %v", m.TotalExpenses)
	}
}

func TestComputeMetricsBestSellers(t *testing.T) {
	d := day(2024, time.May, 1)
	invoices := []models.Invoice{
		inv(models.InvoiceStatusSent, d, line("B", 2, 1), line("A", 2, 1)),
		inv(models.InvoiceStatusPaid, d, line("C", 5, 1), line("A", 1, 1)),
		inv(models.InvoiceStatusDraft, d, line("D", 50, 1)),
		inv(models.InvoiceStatusCancelled, d, line("E", 50, 1)),
		inv(models.InvoiceStatusPaid, d, line("F", 1, 1), line("G", 1, 1), line("H", 1, 1)),
	}
	parts := []models.Part{{SKU: "A", Name: "Alternateur"}, {SKU: "B", Name: "Portière"}, {SKU: "C", Name: "Pare-choc"}}

	got := ComputeMetrics(invoices, nil, parts, time.UTC).BestSellingParts
	want := []models.PartSales{
		{PartSKU: "C", PartName: "Pare-choc", TotalSold: 5},
		{PartSKU: "A", PartName: "Alternateur", TotalSold: 3},
		{PartSKU: "B", PartName: "Portière", TotalSold: 2},
		{PartSKU: "F", PartName: MissingPartName, TotalSold: 1},
		{PartSKU: "G", PartName: MissingPartName, TotalSold: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d best sellers, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("best seller %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestComputeMetricsEmpty(t *testing.T) {
	m := ComputeMetrics(nil, nil, nil, time.UTC)
	if m.TotalRevenue != 0 || m.Profit != 0 {
		t.Errorf("unexpected totals %+v", m)
	}
	if m.MonthlyData == nil || m.BestSellingParts == nil {
		t.Errorf("empty metrics should carry empty slices")
	}
}

func TestMetricsServiceDashboard(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	seedPart(t, st, "A", 5)
	if _, err := st.Invoices().Put(ctx, models.Invoice{ID: "1", Status: models.InvoiceStatusPaid, Date: day(2024, 3, 1), Items: []models.InvoiceItem{line("A", 1, 0.1), line("A", 2, 0.1)}}); err != nil {
		t.Fatalf("put invoice: %v", err)
	}
	if _, err := st.Expenses().Put(ctx, models.Expense{ID: "e", Date: day(2024, 3, 2), Amount: 0.0004}); err != nil {
		t.Fatalf("put expense: %v", err)
	}

	svc := NewMetricsService(st, NewSettingsService(st), time.UTC)
	m, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	// TND amounts are shown with three decimals
	if m.TotalRevenue != 0.3 || m.TotalExpenses != 0 || m.Profit != 0.3 {
		t.Errorf("unexpected rounded totals %+v", m)
	}
	if len(m.BestSellingParts) != 1 || m.BestSellingParts[0].TotalSold != 3 {
		t.Errorf("unexpected best sellers %+v", m.BestSellingParts)
	}
}
