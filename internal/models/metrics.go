package models

import "time"

// MonthlyFigure aggregates one calendar month. Month is 1-12.
type MonthlyFigure struct {
	Month    time.Month `json:"month"`
	Year     int        `json:"year"`
	Revenue  float64    `json:"revenue"`
	Expenses float64    `json:"expenses"`
}

// PartSales is a best-seller entry.
type PartSales struct {
	PartSKU   string `json:"partSKU"`
	PartName  string `json:"partName"`
	TotalSold int    `json:"totalSold"`
}

// DashboardMetrics is derived from invoices, expenses and parts on every request.
type DashboardMetrics struct {
	TotalRevenue     float64         `json:"totalRevenue"`
	TotalExpenses    float64         `json:"totalExpenses"`
	Profit           float64         `json:"profit"`
	MonthlyData      []MonthlyFigure `json:"monthlyData"`
	BestSellingParts []PartSales     `json:"bestSellingParts"`
}
