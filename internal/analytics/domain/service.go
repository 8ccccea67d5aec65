package domain

import "context"

// MonthRevenue is one bucket of the trailing twelve-month revenue series.
type MonthRevenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// Summary aggregates invoice history for the dashboard. Read-only; nothing
// here writes invoice rows.
type Summary struct {
	CurrentMonthRevenue   int64          `json:"currentMonthRevenue"`
	LastMonthRevenue      int64          `json:"lastMonthRevenue"`
	CurrentYearRevenue    int64          `json:"currentYearRevenue"`
	LastYearRevenue       int64          `json:"lastYearRevenue"`
	TotalCustomers        int64          `json:"totalCustomers"`
	NewCustomersThisMonth int64          `json:"newCustomersThisMonth"`
	TotalProducts         int64          `json:"totalProducts"`
	MonthlyRevenue        []MonthRevenue `json:"monthlyRevenue"`
}

type Service interface {
	Summary(ctx context.Context) (Summary, error)
}
