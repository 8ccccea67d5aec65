package service

import (
	"context"
	"time"

	"github.com/smallbiznis/billfold/internal/analytics/domain"
	"github.com/smallbiznis/billfold/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("analytics.service"),
		clock: p.Clock,
	}
}

func (s *Service) Summary(ctx context.Context) (domain.Summary, error) {
	now := s.clock.Now()
	startOfCurrentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	startOfLastMonth := startOfCurrentMonth.AddDate(0, -1, 0)
	startOfCurrentYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	startOfLastYear := startOfCurrentYear.AddDate(-1, 0, 0)
	startOfSeries := startOfCurrentMonth.AddDate(-1, 1, 0)

	var (
		summary domain.Summary
		err     error
	)

	if summary.CurrentMonthRevenue, err = s.revenueBetween(ctx, startOfCurrentMonth, now.Add(time.Second)); err != nil {
		return domain.Summary{}, err
	}
	if summary.LastMonthRevenue, err = s.revenueBetween(ctx, startOfLastMonth, startOfCurrentMonth); err != nil {
		return domain.Summary{}, err
	}
	if summary.CurrentYearRevenue, err = s.revenueBetween(ctx, startOfCurrentYear, now.Add(time.Second)); err != nil {
		return domain.Summary{}, err
	}
	if summary.LastYearRevenue, err = s.revenueBetween(ctx, startOfLastYear, startOfCurrentYear); err != nil {
		return domain.Summary{}, err
	}

	if summary.TotalCustomers, err = s.count(ctx, `SELECT COUNT(1) FROM customers`); err != nil {
		return domain.Summary{}, err
	}
	if summary.NewCustomersThisMonth, err = s.countSince(ctx, `SELECT COUNT(1) FROM customers WHERE created_at >= ?`, startOfCurrentMonth); err != nil {
		return domain.Summary{}, err
	}
	if summary.TotalProducts, err = s.count(ctx, `SELECT COUNT(1) FROM products`); err != nil {
		return domain.Summary{}, err
	}

	if summary.MonthlyRevenue, err = s.monthlySeries(ctx, startOfSeries, now); err != nil {
		return domain.Summary{}, err
	}

	return summary, nil
}

func (s *Service) revenueBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(total), 0) FROM invoices WHERE date >= ? AND date < ?`,
		from, to,
	).Scan(&total).Error
	return total, err
}

func (s *Service) count(ctx context.Context, query string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Raw(query).Scan(&count).Error
	return count, err
}

func (s *Service) countSince(ctx context.Context, query string, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Raw(query, since).Scan(&count).Error
	return count, err
}

// monthlySeries buckets the trailing twelve months of revenue. Grouping runs
// in Go rather than SQL so one query shape serves sqlite, postgres and mysql.
func (s *Service) monthlySeries(ctx context.Context, from, now time.Time) ([]domain.MonthRevenue, error) {
	var rows []struct {
		Date  time.Time
		Total int64
	}
	err := s.db.WithContext(ctx).Raw(
		`SELECT date, total FROM invoices WHERE date >= ?`,
		from,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int64, 12)
	for _, row := range rows {
		totals[row.Date.UTC().Format("2006-01")] += row.Total
	}

	series := make([]domain.MonthRevenue, 0, 12)
	for i := 0; i < 12; i++ {
		bucket := from.AddDate(0, i, 0)
		if bucket.After(now) {
			break
		}
		series = append(series, domain.MonthRevenue{
			Month:   bucket.Format("Jan"),
			Revenue: totals[bucket.Format("2006-01")],
		})
	}

	return series, nil
}
