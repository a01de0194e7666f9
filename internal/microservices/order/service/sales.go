package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pos-voice/internal/domain"
	"pos-voice/internal/microservices/order/repository"
)

const (
	dateLayout    = "2006-01-02"
	maxReportDays = 366
)

type SalesServiceInterface interface {
	TopSelling(ctx context.Context, startDate, endDate string) ([]domain.ProductSales, error)
	Income(ctx context.Context, date, period string) (domain.Income, error)
}

type SalesService struct {
	db  repository.SalesRepositoryInterface
	now func() time.Time
}

func NewSalesService(db repository.SalesRepositoryInterface) *SalesService {
	return &SalesService{db: db, now: time.Now}
}

// TopSelling reports quantities sold per product and day between startDate
// and endDate, both inclusive. An empty endDate means startDate alone.
func (s *SalesService) TopSelling(ctx context.Context, startDate, endDate string) ([]domain.ProductSales, error) {
	start, err := parseDate("start_date", startDate)
	if err != nil {
		return nil, err
	}
	end := start
	if endDate != "" {
		if end, err = parseDate("end_date", endDate); err != nil {
			return nil, err
		}
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date is before start_date", ErrValidation)
	}
	if end.Sub(start) >= maxReportDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range longer than %d days", ErrValidation, maxReportDays)
	}
	return s.db.TopSelling(ctx, start, end.AddDate(0, 0, 1))
}

// Income totals orders for the period ending on date: the day itself, the
// seven days up to it, or its calendar month. date defaults to today (UTC)
// and period to "day".
func (s *SalesService) Income(ctx context.Context, date, period string) (domain.Income, error) {
	day := s.now().UTC().Truncate(24 * time.Hour)
	if date != "" {
		var err error
		if day, err = parseDate("date", date); err != nil {
			return domain.Income{}, err
		}
	}
	period = strings.ToLower(strings.TrimSpace(period))
	if period == "" {
		period = "day"
	}

	var from, to time.Time
	switch period {
	case "day":
		from, to = day, day.AddDate(0, 0, 1)
	case "week":
		from, to = day.AddDate(0, 0, -6), day.AddDate(0, 0, 1)
	case "month":
		from = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, 0)
	default:
		return domain.Income{}, fmt.Errorf("%w: unknown period %q", ErrValidation, period)
	}

	total, orders, err := s.db.Income(ctx, from, to)
	if err != nil {
		return domain.Income{}, err
	}
	return domain.Income{
		Date:   day.Format(dateLayout),
		Period: period,
		From:   from,
		To:     to,
		Total:  total,
		Orders: orders,
	}, nil
}

func parseDate(field, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	t, err := time.ParseInLocation(dateLayout, v, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrValidation, field)
	}
	return t, nil
}
