package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-voice/internal/domain"
)

type fakeSalesRepo struct {
	from, to time.Time
	rows     []domain.ProductSales
	total    float64
	orders   int
}

func (f *fakeSalesRepo) TopSelling(_ context.Context, from, to time.Time) ([]domain.ProductSales, error) {
	f.from, f.to = from, to
	return f.rows, nil
}

func (f *fakeSalesRepo) Income(_ context.Context, from, to time.Time) (float64, int, error) {
	f.from, f.to = from, to
	return f.total, f.orders, nil
}

func newSalesService(repo *fakeSalesRepo) *SalesService {
	s := NewSalesService(repo)
	s.now = func() time.Time { return time.Date(2026, 10, 17, 15, 30, 0, 0, time.UTC) }
	return s
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestTopSellingRangeIsInclusive(t *testing.T) {
	repo := &fakeSalesRepo{rows: []domain.ProductSales{
		{ProductID: 1, ProductName: "Pepperoni Pizza", SaleDate: "2026-10-01", QuantitySold: 7},
	}}
	s := newSalesService(repo)

	rows, err := s.TopSelling(context.Background(), "2026-10-01", "2026-10-03")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, day(2026, 10, 1), repo.from)
	assert.Equal(t, day(2026, 10, 4), repo.to)

	_, err = s.TopSelling(context.Background(), "2026-10-05", "")
	require.NoError(t, err)
	assert.Equal(t, day(2026, 10, 6), repo.to)
}

func TestTopSellingValidation(t *testing.T) {
	tests := []struct {
		name, start, end string
	}{
		{"missing start", "", "2026-10-01"},
		{"bad format", "10/01/2026", ""},
		{"reversed", "2026-10-05", "2026-10-01"},
		{"too long", "2024-01-01", "2026-01-01"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newSalesService(&fakeSalesRepo{}).TopSelling(context.Background(), tc.start, tc.end)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestIncomeWindows(t *testing.T) {
	tests := []struct {
		date, period string
		from, to     time.Time
	}{
		{"", "", day(2026, 10, 17), day(2026, 10, 18)},
		{"2026-10-10", "day", day(2026, 10, 10), day(2026, 10, 11)},
		{"2026-10-10", "Week", day(2026, 10, 4), day(2026, 10, 11)},
		{"2026-02-14", "month", day(2026, 2, 1), day(2026, 3, 1)},
	}
	for _, tc := range tests {
		t.Run(tc.date+"/"+tc.period, func(t *testing.T) {
			repo := &fakeSalesRepo{total: 26.5, orders: 2}
			inc, err := newSalesService(repo).Income(context.Background(), tc.date, tc.period)
			require.NoError(t, err)
			assert.Equal(t, tc.from, repo.from)
			assert.Equal(t, tc.to, repo.to)
			assert.InDelta(t, 26.5, inc.Total, 1e-9)
			assert.Equal(t, 2, inc.Orders)
		})
	}
}

func TestIncomeRejectsUnknownPeriod(t *testing.T) {
	_, err := newSalesService(&fakeSalesRepo{}).Income(context.Background(), "2026-10-10", "decade")
	assert.ErrorIs(t, err, ErrValidation)
}
