package tests

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"receipt-tracker/analytics-svc/internal/service"
	"receipt-tracker/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow     = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	currentMonth = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	statsColumns = []string{"total_orders", "total_revenue", "redeemed_orders", "order_count", "revenue"}
)

func setupStatsService(t *testing.T) (*service.StatsService, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mr := miniredis.RunT(t)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	svc := service.NewStatsService(db, redis.NewClient(&redis.Options{Addr: mr.Addr()}), nil).
		WithClock(func() time.Time { return fixedNow })
	return svc, mock, mr
}

func mirror(mr *miniredis.Miniredis, month string) {
	mr.HSet(service.StatsKey("R1"),
		"total_orders", "4",
		"total_revenue", "52.00",
		"monthly_orders", "1",
		"monthly_revenue", "13.00",
		"month", month,
		"redeemed_orders", "2",
	)
}

func TestStatsService_StatsFromMirror(t *testing.T) {
	svc, _, mr := setupStatsService(t)
	mirror(mr, "2026-03")

	stats, err := svc.Stats(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, "cache", stats.Source)
	assert.Equal(t, int64(4), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.MonthlyOrders)
	assert.Equal(t, "13.00", stats.MonthlyRevenue.StringFixed(2))
	assert.Equal(t, int64(2), stats.RedeemedOrders)
	assert.Equal(t, "2026-03", stats.Month)
}

func TestStatsService_StatsFallback(t *testing.T) {
	tests := []struct {
		name        string
		prepare     func(mr *miniredis.Miniredis)
		rows        *sqlmock.Rows
		wantOrders  int64
		wantMonthly int64
	}{
		{
			name:        "mirror_missing",
			prepare:     func(mr *miniredis.Miniredis) {},
			rows:        sqlmock.NewRows(statsColumns).AddRow(4, "52.00", 2, 1, "13.00"),
			wantOrders:  4,
			wantMonthly: 1,
		},
		{
			name:        "mirror_from_previous_month",
			prepare:     func(mr *miniredis.Miniredis) { mirror(mr, "2026-02") },
			rows:        sqlmock.NewRows(statsColumns).AddRow(4, "52.00", 2, 0, "0"),
			wantOrders:  4,
			wantMonthly: 0,
		},
		{
			name: "mirror_corrupted",
			prepare: func(mr *miniredis.Miniredis) {
				mirror(mr, "2026-03")
				mr.HSet(service.StatsKey("R1"), "total_orders", "lots")
			},
			rows:        sqlmock.NewRows(statsColumns).AddRow(4, "52.00", 2, 1, "13.00"),
			wantOrders:  4,
			wantMonthly: 1,
		},
		{
			name:        "redis_down",
			prepare:     func(mr *miniredis.Miniredis) { mr.Close() },
			rows:        sqlmock.NewRows(statsColumns).AddRow(4, "52.00", 2, 1, "13.00"),
			wantOrders:  4,
			wantMonthly: 1,
		},
		{
			name:        "unknown_seller",
			prepare:     func(mr *miniredis.Miniredis) {},
			rows:        sqlmock.NewRows(statsColumns).AddRow(0, "0", 0, 0, "0"),
			wantOrders:  0,
			wantMonthly: 0,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, mock, mr := setupStatsService(t)
			testCase.prepare(mr)
			mock.ExpectQuery("SELECT COALESCE").
				WithArgs("R1", currentMonth).
				WillReturnRows(testCase.rows)

			stats, err := svc.Stats(context.Background(), "R1")
			require.NoError(t, err)
			assert.Equal(t, "database", stats.Source)
			assert.Equal(t, "R1", stats.RestaurantID)
			assert.Equal(t, "2026-03", stats.Month)
			assert.Equal(t, testCase.wantOrders, stats.TotalOrders)
			assert.Equal(t, testCase.wantMonthly, stats.MonthlyOrders)
		})
	}
}

func TestStatsService_StatsErrors(t *testing.T) {
	svc, mock, _ := setupStatsService(t)

	_, err := svc.Stats(context.Background(), " ")
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)

	mock.ExpectQuery("SELECT COALESCE").WithArgs("R1", currentMonth).WillReturnError(sql.ErrConnDone)
	_, err = svc.Stats(context.Background(), "R1")
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
}

func TestStatsService_TopDishes(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "default", limit: 0, wantLimit: 10},
		{name: "explicit", limit: 3, wantLimit: 3},
		{name: "clamped", limit: 1000, wantLimit: 50},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, mock, _ := setupStatsService(t)
			mock.ExpectQuery("SELECT oi.dish_id").
				WithArgs("R1", testCase.wantLimit).
				WillReturnRows(sqlmock.NewRows([]string{"dish_id", "name", "quantity", "revenue"}).
					AddRow("A", "Margherita", 7, "35.00").
					AddRow("B", "Tiramisu", 2, "6.00"))

			dishes, err := svc.TopDishes(context.Background(), "R1", testCase.limit)
			require.NoError(t, err)
			require.Len(t, dishes, 2)
			assert.Equal(t, "A", dishes[0].DishID)
			assert.Equal(t, int64(7), dishes[0].Quantity)
		})
	}
}
