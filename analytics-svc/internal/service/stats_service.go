package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"receipt-tracker/analytics-svc/internal/domain"
	"receipt-tracker/apperr"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultTopDishes = 10
	MaxTopDishes     = 50
)

var errStaleMirror = errors.New("mirror belongs to another month")

type StatsService struct {
	db     *sql.DB
	rdb    *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

func NewStatsService(db *sql.DB, rdb *redis.Client, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{db: db, rdb: rdb, logger: logger, now: time.Now}
}

// WithClock replaces the service's time source.
func (s *StatsService) WithClock(now func() time.Time) *StatsService {
	s.now = now
	return s
}

func StatsKey(restaurantID string) string {
	return "seller:" + restaurantID + ":stats"
}

// Stats prefers the Redis mirror kept by agg-svc and falls back to
// PostgreSQL when the mirror is missing, unreadable or from an earlier month.
// A seller with no orders gets zeroed stats.
func (s *StatsService) Stats(ctx context.Context, restaurantID string) (domain.SellerStats, error) {
	restaurantID = strings.TrimSpace(restaurantID)
	if restaurantID == "" {
		return domain.SellerStats{}, fmt.Errorf("%w: restaurantID is required", apperr.ErrInvalidRequest)
	}
	month := monthStart(s.now())

	if s.rdb != nil {
		stats, err := s.fromMirror(ctx, restaurantID, month)
		if err == nil {
			return stats, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.logger.Debug("stats mirror unusable", zap.String("restaurant_id", restaurantID), zap.Error(err))
		}
	}

	return s.fromDatabase(ctx, restaurantID, month)
}

func (s *StatsService) fromMirror(ctx context.Context, restaurantID string, month time.Time) (domain.SellerStats, error) {
	fields, err := s.rdb.HGetAll(ctx, StatsKey(restaurantID)).Result()
	if err != nil {
		return domain.SellerStats{}, err
	}
	if len(fields) == 0 {
		return domain.SellerStats{}, redis.Nil
	}
	if fields["month"] != month.Format(domain.MonthLayout) {
		return domain.SellerStats{}, errStaleMirror
	}

	stats := domain.SellerStats{
		RestaurantID: restaurantID,
		Month:        fields["month"],
		Source:       "cache",
	}
	if stats.TotalOrders, err = strconv.ParseInt(fields["total_orders"], 10, 64); err != nil {
		return domain.SellerStats{}, fmt.Errorf("total_orders: %w", err)
	}
	if stats.MonthlyOrders, err = strconv.ParseInt(fields["monthly_orders"], 10, 64); err != nil {
		return domain.SellerStats{}, fmt.Errorf("monthly_orders: %w", err)
	}
	if stats.RedeemedOrders, err = strconv.ParseInt(fields["redeemed_orders"], 10, 64); err != nil {
		return domain.SellerStats{}, fmt.Errorf("redeemed_orders: %w", err)
	}
	if stats.TotalRevenue, err = decimal.NewFromString(fields["total_revenue"]); err != nil {
		return domain.SellerStats{}, fmt.Errorf("total_revenue: %w", err)
	}
	if stats.MonthlyRevenue, err = decimal.NewFromString(fields["monthly_revenue"]); err != nil {
		return domain.SellerStats{}, fmt.Errorf("monthly_revenue: %w", err)
	}
	return stats, nil
}

func (s *StatsService) fromDatabase(ctx context.Context, restaurantID string, month time.Time) (domain.SellerStats, error) {
	stats := domain.SellerStats{
		RestaurantID: restaurantID,
		Month:        month.Format(domain.MonthLayout),
		Source:       "database",
	}
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(s.total_orders, 0), COALESCE(s.total_revenue, 0), COALESCE(s.redeemed_orders, 0),
			COALESCE(m.order_count, 0), COALESCE(m.revenue, 0)
		FROM (SELECT $1::text AS restaurant_id) k
		LEFT JOIN seller_stats s ON s.restaurant_id = k.restaurant_id
		LEFT JOIN seller_monthly_stats m ON m.restaurant_id = k.restaurant_id AND m.month = $2::date
	`, restaurantID, month).Scan(&stats.TotalOrders, &stats.TotalRevenue, &stats.RedeemedOrders,
		&stats.MonthlyOrders, &stats.MonthlyRevenue)
	if err != nil {
		return domain.SellerStats{}, fmt.Errorf("%w: load seller stats: %w", apperr.ErrUnavailable, err)
	}
	return stats, nil
}

// TopDishes ranks a seller's dishes by quantity ordered.
func (s *StatsService) TopDishes(ctx context.Context, restaurantID string, limit int) ([]domain.DishRanking, error) {
	if strings.TrimSpace(restaurantID) == "" {
		return nil, fmt.Errorf("%w: restaurantID is required", apperr.ErrInvalidRequest)
	}
	if limit <= 0 {
		limit = DefaultTopDishes
	}
	if limit > MaxTopDishes {
		limit = MaxTopDishes
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT oi.dish_id, MAX(oi.name), SUM(oi.quantity), SUM(oi.quantity * oi.price)
		FROM order_items oi
		JOIN orders o ON o.order_id = oi.order_id
		WHERE o.restaurant_id = $1 AND o.status <> 'cancelled'
		GROUP BY oi.dish_id
		ORDER BY SUM(oi.quantity) DESC, oi.dish_id
		LIMIT $2
	`, restaurantID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: top dishes: %w", apperr.ErrUnavailable, err)
	}
	defer rows.Close()

	dishes := []domain.DishRanking{}
	for rows.Next() {
		var d domain.DishRanking
		if err := rows.Scan(&d.DishID, &d.Name, &d.Quantity, &d.Revenue); err != nil {
			return nil, fmt.Errorf("%w: scan top dish: %w", apperr.ErrUnavailable, err)
		}
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: top dishes: %w", apperr.ErrUnavailable, err)
	}
	return dishes, nil
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
