package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"receipt-tracker/agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultMirrorTTL = 24 * time.Hour
	MonthLayout      = "2006-01"
)

// Only bump the redeemed counter of a mirror that already exists, so a
// partial hash is never created.
var incrementIfMirrored = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return redis.call('HINCRBY', KEYS[1], ARGV[1], 1)
end
return -1
`)

type Store struct {
	db  *sql.DB
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(db *sql.DB, rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultMirrorTTL
	}
	return &Store{db: db, rdb: rdb, ttl: ttl}
}

func StatsKey(restaurantID string) string {
	return "seller:" + restaurantID + ":stats"
}

func MonthOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s *Store) LoadCounters(ctx context.Context, restaurantID string, now time.Time) (domain.SellerCounters, error) {
	counters := domain.SellerCounters{Month: MonthOf(now)}
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(s.total_orders, 0), COALESCE(s.total_revenue, 0), COALESCE(s.redeemed_orders, 0),
			COALESCE(m.order_count, 0), COALESCE(m.revenue, 0)
		FROM (SELECT $1::text AS restaurant_id) k
		LEFT JOIN seller_stats s ON s.restaurant_id = k.restaurant_id
		LEFT JOIN seller_monthly_stats m ON m.restaurant_id = k.restaurant_id AND m.month = $2::date
	`, restaurantID, counters.Month).Scan(&counters.TotalOrders, &counters.TotalRevenue, &counters.RedeemedOrders,
		&counters.MonthlyOrders, &counters.MonthlyRevenue)
	if err != nil {
		return domain.SellerCounters{}, err
	}
	return counters, nil
}

func (s *Store) MirrorCounters(ctx context.Context, restaurantID string, counters domain.SellerCounters) error {
	key := StatsKey(restaurantID)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"total_orders":    counters.TotalOrders,
			"total_revenue":   counters.TotalRevenue.StringFixed(2),
			"monthly_orders":  counters.MonthlyOrders,
			"monthly_revenue": counters.MonthlyRevenue.StringFixed(2),
			"month":           counters.Month.Format(MonthLayout),
			"redeemed_orders": counters.RedeemedOrders,
			"last_updated":    time.Now().Unix(),
		})
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	return err
}

func (s *Store) IncrementRedeemed(ctx context.Context, restaurantID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO seller_stats (restaurant_id, redeemed_orders)
		VALUES ($1, 1)
		ON CONFLICT (restaurant_id) DO UPDATE
		SET redeemed_orders = seller_stats.redeemed_orders + 1,
			updated_at = now()
	`, restaurantID)
	return err
}

func (s *Store) IncrementMirroredRedeemed(ctx context.Context, restaurantID string) (bool, error) {
	res, err := incrementIfMirrored.Run(ctx, s.rdb, []string{StatsKey(restaurantID)}, "redeemed_orders").Int64()
	if err != nil {
		return false, fmt.Errorf("increment mirror: %w", err)
	}
	return res >= 0, nil
}
