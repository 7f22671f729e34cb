package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"receipt-tracker/apperr"
	"receipt-tracker/scan-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS clients (
			client_id TEXT PRIMARY KEY,
			name TEXT,
			email TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS client_scans (
			scan_id TEXT PRIMARY KEY,
			client_id TEXT NOT NULL,
			order_id TEXT NOT NULL,
			restaurant_id TEXT NOT NULL,
			restaurant_name TEXT NOT NULL DEFAULT '',
			total NUMERIC(12, 2) NOT NULL CHECK (total >= 0),
			items JSONB NOT NULL DEFAULT '[]',
			date TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (client_id, order_id)
		)`,
		`CREATE INDEX IF NOT EXISTS client_scans_client_date_idx ON client_scans (client_id, date DESC)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

func (r *PostgresRepository) InsertScan(ctx context.Context, scan *domain.Scan) (bool, error) {
	items, err := json.Marshal(scan.Items)
	if err != nil {
		return false, fmt.Errorf("marshal scan items: %w", err)
	}

	result, err := r.DB.ExecContext(ctx, `
		INSERT INTO client_scans (scan_id, client_id, order_id, restaurant_id, restaurant_name, total, items, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (client_id, order_id) DO NOTHING
	`, scan.ID, scan.ClientID, scan.OrderID, scan.RestaurantID, scan.RestaurantName, scan.Total, string(items), scan.Date)
	if err != nil {
		return false, unavailable("insert scan", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, unavailable("insert scan", err)
	}
	return affected == 1, nil
}

func (r *PostgresRepository) HasScan(ctx context.Context, clientID, orderID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM client_scans WHERE client_id = $1 AND order_id = $2
		)
	`, clientID, orderID).Scan(&exists)
	if err != nil {
		return false, unavailable("check scan", err)
	}
	return exists, nil
}

const scanColumns = `scan_id, client_id, order_id, restaurant_id, restaurant_name, total, items, date`

func (r *PostgresRepository) ListScans(ctx context.Context, clientID string, limit int) ([]domain.Scan, error) {
	// LIMIT NULL is LIMIT ALL in PostgreSQL.
	var limitArg sql.NullInt64
	if limit > 0 {
		limitArg = sql.NullInt64{Int64: int64(limit), Valid: true}
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+scanColumns+`
		FROM client_scans
		WHERE client_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2
	`, clientID, limitArg)
	if err != nil {
		return nil, unavailable("list scans", err)
	}
	defer rows.Close()

	var scans []domain.Scan
	for rows.Next() {
		scan, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, *scan)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate scans", err)
	}
	return scans, nil
}

func (r *PostgresRepository) GetScan(ctx context.Context, scanID string) (*domain.Scan, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+scanColumns+` FROM client_scans WHERE scan_id = $1`, scanID)
	scan, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: scan %s", apperr.ErrNotFound, scanID)
	}
	return scan, err
}

func (r *PostgresRepository) ScanTotals(ctx context.Context, clientID string, monthStart time.Time) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(total), 0),
			COALESCE(SUM(total) FILTER (WHERE date >= $2 AND date < now()), 0)
		FROM client_scans
		WHERE client_id = $1
	`, clientID, monthStart).Scan(&stats.TotalScans, &stats.TotalSpent, &stats.MonthlySpent)
	if err != nil {
		return domain.DashboardStats{}, unavailable("scan totals", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRow(row rowScanner) (*domain.Scan, error) {
	var scan domain.Scan
	var items []byte
	err := row.Scan(&scan.ID, &scan.ClientID, &scan.OrderID, &scan.RestaurantID, &scan.RestaurantName,
		&scan.Total, &items, &scan.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, unavailable("scan row", err)
	}
	if err := json.Unmarshal(items, &scan.Items); err != nil {
		return nil, fmt.Errorf("decode items of scan %s: %w", scan.ID, err)
	}
	return &scan, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperr.ErrUnavailable, op, err)
}
