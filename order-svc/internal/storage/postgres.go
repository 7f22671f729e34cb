package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"receipt-tracker/apperr"
	"receipt-tracker/order-svc/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			restaurant_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			address TEXT,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS dishes (
			dish_id TEXT NOT NULL,
			restaurant_id TEXT NOT NULL REFERENCES restaurants (restaurant_id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT,
			category TEXT,
			price NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (restaurant_id, dish_id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL,
			subtotal NUMERIC(12, 2) NOT NULL,
			total NUMERIC(12, 2) NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'confirmed', 'completed', 'cancelled')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS orders_restaurant_created_idx ON orders (restaurant_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id TEXT NOT NULL REFERENCES orders (order_id) ON DELETE CASCADE,
			position INT NOT NULL,
			dish_id TEXT NOT NULL,
			name TEXT NOT NULL,
			quantity INT NOT NULL CHECK (quantity > 0),
			price NUMERIC(12, 2) NOT NULL,
			PRIMARY KEY (order_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS seller_stats (
			restaurant_id TEXT PRIMARY KEY,
			total_orders BIGINT NOT NULL DEFAULT 0,
			total_revenue NUMERIC(14, 2) NOT NULL DEFAULT 0,
			redeemed_orders BIGINT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS seller_monthly_stats (
			restaurant_id TEXT NOT NULL,
			month DATE NOT NULL,
			order_count BIGINT NOT NULL DEFAULT 0,
			revenue NUMERIC(14, 2) NOT NULL DEFAULT 0,
			PRIMARY KEY (restaurant_id, month)
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

func (r *PostgresRepository) FindDishes(ctx context.Context, restaurantID string, dishIDs []string) ([]domain.Dish, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT dish_id, restaurant_id, name, COALESCE(description, ''), COALESCE(category, ''), price, is_available, created_at
		FROM dishes
		WHERE restaurant_id = $1 AND dish_id = ANY($2)`,
		restaurantID, pq.Array(dishIDs))
	if err != nil {
		return nil, storageError("find dishes", err)
	}
	defer rows.Close()
	return scanDishes(rows)
}

func (r *PostgresRepository) ListAvailableDishes(ctx context.Context, restaurantID string) ([]domain.Dish, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT dish_id, restaurant_id, name, COALESCE(description, ''), COALESCE(category, ''), price, is_available, created_at
		FROM dishes
		WHERE restaurant_id = $1 AND is_available
		ORDER BY category, name`, restaurantID)
	if err != nil {
		return nil, storageError("list dishes", err)
	}
	defer rows.Close()
	return scanDishes(rows)
}

func scanDishes(rows *sql.Rows) ([]domain.Dish, error) {
	var dishes []domain.Dish
	for rows.Next() {
		var dish domain.Dish
		if err := rows.Scan(&dish.ID, &dish.RestaurantID, &dish.Name, &dish.Description, &dish.Category,
			&dish.Price, &dish.IsAvailable, &dish.CreatedAt); err != nil {
			return nil, storageError("scan dish", err)
		}
		dishes = append(dishes, dish)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate dishes", err)
	}
	return dishes, nil
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return storageError("begin order transaction", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (order_id, restaurant_id, subtotal, total, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, order.ID, order.RestaurantID, order.Subtotal, order.Total, string(order.Status)).
		Scan(&order.CreatedAt, &order.UpdatedAt); err != nil {
		return storageError("insert order", err)
	}

	for i, item := range order.Dishes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, position, dish_id, name, quantity, price)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, order.ID, i, item.DishID, item.Name, item.Quantity, item.Price); err != nil {
			return storageError("insert order item", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO seller_stats (restaurant_id, total_orders, total_revenue)
		VALUES ($1, 1, $2)
		ON CONFLICT (restaurant_id) DO UPDATE
		SET total_orders = seller_stats.total_orders + 1,
			total_revenue = seller_stats.total_revenue + EXCLUDED.total_revenue,
			updated_at = now()
	`, order.RestaurantID, order.Total); err != nil {
		return storageError("increment seller stats", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO seller_monthly_stats (restaurant_id, month, order_count, revenue)
		VALUES ($1, date_trunc('month', $2::timestamptz AT TIME ZONE 'UTC')::date, 1, $3)
		ON CONFLICT (restaurant_id, month) DO UPDATE
		SET order_count = seller_monthly_stats.order_count + 1,
			revenue = seller_monthly_stats.revenue + EXCLUDED.revenue
	`, order.RestaurantID, order.CreatedAt, order.Total); err != nil {
		return storageError("increment monthly seller stats", err)
	}

	if err := tx.Commit(); err != nil {
		return storageError("commit order", err)
	}
	return nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	var status string
	err := r.DB.QueryRowContext(ctx, `
		SELECT o.order_id, o.restaurant_id, COALESCE(r.name, ''), o.subtotal, o.total, o.status, o.created_at, o.updated_at
		FROM orders o
		LEFT JOIN restaurants r ON r.restaurant_id = o.restaurant_id
		WHERE o.order_id = $1
	`, orderID).Scan(&order.ID, &order.RestaurantID, &order.RestaurantName, &order.Subtotal, &order.Total,
		&status, &order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
	}
	if err != nil {
		return nil, storageError("get order", err)
	}
	order.Status = domain.OrderStatus(status)

	items, err := r.loadItems(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}
	order.Dishes = items[orderID]
	return &order, nil
}

func (r *PostgresRepository) ListOrders(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT o.order_id, o.restaurant_id, COALESCE(r.name, ''), o.subtotal, o.total, o.status, o.created_at, o.updated_at
		FROM orders o
		LEFT JOIN restaurants r ON r.restaurant_id = o.restaurant_id
		WHERE o.restaurant_id = $1
		ORDER BY o.created_at DESC
	`, restaurantID)
	if err != nil {
		return nil, storageError("list orders", err)
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []string
	for rows.Next() {
		var order domain.Order
		var status string
		if err := rows.Scan(&order.ID, &order.RestaurantID, &order.RestaurantName, &order.Subtotal, &order.Total,
			&status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, storageError("scan order", err)
		}
		order.Status = domain.OrderStatus(status)
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate orders", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Dishes = items[orders[i].ID]
	}
	return orders, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT order_id, dish_id, name, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, storageError("load order items", err)
	}
	defer rows.Close()

	items := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var orderID string
		var item domain.OrderItem
		if err := rows.Scan(&orderID, &item.DishID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, storageError("scan order item", err)
		}
		items[orderID] = append(items[orderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate order items", err)
	}
	return items, nil
}

// UpdateOrderStatus only applies when the stored status still equals from.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = now()
		WHERE order_id = $2 AND status = $3
	`, string(to), orderID, string(from))
	if err != nil {
		return false, storageError("update order status", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, storageError("update order status", err)
	}
	return affected == 1, nil
}

func storageError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s: %v", apperr.ErrConflict, op, err)
	}
	return fmt.Errorf("%w: %s: %w", apperr.ErrUnavailable, op, err)
}
