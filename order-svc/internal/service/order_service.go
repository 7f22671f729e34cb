package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"receipt-tracker/account"
	"receipt-tracker/apperr"
	"receipt-tracker/order-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaxQuantity bounds a single line item.
const MaxQuantity = 10000

type OrderService struct {
	repo      OrderRepository
	catalog   CatalogInterface
	sellers   SellerDirectory
	publisher OrderPublisher
	logger    *zap.Logger
	newID     func() string
	now       func() time.Time
}

func NewOrderService(repo OrderRepository, catalog CatalogInterface, sellers SellerDirectory, publisher OrderPublisher, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		repo:      repo,
		catalog:   catalog,
		sellers:   sellers,
		publisher: publisher,
		logger:    logger,
		newID:     func() string { return "ORD-" + uuid.NewString() },
		now:       time.Now,
	}
}

// Create prices the requested items from the seller's catalog and persists
// a pending order. Prices never come from the request.
func (s *OrderService) Create(ctx context.Context, restaurantID string, items []domain.OrderItemRequest) (*domain.Order, error) {
	restaurantID = strings.TrimSpace(restaurantID)
	if restaurantID == "" || len(items) == 0 {
		return nil, fmt.Errorf("%w: restaurantID and at least one dish are required", apperr.ErrInvalidRequest)
	}

	ids, quantities, err := mergeItems(items)
	if err != nil {
		return nil, err
	}

	seller, err := s.sellers.Lookup(ctx, account.SellerRef(restaurantID))
	if err != nil {
		return nil, err
	}

	dishes, err := s.catalog.Lookup(ctx, restaurantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Dish, len(dishes))
	for _, dish := range dishes {
		byID[dish.ID] = dish
	}

	order := &domain.Order{
		ID:             s.newID(),
		RestaurantID:   restaurantID,
		RestaurantName: seller.Name,
		Status:         domain.StatusPending,
	}

	subtotal := decimal.Zero
	for _, id := range ids {
		dish, ok := byID[id]
		if !ok {
			s.logger.Debug("dropping unknown dish from order",
				zap.String("restaurant_id", restaurantID), zap.String("dish_id", id))
			continue
		}
		item := domain.OrderItem{
			DishID:   dish.ID,
			Name:     dish.Name,
			Quantity: quantities[id],
			Price:    dish.Price,
		}
		order.Dishes = append(order.Dishes, item)
		subtotal = subtotal.Add(item.LineTotal())
	}
	order.Subtotal = subtotal
	order.Total = subtotal

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("restaurant_id", restaurantID),
		zap.Int("items", len(order.Dishes)),
		zap.String("total", order.Total.StringFixed(2)))

	if s.publisher != nil {
		event := domain.OrderEvent{
			Type:         domain.EventOrderCreated,
			OrderID:      order.ID,
			RestaurantID: order.RestaurantID,
			Total:        order.Total,
			Timestamp:    s.now().UTC(),
		}
		if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
			s.logger.Warn("failed to publish order event", zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%w: orderID is required", apperr.ErrInvalidRequest)
	}
	return s.repo.GetOrder(ctx, orderID)
}

func (s *OrderService) ListBySeller(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	if strings.TrimSpace(restaurantID) == "" {
		return nil, fmt.Errorf("%w: restaurantID is required", apperr.ErrInvalidRequest)
	}
	orders, err := s.repo.ListOrders(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperr.ErrInvalidRequest, status)
	}

	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return order, nil
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", apperr.ErrInvalidState, order.Status, status)
	}

	updated, err := s.repo.UpdateOrderStatus(ctx, orderID, order.Status, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("%w: order %s was modified concurrently", apperr.ErrConflict, orderID)
	}

	s.logger.Info("order status changed",
		zap.String("order_id", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(status)))

	order.Status = status
	order.UpdatedAt = s.now().UTC()
	return order, nil
}

// mergeItems validates quantities and folds repeated dish ids together,
// keeping the order in which ids first appear.
func mergeItems(items []domain.OrderItemRequest) ([]string, map[string]int, error) {
	ids := make([]string, 0, len(items))
	quantities := make(map[string]int, len(items))

	for _, item := range items {
		id := strings.TrimSpace(item.DishID)
		if id == "" {
			return nil, nil, fmt.Errorf("%w: dishID is required", apperr.ErrInvalidRequest)
		}
		if item.Quantity < 1 || item.Quantity > MaxQuantity {
			return nil, nil, fmt.Errorf("%w: quantity for dish %s must be between 1 and %d", apperr.ErrInvalidRequest, id, MaxQuantity)
		}
		if _, seen := quantities[id]; !seen {
			ids = append(ids, id)
		}
		quantities[id] += item.Quantity
		if quantities[id] > MaxQuantity {
			return nil, nil, fmt.Errorf("%w: quantity for dish %s must be between 1 and %d", apperr.ErrInvalidRequest, id, MaxQuantity)
		}
	}
	return ids, quantities, nil
}
