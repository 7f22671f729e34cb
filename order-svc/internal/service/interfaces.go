package service

import (
	"context"

	"receipt-tracker/account"
	"receipt-tracker/order-svc/internal/domain"
)

type DishRepository interface {
	FindDishes(ctx context.Context, restaurantID string, dishIDs []string) ([]domain.Dish, error)
	ListAvailableDishes(ctx context.Context, restaurantID string) ([]domain.Dish, error)
}

type OrderRepository interface {
	// CreateOrder stores the order, its items and the seller counter
	// increments in one transaction.
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, restaurantID string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (bool, error)
}

type SellerDirectory interface {
	Lookup(ctx context.Context, ref account.Ref) (*account.Account, error)
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type QRGenerator interface {
	Generate(content string) ([]byte, error)
}

type CatalogInterface interface {
	Lookup(ctx context.Context, restaurantID string, dishIDs []string) ([]domain.Dish, error)
	Menu(ctx context.Context, restaurantID string) ([]domain.Dish, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, restaurantID string, items []domain.OrderItemRequest) (*domain.Order, error)
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ListBySeller(ctx context.Context, restaurantID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
}

type ReceiptEncoderInterface interface {
	Encode(order *domain.Order, sellerName string) (*domain.Receipt, error)
	ForOrder(ctx context.Context, order *domain.Order) (*domain.Receipt, error)
}

var (
	_ CatalogInterface        = (*Catalog)(nil)
	_ OrderServiceInterface   = (*OrderService)(nil)
	_ ReceiptEncoderInterface = (*ReceiptEncoder)(nil)
)
