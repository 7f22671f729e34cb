package service

import (
	"context"

	"receipt-tracker/analytics-svc/internal/domain"
)

type StatsInterface interface {
	Stats(ctx context.Context, restaurantID string) (domain.SellerStats, error)
	TopDishes(ctx context.Context, restaurantID string, limit int) ([]domain.DishRanking, error)
}

var _ StatsInterface = (*StatsService)(nil)
