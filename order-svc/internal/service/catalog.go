package service

import (
	"context"
	"fmt"
	"strings"

	"receipt-tracker/apperr"
	"receipt-tracker/order-svc/internal/domain"
)

// Catalog resolves dish ids against one seller's menu. Ids that do not
// match are dropped rather than rejected; only an empty result is an error.
type Catalog struct {
	repo DishRepository
}

func NewCatalog(repo DishRepository) *Catalog {
	return &Catalog{repo: repo}
}

func (c *Catalog) Lookup(ctx context.Context, restaurantID string, dishIDs []string) ([]domain.Dish, error) {
	if strings.TrimSpace(restaurantID) == "" || len(dishIDs) == 0 {
		return nil, fmt.Errorf("%w: restaurantID and dish ids are required", apperr.ErrInvalidRequest)
	}

	dishes, err := c.repo.FindDishes(ctx, restaurantID, uniqueIDs(dishIDs))
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Dish, 0, len(dishes))
	for _, dish := range dishes {
		if dish.RestaurantID == restaurantID {
			matched = append(matched, dish)
		}
	}

	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: no matching dishes for restaurant %s", apperr.ErrNotFound, restaurantID)
	}
	return matched, nil
}

func (c *Catalog) Menu(ctx context.Context, restaurantID string) ([]domain.Dish, error) {
	if strings.TrimSpace(restaurantID) == "" {
		return nil, fmt.Errorf("%w: restaurantID is required", apperr.ErrInvalidRequest)
	}
	dishes, err := c.repo.ListAvailableDishes(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if dishes == nil {
		dishes = []domain.Dish{}
	}
	return dishes, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
