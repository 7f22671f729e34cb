package domain

import "github.com/shopspring/decimal"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

const MonthLayout = "2006-01"

// SellerStats reports lifetime and current-month order counters for a seller.
type SellerStats struct {
	RestaurantID   string          `json:"restaurantID"`
	MonthlyOrders  int64           `json:"monthlyOrders"`
	MonthlyRevenue decimal.Decimal `json:"monthlyRevenue"`
	TotalOrders    int64           `json:"totalOrders"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	Month          string          `json:"month"`
	RedeemedOrders int64           `json:"redeemedOrders"`
	// Source is "cache" or "database".
	Source string `json:"-"`
}

type DishRanking struct {
	DishID   string          `json:"dishID"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}
