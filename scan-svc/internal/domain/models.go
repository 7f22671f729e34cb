package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ScanItem is a line item copied from the scanned receipt.
type ScanItem struct {
	DishID   string          `json:"dishID"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Scan records that a consumer redeemed an order's receipt. A consumer can
// hold at most one scan per order.
type Scan struct {
	ID             string          `json:"scanId"`
	ClientID       string          `json:"clientId"`
	OrderID        string          `json:"orderId"`
	RestaurantID   string          `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
	Total          decimal.Decimal `json:"total"`
	Items          []ScanItem      `json:"items"`
	Date           time.Time       `json:"date"`
}

type RedeemRequest struct {
	ClientID       string          `json:"clientId"`
	OrderID        string          `json:"orderId"`
	RestaurantID   string          `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
	Total          decimal.Decimal `json:"total"`
	Items          []ScanItem      `json:"items"`
	Date           *time.Time      `json:"date,omitempty"`
}

type RedeemResponse struct {
	Message string `json:"message"`
	ScanID  string `json:"scanId"`
}

type RedeemedResponse struct {
	Redeemed bool `json:"redeemed"`
}

type DashboardStats struct {
	TotalScans   int             `json:"totalScans"`
	TotalSpent   decimal.Decimal `json:"totalSpent"`
	MonthlySpent decimal.Decimal `json:"monthlySpent"`
}

type Dashboard struct {
	Stats       DashboardStats `json:"stats"`
	RecentScans []Scan         `json:"recentScans"`
}

const EventOrderRedeemed = "order_redeemed"

// ScanEvent shares the orders topic with order-svc's order_created events.
type ScanEvent struct {
	Type         string          `json:"type"`
	ScanID       string          `json:"scan_id"`
	ClientID     string          `json:"client_id"`
	OrderID      string          `json:"order_id"`
	RestaurantID string          `json:"restaurant_id"`
	Total        decimal.Decimal `json:"total"`
	Timestamp    time.Time       `json:"timestamp"`
}
