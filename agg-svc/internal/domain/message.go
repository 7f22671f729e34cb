package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated  = "order_created"
	EventOrderRedeemed = "order_redeemed"
)

// KafkaMessage is the union of the events written to the orders topic by
// order-svc and scan-svc.
type KafkaMessage struct {
	Type         string          `json:"type"`
	OrderID      string          `json:"order_id"`
	RestaurantID string          `json:"restaurant_id"`
	ScanID       string          `json:"scan_id,omitempty"`
	ClientID     string          `json:"client_id,omitempty"`
	Total        decimal.Decimal `json:"total"`
	Timestamp    time.Time       `json:"timestamp"`
}

// SellerCounters is the snapshot mirrored into the seller:{id}:stats hash.
type SellerCounters struct {
	TotalOrders    int64
	TotalRevenue   decimal.Decimal
	MonthlyOrders  int64
	MonthlyRevenue decimal.Decimal
	Month          time.Time
	RedeemedOrders int64
}
