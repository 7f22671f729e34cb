package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Totals travel as JSON numbers in the receipt payload.
	decimal.MarshalJSONWithoutQuotes = true
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Dish struct {
	ID           string          `json:"dishID"`
	RestaurantID string          `json:"restaurantID"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	Price        decimal.Decimal `json:"cost"`
	IsAvailable  bool            `json:"isAvailable"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type OrderItemRequest struct {
	DishID   string `json:"dishID"`
	Quantity int    `json:"quantity"`
}

type CreateOrderRequest struct {
	RestaurantID string             `json:"restaurantID"`
	Dishes       []OrderItemRequest `json:"dishes"`
}

// OrderItem carries the dish name and price as they were when the order was placed.
type OrderItem struct {
	DishID   string          `json:"dishID"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID             string          `json:"orderID"`
	RestaurantID   string          `json:"restaurantID"`
	RestaurantName string          `json:"restaurantName,omitempty"`
	Dishes         []OrderItem     `json:"dishes"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
	Status         OrderStatus     `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ReceiptPayload is the JSON embedded in the QR code and read back by the
// consumer app.
type ReceiptPayload struct {
	OrderID        string          `json:"orderID"`
	RestaurantID   string          `json:"restaurantID"`
	RestaurantName string          `json:"restaurantName"`
	Dishes         []OrderItem     `json:"dishes"`
	Total          decimal.Decimal `json:"total"`
	Date           time.Time       `json:"date"`
}

// UnmarshalJSON also accepts the line items under "items".
func (p *ReceiptPayload) UnmarshalJSON(data []byte) error {
	type payloadAlias ReceiptPayload
	aux := struct {
		*payloadAlias
		Items []OrderItem `json:"items"`
	}{payloadAlias: (*payloadAlias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(p.Dishes) == 0 && len(aux.Items) > 0 {
		p.Dishes = aux.Items
	}
	return nil
}

type Receipt struct {
	Payload ReceiptPayload `json:"payload"`
	PNG     []byte         `json:"-"`
	DataURL string         `json:"qrCode"`
}

type CreateOrderResponse struct {
	Message string         `json:"message"`
	Order   *Order         `json:"order"`
	Payload ReceiptPayload `json:"payload"`
	QRCode  string         `json:"qrCode"`
}

type UpdateStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// OrderEvent is published to Kafka after an order commits.
type OrderEvent struct {
	Type         string          `json:"type"`
	OrderID      string          `json:"order_id"`
	RestaurantID string          `json:"restaurant_id"`
	Total        decimal.Decimal `json:"total"`
	Timestamp    time.Time       `json:"timestamp"`
}

const EventOrderCreated = "order_created"
