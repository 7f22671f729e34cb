package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"receipt-tracker/account"
	"receipt-tracker/apperr"
	"receipt-tracker/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const dataURLPrefix = "data:image/png;base64,"

type ReceiptEncoder struct {
	qr      QRGenerator
	sellers SellerDirectory
	now     func() time.Time
}

func NewReceiptEncoder(qr QRGenerator, sellers SellerDirectory) *ReceiptEncoder {
	return &ReceiptEncoder{qr: qr, sellers: sellers, now: time.Now}
}

func (e *ReceiptEncoder) WithClock(now func() time.Time) *ReceiptEncoder {
	e.now = now
	return e
}

// Encode renders the order as a QR code. Output depends only on the order
// and seller name, apart from the payload date.
func (e *ReceiptEncoder) Encode(order *domain.Order, sellerName string) (*domain.Receipt, error) {
	if order == nil || len(order.Dishes) == 0 {
		return nil, fmt.Errorf("%w: order has no line items", apperr.ErrInvalidState)
	}

	sum := decimal.Zero
	for _, item := range order.Dishes {
		sum = sum.Add(item.LineTotal())
	}
	if !sum.Equal(order.Total) {
		return nil, fmt.Errorf("%w: order %s total %s does not match items %s",
			apperr.ErrInvalidState, order.ID, order.Total.String(), sum.String())
	}

	payload := domain.ReceiptPayload{
		OrderID:        order.ID,
		RestaurantID:   order.RestaurantID,
		RestaurantName: sellerName,
		Dishes:         append([]domain.OrderItem(nil), order.Dishes...),
		Total:          order.Total,
		Date:           e.now().UTC(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal receipt payload: %w", err)
	}

	png, err := e.qr.Generate(string(data))
	if err != nil {
		return nil, fmt.Errorf("render receipt qr code: %w", err)
	}

	return &domain.Receipt{
		Payload: payload,
		PNG:     png,
		DataURL: dataURLPrefix + base64.StdEncoding.EncodeToString(png),
	}, nil
}

// ForOrder encodes a persisted order, resolving the seller name when the
// order does not carry it.
func (e *ReceiptEncoder) ForOrder(ctx context.Context, order *domain.Order) (*domain.Receipt, error) {
	if order == nil {
		return nil, fmt.Errorf("%w: order is required", apperr.ErrInvalidState)
	}
	name := order.RestaurantName
	if name == "" && e.sellers != nil {
		seller, err := e.sellers.Lookup(ctx, account.SellerRef(order.RestaurantID))
		if err != nil {
			return nil, err
		}
		name = seller.Name
	}
	return e.Encode(order, name)
}

// DecodePayload parses the text read from a receipt QR code.
func DecodePayload(data []byte) (domain.ReceiptPayload, error) {
	var payload domain.ReceiptPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.ReceiptPayload{}, fmt.Errorf("%w: malformed receipt payload: %v", apperr.ErrInvalidRequest, err)
	}
	if payload.OrderID == "" || payload.RestaurantID == "" {
		return domain.ReceiptPayload{}, fmt.Errorf("%w: receipt payload is missing orderID or restaurantID", apperr.ErrInvalidRequest)
	}
	return payload, nil
}
