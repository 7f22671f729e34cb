package service

import (
	"context"
	"time"

	"receipt-tracker/agg-svc/internal/domain"
	"receipt-tracker/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	LoadCounters(ctx context.Context, restaurantID string, now time.Time) (domain.SellerCounters, error)
	MirrorCounters(ctx context.Context, restaurantID string, counters domain.SellerCounters) error
	IncrementRedeemed(ctx context.Context, restaurantID string) error
	// IncrementMirroredRedeemed reports false when there is no mirror to update.
	IncrementMirroredRedeemed(ctx context.Context, restaurantID string) (bool, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	Process(ctx context.Context, msg domain.KafkaMessage) error
}

var _ StoreInterface = (*storage.Store)(nil)
var _ MessageReader = (*kafka.Reader)(nil)
var _ ConsumerInterface = (*Consumer)(nil)
