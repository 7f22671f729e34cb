package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"receipt-tracker/agg-svc/internal/domain"

	"go.uber.org/zap"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Logger *zap.Logger
	Now    func() time.Time
}

func NewConsumer(reader MessageReader, store StoreInterface, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{
		Reader: reader,
		Store:  store,
		Logger: logger,
		Now:    time.Now,
	}
}

// Start reads until ctx is cancelled. Failed messages are logged and skipped.
func (c *Consumer) Start(ctx context.Context) {
	c.Logger.Info("starting aggregation consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.Logger.Info("aggregation consumer stopped")
				return
			}
			c.Logger.Error("error reading message", zap.Error(err))
			continue
		}

		var msg domain.KafkaMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			c.Logger.Warn("error unmarshaling message", zap.Int64("offset", message.Offset), zap.Error(err))
			continue
		}

		if err := c.Process(ctx, msg); err != nil {
			c.Logger.Error("error processing message",
				zap.String("type", msg.Type),
				zap.String("restaurant_id", msg.RestaurantID),
				zap.Error(err))
		}
	}
}

func (c *Consumer) Process(ctx context.Context, msg domain.KafkaMessage) error {
	if msg.RestaurantID == "" {
		return nil
	}
	switch msg.Type {
	case domain.EventOrderCreated:
		return c.refresh(ctx, msg.RestaurantID)
	case domain.EventOrderRedeemed:
		return c.recordRedemption(ctx, msg.RestaurantID)
	default:
		c.Logger.Debug("ignoring message", zap.String("type", msg.Type))
		return nil
	}
}

// refresh re-reads the committed counters instead of adding the event's
// total, so replayed events cannot inflate the mirror.
func (c *Consumer) refresh(ctx context.Context, restaurantID string) error {
	counters, err := c.Store.LoadCounters(ctx, restaurantID, c.Now())
	if err != nil {
		return fmt.Errorf("load counters: %w", err)
	}
	if err := c.Store.MirrorCounters(ctx, restaurantID, counters); err != nil {
		return fmt.Errorf("mirror counters: %w", err)
	}
	c.Logger.Debug("seller counters mirrored",
		zap.String("restaurant_id", restaurantID),
		zap.Int64("total_orders", counters.TotalOrders))
	return nil
}

func (c *Consumer) recordRedemption(ctx context.Context, restaurantID string) error {
	if err := c.Store.IncrementRedeemed(ctx, restaurantID); err != nil {
		return fmt.Errorf("increment redeemed orders: %w", err)
	}
	mirrored, err := c.Store.IncrementMirroredRedeemed(ctx, restaurantID)
	if err != nil {
		return fmt.Errorf("increment mirrored redeemed orders: %w", err)
	}
	if !mirrored {
		return c.refresh(ctx, restaurantID)
	}
	return nil
}
