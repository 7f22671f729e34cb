package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"receipt-tracker/agg-svc/internal/service"
	"receipt-tracker/agg-svc/internal/storage"
	"receipt-tracker/config"

	"go.uber.org/zap"
)

func main() {
	logger := config.MustInitLogger("agg-svc")
	defer logger.Sync()

	db := config.MustInitPostgres(logger)
	defer db.Close()

	rdb := config.MustInitRedis(logger)
	defer rdb.Close()

	ttl := storage.DefaultMirrorTTL
	if raw := config.GetEnv("STATS_MIRROR_TTL", ""); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			logger.Fatal("invalid STATS_MIRROR_TTL", zap.String("value", raw), zap.Error(err))
		}
		ttl = parsed
	}

	reader := config.NewKafkaReader(config.OrdersTopic, "agg-svc-consumer")
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := service.NewConsumer(reader, storage.NewStore(db, rdb, ttl), logger)
	consumer.Start(ctx)
}
