package main

import (
	"context"
	"time"

	"receipt-tracker/account"
	"receipt-tracker/config"
	httpapi "receipt-tracker/scan-svc/internal/api/http"
	"receipt-tracker/scan-svc/internal/service"
	"receipt-tracker/scan-svc/internal/storage"

	"go.uber.org/zap"
)

func main() {
	logger := config.MustInitLogger("scan-svc")
	defer logger.Sync()

	db := config.MustInitPostgres(logger)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		logger.Fatal("failed to ensure schema", zap.Error(err))
	}

	rdb := config.MustInitRedis(logger)
	defer rdb.Close()

	markerTTL := storage.DefaultMarkerTTL
	if raw := config.GetEnv("REDEEM_MARKER_TTL", ""); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			logger.Fatal("invalid REDEEM_MARKER_TTL", zap.String("value", raw), zap.Error(err))
		}
		markerTTL = ttl
	}

	writer := config.NewKafkaWriter(config.OrdersTopic)
	defer writer.Close()

	var consumers service.ConsumerDirectory
	if config.GetEnv("VALIDATE_CLIENTS", "false") == "true" {
		consumers = account.NewDirectory(db)
	}

	ledger := service.NewLedger(
		repo,
		storage.NewRedisCache(rdb, markerTTL),
		storage.NewKafkaPublisher(writer),
		consumers,
		logger,
	)

	handler := httpapi.NewHandler(ledger, logger)
	httpapi.StartServer(":"+config.GetEnv("PORT", "8082"), httpapi.NewRouter(handler), logger)
}
