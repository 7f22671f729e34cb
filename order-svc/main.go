package main

import (
	"context"

	"receipt-tracker/account"
	"receipt-tracker/config"
	httpapi "receipt-tracker/order-svc/internal/api/http"
	"receipt-tracker/order-svc/internal/service"
	"receipt-tracker/order-svc/internal/storage"

	"go.uber.org/zap"
)

func main() {
	logger := config.MustInitLogger("order-svc")
	defer logger.Sync()

	db := config.MustInitPostgres(logger)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		logger.Fatal("failed to ensure schema", zap.Error(err))
	}

	writer := config.NewKafkaWriter(config.OrdersTopic)
	defer writer.Close()

	sellers := account.NewDirectory(db)
	catalog := service.NewCatalog(repo)
	orders := service.NewOrderService(repo, catalog, sellers, storage.NewKafkaPublisher(writer), logger)
	receipts := service.NewReceiptEncoder(service.NewQRGenerator(), sellers)

	handler := httpapi.NewHandler(catalog, orders, receipts, logger)
	httpapi.StartServer(":"+config.GetEnv("PORT", "8081"), httpapi.NewRouter(handler), logger)
}
