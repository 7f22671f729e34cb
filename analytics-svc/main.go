package main

import (
	httpapi "receipt-tracker/analytics-svc/internal/api/http"
	"receipt-tracker/analytics-svc/internal/service"
	"receipt-tracker/config"
)

func main() {
	logger := config.MustInitLogger("analytics-svc")
	defer logger.Sync()

	db := config.MustInitPostgres(logger)
	defer db.Close()

	rdb := config.MustInitRedis(logger)
	defer rdb.Close()

	handler := httpapi.NewHandler(service.NewStatsService(db, rdb, logger), logger)
	httpapi.StartServer(":"+config.GetEnv("PORT", "8083"), httpapi.NewRouter(handler), logger)
}
