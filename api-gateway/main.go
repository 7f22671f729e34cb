package main

import (
	"net/http"
	"time"

	"receipt-tracker/api-gateway/internal/gateway"
	"receipt-tracker/config"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	logger := config.MustInitLogger("api-gateway")
	defer logger.Sync()

	cfg := gateway.Config{
		OrderSvcURL:     config.GetEnv("ORDER_SVC_URL", "http://localhost:8081"),
		ScanSvcURL:      config.GetEnv("SCAN_SVC_URL", "http://localhost:8082"),
		AnalyticsSvcURL: config.GetEnv("ANALYTICS_SVC_URL", "http://localhost:8083"),
	}

	gw := gateway.NewGateway(cfg, &http.Client{Timeout: 30 * time.Second}, logger)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	handler := c.Handler(gw.SetupRoutes())

	addr := ":" + config.GetEnv("PORT", "8080")
	logger.Info("api gateway starting", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("api gateway stopped", zap.Error(err))
	}
}
