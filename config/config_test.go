package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("RECEIPT_TRACKER_TEST_KEY", "value")

	assert.Equal(t, "value", GetEnv("RECEIPT_TRACKER_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("RECEIPT_TRACKER_MISSING_KEY", "fallback"))
}

func TestPostgresDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "receipts")

	assert.Equal(t, "host=db port=5433 user=app password=secret dbname=receipts sslmode=disable", PostgresDSN())
}

func TestNewKafkaWriter(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "kafka:9092")

	w := NewKafkaWriter(OrdersTopic)
	defer w.Close()

	assert.Equal(t, OrdersTopic, w.Topic)
	assert.Equal(t, "kafka:9092", w.Addr.String())
}
