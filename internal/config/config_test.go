package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "KAFKA_BROKERS", "FULFILLMENT_WORKERS", "FULFILLMENT_STAGE_DELAY"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, ":3001", cfg.HTTPAddr)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 8, cfg.FulfillmentWorkers)
	assert.Equal(t, 2*time.Second, cfg.StageDelay)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092 ,,c:9092")
	t.Setenv("FULFILLMENT_WORKERS", "4")
	t.Setenv("FULFILLMENT_STAGE_DELAY", "150ms")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, []string{"a:9092", "b:9092", "c:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 4, cfg.FulfillmentWorkers)
	assert.Equal(t, 150*time.Millisecond, cfg.StageDelay)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("FULFILLMENT_WORKERS", "zero")
	t.Setenv("FULFILLMENT_STAGE_DELAY", "soon")

	cfg := Load()
	assert.Equal(t, 8, cfg.FulfillmentWorkers)
	assert.Equal(t, 2*time.Second, cfg.StageDelay)
}
