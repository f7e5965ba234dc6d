package logger_test

import (
	"testing"

	"github.com/muhammadheryan/mfg-stock/utils/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	require.NoError(t, logger.Init("production", "warn"))
	assert.False(t, logger.Get().Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Get().Core().Enabled(zap.WarnLevel))

	require.NoError(t, logger.Init("development", ""))
	assert.True(t, logger.Get().Core().Enabled(zap.DebugLevel))
}

func TestSetAndWith(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(nil) })

	logger.Error("[Reserve] failed", zap.Uint64("product_id", 3))
	logger.With(zap.String("component", "worker")).Info("started")

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, "[Reserve] failed", entries[0].Message)
	assert.Equal(t, "worker", entries[1].ContextMap()["component"])
}
