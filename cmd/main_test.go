package main

import (
	"testing"

	"smell-bot/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()
	applyOverrides(cfg, -1, -1, 0)
	assert.Equal(t, config.Default().Thresholds, cfg.Thresholds)
	assert.Equal(t, 4, cfg.Scanner.Workers)

	applyOverrides(cfg, 0, 7, 16)
	assert.Equal(t, 0, cfg.Thresholds.LongMethods)
	assert.Equal(t, 7, cfg.Thresholds.LongParameterMethods)
	assert.Equal(t, 16, cfg.Scanner.Workers)
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(config.App{LogLevel: "debug", LogOutputs: []string{"stderr"}}, false)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = newLogger(config.App{LogLevel: "loud"}, true)
	assert.Error(t, err)
}
