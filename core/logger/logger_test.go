package logger_test

import (
	"net/http/httptest"
	"testing"

	"allowlist-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		cfg   logger.Config
		level zapcore.Level
	}{
		{"DebugConsole", logger.Config{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{"InfoJSON", logger.Config{Level: "info", Format: "json"}, zapcore.InfoLevel},
		{"WarnJSON", logger.Config{Level: "warn", Format: "json"}, zapcore.WarnLevel},
		{"EmptyLevel", logger.Config{}, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.New(&tt.cfg)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.level))
			assert.False(t, l.Core().Enabled(tt.level-1))
		})
	}
}

func TestWithRayID(t *testing.T) {
	app := fiber.New()
	var withID, withoutID *zap.Logger
	base := zap.NewNop()

	app.Get("/with", func(c *fiber.Ctx) error {
		c.Locals("ray_id", "abc")
		withID = logger.WithRayID(base, c)
		return nil
	})
	app.Get("/without", func(c *fiber.Ctx) error {
		withoutID = logger.WithRayID(base, c)
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/with", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/without", nil))
	require.NoError(t, err)

	assert.NotSame(t, base, withID)
	assert.Same(t, base, withoutID)
}
