package safeaction_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/safeaction"
	"github.com/dmitrymomot/safeaction/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SAFEACTION_NAME", "orders")
	t.Setenv("SAFEACTION_LOG_FORMAT", "text")
	t.Setenv("SAFEACTION_LOG_LEVEL", "debug")
	t.Setenv("SAFEACTION_INCLUDE_INPUT_IN_ERRORS", "true")
	config.Reset()
	t.Cleanup(config.Reset)

	cfg, err := safeaction.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "orders", cfg.Name)
	assert.True(t, cfg.LogErrors)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.IncludeInputInError)

	b := safeaction.New(safeaction.WithConfig(cfg))
	opts := b.Options()
	assert.Equal(t, "orders", opts.Name)
	assert.True(t, opts.IncludeInputInErrorDetails)
	assert.False(t, opts.DisableLogging)
	require.NotNil(t, opts.Logger)
	assert.True(t, opts.Logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	t.Setenv("SAFEACTION_LOG_FORMAT", "xml")
	config.Reset()
	t.Cleanup(config.Reset)

	_, err := safeaction.LoadConfig()
	assert.Error(t, err)
}

func TestWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("logging disabled", func(t *testing.T) {
		t.Parallel()

		b := safeaction.New(safeaction.WithConfig(safeaction.Config{LogErrors: false}))
		assert.True(t, b.Options().DisableLogging)
	})

	t.Run("empty name keeps the current name", func(t *testing.T) {
		t.Parallel()

		b := safeaction.New(
			safeaction.WithName("kept"),
			safeaction.WithConfig(safeaction.Config{LogErrors: true}),
		)
		assert.Equal(t, "kept", b.Options().Name)
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			safeaction.New(safeaction.WithConfig(safeaction.Config{LogErrors: true, LogFormat: "xml"}))
		})
	})
}
