package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ali-aktas/HocaLingo-sub002/internal/config"
)

func TestSetup(t *testing.T) {
	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
			log, err := Setup(config.ServerConfig{LogLevel: level})
			require.NoError(t, err, "level %q", level)
			assert.NotNil(t, log)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := Setup(config.ServerConfig{LogLevel: "verbose"})
		assert.Error(t, err)
	})
}

func TestContextPropagation(t *testing.T) {
	base := slog.Default()
	scoped := base.With(slog.String("trace_id", "abc123"))

	ctx := WithContext(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx))
	assert.Same(t, scoped, FromContextOrDefault(ctx, base))

	empty := context.Background()
	assert.Same(t, base, FromContextOrDefault(empty, base))
	assert.NotNil(t, FromContext(empty))
}
