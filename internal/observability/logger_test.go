package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/reservoir-dashboard/internal/config"
)

func TestNewLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		level     string
		format    string
		debugOn   bool
		infoOn    bool
		warningOn bool
	}{
		{level: "debug", format: "json", debugOn: true, infoOn: true, warningOn: true},
		{level: "info", format: "text", debugOn: false, infoOn: true, warningOn: true},
		{level: "error", format: "json", debugOn: false, infoOn: false, warningOn: false},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			logger := NewLogger(&config.Config{LogLevel: tt.level, LogFormat: tt.format})
			require.NotNil(t, logger)

			ctx := context.Background()
			assert.Equal(t, tt.debugOn, logger.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.infoOn, logger.Enabled(ctx, slog.LevelInfo))
			assert.Equal(t, tt.warningOn, logger.Enabled(ctx, slog.LevelWarn))
			assert.Same(t, logger, slog.Default(), "installed as default")
		})
	}
}
