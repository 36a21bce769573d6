package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leaguehub/server/internal/shared/config"
	"github.com/leaguehub/server/internal/utils/requestctx"
)

func TestNew(t *testing.T) {
	t.Run("creates with default config", func(t *testing.T) {
		l := New(nil)
		assert.NotNil(t, l)
	})

	t.Run("writes json", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := New(&Config{Level: "debug", Format: "json", Output: buf})

		l.Info("test message", zap.String("team_id", "t1"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "test message", entry["msg"])
		assert.Equal(t, "t1", entry["team_id"])
		assert.Equal(t, "info", entry["level"])
	})

	t.Run("writes console format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := New(&Config{Level: "info", Format: "console", Output: buf})

		l.Info("test message")
		output := buf.String()
		assert.Contains(t, output, "test message")
		assert.False(t, strings.HasPrefix(output, "{"))
	})
}

func TestNew_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(&Config{Level: "warn", Format: "json", Output: buf})

	l.Info("dropped")
	assert.Empty(t, buf.String())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(&config.LogConfig{Level: "debug", Format: "console"})
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.NotNil(t, cfg.Output)
}

func TestFromContext(t *testing.T) {
	t.Run("tags request fields", func(t *testing.T) {
		var buf bytes.Buffer
		base := New(&Config{Level: "info", Format: "json", Output: &buf})
		ctx := requestctx.WithRequestID(context.Background(), "req-7")

		FromContext(ctx, base).Info("handled")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "req-7", entry["request_id"])
	})

	t.Run("falls back untouched", func(t *testing.T) {
		fallback := New(nil)
		assert.Same(t, fallback, FromContext(context.Background(), fallback))
		assert.NotNil(t, FromContext(context.Background(), nil))
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "debug"},
		{"DEBUG", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"unknown", "info"}, // default
		{"", "info"},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input).String())
		})
	}
}
