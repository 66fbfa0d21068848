package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogTelemetryWritesStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	telemetry := NewLogTelemetry(logger, slog.LevelInfo)

	telemetry.Record(context.Background(), "dashboard.dataset.refresh", map[string]any{
		"dataset": "default",
		"widgets": 3,
	})

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "dashboard.dataset.refresh", record["msg"])
	assert.Equal(t, "default", record["dataset"])
	assert.Equal(t, 3.0, record["widgets"])
}

func TestLogTelemetryRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	NewLogTelemetry(logger, slog.LevelDebug).Record(context.Background(), "dashboard.widget.render", nil)
	assert.Empty(t, buf.String())
}

func TestNoopTelemetryDefault(t *testing.T) {
	telemetry := normalizeTelemetry(nil)
	assert.NotPanics(t, func() {
		telemetry.Record(context.Background(), "dashboard.test", nil)
	})
}
