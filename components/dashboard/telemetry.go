package dashboard

import (
	"context"
	"log/slog"
	"sort"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// TelemetryFunc adapts a function into a Telemetry. A nil func discards events.
type TelemetryFunc func(ctx context.Context, event string, payload map[string]any)

func (f TelemetryFunc) Record(ctx context.Context, event string, payload map[string]any) {
	if f != nil {
		f(ctx, event, payload)
	}
}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return TelemetryFunc(nil)
	}
	return t
}

// LogTelemetry writes telemetry events as structured log records.
type LogTelemetry struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogTelemetry logs events through logger at level (slog.Default when nil).
func NewLogTelemetry(logger *slog.Logger, level slog.Level) *LogTelemetry {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogTelemetry{logger: logger, level: level}
}

// Record emits one log record per event with the payload as attributes.
func (t *LogTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, payload[key]))
	}
	t.logger.LogAttrs(ctx, t.level, event, attrs...)
}
