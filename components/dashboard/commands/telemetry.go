package commands

import (
	dashboard "github.com/goliatone/go-chartview/components/dashboard"
)

// Telemetry is the dashboard event sink. Commands record one event per successful call,
// so a LogTelemetry shared with the service logs both layers.
type Telemetry = dashboard.Telemetry

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return dashboard.TelemetryFunc(nil)
	}
	return t
}
