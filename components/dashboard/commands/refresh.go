package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
)

// RefreshWidgetInput emits refresh notifications for a widget instance.
type RefreshWidgetInput struct {
	Event dashboard.WidgetEvent
}

type refreshNotifier interface {
	NotifyWidgetUpdated(ctx context.Context, event dashboard.WidgetEvent) error
}

// RefreshWidgetCommand triggers refresh hooks without forcing transports.
type RefreshWidgetCommand struct {
	service   refreshNotifier
	telemetry Telemetry
}

// NewRefreshWidgetCommand creates the command.
func NewRefreshWidgetCommand(service refreshNotifier, telemetry Telemetry) *RefreshWidgetCommand {
	return &RefreshWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshWidgetInput] = (*RefreshWidgetCommand)(nil)

// Execute notifies the dashboard service's refresh hooks.
func (c *RefreshWidgetCommand) Execute(ctx context.Context, msg RefreshWidgetInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if err := c.service.NotifyWidgetUpdated(ctx, msg.Event); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.widget.refresh", map[string]any{
		"area_code": msg.Event.AreaCode,
		"widget_id": msg.Event.Instance.ID,
	})
	return nil
}

// RefreshDatasetInput names the dataset to reload. Output, when set, receives the
// applied snapshot.
type RefreshDatasetInput struct {
	Dataset string              `json:"dataset"`
	Output  *dashboard.Snapshot `json:"-"`
}

type datasetRefresher interface {
	RefreshDataset(ctx context.Context, dataset string) (dashboard.Snapshot, error)
}

// RefreshDatasetCommand reloads a dataset. A refresh overtaken by a newer one is not an
// error for the caller: the newer snapshot wins and the command reports success.
type RefreshDatasetCommand struct {
	service   datasetRefresher
	telemetry Telemetry
}

// NewRefreshDatasetCommand creates the command.
func NewRefreshDatasetCommand(service datasetRefresher, telemetry Telemetry) *RefreshDatasetCommand {
	return &RefreshDatasetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshDatasetInput] = (*RefreshDatasetCommand)(nil)

// Execute refreshes the dataset.
func (c *RefreshDatasetCommand) Execute(ctx context.Context, msg RefreshDatasetInput) error {
	if c.service == nil {
		return errors.New("refresh dataset command requires service")
	}
	snapshot, err := c.service.RefreshDataset(ctx, msg.Dataset)
	if errors.Is(err, dashboard.ErrStaleSnapshot) {
		c.telemetry.Record(ctx, "dashboard.dataset.superseded", map[string]any{"dataset": msg.Dataset})
		return nil
	}
	if err != nil {
		return err
	}
	if msg.Output != nil {
		*msg.Output = snapshot
	}
	c.telemetry.Record(ctx, "dashboard.dataset.refreshed", map[string]any{
		"dataset": msg.Dataset,
		"version": snapshot.Version,
	})
	return nil
}
