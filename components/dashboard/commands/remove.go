package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
)

// RemoveWidgetInput names the widget instance to drop and who asked for it.
type RemoveWidgetInput struct {
	WidgetID string `json:"widget_id"`
	ActorID  string `json:"actor_id,omitempty"`
}

type removeService interface {
	RemoveWidget(ctx context.Context, widgetID string) error
}

// RemoveWidgetCommand deletes a widget from the layout. The service also drops every
// viewer's table state for it.
type RemoveWidgetCommand struct {
	service   removeService
	telemetry Telemetry
}

func NewRemoveWidgetCommand(service removeService, telemetry Telemetry) *RemoveWidgetCommand {
	return &RemoveWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveWidgetInput] = (*RemoveWidgetCommand)(nil)

func (c *RemoveWidgetCommand) Execute(ctx context.Context, msg RemoveWidgetInput) error {
	switch {
	case c.service == nil:
		return errors.New("remove command requires service")
	case strings.TrimSpace(msg.WidgetID) == "":
		return fmt.Errorf("remove command: %w", dashboard.ErrWidgetIDRequired)
	}
	id := strings.TrimSpace(msg.WidgetID)
	if err := c.service.RemoveWidget(ctx, id); err != nil {
		return err
	}
	payload := map[string]any{"widget_id": id}
	if msg.ActorID != "" {
		payload["actor_id"] = msg.ActorID
	}
	c.telemetry.Record(ctx, "dashboard.widget.remove", payload)
	return nil
}
