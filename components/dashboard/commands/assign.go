package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
)

// AssignWidgetInput places a widget in an area. Output, when set, receives the stored
// instance (with schema defaults applied).
type AssignWidgetInput struct {
	Request dashboard.AddWidgetRequest `json:"request"`
	Output  *dashboard.WidgetInstance  `json:"-"`
}

type assignService interface {
	AddWidget(ctx context.Context, req dashboard.AddWidgetRequest) (dashboard.WidgetInstance, error)
}

// AssignWidgetCommand adds a chart, table or pie widget to the layout.
type AssignWidgetCommand struct {
	service   assignService
	telemetry Telemetry
}

func NewAssignWidgetCommand(service assignService, telemetry Telemetry) *AssignWidgetCommand {
	return &AssignWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AssignWidgetInput] = (*AssignWidgetCommand)(nil)

func (c *AssignWidgetCommand) Execute(ctx context.Context, msg AssignWidgetInput) error {
	if c.service == nil {
		return errors.New("assign command requires service")
	}
	inst, err := c.service.AddWidget(ctx, msg.Request)
	if err != nil {
		return err
	}
	if msg.Output != nil {
		*msg.Output = inst
	}
	payload := map[string]any{
		"definition_id": inst.DefinitionID,
		"area_code":     inst.AreaCode,
		"widget_id":     inst.ID,
	}
	if dataset, ok := inst.Configuration["dataset"].(string); ok {
		payload["dataset"] = dataset
	}
	c.telemetry.Record(ctx, "dashboard.widget.assign", payload)
	return nil
}
