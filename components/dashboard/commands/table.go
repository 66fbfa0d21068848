package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
)

type tableService interface {
	SortTable(ctx context.Context, viewer dashboard.ViewerContext, widgetID, column string) (dashboard.WidgetInstance, error)
	PageTable(ctx context.Context, viewer dashboard.ViewerContext, widgetID string, move dashboard.PageMove) (dashboard.WidgetInstance, error)
}

// SortTableInput is a header click on a table widget. Output, when set, receives the
// re-rendered widget.
type SortTableInput struct {
	Viewer   dashboard.ViewerContext   `json:"viewer"`
	WidgetID string                    `json:"widget_id"`
	Column   string                    `json:"column"`
	Output   *dashboard.WidgetInstance `json:"-"`
}

// SortTableCommand advances the sort state of a table column for one viewer.
type SortTableCommand struct {
	service   tableService
	telemetry Telemetry
}

// NewSortTableCommand creates the command.
func NewSortTableCommand(service tableService, telemetry Telemetry) *SortTableCommand {
	return &SortTableCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SortTableInput] = (*SortTableCommand)(nil)

// Execute applies the click.
func (c *SortTableCommand) Execute(ctx context.Context, msg SortTableInput) error {
	if c.service == nil {
		return errors.New("sort command requires service")
	}
	if msg.WidgetID == "" {
		return fmt.Errorf("sort command: %w", dashboard.ErrWidgetIDRequired)
	}
	if msg.Column == "" {
		return fmt.Errorf("sort command: %w", dashboard.ErrUnknownColumn)
	}
	inst, err := c.service.SortTable(ctx, msg.Viewer, msg.WidgetID, msg.Column)
	if err != nil {
		return err
	}
	if msg.Output != nil {
		*msg.Output = inst
	}
	c.telemetry.Record(ctx, "dashboard.table.sorted", map[string]any{
		"widget_id": msg.WidgetID,
		"column":    msg.Column,
	})
	return nil
}

// PageTableInput moves a table widget to another page.
type PageTableInput struct {
	Viewer   dashboard.ViewerContext   `json:"viewer"`
	WidgetID string                    `json:"widget_id"`
	Move     dashboard.PageMove        `json:"move"`
	Output   *dashboard.WidgetInstance `json:"-"`
}

// PageTableCommand navigates a table widget for one viewer.
type PageTableCommand struct {
	service   tableService
	telemetry Telemetry
}

// NewPageTableCommand creates the command.
func NewPageTableCommand(service tableService, telemetry Telemetry) *PageTableCommand {
	return &PageTableCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[PageTableInput] = (*PageTableCommand)(nil)

// Execute applies the page move.
func (c *PageTableCommand) Execute(ctx context.Context, msg PageTableInput) error {
	if c.service == nil {
		return errors.New("page command requires service")
	}
	if msg.WidgetID == "" {
		return fmt.Errorf("page command: %w", dashboard.ErrWidgetIDRequired)
	}
	inst, err := c.service.PageTable(ctx, msg.Viewer, msg.WidgetID, msg.Move)
	if err != nil {
		return err
	}
	if msg.Output != nil {
		*msg.Output = inst
	}
	c.telemetry.Record(ctx, "dashboard.table.paged", map[string]any{
		"widget_id": msg.WidgetID,
		"action":    msg.Move.Action,
	})
	return nil
}
