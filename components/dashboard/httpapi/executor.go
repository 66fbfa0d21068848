package httpapi

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
	"github.com/goliatone/go-chartview/components/dashboard/commands"
	"github.com/goliatone/go-chartview/components/dashboard/queries"
)

// Executor is the transport-neutral surface shared by the net/http handlers and the
// go-router adapter.
type Executor interface {
	Assign(ctx context.Context, input commands.AssignWidgetInput) error
	Remove(ctx context.Context, input commands.RemoveWidgetInput) error
	Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error
	Refresh(ctx context.Context, input commands.RefreshDatasetInput) error
	Preferences(ctx context.Context, input commands.SaveLayoutPreferencesInput) error
	Sort(ctx context.Context, input commands.SortTableInput) error
	Page(ctx context.Context, input commands.PageTableInput) error
	Layout(ctx context.Context, input queries.LayoutInput) (dashboard.Layout, error)
	Widget(ctx context.Context, input queries.WidgetInput) (dashboard.WidgetInstance, error)
	Hover(ctx context.Context, input queries.ChartHoverInput) (dashboard.ChartHover, error)
	Definitions(ctx context.Context, input queries.DefinitionsInput) ([]dashboard.WidgetDefinition, error)
}

// CommandExecutor adapts go-command commanders and queriers to Executor.
type CommandExecutor struct {
	AssignCommand      gocommand.Commander[commands.AssignWidgetInput]
	RemoveCommand      gocommand.Commander[commands.RemoveWidgetInput]
	ReorderCommand     gocommand.Commander[commands.ReorderWidgetsInput]
	RefreshCommand     gocommand.Commander[commands.RefreshDatasetInput]
	PreferencesCommand gocommand.Commander[commands.SaveLayoutPreferencesInput]
	SortCommand        gocommand.Commander[commands.SortTableInput]
	PageCommand        gocommand.Commander[commands.PageTableInput]
	LayoutQuery        gocommand.Querier[queries.LayoutInput, dashboard.Layout]
	WidgetQuery        gocommand.Querier[queries.WidgetInput, dashboard.WidgetInstance]
	HoverQuery         gocommand.Querier[queries.ChartHoverInput, dashboard.ChartHover]
	DefinitionsQuery   gocommand.Querier[queries.DefinitionsInput, []dashboard.WidgetDefinition]
}

var _ Executor = (*CommandExecutor)(nil)

// NewCommandExecutor wires every command and query against the service.
func NewCommandExecutor(service *dashboard.Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		AssignCommand:      commands.NewAssignWidgetCommand(service, telemetry),
		RemoveCommand:      commands.NewRemoveWidgetCommand(service, telemetry),
		ReorderCommand:     commands.NewReorderWidgetsCommand(service, telemetry),
		RefreshCommand:     commands.NewRefreshDatasetCommand(service, telemetry),
		PreferencesCommand: commands.NewSaveLayoutPreferencesCommand(service, telemetry),
		SortCommand:        commands.NewSortTableCommand(service, telemetry),
		PageCommand:        commands.NewPageTableCommand(service, telemetry),
		LayoutQuery:        queries.NewLayoutQuery(service),
		WidgetQuery:        queries.NewWidgetQuery(service),
		HoverQuery:         queries.NewChartHoverQuery(service),
		DefinitionsQuery:   queries.NewDefinitionsQuery(service.Registry()),
	}
}

func (e *CommandExecutor) Assign(ctx context.Context, input commands.AssignWidgetInput) error {
	return e.AssignCommand.Execute(ctx, input)
}

func (e *CommandExecutor) Remove(ctx context.Context, input commands.RemoveWidgetInput) error {
	return e.RemoveCommand.Execute(ctx, input)
}

func (e *CommandExecutor) Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error {
	return e.ReorderCommand.Execute(ctx, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshDatasetInput) error {
	return e.RefreshCommand.Execute(ctx, input)
}

func (e *CommandExecutor) Preferences(ctx context.Context, input commands.SaveLayoutPreferencesInput) error {
	return e.PreferencesCommand.Execute(ctx, input)
}

func (e *CommandExecutor) Sort(ctx context.Context, input commands.SortTableInput) error {
	return e.SortCommand.Execute(ctx, input)
}

func (e *CommandExecutor) Page(ctx context.Context, input commands.PageTableInput) error {
	return e.PageCommand.Execute(ctx, input)
}

func (e *CommandExecutor) Layout(ctx context.Context, input queries.LayoutInput) (dashboard.Layout, error) {
	return e.LayoutQuery.Query(ctx, input)
}

func (e *CommandExecutor) Widget(ctx context.Context, input queries.WidgetInput) (dashboard.WidgetInstance, error) {
	return e.WidgetQuery.Query(ctx, input)
}

func (e *CommandExecutor) Hover(ctx context.Context, input queries.ChartHoverInput) (dashboard.ChartHover, error) {
	return e.HoverQuery.Query(ctx, input)
}

func (e *CommandExecutor) Definitions(ctx context.Context, input queries.DefinitionsInput) ([]dashboard.WidgetDefinition, error) {
	return e.DefinitionsQuery.Query(ctx, input)
}
