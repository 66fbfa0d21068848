package queries

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
)

// WidgetInput identifies a widget rendered for a viewer.
type WidgetInput struct {
	Viewer   dashboard.ViewerContext
	WidgetID string
}

type widgetService interface {
	RenderWidget(ctx context.Context, viewer dashboard.ViewerContext, widgetID string) (dashboard.WidgetInstance, error)
}

// WidgetQuery resolves a single widget with its provider payload.
type WidgetQuery struct {
	service widgetService
}

// NewWidgetQuery builds the query.
func NewWidgetQuery(service widgetService) *WidgetQuery {
	return &WidgetQuery{service: service}
}

var _ gocommand.Querier[WidgetInput, dashboard.WidgetInstance] = (*WidgetQuery)(nil)

// Query renders the widget for the viewer.
func (q *WidgetQuery) Query(ctx context.Context, input WidgetInput) (dashboard.WidgetInstance, error) {
	if input.WidgetID == "" {
		return dashboard.WidgetInstance{}, fmt.Errorf("widget query: %w", dashboard.ErrWidgetIDRequired)
	}
	return q.service.RenderWidget(ctx, input.Viewer, input.WidgetID)
}
