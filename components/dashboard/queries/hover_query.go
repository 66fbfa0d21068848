package queries

import (
	"context"
	"fmt"
	"math"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
)

// ChartHoverInput is a pointer position over a chart widget, in viewport pixels.
type ChartHoverInput struct {
	Viewer   dashboard.ViewerContext
	WidgetID string
	X        float64
}

type hoverService interface {
	Hover(ctx context.Context, viewer dashboard.ViewerContext, widgetID string, pointerX float64) (dashboard.ChartHover, error)
}

// ChartHoverQuery resolves the tooltip point for a pointer position.
type ChartHoverQuery struct {
	service hoverService
}

// NewChartHoverQuery builds the query.
func NewChartHoverQuery(service hoverService) *ChartHoverQuery {
	return &ChartHoverQuery{service: service}
}

var _ gocommand.Querier[ChartHoverInput, dashboard.ChartHover] = (*ChartHoverQuery)(nil)

// Query returns the nearest point to input.X.
func (q *ChartHoverQuery) Query(ctx context.Context, input ChartHoverInput) (dashboard.ChartHover, error) {
	if input.WidgetID == "" {
		return dashboard.ChartHover{}, fmt.Errorf("hover query: %w", dashboard.ErrWidgetIDRequired)
	}
	if math.IsNaN(input.X) || math.IsInf(input.X, 0) {
		return dashboard.ChartHover{}, fmt.Errorf("hover query: %w", dashboard.ErrInvalidPointer)
	}
	return q.service.Hover(ctx, input.Viewer, input.WidgetID, input.X)
}
