package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
)

// LayoutInput resolves the viewer's layout. When Areas is set only those areas are
// returned, in no particular order.
type LayoutInput struct {
	Viewer dashboard.ViewerContext `json:"viewer"`
	Areas  []string                `json:"areas,omitempty"`
}

type layoutService interface {
	ConfigureLayout(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.Layout, error)
}

// LayoutQuery returns widgets with provider payloads attached (chart paths, table pages
// and pie shares under Metadata["data"]).
type LayoutQuery struct {
	service layoutService
}

func NewLayoutQuery(service layoutService) *LayoutQuery {
	return &LayoutQuery{service: service}
}

var _ gocommand.Querier[LayoutInput, dashboard.Layout] = (*LayoutQuery)(nil)

func (q *LayoutQuery) Query(ctx context.Context, msg LayoutInput) (dashboard.Layout, error) {
	layout, err := q.service.ConfigureLayout(ctx, msg.Viewer)
	if err != nil || len(msg.Areas) == 0 {
		return layout, err
	}
	filtered := dashboard.Layout{Areas: make(map[string][]dashboard.WidgetInstance, len(msg.Areas))}
	for _, area := range msg.Areas {
		if widgets, ok := layout.Areas[area]; ok {
			filtered.Areas[area] = widgets
		}
	}
	return filtered, nil
}
