package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gocommand "github.com/goliatone/go-command"
)

// ReorderWidgetsInput lists widget ids of one area in their new order. Ids left out keep
// their relative order behind the listed ones.
type ReorderWidgetsInput struct {
	AreaCode  string   `json:"area_code"`
	WidgetIDs []string `json:"widget_ids"`
}

type reorderService interface {
	ReorderWidgets(ctx context.Context, areaCode string, widgetIDs []string) error
}

// ReorderWidgetsCommand moves widgets inside a dashboard area.
type ReorderWidgetsCommand struct {
	service   reorderService
	telemetry Telemetry
}

func NewReorderWidgetsCommand(service reorderService, telemetry Telemetry) *ReorderWidgetsCommand {
	return &ReorderWidgetsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderWidgetsInput] = (*ReorderWidgetsCommand)(nil)

func (c *ReorderWidgetsCommand) Execute(ctx context.Context, msg ReorderWidgetsInput) error {
	if c.service == nil {
		return errors.New("reorder command requires service")
	}
	ids, err := orderedIDs(msg.WidgetIDs)
	if err != nil {
		return err
	}
	area := strings.TrimSpace(msg.AreaCode)
	if err := c.service.ReorderWidgets(ctx, area, ids); err != nil {
		return err
	}
	payload := map[string]any{"area_code": area, "count": len(ids)}
	if len(ids) > 0 {
		payload["head"] = ids[0]
	}
	c.telemetry.Record(ctx, "dashboard.widget.reorder", payload)
	return nil
}

// orderedIDs trims ids and rejects repeats, which would make the target order ambiguous.
func orderedIDs(raw []string) ([]string, error) {
	ids := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("reorder command: widget %q listed twice", id)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
