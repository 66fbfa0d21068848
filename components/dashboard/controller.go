package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const defaultDashboardTemplate = "dashboard.html"

var widgetTemplates = map[string]string{
	WidgetLineChart:      "widgets/line_chart.html",
	WidgetDataTable:      "widgets/data_table.html",
	WidgetPieShare:       "widgets/pie_share.html",
	WidgetMetricCards:    "widgets/metric_cards.html",
	WidgetGoals:          "widgets/goals.html",
	WidgetQuickStats:     "widgets/quick_stats.html",
	WidgetRecentActivity: "widgets/recent_activity.html",
	WidgetEChartLine:     "widgets/echart.html",
	WidgetEChartBar:      "widgets/echart.html",
	WidgetEChartPie:      "widgets/echart.html",
}

// LayoutResolver resolves the dashboard layout for a viewer.
type LayoutResolver interface {
	ConfigureLayout(ctx context.Context, viewer ViewerContext) (Layout, error)
}

// ControllerOptions wires the controller collaborators.
type ControllerOptions struct {
	Service  LayoutResolver
	Renderer Renderer
	Template string
	Areas    []string
	Theme    ThemeResolver
}

// Controller renders the dashboard page and widget fragments.
type Controller struct {
	opts ControllerOptions
}

// NewController builds a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = defaultDashboardTemplate
	}
	if len(opts.Areas) == 0 {
		opts.Areas = DefaultAreas()
	}
	return &Controller{opts: opts}
}

// LayoutPayload resolves the layout and shapes it for templates and JSON clients. Each
// widget carries its template name and, when a renderer is configured, its HTML.
func (c *Controller) LayoutPayload(ctx context.Context, viewer ViewerContext) (map[string]any, error) {
	if c.opts.Service == nil {
		return nil, errors.New("dashboard: controller service not configured")
	}
	layout, err := c.opts.Service.ConfigureLayout(ctx, viewer)
	if err != nil {
		return nil, err
	}
	areas := make([]map[string]any, 0, len(c.opts.Areas))
	for _, code := range c.opts.Areas {
		widgets := make([]map[string]any, 0, len(layout.Areas[code]))
		for _, inst := range layout.Areas[code] {
			widget, err := c.widgetPayload(inst)
			if err != nil {
				return nil, err
			}
			widgets = append(widgets, widget)
		}
		areas = append(areas, map[string]any{
			"code":    code,
			"slug":    areaSlug(code),
			"widgets": widgets,
		})
	}
	payload := map[string]any{
		"viewer": viewer,
		"areas":  areas,
	}
	theme := LightTheme()
	if c.opts.Theme != nil {
		theme = c.opts.Theme(viewer)
	}
	payload["theme"] = theme.payload()
	return payload, nil
}

// RenderTemplate renders the full dashboard page into out.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errors.New("dashboard: controller renderer not configured")
	}
	payload, err := c.LayoutPayload(ctx, viewer)
	if err != nil {
		return err
	}
	if _, err := c.opts.Renderer.Render(c.opts.Template, payload, out); err != nil {
		return fmt.Errorf("dashboard: render %s: %w", c.opts.Template, err)
	}
	return nil
}

// RenderWidget renders a single resolved widget instance to HTML.
func (c *Controller) RenderWidget(inst WidgetInstance) (string, error) {
	widget, err := c.widgetPayload(inst)
	if err != nil {
		return "", err
	}
	html, _ := widget["html"].(string)
	return html, nil
}

func (c *Controller) widgetPayload(inst WidgetInstance) (map[string]any, error) {
	widget := map[string]any{
		"id":         inst.ID,
		"definition": inst.DefinitionID,
		"area":       inst.AreaCode,
		"template":   widgetTemplate(inst.DefinitionID),
		"config":     inst.Configuration,
	}
	if data, ok := inst.Metadata["data"]; ok {
		widget["data"] = data
	}
	if msg, ok := inst.Metadata["error"]; ok {
		widget["error"] = msg
	}
	if c.opts.Renderer == nil {
		return widget, nil
	}
	html, err := c.opts.Renderer.Render(widget["template"].(string), widget)
	if err != nil {
		return nil, fmt.Errorf("dashboard: render widget %s: %w", inst.ID, err)
	}
	widget["html"] = html
	return widget, nil
}

func widgetTemplate(definitionID string) string {
	if name, ok := widgetTemplates[definitionID]; ok {
		return name
	}
	return "widgets/unsupported.html"
}

func areaSlug(code string) string {
	if idx := strings.LastIndex(code, "."); idx >= 0 {
		return code[idx+1:]
	}
	return code
}
