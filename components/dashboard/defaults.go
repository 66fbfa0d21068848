package dashboard

import (
	"github.com/go-echarts/go-echarts/v2/types"
)

// Widget definition codes.
const (
	WidgetLineChart      = "admin.widget.line_chart"
	WidgetDataTable      = "admin.widget.data_table"
	WidgetPieShare       = "admin.widget.pie_share"
	WidgetMetricCards    = "admin.widget.metric_cards"
	WidgetGoals          = "admin.widget.goals"
	WidgetQuickStats     = "admin.widget.quick_stats"
	WidgetRecentActivity = "admin.widget.recent_activity"
	WidgetEChartLine     = "admin.widget.echart_line"
	WidgetEChartBar      = "admin.widget.echart_bar"
	WidgetEChartPie      = "admin.widget.echart_pie"
)

// Dashboard areas.
const (
	AreaMain    = "admin.dashboard.main"
	AreaSidebar = "admin.dashboard.sidebar"
	AreaFooter  = "admin.dashboard.footer"
)

var defaultAreas = []string{AreaMain, AreaSidebar, AreaFooter}

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Code:        WidgetLineChart,
		Name:        "Line Chart",
		Description: "Time series drawn as a line or filled area with hover tooltips.",
		Category:    "charts",
		Schema:      lineChartSchema(),
	},
	{
		Code:        WidgetDataTable,
		Name:        "Data Table",
		Description: "Sortable, paginated product table.",
		Category:    "tables",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"dataset": datasetProperty(),
				"title":   map[string]any{"type": "string"},
				"columns": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]any{"type": "string", "minLength": 1},
				},
				"page_size": map[string]any{
					"type":    "integer",
					"minimum": 1,
					"maximum": 50,
					"default": 5,
				},
				"sort_policy": map[string]any{
					"type":    "string",
					"enum":    []string{"two_state", "three_state"},
					"default": "two_state",
				},
				"locale": map[string]any{"type": "string"},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetPieShare,
		Name:        "Share Breakdown",
		Description: "Percentage of total per record.",
		Category:    "charts",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"value_key"},
			"properties": map[string]any{
				"dataset":   datasetProperty(),
				"title":     map[string]any{"type": "string"},
				"value_key": map[string]any{"type": "string", "minLength": 1},
				"label_key": map[string]any{"type": "string"},
				"radius":    map[string]any{"type": "number", "exclusiveMinimum": 0, "default": 80},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetMetricCards,
		Name:        "Metric Cards",
		Description: "Headline metrics with change indicators.",
		Category:    "stats",
		Schema:      simpleDatasetSchema(),
	},
	{
		Code:        WidgetGoals,
		Name:        "Goals",
		Description: "Progress toward monthly targets.",
		Category:    "stats",
		Schema:      simpleDatasetSchema(),
	},
	{
		Code:        WidgetQuickStats,
		Name:        "Quick Stats",
		Description: "Weekly values with average and peak.",
		Category:    "stats",
		Schema:      simpleDatasetSchema(),
	},
	{
		Code:        WidgetRecentActivity,
		Name:        "Recent Activity",
		Description: "Latest activity feed entries",
		Category:    "activity",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"dataset": datasetProperty(),
				"title":   map[string]any{"type": "string"},
				"limit":   map[string]any{"type": "integer", "minimum": 1, "maximum": 50, "default": 10},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetEChartLine,
		Name:        "ECharts Line",
		Description: "Server-rendered line chart of a series metric.",
		Category:    "charts",
		Schema:      echartsSchema(),
	},
	{
		Code:        WidgetEChartBar,
		Name:        "ECharts Bar",
		Description: "Server-rendered bar chart of a series metric.",
		Category:    "charts",
		Schema:      echartsSchema(),
	},
	{
		Code:        WidgetEChartPie,
		Name:        "ECharts Pie",
		Description: "Server-rendered pie chart of a product field.",
		Category:    "charts",
		Schema:      echartsSchema(),
	},
}

func datasetProperty() map[string]any {
	return map[string]any{"type": "string", "minLength": 1, "default": DefaultDataset}
}

func simpleDatasetSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"dataset": datasetProperty(),
			"title":   map[string]any{"type": "string"},
		},
		"additionalProperties": false,
	}
}

func lineChartSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"metric"},
		"properties": map[string]any{
			"dataset": datasetProperty(),
			"title":   map[string]any{"type": "string"},
			"metric":  map[string]any{"type": "string", "minLength": 1},
			"variant": map[string]any{
				"type":    "string",
				"enum":    []string{"line", "area"},
				"default": "line",
			},
			"width":          map[string]any{"type": "number", "exclusiveMinimum": 0, "default": defaultChartWidth},
			"height":         map[string]any{"type": "number", "exclusiveMinimum": 0, "default": defaultChartHeight},
			"padding":        map[string]any{"type": "number", "minimum": 0, "default": defaultChartPadding},
			"domain_padding": map[string]any{"type": "number", "minimum": 0, "maximum": 1, "default": 0},
			"ticks":          map[string]any{"type": "integer", "minimum": 2, "maximum": 10, "default": defaultChartTicks},
		},
		"additionalProperties": false,
	}
}

func echartsSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"metric"},
		"properties": map[string]any{
			"dataset":   datasetProperty(),
			"metric":    map[string]any{"type": "string", "minLength": 1},
			"label_key": map[string]any{"type": "string"},
			"title":     map[string]any{"type": "string"},
			"subtitle":  map[string]any{"type": "string"},
			"theme": map[string]any{
				"type": "string",
				"enum": []string{
					types.ThemeWesteros,
					types.ThemeWalden,
					types.ThemeWonderland,
					types.ThemeChalk,
				},
			},
			"smooth": map[string]any{"type": "boolean", "default": true},
		},
		"additionalProperties": false,
	}
}

var defaultLayout = map[string][]WidgetInstance{
	AreaMain: {
		{ID: "metric-cards", DefinitionID: WidgetMetricCards},
		{ID: "revenue-chart", DefinitionID: WidgetLineChart, Configuration: map[string]any{
			"title": "Revenue Overview", "metric": "revenue", "variant": "area",
		}},
		{ID: "users-chart", DefinitionID: WidgetLineChart, Configuration: map[string]any{
			"title": "User Growth", "metric": "users", "variant": "line", "domain_padding": 0.1,
		}},
		{ID: "top-products", DefinitionID: WidgetDataTable, Configuration: map[string]any{
			"title":       "Top Products",
			"columns":     []any{"product", "sales", "revenue", "status"},
			"page_size":   5,
			"sort_policy": "three_state",
		}},
	},
	AreaSidebar: {
		{ID: "product-share", DefinitionID: WidgetPieShare, Configuration: map[string]any{
			"title": "Revenue by Product", "value_key": "revenue", "label_key": "product",
		}},
		{ID: "goals", DefinitionID: WidgetGoals},
		{ID: "quick-stats", DefinitionID: WidgetQuickStats},
	},
	AreaFooter: {
		{ID: "recent-activity", DefinitionID: WidgetRecentActivity, Configuration: map[string]any{"limit": 6}},
		{ID: "orders-echart", DefinitionID: WidgetEChartBar, Configuration: map[string]any{
			"title": "Orders", "metric": "orders",
		}},
	},
}

// DefaultAreas returns the built-in area codes in display order.
func DefaultAreas() []string {
	return append([]string(nil), defaultAreas...)
}

// DefaultWidgetDefinitions returns copies of built-in widget definitions.
func DefaultWidgetDefinitions() []WidgetDefinition {
	out := make([]WidgetDefinition, len(defaultWidgetDefinitions))
	copy(out, defaultWidgetDefinitions)
	return out
}

// DefaultLayout returns the demo dashboard: cards, charts and the product table.
func DefaultLayout() Layout {
	layout := Layout{Areas: make(map[string][]WidgetInstance, len(defaultLayout))}
	for area, widgets := range defaultLayout {
		out := make([]WidgetInstance, len(widgets))
		for i, w := range widgets {
			w.AreaCode = area
			w.Configuration = cloneConfig(w.Configuration)
			out[i] = w
		}
		layout.Areas[area] = out
	}
	return layout
}

func cloneConfig(cfg map[string]any) map[string]any {
	if cfg == nil {
		return nil
	}
	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		if items, ok := v.([]any); ok {
			v = append([]any(nil), items...)
		}
		out[k] = v
	}
	return out
}
