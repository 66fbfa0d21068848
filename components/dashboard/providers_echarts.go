package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/goliatone/go-chartview/pkg/tabular"
)

const echartsHeight = "360px"

var sharedChartCache = NewChartCache[string](5 * time.Minute)

// EChartsProvider renders server-side chart HTML for a dataset. Line and bar charts plot
// a series metric by date; pie charts plot a product field.
type EChartsProvider struct {
	chartType  string
	snapshots  SnapshotReader
	cache      RenderCache[string]
	assetsHost string
}

// EChartsProviderOption customizes provider behavior.
type EChartsProviderOption func(*EChartsProvider)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache[string]) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.cache = cache
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.assetsHost = host
	}
}

// NewEChartsProvider builds a provider for a specific chart type (line, bar or pie).
func NewEChartsProvider(chartType string, snapshots SnapshotReader, opts ...EChartsProviderOption) *EChartsProvider {
	p := &EChartsProvider{
		chartType: strings.ToLower(chartType),
		snapshots: snapshots,
		cache:     sharedChartCache,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type echartsRequest struct {
	title    string
	subtitle string
	metric   string
	labelKey string
	smooth   bool
	theme    string
	snapshot Snapshot
}

// Fetch converts the dataset into go-echarts markup.
func (p *EChartsProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := settings(meta.Instance.Configuration)
	snapshot, err := readSnapshot(ctx, p.snapshots, cfg)
	if err != nil {
		return nil, err
	}

	req := echartsRequest{
		metric:   cfg.String("metric", "revenue"),
		labelKey: cfg.String("label_key", "product"),
		subtitle: cfg.String("subtitle", ""),
		theme:    meta.Theme.ChartTheme(),
		snapshot: snapshot,
	}
	req.title = cfg.String("title", metricTitle(req.metric))
	req.smooth = cfg.Bool("smooth", true)
	if override := strings.TrimSpace(cfg.String("theme", "")); override != "" {
		req.theme = override
	}

	renderFn := func() (string, error) {
		return p.render(req)
	}

	var html string
	if p.cache != nil {
		key := fmt.Sprintf("%s:%s:%s:%s:%s", meta.Instance.ID, p.chartType, snapshot.Version, req.theme, configHash(cfg))
		html, err = p.cache.GetOrRender(key, renderFn)
	} else {
		html, err = renderFn()
	}
	if err != nil {
		return nil, err
	}

	return WidgetData{
		"chart_html": html,
		"chart_type": p.chartType,
		"title":      req.title,
		"subtitle":   req.subtitle,
		"theme":      req.theme,
		"version":    snapshot.Version,
	}, nil
}

func (p *EChartsProvider) render(req echartsRequest) (string, error) {
	switch p.chartType {
	case "bar":
		return p.renderBarChart(req)
	case "line":
		return p.renderLineChart(req)
	case "pie":
		return p.renderPieChart(req)
	default:
		return "", fmt.Errorf("dashboard: unsupported chart type: %s", p.chartType)
	}
}

func (p *EChartsProvider) renderBarChart(req echartsRequest) (string, error) {
	labels, values, err := seriesValues(req.snapshot, req.metric)
	if err != nil {
		return "", err
	}
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Name: labels[i], Value: v}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(p.globalChartOptions(req)...)
	bar.SetXAxis(labels)
	bar.AddSeries(metricTitle(req.metric), data)
	return renderChart(bar)
}

func (p *EChartsProvider) renderLineChart(req echartsRequest) (string, error) {
	labels, values, err := seriesValues(req.snapshot, req.metric)
	if err != nil {
		return "", err
	}
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Name: labels[i], Value: v}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(p.globalChartOptions(req)...)
	line.SetXAxis(labels)
	line.AddSeries(metricTitle(req.metric), data)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(req.smooth)}))
	return renderChart(line)
}

func (p *EChartsProvider) renderPieChart(req echartsRequest) (string, error) {
	shares := tabular.DerivePieShares(req.snapshot.Products, req.metric, req.labelKey)
	if len(shares) == 0 {
		return "", fmt.Errorf("dashboard: no records to chart for %q", req.metric)
	}
	data := make([]opts.PieData, len(shares))
	for i, share := range shares {
		data[i] = opts.PieData{Name: share.Key, Value: share.Value}
	}
	pie := charts.NewPie()
	pie.SetGlobalOptions(p.globalChartOptions(req)...)
	pie.AddSeries(metricTitle(req.metric), data)
	return renderChart(pie)
}

func seriesValues(snapshot Snapshot, metric string) ([]string, []float64, error) {
	rows := seriesWithMetric(snapshot.Series, metric)
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("dashboard: no series values for %q", metric)
	}
	labels := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, row := range rows {
		labels[i] = row.Date
		values[i] = row.Values[metric]
	}
	return labels, values, nil
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *EChartsProvider) globalChartOptions(req echartsRequest) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  req.theme,
		Width:  "100%",
		Height: echartsHeight,
	}
	if p.assetsHost != "" {
		initOpts.AssetsHost = p.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: req.title, Subtitle: req.subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithToolboxOpts(opts.Toolbox{Show: opts.Bool(true)}),
	}
}
