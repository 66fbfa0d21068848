package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-chartview/pkg/scale"
)

const (
	defaultChartWidth   = 640.0
	defaultChartHeight  = 240.0
	defaultChartPadding = 24.0
	defaultChartTicks   = 5
)

var sharedGeometryCache = NewChartCache[*scale.Mapper](5 * time.Minute)

// ChartHover is the tooltip state resolved for a pointer position. Index is -1 when the
// series is empty.
type ChartHover struct {
	WidgetID string  `json:"widget_id"`
	Metric   string  `json:"metric"`
	Index    int     `json:"index"`
	Label    string  `json:"label,omitempty"`
	Value    float64 `json:"value"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Version  string  `json:"version,omitempty"`
}

// HoverProvider is implemented by chart providers that support nearest-point lookups.
type HoverProvider interface {
	Hover(ctx context.Context, meta WidgetContext, pointerX float64) (ChartHover, error)
}

// LineChartProvider maps one metric of a dataset series into SVG path geometry.
type LineChartProvider struct {
	snapshots SnapshotReader
	cache     RenderCache[*scale.Mapper]
}

// LineChartOption customizes a LineChartProvider.
type LineChartOption func(*LineChartProvider)

// WithGeometryCache overrides the mapper cache (nil disables caching).
func WithGeometryCache(cache RenderCache[*scale.Mapper]) LineChartOption {
	return func(p *LineChartProvider) {
		p.cache = cache
	}
}

// NewLineChartProvider builds a provider reading series from snapshots.
func NewLineChartProvider(snapshots SnapshotReader, opts ...LineChartOption) *LineChartProvider {
	p := &LineChartProvider{
		snapshots: snapshots,
		cache:     sharedGeometryCache,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type lineChartConfig struct {
	dataset       string
	title         string
	metric        string
	variant       string
	viewport      scale.Viewport
	domainPadding float64
	ticks         int
}

func parseLineChartConfig(cfg map[string]any) lineChartConfig {
	s := settings(cfg)
	padding := s.Float("padding", defaultChartPadding)
	out := lineChartConfig{
		dataset: s.String("dataset", DefaultDataset),
		metric:  s.String("metric", "revenue"),
		variant: s.String("variant", "line"),
		viewport: scale.Viewport{
			Width:         s.Float("width", defaultChartWidth),
			Height:        s.Float("height", defaultChartHeight),
			PaddingTop:    padding,
			PaddingRight:  padding,
			PaddingBottom: padding,
			PaddingLeft:   padding,
		},
		domainPadding: s.Float("domain_padding", 0),
		ticks:         s.Int("ticks", defaultChartTicks),
	}
	out.title = s.String("title", metricTitle(out.metric))
	return out
}

// Fetch returns the line (and, for the area variant, the filled area) path together with
// point coordinates and y-axis ticks. An empty series renders an empty-state payload.
func (p *LineChartProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := parseLineChartConfig(meta.Instance.Configuration)
	data := WidgetData{
		"title":   cfg.title,
		"metric":  cfg.metric,
		"variant": cfg.variant,
		"viewport": map[string]any{
			"width":  cfg.viewport.Width,
			"height": cfg.viewport.Height,
		},
		"stroke": meta.Theme.Token("accent", "#3b82f6"),
		"grid":   meta.Theme.Token("grid", "#e5e7eb"),
	}

	mapper, snapshot, err := p.mapper(ctx, meta.Instance, cfg)
	if errors.Is(err, scale.ErrEmptySeries) {
		data["empty"] = true
		data["version"] = snapshot.Version
		return data, nil
	}
	if err != nil {
		return nil, err
	}

	coords := mapper.Coords()
	points := make([]map[string]any, len(coords))
	for i, c := range coords {
		row := snapshot.Series[i]
		points[i] = map[string]any{
			"index": i,
			"label": row.Date,
			"value": row.Values[cfg.metric],
			"x":     c.X,
			"y":     c.Y,
		}
	}
	domain := mapper.Domain()
	tickValues := scale.Ticks(domain, cfg.ticks)
	ticks := make([]map[string]any, len(tickValues))
	for i, v := range tickValues {
		ticks[i] = map[string]any{"value": v, "y": mapper.YFor(v)}
	}

	data["version"] = snapshot.Version
	data["path"] = scale.PathString(mapper.Line())
	if cfg.variant == "area" {
		data["area"] = scale.PathString(mapper.Area())
	}
	data["points"] = points
	data["ticks"] = ticks
	data["baseline"] = mapper.Baseline()
	data["domain"] = map[string]any{"min": domain.Min, "max": domain.Max}
	return data, nil
}

// Hover resolves the point nearest to pointerX (in viewport pixels).
func (p *LineChartProvider) Hover(ctx context.Context, meta WidgetContext, pointerX float64) (ChartHover, error) {
	cfg := parseLineChartConfig(meta.Instance.Configuration)
	out := ChartHover{WidgetID: meta.Instance.ID, Metric: cfg.metric, Index: -1}

	mapper, snapshot, err := p.mapper(ctx, meta.Instance, cfg)
	out.Version = snapshot.Version
	if errors.Is(err, scale.ErrEmptySeries) {
		return out, nil
	}
	if err != nil {
		return ChartHover{}, err
	}
	hover := mapper.Tooltip(pointerX)
	out.Index = hover.Index
	out.Label = fmt.Sprint(hover.Point.X)
	out.Value = hover.Point.Y
	out.X = hover.Coord.X
	out.Y = hover.Coord.Y
	return out, nil
}

// mapper returns the snapshot and the (cached) mapper for it. Rows keep snapshot order
// so point i always corresponds to snapshot.Series[i].
func (p *LineChartProvider) mapper(ctx context.Context, instance WidgetInstance, cfg lineChartConfig) (*scale.Mapper, Snapshot, error) {
	if p.snapshots == nil {
		return nil, Snapshot{}, errNoSnapshotReader
	}
	snapshot, err := p.snapshots.Snapshot(ctx, cfg.dataset)
	if err != nil {
		return nil, Snapshot{}, err
	}
	snapshot.Series = seriesWithMetric(snapshot.Series, cfg.metric)

	build := func() (*scale.Mapper, error) {
		series := make([]scale.Point, len(snapshot.Series))
		for i, row := range snapshot.Series {
			series[i] = scale.Point{X: row.Date, Y: row.Values[cfg.metric]}
		}
		var opts []scale.Option
		if cfg.domainPadding > 0 {
			opts = append(opts, scale.WithDomainPadding(cfg.domainPadding))
		}
		mapper, err := scale.NewMapper(series, cfg.viewport, opts...)
		if err != nil {
			return nil, fmt.Errorf("dashboard: %s series %q: %w", instance.ID, cfg.metric, err)
		}
		return mapper, nil
	}

	var mapper *scale.Mapper
	if p.cache != nil {
		key := fmt.Sprintf("%s:%s:%s", instance.ID, snapshot.Version, configHash(instance.Configuration))
		mapper, err = p.cache.GetOrRender(key, build)
	} else {
		mapper, err = build()
	}
	return mapper, snapshot, err
}

// seriesWithMetric drops rows that do not carry metric.
func seriesWithMetric(rows []SeriesRow, metric string) []SeriesRow {
	out := make([]SeriesRow, 0, len(rows))
	for _, row := range rows {
		if _, ok := row.Values[metric]; ok {
			out = append(out, row)
		}
	}
	return out
}
