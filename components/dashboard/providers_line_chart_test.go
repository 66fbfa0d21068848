package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartview/pkg/scale"
)

func lineChartContext(cfg map[string]any) WidgetContext {
	return WidgetContext{
		Instance: WidgetInstance{ID: "revenue-chart", DefinitionID: WidgetLineChart, Configuration: cfg},
		Viewer:   ViewerContext{UserID: "user-1"},
		Theme:    LightTheme(),
	}
}

func TestLineChartProviderFetchLine(t *testing.T) {
	store := newTestStore(t)
	provider := NewLineChartProvider(store, WithGeometryCache(nil))

	data, err := provider.Fetch(context.Background(), lineChartContext(map[string]any{"metric": "revenue"}))
	require.NoError(t, err)

	path, _ := data["path"].(string)
	assert.True(t, strings.HasPrefix(path, "M 24 216 L 122.667 158.4"), path)
	assert.True(t, strings.HasSuffix(path, "L 616 24"), path)
	assert.NotContains(t, data, "area")
	assert.Equal(t, 216.0, data["baseline"])
	assert.Equal(t, map[string]any{"min": 12000.0, "max": 22000.0}, data["domain"])
	assert.Equal(t, "Revenue", data["title"])
	assert.Equal(t, mustSnapshot(t, store).Version, data["version"])

	points, ok := data["points"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, points, 7)
	assert.Equal(t, "2024-01-04", points[3]["label"])
	assert.Equal(t, 18000.0, points[3]["value"])
	assert.InDelta(t, 320.0, points[3]["x"], 1e-9)
	assert.InDelta(t, 100.8, points[3]["y"], 1e-9)

	ticks, ok := data["ticks"].([]map[string]any)
	require.True(t, ok)
	require.NotEmpty(t, ticks)
	for _, tick := range ticks {
		y := tick["y"].(float64)
		assert.GreaterOrEqual(t, y, 24.0-1e-9)
		assert.LessOrEqual(t, y, 216.0+1e-9)
	}
}

func TestLineChartProviderFetchArea(t *testing.T) {
	provider := NewLineChartProvider(newTestStore(t), WithGeometryCache(nil))

	data, err := provider.Fetch(context.Background(), lineChartContext(map[string]any{
		"metric":  "revenue",
		"variant": "area",
	}))
	require.NoError(t, err)

	area, _ := data["area"].(string)
	path, _ := data["path"].(string)
	assert.True(t, strings.HasPrefix(area, path), area)
	assert.True(t, strings.HasSuffix(area, "L 616 24 L 616 216 L 24 216 Z"), area)
}

func TestLineChartProviderCustomViewport(t *testing.T) {
	provider := NewLineChartProvider(newTestStore(t), WithGeometryCache(nil))

	data, err := provider.Fetch(context.Background(), lineChartContext(map[string]any{
		"metric":  "users",
		"width":   100,
		"height":  50,
		"padding": 0,
	}))
	require.NoError(t, err)

	path, _ := data["path"].(string)
	assert.True(t, strings.HasPrefix(path, "M 0 50 L"), path)
	assert.True(t, strings.HasSuffix(path, "L 100 0"), path)
	assert.Equal(t, 50.0, data["baseline"])
}

func TestLineChartProviderEmptySeries(t *testing.T) {
	provider := NewLineChartProvider(newTestStore(t), WithGeometryCache(nil))

	data, err := provider.Fetch(context.Background(), lineChartContext(map[string]any{"metric": "refunds"}))
	require.NoError(t, err)
	assert.Equal(t, true, data["empty"])
	assert.NotContains(t, data, "path")

	hover, err := provider.Hover(context.Background(), lineChartContext(map[string]any{"metric": "refunds"}), 100)
	require.NoError(t, err)
	assert.Equal(t, -1, hover.Index)
}

func TestLineChartProviderFlatSeries(t *testing.T) {
	store := NewDatasetStore()
	snapshot := DefaultSnapshot()
	for _, row := range snapshot.Series {
		row.Values["revenue"] = 500
	}
	store.Put(DefaultDataset, snapshot)
	provider := NewLineChartProvider(store, WithGeometryCache(nil))

	data, err := provider.Fetch(context.Background(), lineChartContext(map[string]any{"metric": "revenue"}))
	require.NoError(t, err)
	for _, point := range data["points"].([]map[string]any) {
		assert.InDelta(t, 120.0, point["y"], 1e-9)
	}
}

func TestLineChartProviderHover(t *testing.T) {
	provider := NewLineChartProvider(newTestStore(t), WithGeometryCache(nil))
	meta := lineChartContext(map[string]any{"metric": "revenue"})

	cases := []struct {
		pointer float64
		index   int
		label   string
		value   float64
	}{
		{pointer: -50, index: 0, label: "2024-01-01", value: 12000},
		{pointer: 130, index: 1, label: "2024-01-02", value: 15000},
		{pointer: 10000, index: 6, label: "2024-01-07", value: 22000},
	}
	for _, tc := range cases {
		hover, err := provider.Hover(context.Background(), meta, tc.pointer)
		require.NoError(t, err)
		assert.Equal(t, tc.index, hover.Index)
		assert.Equal(t, tc.label, hover.Label)
		assert.Equal(t, tc.value, hover.Value)
		assert.Equal(t, "revenue-chart", hover.WidgetID)
		assert.NotEmpty(t, hover.Version)
	}
}

func TestLineChartProviderCachesGeometryPerVersion(t *testing.T) {
	store := newTestStore(t)
	geometry := NewChartCache[*scale.Mapper](time.Minute)
	provider := NewLineChartProvider(store, WithGeometryCache(geometry))
	meta := lineChartContext(map[string]any{"metric": "revenue"})

	_, err := provider.Fetch(context.Background(), meta)
	require.NoError(t, err)
	_, err = provider.Hover(context.Background(), meta, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, geometry.Len())

	store.Put(DefaultDataset, DefaultSnapshot())
	_, err = provider.Fetch(context.Background(), meta)
	require.NoError(t, err)
	assert.Equal(t, 2, geometry.Len())
}

func TestLineChartProviderRequiresReader(t *testing.T) {
	provider := NewLineChartProvider(nil)
	_, err := provider.Fetch(context.Background(), lineChartContext(nil))
	assert.ErrorIs(t, err, errNoSnapshotReader)
}
