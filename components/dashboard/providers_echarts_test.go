package dashboard

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEChartsBarProvider(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bar", newTestStore(t), WithChartCache(nil))
	ctx := sampleChartContext(WidgetEChartBar, map[string]any{
		"title":  "Orders",
		"metric": "orders",
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)

	assert.Equal(t, "bar", data["chart_type"])
	assert.Equal(t, "Orders", data["title"])
	assert.Contains(t, html(data), "echarts")
	assert.Contains(t, html(data), "2024-01-07")
}

func TestEChartsLineProvider(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("line", newTestStore(t), WithChartCache(nil))
	ctx := sampleChartContext(WidgetEChartLine, map[string]any{"metric": "users"})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, "line", data["chart_type"])
	assert.Equal(t, "Users", data["title"])
	assert.Contains(t, html(data), "echarts")
}

func TestEChartsPieProvider(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("pie", newTestStore(t), WithChartCache(nil))
	ctx := sampleChartContext(WidgetEChartPie, map[string]any{
		"title":     "Revenue Share",
		"metric":    "revenue",
		"label_key": "product",
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, "pie", data["chart_type"])
	assert.Equal(t, "Revenue Share", data["title"])
	assert.Contains(t, html(data), "premium plan")
}

func TestEChartsProviderMissingMetric(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bar", newTestStore(t), WithChartCache(nil))

	_, err := provider.Fetch(context.Background(), sampleChartContext(WidgetEChartBar, map[string]any{"metric": "refunds"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refunds")
}

func TestEChartsProviderInvalidType(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bubble", newTestStore(t), WithChartCache(nil))

	_, err := provider.Fetch(context.Background(), sampleChartContext(WidgetEChartBar, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestEChartsProviderUsesCache(t *testing.T) {
	t.Parallel()
	cache := &countingCache{}
	provider := NewEChartsProvider("bar", newTestStore(t), WithChartCache(cache))
	ctx := sampleChartContext(WidgetEChartBar, map[string]any{"metric": "orders"})

	_, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	_, err = provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), cache.calls)
}

func TestEChartsProviderCacheKeyFollowsVersion(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	cache := NewChartCache[string](time.Minute)
	provider := NewEChartsProvider("bar", store, WithChartCache(cache))
	ctx := sampleChartContext(WidgetEChartBar, map[string]any{"metric": "orders"})

	_, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	store.Put(DefaultDataset, DefaultSnapshot())
	_, err = provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, cache.Len())
}

func TestEChartsProviderThemeOverride(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bar", newTestStore(t), WithChartCache(nil))
	ctx := sampleChartContext(WidgetEChartBar, map[string]any{"theme": "wonderland"})
	ctx.Theme = DarkTheme()

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, "wonderland", data["theme"])
}

func TestEChartsProviderThemeFollowsPalette(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bar", newTestStore(t), WithChartCache(nil))

	light := sampleChartContext(WidgetEChartBar, nil)
	data, err := provider.Fetch(context.Background(), light)
	require.NoError(t, err)
	assert.Equal(t, types.ThemeWesteros, data["theme"])

	dark := sampleChartContext(WidgetEChartBar, nil)
	dark.Theme = DarkTheme()
	data, err = provider.Fetch(context.Background(), dark)
	require.NoError(t, err)
	assert.Equal(t, types.ThemeChalk, data["theme"])
}

func TestEChartsProviderAssetsHost(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("line", newTestStore(t),
		WithChartCache(nil),
		WithChartAssetsHost("https://cdn.example.com/echarts/"),
	)

	data, err := provider.Fetch(context.Background(), sampleChartContext(WidgetEChartLine, nil))
	require.NoError(t, err)
	assert.Contains(t, html(data), "https://cdn.example.com/echarts/")
}

func sampleChartContext(definition string, cfg map[string]any) WidgetContext {
	return WidgetContext{
		Instance: WidgetInstance{
			ID:            definition + "-instance",
			DefinitionID:  definition,
			Configuration: cfg,
		},
		Viewer: ViewerContext{UserID: "tester", Locale: "en"},
		Theme:  LightTheme(),
	}
}

func html(data WidgetData) string {
	val, _ := data["chart_html"].(string)
	return strings.ToLower(val)
}

type countingCache struct {
	calls int32
	value string
}

func (c *countingCache) GetOrRender(_ string, render func() (string, error)) (string, error) {
	if c.value != "" {
		return c.value, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	atomic.AddInt32(&c.calls, 1)
	c.value = html
	return html, nil
}

func BenchmarkEChartsBarChart(b *testing.B) {
	store := NewDatasetStore()
	store.Put(DefaultDataset, DefaultSnapshot())
	provider := NewEChartsProvider("bar", store, WithChartCache(nil))
	ctx := sampleChartContext(WidgetEChartBar, map[string]any{"metric": "revenue"})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := provider.Fetch(context.Background(), ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEChartsBarChartCached(b *testing.B) {
	store := NewDatasetStore()
	store.Put(DefaultDataset, DefaultSnapshot())
	provider := NewEChartsProvider("bar", store, WithChartCache(NewChartCache[string](5*time.Minute)))
	ctx := sampleChartContext(WidgetEChartBar, map[string]any{"metric": "revenue"})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := provider.Fetch(context.Background(), ctx); err != nil {
			b.Fatal(err)
		}
	}
}
