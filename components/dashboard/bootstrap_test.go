package dashboard

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartview/pkg/tabular"
)

func TestBootstrapDefaults(t *testing.T) {
	rt, err := Bootstrap(BootstrapOptions{Jitter: 0.1, Seed: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{DefaultDataset}, rt.Datasets.Datasets())
	for _, def := range rt.Registry.Definitions() {
		_, ok := rt.Registry.Provider(def.Code)
		assert.Truef(t, ok, "definition %s should have a provider", def.Code)
	}

	layout, err := rt.Service.ConfigureLayout(context.Background(), ViewerContext{UserID: "user-1"})
	require.NoError(t, err)
	assert.Len(t, layout.Areas[AreaMain], 4)

	before := mustSnapshot(t, rt.Datasets)
	refreshed, err := rt.Service.RefreshDataset(context.Background(), DefaultDataset)
	require.NoError(t, err)
	assert.NotEqual(t, before.Version, refreshed.Version)
}

func TestBootstrapWithManifest(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.SubscribeFiltered(DatasetFilter("regional"))
	defer cancel()

	rt, err := Bootstrap(BootstrapOptions{
		ManifestPath: filepath.Join("..", "..", "docs", "manifests", "analytics.yaml"),
		RefreshHook:  hook,
	})
	require.NoError(t, err)
	require.NotNil(t, rt.Manifest)
	assert.ElementsMatch(t, []string{DefaultDataset, "regional"}, rt.Datasets.Datasets())

	ctx := context.Background()
	viewer := ViewerContext{UserID: "user-1"}
	layout, err := rt.Service.ConfigureLayout(ctx, viewer)
	require.NoError(t, err)
	footer := layout.Areas[AreaFooter]
	require.Len(t, footer, 3)
	for _, w := range footer {
		assert.NotContains(t, w.Metadata, "error", w.ID)
	}

	inst, err := rt.Service.SortTable(ctx, viewer, "regional-stores", "store")
	require.NoError(t, err)
	data := inst.Metadata["data"].(WidgetData)
	assert.Equal(t, 2, data["total_pages"])
	rows := data["rows"].([]map[string]any)
	require.NotEmpty(t, rows)
	assert.Equal(t, "Aachen", rows[0]["record"].(tabular.Record)["store"])

	_, err = rt.Service.RefreshDataset(ctx, "regional")
	require.NoError(t, err)
	received := 0
	for len(events) > 0 {
		event := <-events
		assert.Equal(t, "regional", event.Dataset)
		received++
	}
	assert.Equal(t, 2, received)
}

func TestBootstrapMissingManifest(t *testing.T) {
	_, err := Bootstrap(BootstrapOptions{ManifestPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestBootstrapWrapLoader(t *testing.T) {
	var wrapped []string
	rt, err := Bootstrap(BootstrapOptions{
		WrapLoader: func(next SnapshotLoader) SnapshotLoader {
			return SnapshotLoaderFunc(func(ctx context.Context, dataset string) (Snapshot, error) {
				wrapped = append(wrapped, dataset)
				return next.LoadSnapshot(ctx, dataset)
			})
		},
	})
	require.NoError(t, err)

	_, err = rt.Service.RefreshDataset(context.Background(), DefaultDataset)
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultDataset}, wrapped)

	_, err = rt.Loader.LoadSnapshot(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownDataset)
}
