package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartview/pkg/tabular"
)

func tableContext(userID string, cfg map[string]any) WidgetContext {
	if cfg == nil {
		cfg = map[string]any{
			"columns":     []any{"product", "sales", "revenue", "status"},
			"page_size":   5,
			"sort_policy": "three_state",
		}
	}
	return WidgetContext{
		Instance: WidgetInstance{ID: "top-products", DefinitionID: WidgetDataTable, Configuration: cfg},
		Viewer:   ViewerContext{UserID: userID},
		Theme:    LightTheme(),
	}
}

func firstProduct(t *testing.T, data WidgetData) string {
	t.Helper()
	rows, ok := data["rows"].([]map[string]any)
	require.True(t, ok)
	require.NotEmpty(t, rows)
	return rows[0]["record"].(tabular.Record)["product"].(string)
}

func TestTableProviderInitialPage(t *testing.T) {
	provider := NewTableProvider(newTestStore(t), nil)

	data, err := provider.Fetch(context.Background(), tableContext("user-1", nil))
	require.NoError(t, err)

	assert.Equal(t, 1, data["page"])
	assert.Equal(t, 2, data["total_pages"])
	assert.Equal(t, 7, data["total_rows"])
	assert.Equal(t, "Showing 1 to 5 of 7", data["showing"])
	assert.Equal(t, false, data["has_prev"])
	assert.Equal(t, true, data["has_next"])
	assert.Equal(t, "three_state", data["policy"])
	assert.Equal(t, "Premium Plan", firstProduct(t, data))

	columns := data["columns"].([]map[string]any)
	require.Len(t, columns, 4)
	assert.Equal(t, "Product", columns[0]["label"])
	assert.NotContains(t, columns[0], "direction")

	rows := data["rows"].([]map[string]any)
	assert.Equal(t, []any{"Premium Plan", 234, 23400, "active"}, rows[0]["cells"])
}

func TestTableProviderThreeStateCycle(t *testing.T) {
	provider := NewTableProvider(newTestStore(t), NewInMemoryViewStateStore())
	ctx := context.Background()
	meta := tableContext("user-1", nil)

	view, err := provider.Click(ctx, meta, "revenue")
	require.NoError(t, err)
	assert.Equal(t, tabular.SortState{Key: "revenue", Direction: tabular.Asc}, view.Sort)
	data, err := provider.Fetch(ctx, meta)
	require.NoError(t, err)
	assert.Equal(t, "Education Plan", firstProduct(t, data))
	assert.Equal(t, "asc", data["columns"].([]map[string]any)[2]["direction"])

	view, err = provider.Click(ctx, meta, "revenue")
	require.NoError(t, err)
	assert.Equal(t, tabular.Desc, view.Sort.Direction)
	data, err = provider.Fetch(ctx, meta)
	require.NoError(t, err)
	assert.Equal(t, "Premium Plan", firstProduct(t, data))

	view, err = provider.Click(ctx, meta, "revenue")
	require.NoError(t, err)
	assert.True(t, view.Sort.Unsorted())
}

func TestTableProviderTwoStateToggle(t *testing.T) {
	provider := NewTableProvider(newTestStore(t), nil)
	ctx := context.Background()
	meta := tableContext("user-1", map[string]any{"columns": []string{"product", "sales"}})

	expected := []tabular.Direction{tabular.Asc, tabular.Desc, tabular.Asc}
	for _, want := range expected {
		view, err := provider.Click(ctx, meta, "sales")
		require.NoError(t, err)
		assert.Equal(t, want, view.Sort.Direction)
	}

	view, err := provider.Click(ctx, meta, "product")
	require.NoError(t, err)
	assert.Equal(t, tabular.SortState{Key: "product", Direction: tabular.Asc}, view.Sort)
}

func TestTableProviderClickResetsPage(t *testing.T) {
	provider := NewTableProvider(newTestStore(t), nil)
	ctx := context.Background()
	meta := tableContext("user-1", nil)

	view, err := provider.Navigate(ctx, meta, PageMove{Action: PageNext})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Page)

	view, err = provider.Click(ctx, meta, "sales")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Page)
}

func TestTableProviderNavigateClamps(t *testing.T) {
	provider := NewTableProvider(newTestStore(t), nil)
	ctx := context.Background()
	meta := tableContext("user-1", nil)

	view, err := provider.Navigate(ctx, meta, PageMove{Action: PageNext})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Page)

	view, err = provider.Navigate(ctx, meta, PageMove{Action: PageNext})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Page)

	view, err = provider.Navigate(ctx, meta, PageMove{Action: PageGoTo, Page: 99})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Page)

	data, err := provider.Fetch(ctx, meta)
	require.NoError(t, err)
	assert.Equal(t, "Showing 6 to 7 of 7", data["showing"])
	assert.Equal(t, false, data["has_next"])

	view, err = provider.Navigate(ctx, meta, PageMove{Action: PagePrev})
	require.NoError(t, err)
	assert.Equal(t, 1, view.Page)

	view, err = provider.Navigate(ctx, meta, PageMove{Action: PagePrev})
	require.NoError(t, err)
	assert.Equal(t, 1, view.Page)

	_, err = provider.Navigate(ctx, meta, PageMove{Action: "jump"})
	assert.Error(t, err)
}

func TestTableProviderClampsAfterShrink(t *testing.T) {
	store := newTestStore(t)
	views := NewInMemoryViewStateStore()
	provider := NewTableProvider(store, views)
	ctx := context.Background()
	meta := tableContext("user-1", nil)

	_, err := provider.Navigate(ctx, meta, PageMove{Action: PageGoTo, Page: 2})
	require.NoError(t, err)

	shrunk := DefaultSnapshot()
	shrunk.Products = shrunk.Products[:3]
	store.Put(DefaultDataset, shrunk)

	data, err := provider.Fetch(ctx, meta)
	require.NoError(t, err)
	assert.Equal(t, 1, data["page"])
	assert.Equal(t, 1, data["total_pages"])

	stored, ok, err := views.LoadView(ctx, meta.Viewer, meta.Instance.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, stored.Page)
}

func TestTableProviderEmptyDataset(t *testing.T) {
	store := NewDatasetStore()
	empty := DefaultSnapshot()
	empty.Products = nil
	store.Put(DefaultDataset, empty)
	provider := NewTableProvider(store, nil)

	data, err := provider.Fetch(context.Background(), tableContext("user-1", nil))
	require.NoError(t, err)
	assert.Equal(t, 1, data["page"])
	assert.Equal(t, 1, data["total_pages"])
	assert.Equal(t, "Showing 0 to 0 of 0", data["showing"])
	assert.Empty(t, data["rows"])
}

func TestTableProviderUnknownColumn(t *testing.T) {
	provider := NewTableProvider(newTestStore(t), nil)
	_, err := provider.Click(context.Background(), tableContext("user-1", nil), "id")
	assert.True(t, errors.Is(err, ErrUnknownColumn))
}

func TestTableProviderDropsStaleSortKey(t *testing.T) {
	views := NewInMemoryViewStateStore()
	provider := NewTableProvider(newTestStore(t), views)
	meta := tableContext("user-1", nil)
	require.NoError(t, views.SaveView(context.Background(), meta.Viewer, meta.Instance.ID, tabular.View{
		Sort: tabular.SortState{Key: "removed", Direction: tabular.Asc},
		Page: 1,
	}))

	data, err := provider.Fetch(context.Background(), meta)
	require.NoError(t, err)
	assert.True(t, data["sort"].(tabular.SortState).Unsorted())
}

func TestTableProviderAnonymousViewer(t *testing.T) {
	provider := NewTableProvider(newTestStore(t), nil)
	meta := tableContext("", nil)

	data, err := provider.Fetch(context.Background(), meta)
	require.NoError(t, err)
	assert.Equal(t, 1, data["page"])

	_, err = provider.Click(context.Background(), meta, "product")
	assert.ErrorIs(t, err, errViewerRequired)
}

func TestTableProviderLocaleAwareSort(t *testing.T) {
	store := NewDatasetStore()
	snapshot := DefaultSnapshot()
	snapshot.Products = []tabular.Record{
		{"name": "Zebra"},
		{"name": "apple"},
		{"name": "Äpfel"},
	}
	store.Put(DefaultDataset, snapshot)
	provider := NewTableProvider(store, nil)
	meta := tableContext("user-1", map[string]any{"locale": "de"})

	_, err := provider.Click(context.Background(), meta, "name")
	require.NoError(t, err)
	data, err := provider.Fetch(context.Background(), meta)
	require.NoError(t, err)

	var names []string
	for _, row := range data["rows"].([]map[string]any) {
		names = append(names, row["record"].(tabular.Record)["name"].(string))
	}
	assert.Equal(t, []string{"Äpfel", "apple", "Zebra"}, names)
}

func TestTableProviderRejectsBadConfig(t *testing.T) {
	provider := NewTableProvider(newTestStore(t), nil)

	_, err := provider.Fetch(context.Background(), tableContext("user-1", map[string]any{"sort_policy": "random"}))
	assert.Error(t, err)

	_, err = provider.Fetch(context.Background(), tableContext("user-1", map[string]any{"locale": "!!"}))
	assert.Error(t, err)
}
