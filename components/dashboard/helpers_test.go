package dashboard

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DatasetStore {
	t.Helper()
	store := NewDatasetStore()
	store.Put(DefaultDataset, DefaultSnapshot())
	return store
}

func mustSnapshot(t *testing.T, store *DatasetStore) Snapshot {
	t.Helper()
	snapshot, err := store.Snapshot(context.Background(), DefaultDataset)
	require.NoError(t, err)
	return snapshot
}

type collectingHook struct {
	mu     sync.Mutex
	events []WidgetEvent
}

func (h *collectingHook) WidgetUpdated(_ context.Context, event WidgetEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func (h *collectingHook) Events() []WidgetEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]WidgetEvent(nil), h.events...)
}

var _ RefreshHook = (*collectingHook)(nil)

type testTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (t *testTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
}

func (t *testTelemetry) Events() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.events...)
}
