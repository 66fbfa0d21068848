package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-chartview/pkg/tabular"
)

var errViewerRequired = errors.New("dashboard: viewer context missing user id")

// ViewStateStore keeps the interactive table state (sort + page) per viewer and widget.
type ViewStateStore interface {
	LoadView(ctx context.Context, viewer ViewerContext, widgetID string) (tabular.View, bool, error)
	SaveView(ctx context.Context, viewer ViewerContext, widgetID string, view tabular.View) error
	// DeleteViews drops the state every viewer holds for widgetID.
	DeleteViews(ctx context.Context, widgetID string) error
}

// InMemoryViewStateStore provides a concurrency-safe default store, indexed by widget
// then viewer.
type InMemoryViewStateStore struct {
	mu   sync.RWMutex
	data map[string]map[string]tabular.View
}

// NewInMemoryViewStateStore creates an empty store.
func NewInMemoryViewStateStore() *InMemoryViewStateStore {
	return &InMemoryViewStateStore{data: make(map[string]map[string]tabular.View)}
}

// LoadView returns the stored view; ok is false when nothing was saved yet. Anonymous
// viewers never have stored state.
func (s *InMemoryViewStateStore) LoadView(_ context.Context, viewer ViewerContext, widgetID string) (tabular.View, bool, error) {
	if viewer.UserID == "" {
		return tabular.View{}, false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	view, ok := s.data[widgetID][viewer.UserID]
	return view, ok, nil
}

// SaveView stores the view for the viewer.
func (s *InMemoryViewStateStore) SaveView(_ context.Context, viewer ViewerContext, widgetID string, view tabular.View) error {
	if viewer.UserID == "" {
		return errViewerRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	views, ok := s.data[widgetID]
	if !ok {
		views = make(map[string]tabular.View)
		s.data[widgetID] = views
	}
	views[viewer.UserID] = view
	return nil
}

func (s *InMemoryViewStateStore) DeleteViews(_ context.Context, widgetID string) error {
	s.mu.Lock()
	delete(s.data, widgetID)
	s.mu.Unlock()
	return nil
}

// Len reports how many widgets hold stored state.
func (s *InMemoryViewStateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
