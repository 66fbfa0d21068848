package dashboard

import (
	"context"
	"sync"
)

// LayoutPreferences are per-viewer adjustments applied on top of the shared layout.
type LayoutPreferences struct {
	AreaOrder     map[string][]string `json:"area_order,omitempty" yaml:"area_order,omitempty"`
	HiddenWidgets map[string]bool     `json:"hidden_widgets,omitempty" yaml:"hidden_widgets,omitempty"`
}

// PreferenceStore persists layout preferences per viewer.
type PreferenceStore interface {
	LayoutPreferences(ctx context.Context, viewer ViewerContext) (LayoutPreferences, error)
	SaveLayoutPreferences(ctx context.Context, viewer ViewerContext, prefs LayoutPreferences) error
}

// InMemoryPreferenceStore provides a concurrency-safe default store.
type InMemoryPreferenceStore struct {
	mu   sync.RWMutex
	data map[string]LayoutPreferences
}

// NewInMemoryPreferenceStore creates an empty preference store.
func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{
		data: make(map[string]LayoutPreferences),
	}
}

// LayoutPreferences returns stored preferences or empty defaults.
func (s *InMemoryPreferenceStore) LayoutPreferences(_ context.Context, viewer ViewerContext) (LayoutPreferences, error) {
	if viewer.UserID == "" {
		return normalizePreferences(LayoutPreferences{}), nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return normalizePreferences(s.data[viewer.UserID]), nil
}

// SaveLayoutPreferences persists preferences for a viewer.
func (s *InMemoryPreferenceStore) SaveLayoutPreferences(_ context.Context, viewer ViewerContext, prefs LayoutPreferences) error {
	if viewer.UserID == "" {
		return errViewerRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[viewer.UserID] = normalizePreferences(prefs)
	return nil
}

func normalizePreferences(prefs LayoutPreferences) LayoutPreferences {
	if prefs.AreaOrder == nil {
		prefs.AreaOrder = map[string][]string{}
	}
	if prefs.HiddenWidgets == nil {
		prefs.HiddenWidgets = map[string]bool{}
	}
	return prefs
}
