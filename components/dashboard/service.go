package dashboard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrUnknownWidget is returned when no widget instance or definition matches an id.
	ErrUnknownWidget = errors.New("dashboard: unknown widget")
	// ErrWidgetIDRequired is returned when a request does not name a widget instance.
	ErrWidgetIDRequired = errors.New("dashboard: widget id is required")
	// ErrInvalidPointer is returned for hover positions that are NaN or infinite.
	ErrInvalidPointer = errors.New("dashboard: pointer position must be finite")

	errInvalidArea        = errors.New("dashboard: area code is required")
	errInvalidDefinition  = errors.New("dashboard: definition id is required")
	errMissingLoader      = errors.New("dashboard: snapshot loader not configured")
	errTableUnsupported   = errors.New("dashboard: widget does not support table interaction")
	errHoverUnsupported   = errors.New("dashboard: widget does not support hover")
	errProviderNotBound   = errors.New("dashboard: widget has no provider")
	errWidgetIDsRequired  = errors.New("dashboard: widget ids are required")
	errDuplicateWidgetID  = errors.New("dashboard: widget id already in use")
	errDatasetStoreNeeded = errors.New("dashboard: dataset store not configured")
	errUnknownArea        = errors.New("dashboard: unknown area")
)

// DatasetRefresher reads snapshots and refreshes them from a loader.
type DatasetRefresher interface {
	SnapshotReader
	Refresh(ctx context.Context, dataset string, loader SnapshotLoader) (Snapshot, error)
}

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	Providers       ProviderRegistry
	Datasets        DatasetRefresher
	Loader          SnapshotLoader
	Views           ViewStateStore
	PreferenceStore PreferenceStore
	ConfigValidator ConfigValidator
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	Theme           Theme
	ThemeResolver   ThemeResolver
	Layout          *Layout
	Areas           []string
}

// Service resolves widget payloads for viewers, routes table and chart interactions to
// their providers and refreshes datasets.
type Service struct {
	opts   Options
	mu     sync.RWMutex
	layout map[string][]WidgetInstance
}

// NewService builds a Service instance with safe defaults. When no registry is supplied
// the default widgets are registered against opts.Datasets.
func NewService(opts Options) *Service {
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Views == nil {
		opts.Views = NewInMemoryViewStateStore()
	}
	if opts.Providers == nil {
		reg := NewRegistry()
		if opts.Datasets != nil {
			_ = RegisterDefaultProviders(reg, opts.Datasets, opts.Views)
		}
		opts.Providers = reg
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	if opts.PreferenceStore == nil {
		opts.PreferenceStore = NewInMemoryPreferenceStore()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)

	layout := DefaultLayout()
	if opts.Layout != nil {
		layout = *opts.Layout
	}
	s := &Service{opts: opts, layout: map[string][]WidgetInstance{}}
	for area, widgets := range layout.Areas {
		list := make([]WidgetInstance, len(widgets))
		for i, w := range widgets {
			w = copyInstance(w)
			w.AreaCode = area
			list[i] = w
		}
		s.layout[area] = list
	}
	return s
}

// AddWidgetRequest captures the data required to place a widget.
type AddWidgetRequest struct {
	ID            string         `json:"id,omitempty"`
	DefinitionID  string         `json:"definition_id"`
	AreaCode      string         `json:"area_code"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Position      *int           `json:"position,omitempty"`
}

// AddWidget validates the configuration against the definition schema and places the
// widget in an area.
func (s *Service) AddWidget(ctx context.Context, req AddWidgetRequest) (WidgetInstance, error) {
	if req.AreaCode == "" {
		return WidgetInstance{}, errInvalidArea
	}
	if !slices.Contains(s.areaList(), req.AreaCode) {
		return WidgetInstance{}, fmt.Errorf("%w: %s", errUnknownArea, req.AreaCode)
	}
	if req.DefinitionID == "" {
		return WidgetInstance{}, errInvalidDefinition
	}
	def, ok := s.opts.Providers.Definition(req.DefinitionID)
	if !ok {
		return WidgetInstance{}, fmt.Errorf("%w: definition %s", ErrUnknownWidget, req.DefinitionID)
	}
	if err := s.opts.ConfigValidator.Validate(def, req.Configuration); err != nil {
		return WidgetInstance{}, err
	}
	instance := WidgetInstance{
		ID:            req.ID,
		DefinitionID:  req.DefinitionID,
		AreaCode:      req.AreaCode,
		Configuration: ApplySchemaDefaults(def, req.Configuration),
	}
	if instance.ID == "" {
		instance.ID = uuid.NewString()
	}

	s.mu.Lock()
	if _, _, found := s.findLocked(instance.ID); found {
		s.mu.Unlock()
		return WidgetInstance{}, fmt.Errorf("%w: %s", errDuplicateWidgetID, instance.ID)
	}
	list := s.layout[req.AreaCode]
	pos := len(list)
	if req.Position != nil && *req.Position >= 0 && *req.Position < pos {
		pos = *req.Position
	}
	s.layout[req.AreaCode] = slices.Insert(list, pos, instance)
	s.mu.Unlock()

	if err := s.opts.RefreshHook.WidgetUpdated(ctx, WidgetEvent{
		AreaCode: req.AreaCode,
		Instance: instance,
		Reason:   "add",
	}); err != nil {
		return WidgetInstance{}, err
	}
	s.recordTelemetry(ctx, "dashboard.widget.add", map[string]any{
		"area_code":     req.AreaCode,
		"definition_id": req.DefinitionID,
		"widget_id":     instance.ID,
	})
	return copyInstance(instance), nil
}

// RemoveWidget deletes the widget instance from its area.
func (s *Service) RemoveWidget(ctx context.Context, widgetID string) error {
	if widgetID == "" {
		return ErrWidgetIDRequired
	}
	s.mu.Lock()
	area, idx, found := s.findLocked(widgetID)
	if !found {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownWidget, widgetID)
	}
	instance := s.layout[area][idx]
	s.layout[area] = slices.Delete(s.layout[area], idx, idx+1)
	s.mu.Unlock()

	if err := s.opts.Views.DeleteViews(ctx, widgetID); err != nil {
		return fmt.Errorf("dashboard: drop table state for %s: %w", widgetID, err)
	}

	if err := s.opts.RefreshHook.WidgetUpdated(ctx, WidgetEvent{
		AreaCode: area,
		Instance: instance,
		Reason:   "delete",
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.widget.remove", map[string]any{"widget_id": widgetID})
	return nil
}

// ReorderWidgets changes widget ordering within an area. Ids not listed keep their
// relative order after the listed ones.
func (s *Service) ReorderWidgets(ctx context.Context, areaCode string, widgetIDs []string) error {
	if areaCode == "" {
		return errInvalidArea
	}
	if len(widgetIDs) == 0 {
		return errWidgetIDsRequired
	}
	s.mu.Lock()
	s.layout[areaCode] = applyOrderOverride(s.layout[areaCode], widgetIDs)
	s.mu.Unlock()

	if err := s.opts.RefreshHook.WidgetUpdated(ctx, WidgetEvent{
		AreaCode: areaCode,
		Reason:   "reorder",
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.widget.reorder", map[string]any{
		"area_code": areaCode,
		"count":     len(widgetIDs),
	})
	return nil
}

// ConfigureLayout resolves every area for the viewer, applying preferences and attaching
// provider payloads under Metadata["data"].
func (s *Service) ConfigureLayout(ctx context.Context, viewer ViewerContext) (Layout, error) {
	prefs, err := s.opts.PreferenceStore.LayoutPreferences(ctx, viewer)
	if err != nil {
		return Layout{}, err
	}
	theme := s.resolveTheme(viewer)
	layout := Layout{Areas: make(map[string][]WidgetInstance)}
	for _, area := range s.areaList() {
		widgets := s.areaSnapshot(area)
		widgets = applyOrderOverride(widgets, prefs.AreaOrder[area])
		widgets = applyHiddenFilter(widgets, prefs.HiddenWidgets)
		layout.Areas[area] = s.attachProviderData(ctx, viewer, theme, widgets)
	}
	s.recordTelemetry(ctx, "dashboard.layout.resolve", map[string]any{
		"viewer": viewer.UserID,
	})
	return layout, nil
}

// RenderWidget resolves a single widget payload for the viewer.
func (s *Service) RenderWidget(ctx context.Context, viewer ViewerContext, widgetID string) (WidgetInstance, error) {
	instance, err := s.Widget(widgetID)
	if err != nil {
		return WidgetInstance{}, err
	}
	provider, err := s.provider(instance)
	if err != nil {
		return WidgetInstance{}, err
	}
	data, err := provider.Fetch(ctx, s.widgetContext(viewer, instance))
	if err != nil {
		return WidgetInstance{}, err
	}
	if instance.Metadata == nil {
		instance.Metadata = map[string]any{}
	}
	instance.Metadata["data"] = data
	return instance, nil
}

// Widget returns a copy of the placed widget instance.
func (s *Service) Widget(widgetID string) (WidgetInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	area, idx, found := s.findLocked(widgetID)
	if !found {
		return WidgetInstance{}, fmt.Errorf("%w: %s", ErrUnknownWidget, widgetID)
	}
	return copyInstance(s.layout[area][idx]), nil
}

// SortTable applies a header click to a table widget and returns the re-rendered widget.
func (s *Service) SortTable(ctx context.Context, viewer ViewerContext, widgetID, column string) (WidgetInstance, error) {
	instance, table, err := s.tableWidget(widgetID)
	if err != nil {
		return WidgetInstance{}, err
	}
	view, err := table.Click(ctx, s.widgetContext(viewer, instance), column)
	if err != nil {
		return WidgetInstance{}, err
	}
	s.recordTelemetry(ctx, "dashboard.table.sort", map[string]any{
		"widget_id": widgetID,
		"column":    view.Sort.Key,
		"direction": view.Sort.Direction.String(),
	})
	return s.RenderWidget(ctx, viewer, widgetID)
}

// PageTable moves a table widget to another page and returns the re-rendered widget.
func (s *Service) PageTable(ctx context.Context, viewer ViewerContext, widgetID string, move PageMove) (WidgetInstance, error) {
	instance, table, err := s.tableWidget(widgetID)
	if err != nil {
		return WidgetInstance{}, err
	}
	view, err := table.Navigate(ctx, s.widgetContext(viewer, instance), move)
	if err != nil {
		return WidgetInstance{}, err
	}
	s.recordTelemetry(ctx, "dashboard.table.page", map[string]any{
		"widget_id": widgetID,
		"action":    move.Action,
		"page":      view.Page,
	})
	return s.RenderWidget(ctx, viewer, widgetID)
}

// Hover resolves the chart point nearest to pointerX.
func (s *Service) Hover(ctx context.Context, viewer ViewerContext, widgetID string, pointerX float64) (ChartHover, error) {
	instance, err := s.Widget(widgetID)
	if err != nil {
		return ChartHover{}, err
	}
	provider, err := s.provider(instance)
	if err != nil {
		return ChartHover{}, err
	}
	hover, ok := provider.(HoverProvider)
	if !ok {
		return ChartHover{}, fmt.Errorf("%w: %s", errHoverUnsupported, widgetID)
	}
	return hover.Hover(ctx, s.widgetContext(viewer, instance), pointerX)
}

// RefreshDataset reloads a dataset and notifies the refresh hook once per widget that
// reads from it. A refresh superseded by a newer one returns ErrStaleSnapshot.
func (s *Service) RefreshDataset(ctx context.Context, dataset string) (Snapshot, error) {
	if s.opts.Datasets == nil {
		return Snapshot{}, errDatasetStoreNeeded
	}
	if s.opts.Loader == nil {
		return Snapshot{}, errMissingLoader
	}
	dataset = datasetName(dataset)
	snapshot, err := s.opts.Datasets.Refresh(ctx, dataset, s.opts.Loader)
	if err != nil {
		s.recordTelemetry(ctx, "dashboard.dataset.refresh_failed", map[string]any{
			"dataset": dataset,
			"error":   err.Error(),
		})
		return Snapshot{}, err
	}

	for _, area := range s.areaList() {
		for _, w := range s.areaSnapshot(area) {
			if instanceDataset(w) != dataset {
				continue
			}
			if err := s.opts.RefreshHook.WidgetUpdated(ctx, WidgetEvent{
				AreaCode: area,
				Instance: w,
				Reason:   "refresh",
				Dataset:  dataset,
				Version:  snapshot.Version,
			}); err != nil {
				return Snapshot{}, err
			}
		}
	}
	s.recordTelemetry(ctx, "dashboard.dataset.refresh", map[string]any{
		"dataset": dataset,
		"version": snapshot.Version,
	})
	return snapshot, nil
}

// NotifyWidgetUpdated exposes refresh hook invocation for commands/transports.
func (s *Service) NotifyWidgetUpdated(ctx context.Context, event WidgetEvent) error {
	if err := s.opts.RefreshHook.WidgetUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.widget.event", map[string]any{
		"area_code": event.AreaCode,
		"widget_id": event.Instance.ID,
		"reason":    event.Reason,
	})
	return nil
}

// SavePreferences persists per-viewer layout preferences.
func (s *Service) SavePreferences(ctx context.Context, viewer ViewerContext, prefs LayoutPreferences) error {
	if viewer.UserID == "" {
		return errViewerRequired
	}
	return s.opts.PreferenceStore.SaveLayoutPreferences(ctx, viewer, normalizePreferences(prefs))
}

// Registry exposes the provider registry.
func (s *Service) Registry() ProviderRegistry {
	return s.opts.Providers
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) tableWidget(widgetID string) (WidgetInstance, TableController, error) {
	instance, err := s.Widget(widgetID)
	if err != nil {
		return WidgetInstance{}, nil, err
	}
	provider, err := s.provider(instance)
	if err != nil {
		return WidgetInstance{}, nil, err
	}
	table, ok := provider.(TableController)
	if !ok {
		return WidgetInstance{}, nil, fmt.Errorf("%w: %s", errTableUnsupported, widgetID)
	}
	return instance, table, nil
}

func (s *Service) provider(instance WidgetInstance) (Provider, error) {
	provider, ok := s.opts.Providers.Provider(instance.DefinitionID)
	if !ok || provider == nil {
		return nil, fmt.Errorf("%w: %s", errProviderNotBound, instance.DefinitionID)
	}
	return provider, nil
}

func (s *Service) widgetContext(viewer ViewerContext, instance WidgetInstance) WidgetContext {
	return WidgetContext{
		Instance: instance,
		Viewer:   viewer,
		Theme:    s.resolveTheme(viewer),
	}
}

func (s *Service) resolveTheme(viewer ViewerContext) Theme {
	if s.opts.ThemeResolver != nil {
		return s.opts.ThemeResolver(viewer)
	}
	if s.opts.Theme.name != "" {
		return s.opts.Theme
	}
	return LightTheme()
}

func (s *Service) areaList() []string {
	if len(s.opts.Areas) > 0 {
		return s.opts.Areas
	}
	return defaultAreas
}

func (s *Service) areaSnapshot(area string) []WidgetInstance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.layout[area]
	out := make([]WidgetInstance, len(list))
	for i, w := range list {
		out[i] = copyInstance(w)
	}
	return out
}

func (s *Service) findLocked(widgetID string) (string, int, bool) {
	for area, list := range s.layout {
		for i, w := range list {
			if w.ID == widgetID {
				return area, i, true
			}
		}
	}
	return "", -1, false
}

func (s *Service) attachProviderData(ctx context.Context, viewer ViewerContext, theme Theme, widgets []WidgetInstance) []WidgetInstance {
	for i, inst := range widgets {
		provider, ok := s.opts.Providers.Provider(inst.DefinitionID)
		if !ok || provider == nil {
			continue
		}
		if widgets[i].Metadata == nil {
			widgets[i].Metadata = map[string]any{}
		}
		data, err := provider.Fetch(ctx, WidgetContext{
			Instance: inst,
			Viewer:   viewer,
			Theme:    theme,
		})
		if err != nil {
			s.recordTelemetry(ctx, "dashboard.widget.provider_error", map[string]any{
				"definition_id": inst.DefinitionID,
				"widget_id":     inst.ID,
				"error":         err.Error(),
			})
			widgets[i].Metadata["error"] = err.Error()
			continue
		}
		widgets[i].Metadata["data"] = data
	}
	return widgets
}

type noopRefreshHook struct{}

func (noopRefreshHook) WidgetUpdated(context.Context, WidgetEvent) error {
	return nil
}
