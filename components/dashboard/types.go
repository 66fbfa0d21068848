package dashboard

import (
	"context"
)

// ProviderRegistry stores widget definitions/providers discoverable via hooks or manifests.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (WidgetDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []WidgetDefinition
	DefinitionsIn(category string) []WidgetDefinition
}

// RefreshHook notifies transports (REST/WebSocket) about widget and dataset changes.
type RefreshHook interface {
	WidgetUpdated(ctx context.Context, event WidgetEvent) error
}

// WidgetDefinition describes a widget type and its configuration schema.
type WidgetDefinition struct {
	Code        string         `json:"code" yaml:"code"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
}

// WidgetInstance is a configured widget placed in a dashboard area.
type WidgetInstance struct {
	ID            string         `json:"id" yaml:"id"`
	DefinitionID  string         `json:"definition_id" yaml:"definition"`
	AreaCode      string         `json:"area_code,omitempty" yaml:"area,omitempty"`
	Configuration map[string]any `json:"configuration,omitempty" yaml:"configuration,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty" yaml:"-"`
}

// ViewerContext captures the active user/locale information needed to render dashboards.
type ViewerContext struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles,omitempty"`
	Locale string   `json:"locale,omitempty"`
}

// Layout describes the widget instances per dashboard area.
type Layout struct {
	Areas map[string][]WidgetInstance `json:"areas"`
}

// WidgetEvent describes changes that transports might care about.
type WidgetEvent struct {
	AreaCode string         `json:"area_code,omitempty"`
	Instance WidgetInstance `json:"instance"`
	Reason   string         `json:"reason"`
	Dataset  string         `json:"dataset,omitempty"`
	Version  string         `json:"version,omitempty"`
}
