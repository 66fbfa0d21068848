package dashboard

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	errDefinitionCode   = errors.New("dashboard: widget definition code is required")
	errProviderRequired = errors.New("dashboard: provider is required")
)

// WidgetHook lets packages contribute chart or table widgets during init(). Hooks run
// against every registry built by Bootstrap.
type WidgetHook func(reg *Registry) error

var (
	hooksMu sync.Mutex
	hooks   []WidgetHook
)

// RegisterWidgetHook queues h for ApplyHooks.
func RegisterWidgetHook(h WidgetHook) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	hooks = append(hooks, h)
}

// Registry maps widget codes to their definition, the provider that renders them and
// any provider metadata declared by a manifest. Definitions may be replaced (manifests
// override built-ins); a provider binding must name a known definition.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]WidgetDefinition
	providers   map[string]Provider
	meta        map[string]ManifestProvider
}

var _ ProviderRegistry = (*Registry)(nil)

// NewRegistry builds a registry holding the built-in chart, table and stat definitions.
// Providers are bound separately (see RegisterDefaultProviders) because they read from
// a dataset store.
func NewRegistry() *Registry {
	reg := &Registry{
		definitions: map[string]WidgetDefinition{},
		providers:   map[string]Provider{},
		meta:        map[string]ManifestProvider{},
	}
	for _, def := range DefaultWidgetDefinitions() {
		reg.definitions[def.Code] = def
	}
	return reg
}

// ApplyHooks runs every hook queued with RegisterWidgetHook, stopping at the first error.
func (r *Registry) ApplyHooks() error {
	hooksMu.Lock()
	pending := slices.Clone(hooks)
	hooksMu.Unlock()
	for i, hook := range pending {
		if err := hook(r); err != nil {
			return fmt.Errorf("dashboard: widget hook %d: %w", i, err)
		}
	}
	return nil
}

// RegisterDefinition stores or replaces a widget definition.
func (r *Registry) RegisterDefinition(def WidgetDefinition) error {
	if strings.TrimSpace(def.Code) == "" {
		return errDefinitionCode
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Code] = def
	return nil
}

// RegisterProvider binds a provider to a registered definition.
func (r *Registry) RegisterProvider(code string, provider Provider) error {
	if code == "" {
		return errDefinitionCode
	}
	if provider == nil {
		return fmt.Errorf("%w: %s", errProviderRequired, code)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[code]; !ok {
		return fmt.Errorf("%w: definition %s", ErrUnknownWidget, code)
	}
	r.providers[code] = provider
	return nil
}

func (r *Registry) Definition(code string) (WidgetDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

func (r *Registry) Provider(code string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[code]
	return provider, ok
}

// ProviderMetadata returns the manifest metadata recorded for a widget.
func (r *Registry) ProviderMetadata(code string) (ManifestProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.meta[code]
	return meta, ok
}

// Definitions returns every definition ordered by code.
func (r *Registry) Definitions() []WidgetDefinition {
	return r.collect(func(WidgetDefinition) bool { return true })
}

// DefinitionsIn returns the definitions of one category ordered by code.
func (r *Registry) DefinitionsIn(category string) []WidgetDefinition {
	return r.collect(func(def WidgetDefinition) bool { return def.Category == category })
}

// Unbound lists the codes of definitions that have no provider, ordered by code.
func (r *Registry) Unbound() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var codes []string
	for code := range r.definitions {
		if _, ok := r.providers[code]; !ok {
			codes = append(codes, code)
		}
	}
	slices.Sort(codes)
	return codes
}

func (r *Registry) collect(keep func(WidgetDefinition) bool) []WidgetDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]WidgetDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		if keep(def) {
			defs = append(defs, def)
		}
	}
	slices.SortFunc(defs, func(a, b WidgetDefinition) int { return strings.Compare(a.Code, b.Code) })
	return defs
}

func (r *Registry) recordProviderMetadata(code string, meta ManifestProvider) {
	if meta.isZero() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meta[code] = meta
}
