package dashboard

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestVersion is the supported manifest format version.
const ManifestVersion = "1"

// WidgetManifestDocument is a YAML manifest describing extra widget definitions, the
// dashboard layout and the dataset fixtures to load.
type WidgetManifestDocument struct {
	Version  string                      `json:"version" yaml:"version"`
	Name     string                      `json:"name,omitempty" yaml:"name,omitempty"`
	Widgets  []ManifestWidget            `json:"widgets,omitempty" yaml:"widgets,omitempty"`
	Layout   map[string][]WidgetInstance `json:"layout,omitempty" yaml:"layout,omitempty"`
	Datasets map[string]string           `json:"datasets,omitempty" yaml:"datasets,omitempty"`
	Source   string                      `json:"-" yaml:"-"`
}

// ManifestWidget describes a single widget entry within a manifest.
type ManifestWidget struct {
	Definition WidgetDefinition `json:"definition" yaml:"definition"`
	Provider   ManifestProvider `json:"provider,omitempty" yaml:"provider,omitempty"`
	Tags       []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ManifestProvider captures discovery metadata about a provider implementation.
type ManifestProvider struct {
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	Summary      string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
}

// LoadManifestDocument registers definitions and provider metadata from a decoded manifest.
func (r *Registry) LoadManifestDocument(doc *WidgetManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("dashboard: manifest document is nil")
	}
	for _, widget := range doc.Widgets {
		if err := r.RegisterDefinition(widget.Definition); err != nil {
			return fmt.Errorf("dashboard: register widget %s from %s: %w", widget.Definition.Code, doc.Source, err)
		}
		r.recordProviderMetadata(widget.Definition.Code, widget.Provider)
	}
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*WidgetManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader. Unknown fields are rejected.
func DecodeManifest(r io.Reader) (*WidgetManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc WidgetManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dashboard: manifest is empty")
		}
		return nil, fmt.Errorf("dashboard: parse manifest: %w", err)
	}
	if doc.Version == "" {
		doc.Version = ManifestVersion
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *WidgetManifestDocument) Validate() error {
	if doc.Version != ManifestVersion {
		return fmt.Errorf("dashboard: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Widgets))
	for idx, widget := range doc.Widgets {
		if widget.Definition.Code == "" {
			return fmt.Errorf("dashboard: manifest widget at index %d is missing definition.code", idx)
		}
		if widget.Definition.Name == "" {
			return fmt.Errorf("dashboard: manifest widget %s missing definition.name", widget.Definition.Code)
		}
		if _, exists := seen[widget.Definition.Code]; exists {
			return fmt.Errorf("dashboard: manifest duplicates widget code %s", widget.Definition.Code)
		}
		seen[widget.Definition.Code] = struct{}{}
	}
	ids := map[string]struct{}{}
	for area, widgets := range doc.Layout {
		for idx, w := range widgets {
			if w.ID == "" {
				return fmt.Errorf("dashboard: layout %s widget at index %d is missing id", area, idx)
			}
			if w.DefinitionID == "" {
				return fmt.Errorf("dashboard: layout widget %s is missing definition", w.ID)
			}
			if _, exists := ids[w.ID]; exists {
				return fmt.Errorf("dashboard: layout duplicates widget id %s", w.ID)
			}
			ids[w.ID] = struct{}{}
		}
	}
	return nil
}

// LayoutValue returns the manifest layout, or nil when the manifest does not define one.
func (doc *WidgetManifestDocument) LayoutValue() *Layout {
	if len(doc.Layout) == 0 {
		return nil
	}
	layout := Layout{Areas: make(map[string][]WidgetInstance, len(doc.Layout))}
	for area, widgets := range doc.Layout {
		out := make([]WidgetInstance, len(widgets))
		for i, w := range widgets {
			w = copyInstance(w)
			w.AreaCode = area
			out[i] = w
		}
		layout.Areas[area] = out
	}
	return &layout
}

// DatasetPath resolves a dataset fixture path relative to the manifest file.
func (doc *WidgetManifestDocument) DatasetPath(name string) (string, bool) {
	path, ok := doc.Datasets[name]
	if !ok || path == "" {
		return "", false
	}
	if filepath.IsAbs(path) || doc.Source == "" {
		return path, true
	}
	return filepath.Join(filepath.Dir(doc.Source), path), true
}

func (p ManifestProvider) isZero() bool {
	return p.Name == "" && p.Summary == "" && len(p.Capabilities) == 0
}

// VerifyManifest checks that every dataset fixture of doc loads and every layout widget
// names a known definition (built-in or declared by the manifest) whose schema accepts
// its configuration.
func VerifyManifest(doc *WidgetManifestDocument) error {
	reg := NewRegistry()
	if err := reg.LoadManifestDocument(doc); err != nil {
		return err
	}
	for name := range doc.Datasets {
		path, ok := doc.DatasetPath(name)
		if !ok {
			return fmt.Errorf("dashboard: dataset %s has no fixture path", name)
		}
		if _, err := ReadSnapshot(path); err != nil {
			return fmt.Errorf("dashboard: dataset %s: %w", name, err)
		}
	}
	layout := doc.LayoutValue()
	if layout == nil {
		return nil
	}
	validator := NewJSONSchemaValidator()
	for _, widgets := range layout.Areas {
		for _, w := range widgets {
			def, ok := reg.Definition(w.DefinitionID)
			if !ok {
				return fmt.Errorf("%w: widget %s uses definition %s", ErrUnknownWidget, w.ID, w.DefinitionID)
			}
			if err := validator.Validate(def, w.Configuration); err != nil {
				return fmt.Errorf("dashboard: widget %s: %w", w.ID, err)
			}
			if dataset := settings(w.Configuration).String("dataset", DefaultDataset); dataset != DefaultDataset {
				if _, ok := doc.Datasets[dataset]; !ok {
					return fmt.Errorf("%w: widget %s reads %s", ErrUnknownDataset, w.ID, dataset)
				}
			}
		}
	}
	return nil
}
