package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-chartview/components/dashboard"
)

type scaffoldCmd struct {
	Code         string   `required:"" help:"Fully-qualified widget code (e.g. acme.widget.heatmap)."`
	Name         string   `required:"" help:"Display name for the widget."`
	Description  string   `required:"" help:"One-line description used in manifests."`
	Category     string   `default:"custom" help:"Widget category (charts, tables, stats, ...)."`
	ManifestPath string   `required:"" type:"path" name:"manifest" help:"Manifest YAML file to update (created when missing)."`
	SchemaPath   string   `type:"path" name:"schema" help:"Optional JSON schema file for the widget configuration."`
	Tag          []string `help:"Tags recorded in the manifest (repeatable)."`
	Capabilities []string `help:"Provider capability labels (html,json,hover,...)."`
	ProviderOut  string   `name:"provider-out" help:"Provider stub path (defaults to components/dashboard/providers_<slug>.go)."`
	Overwrite    bool     `help:"Replace an existing manifest entry or provider stub."`
	SkipProvider bool     `name:"skip-provider" help:"Only update the manifest."`
}

func (cmd *scaffoldCmd) Run(rc *runContext) error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("chartctl: widget code %s must contain at least one '.' segment", cmd.Code)
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("chartctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	providerType := deriveBaseName(cmd.Code) + "Provider"
	entry := dashboard.ManifestWidget{
		Definition: dashboard.WidgetDefinition{
			Code:        cmd.Code,
			Name:        cmd.Name,
			Description: cmd.Description,
			Category:    cmd.Category,
			Schema:      schema,
		},
		Provider: dashboard.ManifestProvider{
			Name:         providerType,
			Summary:      cmd.Description,
			Capabilities: cmd.Capabilities,
		},
		Tags: cmd.Tag,
	}

	idx := slices.IndexFunc(doc.Widgets, func(w dashboard.ManifestWidget) bool {
		return w.Definition.Code == cmd.Code
	})
	switch {
	case idx >= 0 && !cmd.Overwrite:
		return fmt.Errorf("chartctl: manifest already defines widget %s (use --overwrite to replace)", cmd.Code)
	case idx >= 0:
		doc.Widgets[idx] = entry
	default:
		doc.Widgets = append(doc.Widgets, entry)
	}
	slices.SortFunc(doc.Widgets, func(a, b dashboard.ManifestWidget) int {
		return strings.Compare(a.Definition.Code, b.Definition.Code)
	})
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}

	if cmd.SkipProvider {
		fmt.Fprintf(rc.out, "✓ Added %s to %s\n", cmd.Code, manifestPath)
		return nil
	}
	providerPath := cmd.ProviderOut
	if providerPath == "" {
		providerPath = filepath.Join("components", "dashboard", fmt.Sprintf("providers_%s.go", strcase.ToSnake(deriveBaseName(cmd.Code))))
	}
	if err := writeProviderStub(providerPath, providerType, cmd.Code, cmd.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(rc.out, "✓ Added %s to %s and generated %s\n", cmd.Code, manifestPath, providerPath)
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{"dataset": map[string]any{"type": "string"}},
		}, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("chartctl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("chartctl: parse schema JSON: %w", err)
	}
	return schema, nil
}

func loadOrInitManifest(path string) (*dashboard.WidgetManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &dashboard.WidgetManifestDocument{
				Version: dashboard.ManifestVersion,
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("chartctl: stat manifest: %w", err)
	}
	return dashboard.ReadManifest(path)
}

func writeManifest(path string, doc *dashboard.WidgetManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("chartctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("chartctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("chartctl: write manifest: %w", err)
	}
	return nil
}

func writeProviderStub(path, providerType, code string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("chartctl: provider stub %s already exists (use --overwrite or --provider-out)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("chartctl: mkdir provider dir: %w", err)
	}
	content := fmt.Sprintf(`package dashboard

import "context"

// %[1]s fetches data for %[2]s widgets.
type %[1]s struct {
	snapshots SnapshotReader
}

// New%[1]s reads from the dataset store.
func New%[1]s(snapshots SnapshotReader) Provider {
	return &%[1]s{snapshots: snapshots}
}

// Fetch returns the widget payload for the configured dataset.
func (p *%[1]s) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	snapshot, err := p.snapshots.Snapshot(ctx, stringValue(meta.Instance.Configuration["dataset"], DefaultDataset))
	if err != nil {
		return nil, err
	}
	return WidgetData{"version": snapshot.Version, "series": snapshot.Series}, nil
}
`, providerType, code)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("chartctl: write provider stub: %w", err)
	}
	return nil
}

func deriveBaseName(code string) string {
	parts := strings.Split(code, ".")
	slug := strings.TrimSpace(parts[len(parts)-1])
	if slug == "" {
		slug = code
	}
	return strcase.ToCamel(slug)
}
