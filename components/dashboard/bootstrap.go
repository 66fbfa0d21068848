package dashboard

import (
	"context"
	"fmt"
	"time"
)

// BootstrapOptions configures Bootstrap.
type BootstrapOptions struct {
	// ManifestPath optionally points at a YAML manifest (widgets, layout, datasets).
	ManifestPath string
	// FixturePath optionally replaces the built-in default dataset.
	FixturePath string
	// RefreshDelay simulates network latency during refreshes.
	RefreshDelay time.Duration
	// Jitter is the maximum relative change applied by the mock loader (0.1 = ±10%).
	Jitter float64
	Seed   uint64
	// WrapLoader decorates the fixture-backed mock loader, e.g. to prefer a remote source
	// and fall back to the fixtures.
	WrapLoader func(SnapshotLoader) SnapshotLoader

	RefreshHook   RefreshHook
	Telemetry     Telemetry
	ThemeResolver ThemeResolver
}

// Runtime bundles the collaborators assembled by Bootstrap.
type Runtime struct {
	Service  *Service
	Registry *Registry
	Datasets *DatasetStore
	Views    *InMemoryViewStateStore
	Manifest *WidgetManifestDocument
	Loader   SnapshotLoader
}

// Bootstrap assembles a ready-to-serve dashboard: registry (hooks + manifest), dataset
// store seeded from fixtures, default providers and a mock refresh loader.
func Bootstrap(opts BootstrapOptions) (*Runtime, error) {
	reg := NewRegistry()
	if err := reg.ApplyHooks(); err != nil {
		return nil, fmt.Errorf("dashboard: apply widget hooks: %w", err)
	}

	rt := &Runtime{
		Registry: reg,
		Datasets: NewDatasetStore(WithRefreshDelay(opts.RefreshDelay)),
		Views:    NewInMemoryViewStateStore(),
	}

	bases := map[string]Snapshot{}
	if opts.ManifestPath != "" {
		doc, err := ReadManifest(opts.ManifestPath)
		if err != nil {
			return nil, err
		}
		if err := reg.LoadManifestDocument(doc); err != nil {
			return nil, err
		}
		for name := range doc.Datasets {
			path, _ := doc.DatasetPath(name)
			snapshot, err := ReadSnapshot(path)
			if err != nil {
				return nil, err
			}
			bases[name] = snapshot
		}
		rt.Manifest = doc
	}
	if opts.FixturePath != "" {
		snapshot, err := ReadSnapshot(opts.FixturePath)
		if err != nil {
			return nil, err
		}
		bases[DefaultDataset] = snapshot
	}
	if _, ok := bases[DefaultDataset]; !ok {
		bases[DefaultDataset] = DefaultSnapshot()
	}

	loaders := make(map[string]*MockLoader, len(bases))
	for name, snapshot := range bases {
		rt.Datasets.Put(name, snapshot)
		loaders[name] = NewMockLoader(snapshot, opts.Jitter, opts.Seed)
	}

	if err := RegisterDefaultProviders(reg, rt.Datasets, rt.Views); err != nil {
		return nil, err
	}
	if unbound := reg.Unbound(); len(unbound) > 0 {
		normalizeTelemetry(opts.Telemetry).Record(context.Background(), "dashboard.registry.unbound", map[string]any{
			"codes": unbound,
		})
	}

	var loader SnapshotLoader = SnapshotLoaderFunc(func(ctx context.Context, dataset string) (Snapshot, error) {
		mock, ok := loaders[dataset]
		if !ok {
			return Snapshot{}, fmt.Errorf("%w: %s", ErrUnknownDataset, dataset)
		}
		return mock.LoadSnapshot(ctx, dataset)
	})
	if opts.WrapLoader != nil {
		loader = opts.WrapLoader(loader)
	}
	rt.Loader = loader

	svcOpts := Options{
		Providers:     reg,
		Datasets:      rt.Datasets,
		Loader:        loader,
		Views:         rt.Views,
		RefreshHook:   opts.RefreshHook,
		Telemetry:     opts.Telemetry,
		ThemeResolver: opts.ThemeResolver,
	}
	if rt.Manifest != nil {
		svcOpts.Layout = rt.Manifest.LayoutValue()
	}
	rt.Service = NewService(svcOpts)
	return rt, nil
}
