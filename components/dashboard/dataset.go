package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-chartview/pkg/metrics"
	"github.com/goliatone/go-chartview/pkg/tabular"
)

// DefaultDataset is the dataset name used when a widget does not configure one.
const DefaultDataset = "default"

var (
	// ErrUnknownDataset is returned when no snapshot is stored under a dataset name.
	ErrUnknownDataset = errors.New("dashboard: unknown dataset")
	// ErrStaleSnapshot is returned when a refresh completes after a newer one was issued.
	ErrStaleSnapshot = errors.New("dashboard: stale snapshot discarded")
)

// SeriesRow is one date of the time series with a value per metric
// (revenue, users, orders, ...).
type SeriesRow struct {
	Date   string             `json:"date" yaml:"date"`
	Values map[string]float64 `json:"values" yaml:",inline"`
}

// QuickStat is a labelled value of the weekly quick stats card.
type QuickStat struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// ActivityItem is an entry of the activity feed; Kind is assigned at ingestion.
type ActivityItem struct {
	Kind    metrics.Kind `json:"kind" yaml:"kind"`
	Message string       `json:"message" yaml:"message"`
	Ago     string       `json:"ago" yaml:"ago"`
}

// Snapshot is a complete, immutable copy of every record the dashboard renders.
// Readers never observe a partially refreshed snapshot.
type Snapshot struct {
	Version    string           `json:"version" yaml:"-"`
	CapturedAt time.Time        `json:"captured_at" yaml:"-"`
	Series     []SeriesRow      `json:"series" yaml:"series"`
	Products   []tabular.Record `json:"products" yaml:"products"`
	Cards      []metrics.Card   `json:"cards" yaml:"cards"`
	Goals      []metrics.Goal   `json:"goals" yaml:"goals"`
	QuickStats []QuickStat      `json:"quick_stats" yaml:"quick_stats"`
	Activity   []ActivityItem   `json:"activity" yaml:"activity"`
}

// Clone deep-copies the snapshot so callers can modify the result freely.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Series = make([]SeriesRow, len(s.Series))
	for i, row := range s.Series {
		values := make(map[string]float64, len(row.Values))
		for k, v := range row.Values {
			values[k] = v
		}
		out.Series[i] = SeriesRow{Date: row.Date, Values: values}
	}
	out.Products = make([]tabular.Record, len(s.Products))
	for i, rec := range s.Products {
		cloned := make(tabular.Record, len(rec))
		for k, v := range rec {
			cloned[k] = v
		}
		out.Products[i] = cloned
	}
	out.Cards = append([]metrics.Card(nil), s.Cards...)
	out.Goals = append([]metrics.Goal(nil), s.Goals...)
	out.QuickStats = append([]QuickStat(nil), s.QuickStats...)
	out.Activity = append([]ActivityItem(nil), s.Activity...)
	return out
}

// SnapshotReader exposes the current snapshot of a dataset to providers.
type SnapshotReader interface {
	Snapshot(ctx context.Context, dataset string) (Snapshot, error)
}

// SnapshotLoader produces fresh snapshots during a refresh.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, dataset string) (Snapshot, error)
}

// SnapshotLoaderFunc adapts a function into a SnapshotLoader.
type SnapshotLoaderFunc func(ctx context.Context, dataset string) (Snapshot, error)

// LoadSnapshot calls f.
func (f SnapshotLoaderFunc) LoadSnapshot(ctx context.Context, dataset string) (Snapshot, error) {
	return f(ctx, dataset)
}

// DatasetStore keeps the current snapshot per dataset. Refreshes swap whole snapshots
// and only the most recently issued refresh may be applied.
type DatasetStore struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
	pending   map[string]string
	delay     time.Duration
	now       func() time.Time
}

// DatasetOption customizes a DatasetStore.
type DatasetOption func(*DatasetStore)

// WithRefreshDelay simulates network latency before a refreshed snapshot is applied.
func WithRefreshDelay(delay time.Duration) DatasetOption {
	return func(s *DatasetStore) {
		if delay >= 0 {
			s.delay = delay
		}
	}
}

// WithClock overrides the time source used to stamp snapshots.
func WithClock(now func() time.Time) DatasetOption {
	return func(s *DatasetStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewDatasetStore builds an empty store.
func NewDatasetStore(opts ...DatasetOption) *DatasetStore {
	store := &DatasetStore{
		snapshots: map[string]Snapshot{},
		pending:   map[string]string{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Put stores snapshot under dataset, assigning a new version, and returns the stored copy.
func (s *DatasetStore) Put(dataset string, snapshot Snapshot) Snapshot {
	dataset = datasetName(dataset)
	stored := snapshot.Clone()
	stored.Version = uuid.NewString()
	stored.CapturedAt = s.now().UTC()
	s.mu.Lock()
	s.snapshots[dataset] = stored
	delete(s.pending, dataset)
	s.mu.Unlock()
	return stored.Clone()
}

// Snapshot returns a copy of the current snapshot of dataset.
func (s *DatasetStore) Snapshot(_ context.Context, dataset string) (Snapshot, error) {
	dataset = datasetName(dataset)
	s.mu.RLock()
	snapshot, ok := s.snapshots[dataset]
	s.mu.RUnlock()
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrUnknownDataset, dataset)
	}
	return snapshot.Clone(), nil
}

// Datasets lists the stored dataset names.
func (s *DatasetStore) Datasets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.snapshots))
	for name := range s.snapshots {
		names = append(names, name)
	}
	return names
}

// Begin issues a refresh token for dataset. Any previously issued token becomes stale.
func (s *DatasetStore) Begin(dataset string) string {
	dataset = datasetName(dataset)
	token := uuid.NewString()
	s.mu.Lock()
	s.pending[dataset] = token
	s.mu.Unlock()
	return token
}

// Apply stores snapshot if token is still the latest refresh issued for dataset.
func (s *DatasetStore) Apply(dataset, token string, snapshot Snapshot) (Snapshot, error) {
	dataset = datasetName(dataset)
	stored := snapshot.Clone()
	stored.Version = token
	stored.CapturedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending[dataset] != token {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrStaleSnapshot, dataset)
	}
	delete(s.pending, dataset)
	s.snapshots[dataset] = stored
	return stored.Clone(), nil
}

// Refresh loads a new snapshot after the configured delay and applies it unless a newer
// refresh was issued in the meantime.
func (s *DatasetStore) Refresh(ctx context.Context, dataset string, loader SnapshotLoader) (Snapshot, error) {
	if loader == nil {
		return Snapshot{}, errors.New("dashboard: snapshot loader is required")
	}
	dataset = datasetName(dataset)
	token := s.Begin(dataset)

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Snapshot{}, ctx.Err()
		case <-timer.C:
		}
	}

	snapshot, err := loader.LoadSnapshot(ctx, dataset)
	if err != nil {
		return Snapshot{}, fmt.Errorf("dashboard: load dataset %s: %w", dataset, err)
	}
	return s.Apply(dataset, token, snapshot)
}

func datasetName(name string) string {
	if name == "" {
		return DefaultDataset
	}
	return name
}
