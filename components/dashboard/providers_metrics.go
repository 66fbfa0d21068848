package dashboard

import (
	"context"
	"errors"
	"math"

	"github.com/goliatone/go-chartview/pkg/metrics"
	"github.com/goliatone/go-chartview/pkg/tabular"
)

var errNoSnapshotReader = errors.New("dashboard: snapshot reader not configured")

var sliceColors = []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#ec4899", "#14b8a6"}

func readSnapshot(ctx context.Context, snapshots SnapshotReader, cfg map[string]any) (Snapshot, error) {
	if snapshots == nil {
		return Snapshot{}, errNoSnapshotReader
	}
	return snapshots.Snapshot(ctx, settings(cfg).String("dataset", DefaultDataset))
}

// NewPieShareProvider renders each record's share of the total of value_key.
func NewPieShareProvider(snapshots SnapshotReader) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		cfg := meta.Instance.Configuration
		snapshot, err := readSnapshot(ctx, snapshots, cfg)
		if err != nil {
			return nil, err
		}
		valueKey := settings(cfg).String("value_key", "revenue")
		labelKey := settings(cfg).String("label_key", "")
		radius := settings(cfg).Float("radius", 80)
		circumference := 2 * math.Pi * radius

		shares := tabular.DerivePieShares(snapshot.Products, valueKey, labelKey)
		slices := make([]map[string]any, len(shares))
		offset := 0.0
		for i, share := range shares {
			length := share.PercentageOfTotal / 100 * circumference
			slices[i] = map[string]any{
				"key":        share.Key,
				"value":      share.Value,
				"percentage": share.PercentageOfTotal,
				"color":      sliceColors[i%len(sliceColors)],
				"dash":       length,
				"offset":     -offset,
			}
			offset += length
		}
		return WidgetData{
			"title":         settings(cfg).String("title", "Share"),
			"version":       snapshot.Version,
			"value_key":     valueKey,
			"radius":        radius,
			"circumference": circumference,
			"slices":        slices,
		}, nil
	})
}

// NewMetricCardsProvider renders the headline metric cards. Icon and color come from the
// card kind, never from its label.
func NewMetricCardsProvider(snapshots SnapshotReader) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		snapshot, err := readSnapshot(ctx, snapshots, meta.Instance.Configuration)
		if err != nil {
			return nil, err
		}
		cards := make([]map[string]any, len(snapshot.Cards))
		for i, card := range snapshot.Cards {
			desc := card.Kind.Descriptor()
			cards[i] = map[string]any{
				"kind":   card.Kind.String(),
				"label":  card.Label,
				"value":  card.Value,
				"change": card.Change,
				"trend":  string(card.Trend()),
				"icon":   desc.Icon,
				"color":  desc.Color,
			}
		}
		return WidgetData{"version": snapshot.Version, "cards": cards}, nil
	})
}

// NewGoalsProvider renders goal progress bars.
func NewGoalsProvider(snapshots SnapshotReader) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		snapshot, err := readSnapshot(ctx, snapshots, meta.Instance.Configuration)
		if err != nil {
			return nil, err
		}
		goals := make([]map[string]any, len(snapshot.Goals))
		for i, goal := range snapshot.Goals {
			pct := goal.Progress()
			goals[i] = map[string]any{
				"label":     goal.Label,
				"current":   goal.Current,
				"target":    goal.Target,
				"remaining": goal.Remaining(),
				"progress":  pct,
				"band":      string(metrics.GoalBand(pct)),
			}
		}
		return WidgetData{
			"title":   settings(meta.Instance.Configuration).String("title", "Monthly Goals"),
			"version": snapshot.Version,
			"goals":   goals,
		}, nil
	})
}

// NewQuickStatsProvider renders the weekly quick stats with their average and peak.
func NewQuickStatsProvider(snapshots SnapshotReader) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		snapshot, err := readSnapshot(ctx, snapshots, meta.Instance.Configuration)
		if err != nil {
			return nil, err
		}
		values := make([]float64, len(snapshot.QuickStats))
		for i, stat := range snapshot.QuickStats {
			values[i] = stat.Value
		}
		summary := metrics.Summarize(values)
		data := WidgetData{
			"title":   settings(meta.Instance.Configuration).String("title", "Quick Stats"),
			"version": snapshot.Version,
			"stats":   snapshot.QuickStats,
			"total":   summary.Total,
			"average": summary.Average,
		}
		if summary.Peak >= 0 {
			peak := snapshot.QuickStats[summary.Peak]
			data["peak"] = map[string]any{"name": peak.Name, "value": peak.Value}
		}
		return data, nil
	})
}

// NewRecentActivityProvider renders the newest activity entries.
func NewRecentActivityProvider(snapshots SnapshotReader) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		cfg := meta.Instance.Configuration
		snapshot, err := readSnapshot(ctx, snapshots, cfg)
		if err != nil {
			return nil, err
		}
		limit := settings(cfg).Int("limit", 10)
		if limit <= 0 {
			limit = 10
		}
		items := snapshot.Activity
		if len(items) > limit {
			items = items[:limit]
		}
		payload := make([]map[string]any, len(items))
		for i, item := range items {
			desc := item.Kind.Descriptor()
			payload[i] = map[string]any{
				"kind":    item.Kind.String(),
				"message": item.Message,
				"ago":     item.Ago,
				"icon":    desc.Icon,
				"color":   desc.Color,
			}
		}
		return WidgetData{
			"title":   settings(cfg).String("title", "Recent Activity"),
			"version": snapshot.Version,
			"items":   payload,
		}, nil
	})
}
