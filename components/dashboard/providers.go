package dashboard

import "fmt"

// RegisterDefaultProviders binds the built-in widget definitions to providers reading
// from snapshots. Codes that already have a provider are left untouched.
func RegisterDefaultProviders(reg *Registry, snapshots SnapshotReader, views ViewStateStore) error {
	providers := map[string]Provider{
		WidgetLineChart:      NewLineChartProvider(snapshots),
		WidgetDataTable:      NewTableProvider(snapshots, views),
		WidgetPieShare:       NewPieShareProvider(snapshots),
		WidgetMetricCards:    NewMetricCardsProvider(snapshots),
		WidgetGoals:          NewGoalsProvider(snapshots),
		WidgetQuickStats:     NewQuickStatsProvider(snapshots),
		WidgetRecentActivity: NewRecentActivityProvider(snapshots),
		WidgetEChartLine:     NewEChartsProvider("line", snapshots),
		WidgetEChartBar:      NewEChartsProvider("bar", snapshots),
		WidgetEChartPie:      NewEChartsProvider("pie", snapshots),
	}
	for code, provider := range providers {
		if _, ok := reg.Provider(code); ok {
			continue
		}
		if _, ok := reg.Definition(code); !ok {
			continue
		}
		if err := reg.RegisterProvider(code, provider); err != nil {
			return fmt.Errorf("dashboard: register provider %s: %w", code, err)
		}
	}
	return nil
}
