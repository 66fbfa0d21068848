package dashboard

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-chartview/pkg/metrics"
	"github.com/goliatone/go-chartview/pkg/tabular"
)

// DefaultSnapshot returns the demo analytics dataset.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Series: []SeriesRow{
			{Date: "2024-01-01", Values: map[string]float64{"revenue": 12000, "users": 450, "orders": 230}},
			{Date: "2024-01-02", Values: map[string]float64{"revenue": 15000, "users": 520, "orders": 280}},
			{Date: "2024-01-03", Values: map[string]float64{"revenue": 13500, "users": 490, "orders": 250}},
			{Date: "2024-01-04", Values: map[string]float64{"revenue": 18000, "users": 610, "orders": 320}},
			{Date: "2024-01-05", Values: map[string]float64{"revenue": 16500, "users": 580, "orders": 295}},
			{Date: "2024-01-06", Values: map[string]float64{"revenue": 20000, "users": 680, "orders": 350}},
			{Date: "2024-01-07", Values: map[string]float64{"revenue": 22000, "users": 720, "orders": 380}},
		},
		Products: []tabular.Record{
			{"id": "1", "product": "Premium Plan", "sales": 234, "revenue": 23400, "status": "active"},
			{"id": "2", "product": "Basic Plan", "sales": 567, "revenue": 11340, "status": "active"},
			{"id": "3", "product": "Enterprise Plan", "sales": 89, "revenue": 17800, "status": "active"},
			{"id": "4", "product": "Starter Plan", "sales": 432, "revenue": 4320, "status": "pending"},
			{"id": "5", "product": "Pro Plan", "sales": 156, "revenue": 15600, "status": "active"},
			{"id": "6", "product": "Team Plan", "sales": 201, "revenue": 10050, "status": "inactive"},
			{"id": "7", "product": "Education Plan", "sales": 98, "revenue": 2940, "status": "pending"},
		},
		Cards: []metrics.Card{
			{Kind: metrics.Revenue, Label: "Total Revenue", Value: 45231, Change: 12.5},
			{Kind: metrics.Users, Label: "Active Users", Value: 2350, Change: 8.2},
			{Kind: metrics.Orders, Label: "Total Orders", Value: 1543, Change: -3.1},
			{Kind: metrics.Conversion, Label: "Conversion Rate", Value: 3.24, Change: 5.7},
		},
		Goals: []metrics.Goal{
			{Label: "Monthly Revenue", Current: 45231, Target: 50000},
			{Label: "New Users", Current: 2350, Target: 3000},
			{Label: "Orders Target", Current: 1543, Target: 2000},
			{Label: "Conversion Goal", Current: 324, Target: 400},
		},
		QuickStats: []QuickStat{
			{Name: "Mon", Value: 4200},
			{Name: "Tue", Value: 5100},
			{Name: "Wed", Value: 3800},
			{Name: "Thu", Value: 6200},
			{Name: "Fri", Value: 5500},
			{Name: "Sat", Value: 4800},
			{Name: "Sun", Value: 3900},
		},
		Activity: []ActivityItem{
			{Kind: metrics.Sale, Message: "New sale: Premium Plan", Ago: "2 minutes ago"},
			{Kind: metrics.Users, Message: "New user registered", Ago: "5 minutes ago"},
			{Kind: metrics.Revenue, Message: "Revenue milestone reached", Ago: "12 minutes ago"},
			{Kind: metrics.Orders, Message: "Order #1234 shipped", Ago: "18 minutes ago"},
			{Kind: metrics.Success, Message: "Payment processed successfully", Ago: "25 minutes ago"},
			{Kind: metrics.Alert, Message: "Low stock alert: Basic Plan", Ago: "32 minutes ago"},
		},
	}
}

// ReadSnapshot loads a YAML dataset fixture from disk.
func ReadSnapshot(path string) (Snapshot, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return Snapshot{}, fmt.Errorf("dashboard: open dataset %s: %w", path, err)
	}
	defer f.Close()
	snapshot, err := DecodeSnapshot(f)
	if err != nil {
		return Snapshot{}, fmt.Errorf("dashboard: decode dataset %s: %w", path, err)
	}
	return snapshot, nil
}

// DecodeSnapshot reads a YAML dataset fixture from any reader.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var snapshot Snapshot
	if err := yaml.NewDecoder(r).Decode(&snapshot); err != nil {
		if err == io.EOF {
			return Snapshot{}, fmt.Errorf("dashboard: dataset is empty")
		}
		return Snapshot{}, fmt.Errorf("dashboard: parse dataset: %w", err)
	}
	for i, row := range snapshot.Series {
		if row.Date == "" {
			return Snapshot{}, fmt.Errorf("dashboard: series row %d is missing date", i)
		}
	}
	return snapshot, nil
}

// MockLoader simulates a data refresh by jittering every metric of a base snapshot.
// Record count and order are preserved.
type MockLoader struct {
	mu     sync.Mutex
	base   Snapshot
	rng    *rand.Rand
	jitter float64
}

// NewMockLoader builds a loader around base. jitter is the maximum relative change
// (0.1 = ±10%); seed makes refreshes reproducible.
func NewMockLoader(base Snapshot, jitter float64, seed uint64) *MockLoader {
	if jitter < 0 {
		jitter = 0
	}
	return &MockLoader{
		base:   base.Clone(),
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		jitter: jitter,
	}
}

// LoadSnapshot returns a jittered copy of the base snapshot.
func (l *MockLoader) LoadSnapshot(ctx context.Context, _ string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.base.Clone()
	for _, row := range out.Series {
		keys := make([]string, 0, len(row.Values))
		for key := range row.Values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			row.Values[key] = l.jitterValue(row.Values[key])
		}
	}
	for _, rec := range out.Products {
		for _, key := range []string{"sales", "revenue"} {
			switch v := rec[key].(type) {
			case int:
				rec[key] = int(l.jitterValue(float64(v)))
			case float64:
				rec[key] = l.jitterValue(v)
			}
		}
	}
	for i := range out.Cards {
		out.Cards[i].Value = l.jitterValue(out.Cards[i].Value)
	}
	for i := range out.QuickStats {
		out.QuickStats[i].Value = l.jitterValue(out.QuickStats[i].Value)
	}
	return out, nil
}

func (l *MockLoader) jitterValue(v float64) float64 {
	if l.jitter == 0 {
		return v
	}
	factor := 1 + (l.rng.Float64()*2-1)*l.jitter
	return math.Round(v*factor*100) / 100
}
