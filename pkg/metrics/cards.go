package metrics

import "math"

// Trend is the direction of a metric change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Card is a headline metric ("Total Revenue", "Active Users", ...).
type Card struct {
	Kind   Kind    `json:"kind" yaml:"kind"`
	Label  string  `json:"label" yaml:"label"`
	Value  float64 `json:"value" yaml:"value"`
	Change float64 `json:"change" yaml:"change"`
}

// Trend derives the trend from the signed change.
func (c Card) Trend() Trend {
	switch {
	case c.Change > 0:
		return TrendUp
	case c.Change < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

// Goal tracks progress toward a target.
type Goal struct {
	Label   string  `json:"label" yaml:"label"`
	Current float64 `json:"current" yaml:"current"`
	Target  float64 `json:"target" yaml:"target"`
}

// Band buckets goal completion for display.
type Band string

const (
	BandComplete Band = "complete"
	BandOnTrack  Band = "on_track"
	BandBehind   Band = "behind"
	BandAtRisk   Band = "at_risk"
)

// GoalProgress returns current/target as a percentage capped at 100. A non-positive
// target yields 0.
func GoalProgress(current, target float64) float64 {
	if target <= 0 || current <= 0 {
		return 0
	}
	return math.Min(current/target*100, 100)
}

// GoalBand buckets a percentage: >=100 complete, >=75 on track, >=50 behind, else at risk.
func GoalBand(pct float64) Band {
	switch {
	case pct >= 100:
		return BandComplete
	case pct >= 75:
		return BandOnTrack
	case pct >= 50:
		return BandBehind
	default:
		return BandAtRisk
	}
}

// Remaining is how far the goal is from its target, never negative.
func (g Goal) Remaining() float64 {
	return math.Max(0, g.Target-g.Current)
}

// Progress returns GoalProgress for g.
func (g Goal) Progress() float64 {
	return GoalProgress(g.Current, g.Target)
}

// Summary holds aggregate figures of a small series.
type Summary struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	// Peak is the index of the first maximum value, -1 for an empty series.
	Peak int `json:"peak"`
}

// Summarize computes total, average and peak position of values.
func Summarize(values []float64) Summary {
	out := Summary{Peak: -1}
	for i, v := range values {
		out.Total += v
		if out.Peak < 0 || v > values[out.Peak] {
			out.Peak = i
		}
	}
	if len(values) > 0 {
		out.Average = out.Total / float64(len(values))
	}
	return out
}
