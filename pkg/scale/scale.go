package scale

import (
	"errors"
	"math"
)

// ErrEmptySeries is returned when geometry is requested for a series without points.
var ErrEmptySeries = errors.New("scale: series has no points")

// Point is a single series value. X is the ordinal or temporal key (label, time.Time,
// number); Aux carries the auxiliary fields shared by every point in the series.
type Point struct {
	X   any
	Y   float64
	Aux map[string]any
}

// Domain is the numeric range of a series.
type Domain struct {
	Min float64
	Max float64
}

// Flat reports whether the domain collapses to a single value.
func (d Domain) Flat() bool {
	return d.Max == d.Min
}

// Span returns Max-Min.
func (d Domain) Span() float64 {
	return d.Max - d.Min
}

// Viewport is the drawing surface; the plot area is the viewport minus padding.
type Viewport struct {
	Width         float64
	Height        float64
	PaddingTop    float64
	PaddingRight  float64
	PaddingBottom float64
	PaddingLeft   float64
}

// PlotWidth returns the drawable width, never negative.
func (v Viewport) PlotWidth() float64 {
	return math.Max(0, v.Width-v.PaddingLeft-v.PaddingRight)
}

// PlotHeight returns the drawable height, never negative.
func (v Viewport) PlotHeight() float64 {
	return math.Max(0, v.Height-v.PaddingTop-v.PaddingBottom)
}

// Origin is the top-left corner of the plot area.
func (v Viewport) Origin() Coord {
	return Coord{X: v.PaddingLeft, Y: v.PaddingTop}
}

// Coord is a pixel position.
type Coord struct {
	X float64
	Y float64
}

// BuildDomain computes min/max over the Y values of series.
func BuildDomain(series []Point) (Domain, error) {
	if len(series) == 0 {
		return Domain{}, ErrEmptySeries
	}
	d := Domain{Min: series[0].Y, Max: series[0].Y}
	for _, p := range series[1:] {
		d.Min = math.Min(d.Min, p.Y)
		d.Max = math.Max(d.Max, p.Y)
	}
	return d, nil
}

// XForIndex spreads pointCount points evenly across plotWidth. A single point sits at
// the horizontal center.
func XForIndex(index, pointCount int, plotWidth float64) float64 {
	if pointCount <= 1 {
		return plotWidth / 2
	}
	return float64(index) / float64(pointCount-1) * plotWidth
}

// YForValue maps value into screen space: domain.Max lands on 0 and domain.Min on
// plotHeight. A flat domain maps every value to the vertical center.
func YForValue(value float64, domain Domain, plotHeight float64) float64 {
	if domain.Flat() {
		return plotHeight / 2
	}
	return plotHeight - ((value-domain.Min)/domain.Span())*plotHeight
}

// NearestPointIndex returns the index of the coordinate whose X is closest to pointerX.
// Ties resolve to the lowest index. An infinite pointer selects the leftmost or rightmost
// point and NaN selects index 0. It returns -1 only for an empty slice.
func NearestPointIndex(pointerX float64, points []Coord) int {
	if len(points) == 0 {
		return -1
	}
	if math.IsNaN(pointerX) {
		return 0
	}
	if math.IsInf(pointerX, 0) {
		return edgeIndex(points, pointerX > 0)
	}
	best, bestDist := 0, math.Abs(points[0].X-pointerX)
	for i := 1; i < len(points); i++ {
		if dist := math.Abs(points[i].X - pointerX); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// edgeIndex returns the lowest index holding the largest (right) or smallest X.
func edgeIndex(points []Coord, right bool) int {
	best := 0
	for i, p := range points {
		if (right && p.X > points[best].X) || (!right && p.X < points[best].X) {
			best = i
		}
	}
	return best
}

// Ticks returns count evenly spaced values from domain.Min to domain.Max inclusive.
func Ticks(domain Domain, count int) []float64 {
	if count < 2 || domain.Flat() {
		return []float64{domain.Min}
	}
	step := domain.Span() / float64(count-1)
	out := make([]float64, count)
	for i := range out {
		out[i] = domain.Min + float64(i)*step
	}
	out[count-1] = domain.Max
	return out
}
