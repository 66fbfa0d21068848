package scale

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func revenueSeries() []Point {
	values := []float64{12000, 15000, 13500, 18000, 16500, 20000, 22000}
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{X: i, Y: v}
	}
	return points
}

func TestBuildDomain(t *testing.T) {
	domain, err := BuildDomain(revenueSeries())
	require.NoError(t, err)
	assert.Equal(t, Domain{Min: 12000, Max: 22000}, domain)
	assert.False(t, domain.Flat())
}

func TestBuildDomainEmpty(t *testing.T) {
	_, err := BuildDomain(nil)
	assert.True(t, errors.Is(err, ErrEmptySeries))
}

func TestYForValueAnchorsExtremes(t *testing.T) {
	domain, err := BuildDomain(revenueSeries())
	require.NoError(t, err)
	const h = 200.0
	assert.Equal(t, 0.0, YForValue(domain.Max, domain, h))
	assert.Equal(t, h, YForValue(domain.Min, domain, h))
	assert.Equal(t, 100.0, YForValue(17000, domain, h))
}

func TestYForValueFlatDomain(t *testing.T) {
	domain := Domain{Min: 5, Max: 5}
	assert.Equal(t, 60.0, YForValue(5, domain, 120))
	assert.Equal(t, 60.0, YForValue(999, domain, 120))
}

func TestXForIndex(t *testing.T) {
	assert.Equal(t, 0.0, XForIndex(0, 5, 400))
	assert.Equal(t, 200.0, XForIndex(2, 5, 400))
	assert.Equal(t, 400.0, XForIndex(4, 5, 400))
}

func TestXForIndexSinglePoint(t *testing.T) {
	for _, width := range []float64{0, 1, 333, 400} {
		assert.Equal(t, width/2, XForIndex(0, 1, width))
	}
}

func TestNearestPointIndex(t *testing.T) {
	points := []Coord{{X: 0}, {X: 10}, {X: 20}, {X: 30}}
	assert.Equal(t, 0, NearestPointIndex(-50, points))
	assert.Equal(t, 1, NearestPointIndex(11, points))
	assert.Equal(t, 3, NearestPointIndex(1000, points))
	// 15 is equidistant from 10 and 20.
	assert.Equal(t, 1, NearestPointIndex(15, points))
	assert.Equal(t, -1, NearestPointIndex(15, nil))
}

func TestNearestPointIndexNonMonotonic(t *testing.T) {
	points := []Coord{{X: 30}, {X: 0}, {X: 30}}
	assert.Equal(t, 0, NearestPointIndex(29, points))
	assert.Equal(t, 1, NearestPointIndex(2, points))
}

func TestNearestPointIndexNonFinitePointer(t *testing.T) {
	points := []Coord{{X: 10}, {X: 0}, {X: 30}, {X: 30}}
	assert.Equal(t, 2, NearestPointIndex(math.Inf(1), points))
	assert.Equal(t, 1, NearestPointIndex(math.Inf(-1), points))
	assert.Equal(t, 0, NearestPointIndex(math.NaN(), points))
	assert.Equal(t, -1, NearestPointIndex(math.NaN(), nil))
}

func TestTicks(t *testing.T) {
	assert.Equal(t, []float64{0, 25, 50, 75, 100}, Ticks(Domain{Min: 0, Max: 100}, 5))
	assert.Equal(t, []float64{7}, Ticks(Domain{Min: 7, Max: 7}, 5))
	assert.Equal(t, []float64{3}, Ticks(Domain{Min: 3, Max: 9}, 1))
}

func TestViewportPlotArea(t *testing.T) {
	vp := Viewport{Width: 400, Height: 200, PaddingTop: 10, PaddingRight: 20, PaddingBottom: 30, PaddingLeft: 40}
	assert.Equal(t, 340.0, vp.PlotWidth())
	assert.Equal(t, 160.0, vp.PlotHeight())
	assert.Equal(t, Coord{X: 40, Y: 10}, vp.Origin())

	tiny := Viewport{Width: 10, Height: 10, PaddingLeft: 20, PaddingTop: 20}
	assert.Equal(t, 0.0, tiny.PlotWidth())
	assert.Equal(t, 0.0, tiny.PlotHeight())
}
