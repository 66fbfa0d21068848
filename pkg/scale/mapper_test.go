package scale

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapperAppliesPadding(t *testing.T) {
	vp := Viewport{Width: 320, Height: 220, PaddingTop: 10, PaddingRight: 10, PaddingBottom: 10, PaddingLeft: 10}
	series := []Point{{X: "Mon", Y: 10}, {X: "Tue", Y: 30}, {X: "Wed", Y: 20}}
	m, err := NewMapper(series, vp)
	require.NoError(t, err)

	coords := m.Coords()
	require.Len(t, coords, 3)
	assert.Equal(t, Coord{X: 10, Y: 210}, coords[0])
	assert.Equal(t, Coord{X: 160, Y: 10}, coords[1])
	assert.Equal(t, Coord{X: 310, Y: 110}, coords[2])
	assert.Equal(t, 210.0, m.Baseline())
	assert.Equal(t, 10.0, m.YFor(30))
}

func TestMapperEmptySeries(t *testing.T) {
	_, err := NewMapper(nil, Viewport{Width: 100, Height: 100})
	assert.True(t, errors.Is(err, ErrEmptySeries))
}

func TestMapperSinglePointCentered(t *testing.T) {
	m, err := NewMapper([]Point{{X: "only", Y: 42}}, Viewport{Width: 100, Height: 60})
	require.NoError(t, err)
	coords := m.Coords()
	assert.Equal(t, Coord{X: 50, Y: 30}, coords[0])
	assert.Len(t, m.Line(), 1)
	area := m.Area()
	assert.Equal(t, area[0].X, area[len(area)-1].X)
}

func TestMapperDomainPadding(t *testing.T) {
	series := []Point{{Y: 450}, {Y: 550}}
	m, err := NewMapper(series, Viewport{Width: 100, Height: 100}, WithDomainPadding(0.1))
	require.NoError(t, err)
	assert.Equal(t, Domain{Min: 440, Max: 560}, m.Domain())
	coords := m.Coords()
	assert.InDelta(t, 91.666, coords[0].Y, 0.001)
	assert.InDelta(t, 8.333, coords[1].Y, 0.001)
}

func TestMapperFixedDomain(t *testing.T) {
	series := []Point{{Y: 5}, {Y: 10}}
	m, err := NewMapper(series, Viewport{Width: 10, Height: 100}, WithDomain(Domain{Min: 0, Max: 20}))
	require.NoError(t, err)
	coords := m.Coords()
	assert.Equal(t, 75.0, coords[0].Y)
	assert.Equal(t, 50.0, coords[1].Y)

	_, err = NewMapper(series, Viewport{}, WithDomain(Domain{Min: 2, Max: 1}))
	assert.Error(t, err)
}

func TestMapperTooltip(t *testing.T) {
	series := []Point{
		{X: "2024-01-01", Y: 1, Aux: map[string]any{"users": 450}},
		{X: "2024-01-02", Y: 2, Aux: map[string]any{"users": 520}},
		{X: "2024-01-03", Y: 3, Aux: map[string]any{"users": 490}},
	}
	m, err := NewMapper(series, Viewport{Width: 200, Height: 100})
	require.NoError(t, err)

	hover := m.Tooltip(120)
	assert.Equal(t, 1, hover.Index)
	assert.Equal(t, "2024-01-02", hover.Point.X)
	assert.Equal(t, 520, hover.Point.Aux["users"])
	assert.Equal(t, 100.0, hover.Coord.X)
}

func TestMapperTooltipNonFinitePointer(t *testing.T) {
	series := []Point{{X: "a", Y: 1}, {X: "b", Y: 5}, {X: "c", Y: 3}}
	m, err := NewMapper(series, Viewport{Width: 200, Height: 100})
	require.NoError(t, err)

	assert.Equal(t, "c", m.Tooltip(math.Inf(1)).Point.X)
	assert.Equal(t, "a", m.Tooltip(math.Inf(-1)).Point.X)
	assert.Equal(t, 0, m.Tooltip(math.NaN()).Index)
}
