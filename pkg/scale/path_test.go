package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLinePathKeepsInsertionOrder(t *testing.T) {
	coords := []Coord{{X: 50, Y: 1}, {X: 10, Y: 2}, {X: 30, Y: 3}}
	path := BuildLinePath(coords)
	require.Len(t, path, 3)
	assert.Equal(t, PathCommand{Op: Move, X: 50, Y: 1}, path[0])
	assert.Equal(t, PathCommand{Op: Line, X: 10, Y: 2}, path[1])
	assert.Equal(t, PathCommand{Op: Line, X: 30, Y: 3}, path[2])
	assert.Nil(t, BuildLinePath(nil))
}

func TestBuildAreaPathClosesAtFirstX(t *testing.T) {
	cases := [][]Coord{
		{{X: 5, Y: 5}},
		{{X: 0, Y: 10}, {X: 100, Y: 40}},
		{{X: 80, Y: 3}, {X: 20, Y: 9}, {X: 60, Y: 1}},
	}
	for _, coords := range cases {
		area := BuildAreaPath(BuildLinePath(coords), 200)
		require.Len(t, area, len(coords)+3)
		first, last := area[0], area[len(area)-1]
		assert.Equal(t, Move, first.Op)
		assert.Equal(t, Close, last.Op)
		assert.Equal(t, first.X, last.X)

		down := area[len(coords)]
		across := area[len(coords)+1]
		assert.Equal(t, coords[len(coords)-1].X, down.X)
		assert.Equal(t, 200.0, down.Y)
		assert.Equal(t, coords[0].X, across.X)
		assert.Equal(t, 200.0, across.Y)
	}
	assert.Nil(t, BuildAreaPath(nil, 10))
}

func TestPathString(t *testing.T) {
	area := BuildAreaPath(BuildLinePath([]Coord{{X: 0, Y: 10}, {X: 33.33333, Y: 0.5}}), 20)
	assert.Equal(t, "M 0 10 L 33.333 0.5 L 33.333 20 L 0 20 Z", PathString(area))
	assert.Equal(t, "", PathString(nil))
}
