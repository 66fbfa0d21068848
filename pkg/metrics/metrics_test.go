package metrics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindDescriptor(t *testing.T) {
	assert.Equal(t, Descriptor{Icon: "dollar-sign", Color: "green"}, Revenue.Descriptor())
	assert.Equal(t, Descriptor{Icon: "alert-circle", Color: "red"}, Alert.Descriptor())
	assert.Equal(t, Unknown.Descriptor(), Kind(99).Descriptor())
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind(" User ")
	require.NoError(t, err)
	assert.Equal(t, Users, kind)

	_, err = ParseKind("Total Revenue")
	assert.Error(t, err)
}

func TestKindJSON(t *testing.T) {
	data, err := json.Marshal(Card{Kind: Orders, Label: "Total Orders", Value: 1543, Change: -3.1})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"orders"`)

	var card Card
	require.NoError(t, json.Unmarshal(data, &card))
	assert.Equal(t, Orders, card.Kind)
	assert.Equal(t, TrendDown, card.Trend())

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"bogus"}`), &card))
}

func TestGoalProgress(t *testing.T) {
	assert.InDelta(t, 90.462, GoalProgress(45231, 50000), 0.001)
	assert.Equal(t, 100.0, GoalProgress(120, 100))
	assert.Equal(t, 0.0, GoalProgress(10, 0))

	goal := Goal{Label: "New Users", Current: 2350, Target: 3000}
	assert.Equal(t, BandOnTrack, GoalBand(goal.Progress()))
	assert.Equal(t, 650.0, goal.Remaining())
	assert.Equal(t, BandComplete, GoalBand(100))
	assert.Equal(t, BandBehind, GoalBand(50))
	assert.Equal(t, BandAtRisk, GoalBand(49.9))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{4200, 5100, 3800, 6200, 5500, 6200})
	assert.Equal(t, 31000.0, s.Total)
	assert.InDelta(t, 5166.666, s.Average, 0.001)
	assert.Equal(t, 3, s.Peak)

	empty := Summarize(nil)
	assert.Equal(t, -1, empty.Peak)
	assert.Equal(t, 0.0, empty.Average)
}
