package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluated(roll, position string, criteria []MarkingCriterion) Contestant {
	score := WeightedTotal(criteria)
	now := time.Now()
	return Contestant{
		Roll:              roll,
		PreferredPosition: position,
		Criteria:          criteria,
		Score:             &score,
		Feedback:          "solid performance overall",
		UpdatedAt:         &now,
	}
}

func TestSummarize(t *testing.T) {
	records := []Contestant{
		evaluated("A1", "Anchor", anchorCard(20)),  // 100%
		evaluated("A2", "Anchor", anchorCard(10)),  // 50%
		{Roll: "A3", PreferredPosition: "Anchor"},  // not evaluated
		{Roll: "V1", PreferredPosition: "Video Editor"},
	}

	summary := Summarize(records)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Evaluated)
	assert.Equal(t, 2, summary.NotEvaluated)
	assert.Equal(t, 75.0, summary.AverageScorePercent)

	require.Len(t, summary.PositionDistribution, 2)
	assert.Equal(t, PositionCount{Position: "Anchor", Count: 3}, summary.PositionDistribution[0])
	assert.Equal(t, PositionCount{Position: "Video Editor", Count: 1}, summary.PositionDistribution[1])
}

func TestSummarizeUsesDefaultDenominatorWithoutCriteria(t *testing.T) {
	// A record can carry a score with no criteria list after partial legacy
	// imports; the percentage then uses 100 as the denominator.
	score := 80.0
	records := []Contestant{{Roll: "L1", Score: &score}}

	summary := Summarize(records)

	assert.Equal(t, 1, summary.Evaluated)
	assert.Equal(t, 80.0, summary.AverageScorePercent)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0.0, summary.AverageScorePercent)
	assert.Empty(t, summary.PositionDistribution)
}

func TestLeaderboard(t *testing.T) {
	records := []Contestant{
		{Roll: "N1", PreferredPosition: "Anchor"}, // unevaluated, excluded
		evaluated("B2", "Anchor", anchorCard(10)),
		evaluated("A1", "Video Editor", anchorCard(20)),
		evaluated("A2", "Anchor", anchorCard(10)), // ties with B2, roll breaks tie
	}

	board := Leaderboard(records)

	require.Len(t, board, 3)
	assert.Equal(t, "A1", board[0].Roll)
	assert.Equal(t, "A2", board[1].Roll)
	assert.Equal(t, "B2", board[2].Roll)
}
