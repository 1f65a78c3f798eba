package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func anchorCard(raw int) []MarkingCriterion {
	names := []string{
		"Communication Clarity",
		"Confidence & Stage Presence",
		"Spontaneity",
		"Audience Engagement",
		"Language & Tone Control",
	}
	criteria := make([]MarkingCriterion, 0, len(names))
	for _, n := range names {
		criteria = append(criteria, MarkingCriterion{Criterion: n, Raw: raw, MaxScore: 20})
	}
	return criteria
}

func TestWeightedTotal(t *testing.T) {
	tests := []struct {
		name     string
		criteria []MarkingCriterion
		want     float64
	}{
		{"empty scorecard totals zero", nil, 0},
		{"anchor all sliders at max", anchorCard(20), 100.00},
		{"anchor all sliders at midpoint", anchorCard(10), 50.00},
		{"single default criterion at midpoint", []MarkingCriterion{
			{Criterion: "Overall Performance", Raw: 10, MaxScore: 100},
		}, 50.00},
		{"uneven weights round to two decimals", []MarkingCriterion{
			{Criterion: "Creativity & Originality", Raw: 13, MaxScore: 25},
			{Criterion: "Design Sense", Raw: 7, MaxScore: 25},
			{Criterion: "Tool Awareness", Raw: 11, MaxScore: 20},
		}, 36.00},
		{"fractional result", []MarkingCriterion{
			{Criterion: "Concept Explanation", Raw: 7, MaxScore: 15},
		}, 5.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeightedTotal(tt.criteria))
		})
	}
}

func TestWeightedTotalBounds(t *testing.T) {
	// For any scorecard the total stays within [0, sum of max scores].
	cards := [][]MarkingCriterion{
		anchorCard(0),
		anchorCard(7),
		anchorCard(20),
		{{Criterion: "Overall Performance", Raw: 3, MaxScore: 100}},
	}
	for _, card := range cards {
		total := WeightedTotal(card)
		assert.GreaterOrEqual(t, total, 0.0)
		assert.LessOrEqual(t, total, MaxTotal(card))
	}
}

func TestWeightedTotalIdempotentRounding(t *testing.T) {
	card := []MarkingCriterion{
		{Criterion: "Storytelling Ability", Raw: 13, MaxScore: 25},
		{Criterion: "Technical Editing Skills", Raw: 17, MaxScore: 25},
		{Criterion: "Tool Proficiency", Raw: 9, MaxScore: 20},
	}
	first := WeightedTotal(card)
	second := WeightedTotal(card)
	assert.Equal(t, first, second)
	assert.Equal(t, first, Round2(first), "rounding must be stable")
}

func TestMaxTotal(t *testing.T) {
	assert.Equal(t, 100.0, MaxTotal(nil), "no criteria falls back to 100")
	assert.Equal(t, 100.0, MaxTotal(anchorCard(5)))
	assert.Equal(t, 40.0, MaxTotal([]MarkingCriterion{
		{Criterion: "a", MaxScore: 25},
		{Criterion: "b", MaxScore: 15},
	}))
}

func TestNormalizeRoll(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  cs101 ", "CS101"},
		{"Zz999", "ZZ999"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeRoll(tt.in))
	}
}
