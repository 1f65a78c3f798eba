package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkingCriterionUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantRaw int
	}{
		{"missing score defaults", `{"criterion": "Communication Clarity", "maxScore": 20}`, DefaultRawScore},
		{"explicit zero stays zero", `{"criterion": "Spontaneity", "score": 0, "maxScore": 20}`, 0},
		{"explicit score preserved", `{"criterion": "Audience Engagement", "score": 17, "maxScore": 20}`, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c MarkingCriterion
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &c))
			assert.Equal(t, tt.wantRaw, c.Raw)
		})
	}
}

func TestContestantUnmarshalDefaultsMissingRawScores(t *testing.T) {
	doc := `{
		"roll": "21BCE001",
		"name": "Asha",
		"preferredposition": "Anchor",
		"scores": [
			{"criterion": "Communication Clarity", "maxScore": 20},
			{"criterion": "Spontaneity", "score": 12, "maxScore": 20}
		]
	}`

	var c Contestant
	require.NoError(t, json.Unmarshal([]byte(doc), &c))
	require.Len(t, c.Criteria, 2)
	assert.Equal(t, DefaultRawScore, c.Criteria[0].Raw)
	assert.Equal(t, 12, c.Criteria[1].Raw)
}
