package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectcc/auditions/internal/domain"
)

func TestCriteriaColumnScan(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []domain.MarkingCriterion
	}{
		{
			"bytes",
			[]byte(`[{"criterion": "Communication Clarity", "score": 15, "maxScore": 20}]`),
			[]domain.MarkingCriterion{{Criterion: "Communication Clarity", Raw: 15, MaxScore: 20}},
		},
		{
			"string",
			`[{"criterion": "Spontaneity", "score": 0, "maxScore": 20}]`,
			[]domain.MarkingCriterion{{Criterion: "Spontaneity", Raw: 0, MaxScore: 20}},
		},
		{"null column", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var col criteriaColumn
			require.NoError(t, col.Scan(tt.value))
			assert.Equal(t, tt.want, []domain.MarkingCriterion(col))
		})
	}
}

func TestCriteriaColumnScanDefaultsMissingRaw(t *testing.T) {
	doc := []byte(`[
		{"criterion": "Communication Clarity", "maxScore": 20},
		{"criterion": "Spontaneity", "score": 12, "maxScore": 20}
	]`)

	var col criteriaColumn
	require.NoError(t, col.Scan(doc))
	require.Len(t, col, 2)
	assert.Equal(t, domain.DefaultRawScore, col[0].Raw, "documents saved without a raw score reload at the default")
	assert.Equal(t, 12, col[1].Raw)
}

func TestCriteriaColumnScanRejectsUnknownType(t *testing.T) {
	var col criteriaColumn
	assert.Error(t, col.Scan(42))
}

func TestCriteriaColumnValueRoundTrip(t *testing.T) {
	col := criteriaColumn{{Criterion: "Overall Performance", Raw: 10, MaxScore: 100}}

	value, err := col.Value()
	require.NoError(t, err)

	var reloaded criteriaColumn
	require.NoError(t, reloaded.Scan(value))
	assert.Equal(t, col, reloaded)

	empty, err := criteriaColumn(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}
