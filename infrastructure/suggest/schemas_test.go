package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedCriteria(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		wantFirst string
		wantOK    bool
	}{
		{"exact", "Anchor", "Communication Clarity", true},
		{"case insensitive", "aNcHoR", "Communication Clarity", true},
		{"surrounding whitespace", "  Video Editor ", "Storytelling Ability", true},
		{"collapsed inner whitespace", "Creative   Designer", "Creativity & Originality", true},
		{"near miss within edit distance", "Anchr", "Communication Clarity", true},
		{"ampersand role", "Logistics & Operations", "Planning & Organization", true},
		{"unknown role", "Mascot", "", false},
		{"empty role", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria, ok := FixedCriteria(tt.role)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotEmpty(t, criteria)
				assert.Equal(t, tt.wantFirst, criteria[0].Criterion)
			}
		})
	}
}

func TestFixedSchemasSumToHundred(t *testing.T) {
	for role, schema := range fixedSchemas {
		var sum float64
		for _, c := range schema {
			assert.NotEmpty(t, c.Criterion)
			assert.Greater(t, c.MaxScore, 0.0)
			sum += c.MaxScore
		}
		assert.Equal(t, 100.0, sum, "schema for %s must total 100", role)
	}
}

func TestFixedCriteriaReturnsCopy(t *testing.T) {
	first, ok := FixedCriteria("Anchor")
	require.True(t, ok)
	first[0].Criterion = "mutated"

	second, ok := FixedCriteria("Anchor")
	require.True(t, ok)
	assert.Equal(t, "Communication Clarity", second[0].Criterion)
}

func TestQuestionThemesCoverEveryFixedRole(t *testing.T) {
	for role := range fixedSchemas {
		assert.NotEmpty(t, questionThemes[role], "role %s has no question themes", role)
	}
}
