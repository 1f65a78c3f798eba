package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectcc/auditions/internal/domain"
)

func seedStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	records := []domain.Contestant{
		{Roll: "21BCE001", Name: "Asha", PreferredPosition: "Anchor"},
		{Roll: "21BCE002", Name: "Ravi", PreferredPosition: "Video Editor"},
	}
	for _, r := range records {
		require.NoError(t, s.Put(context.Background(), r))
	}
	return s
}

func TestMemoryStoreGetByRoll(t *testing.T) {
	s := seedStore(t)

	record, err := s.GetByRoll(context.Background(), "21bce001")
	require.NoError(t, err)
	assert.Equal(t, "Asha", record.Name)

	_, err = s.GetByRoll(context.Background(), "ZZZ999")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMemoryStoreSaveEvaluationRoundTrip(t *testing.T) {
	s := seedStore(t)
	criteria := []domain.MarkingCriterion{
		{Criterion: "Communication Clarity", Raw: 18, MaxScore: 25},
		{Criterion: "Stage Presence", Raw: 15, MaxScore: 25},
	}

	saved, err := s.SaveEvaluation(context.Background(), "21BCE001", criteria, 41.25, "Confident delivery, strong recovery.")
	require.NoError(t, err)
	require.NotNil(t, saved.Score)
	assert.Equal(t, 41.25, *saved.Score)
	require.NotNil(t, saved.UpdatedAt)
	assert.True(t, saved.Evaluated())

	reloaded, err := s.GetByRoll(context.Background(), "21BCE001")
	require.NoError(t, err)
	assert.Equal(t, criteria, reloaded.Criteria)
	assert.Equal(t, "Confident delivery, strong recovery.", reloaded.Feedback)
}

func TestMemoryStoreSaveEvaluationUnknownRoll(t *testing.T) {
	s := seedStore(t)

	_, err := s.SaveEvaluation(context.Background(), "ZZZ999", nil, 0, "feedback text here")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMemoryStoreResetAll(t *testing.T) {
	s := seedStore(t)
	criteria := []domain.MarkingCriterion{{Criterion: "Overall Performance", Raw: 12, MaxScore: 100}}
	_, err := s.SaveEvaluation(context.Background(), "21BCE001", criteria, 60, "Solid all-round showing.")
	require.NoError(t, err)

	require.NoError(t, s.ResetAll(context.Background()))

	all, err := s.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, record := range all {
		assert.Nil(t, record.Score)
		assert.Nil(t, record.Criteria)
		assert.Nil(t, record.UpdatedAt)
		assert.Empty(t, record.Feedback)
		assert.NotEmpty(t, record.Name, "identity fields survive a reset")
	}
}

func TestMemoryStoreGetAllOrderedAndIsolated(t *testing.T) {
	s := seedStore(t)

	all, err := s.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "21BCE001", all[0].Roll)
	assert.Equal(t, "21BCE002", all[1].Roll)

	all[0].Name = "mutated"
	fresh, err := s.GetByRoll(context.Background(), "21BCE001")
	require.NoError(t, err)
	assert.Equal(t, "Asha", fresh.Name, "returned records are copies")
}

func TestMemoryStoreSaveCopiesCriteria(t *testing.T) {
	s := seedStore(t)
	criteria := []domain.MarkingCriterion{{Criterion: "Overall Performance", Raw: 10, MaxScore: 100}}

	_, err := s.SaveEvaluation(context.Background(), "21BCE001", criteria, 50, "Middle of the pack today.")
	require.NoError(t, err)

	criteria[0].Raw = 0
	reloaded, err := s.GetByRoll(context.Background(), "21BCE001")
	require.NoError(t, err)
	assert.Equal(t, 10, reloaded.Criteria[0].Raw, "store keeps its own copy of the scorecard")
}
