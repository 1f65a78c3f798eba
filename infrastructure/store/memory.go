// Package store provides the contestant record store implementations:
// Postgres (via GORM) for deployments and an in-memory store for tests and
// local development.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/connectcc/auditions/internal/domain"
	"github.com/connectcc/auditions/internal/ports"
)

var _ ports.ContestantStore = (*MemoryStore)(nil)

// MemoryStore is a thread-safe in-memory ContestantStore. Reads return
// deep copies so callers can mutate scorecards freely before saving.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.Contestant
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]domain.Contestant)}
}

// GetByRoll fetches a single record; domain.ErrNotFound when absent.
func (s *MemoryStore) GetByRoll(ctx context.Context, roll string) (domain.Contestant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[domain.NormalizeRoll(roll)]
	if !ok {
		return domain.Contestant{}, domain.ErrNotFound
	}
	return cloneContestant(record), nil
}

// GetAll returns a snapshot of the collection ordered by roll.
func (s *MemoryStore) GetAll(ctx context.Context) ([]domain.Contestant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Contestant, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, cloneContestant(record))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Roll < out[j].Roll })
	return out, nil
}

// SaveEvaluation writes the evaluation fields for one record under the
// lock, so the update is observed all-or-nothing.
func (s *MemoryStore) SaveEvaluation(ctx context.Context, roll string, criteria []domain.MarkingCriterion, score float64, feedback string) (domain.Contestant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NormalizeRoll(roll)
	record, ok := s.records[key]
	if !ok {
		return domain.Contestant{}, domain.ErrNotFound
	}

	now := time.Now().UTC()
	record.Criteria = append([]domain.MarkingCriterion(nil), criteria...)
	record.Score = &score
	record.Feedback = feedback
	record.UpdatedAt = &now
	s.records[key] = record

	return cloneContestant(record), nil
}

// ResetAll clears the evaluation fields on every record. The single lock
// acquisition makes the batch atomic with respect to readers.
func (s *MemoryStore) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, record := range s.records {
		record.Criteria = nil
		record.Score = nil
		record.Feedback = ""
		record.UpdatedAt = nil
		s.records[key] = record
	}
	return nil
}

// Put inserts or replaces a full record, normalizing the roll key.
func (s *MemoryStore) Put(ctx context.Context, c domain.Contestant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.Roll = domain.NormalizeRoll(c.Roll)
	s.records[c.Roll] = cloneContestant(c)
	return nil
}

func cloneContestant(c domain.Contestant) domain.Contestant {
	out := c
	if c.Criteria != nil {
		out.Criteria = append([]domain.MarkingCriterion(nil), c.Criteria...)
	}
	if c.Score != nil {
		score := *c.Score
		out.Score = &score
	}
	if c.UpdatedAt != nil {
		ts := *c.UpdatedAt
		out.UpdatedAt = &ts
	}
	return out
}
