// Package ports defines the interfaces through which the application layer
// talks to infrastructure: the LLM provider, the suggestion services built
// on it, and the contestant record store.
package ports

import (
	"context"

	"github.com/connectcc/auditions/internal/domain"
)

// LLMClient defines the interface for interacting with a text-generation
// provider. Implementations handle provider-specific details like
// authentication, request formatting, and response parsing.
type LLMClient interface {
	// Complete sends a completion request and returns the generated text.
	// The options map allows provider flexibility without changing the
	// interface; common options are "temperature" (float64), "max_tokens"
	// (int) and "model" (string).
	Complete(ctx context.Context, prompt string, options map[string]any) (string, error)

	// EstimateTokens calculates the approximate token count for a text.
	EstimateTokens(text string) (int, error)

	// GetModel returns the model identifier used by this client,
	// for logging and metrics labels.
	GetModel() string
}

// CriteriaSuggester produces a marking schema for a preferred-position
// label. Implementations resolve fixed schemas first and fall back to a
// single AI call; when both come up empty they return
// domain.ErrNoCriteriaAvailable and the caller substitutes
// domain.DefaultCriterion.
type CriteriaSuggester interface {
	SuggestCriteria(ctx context.Context, role string) ([]domain.CriterionSpec, error)
}

// QuestionSuggester produces 5-7 interview questions thematically tied to a
// preferred-position label. Failures surface as
// domain.ErrSuggestionUnavailable and never block evaluation submission.
type QuestionSuggester interface {
	SuggestQuestions(ctx context.Context, role string) ([]string, error)
}

// ContestantStore is the record store boundary. Records are created
// externally by the registration flow; this service only reads them,
// writes evaluation fields, and bulk-clears evaluation fields.
type ContestantStore interface {
	// GetByRoll fetches a single record by its normalized roll number.
	// Returns domain.ErrNotFound when the key is absent.
	GetByRoll(ctx context.Context, roll string) (domain.Contestant, error)

	// GetAll returns a snapshot of the full collection.
	GetAll(ctx context.Context) ([]domain.Contestant, error)

	// SaveEvaluation writes the scorecard, total, feedback and a fresh
	// server-assigned timestamp for one record. The write is all-or-nothing;
	// on error the stored record is unchanged. Returns the updated record.
	SaveEvaluation(ctx context.Context, roll string, criteria []domain.MarkingCriterion, score float64, feedback string) (domain.Contestant, error)

	// ResetAll clears score, criteria, feedback and timestamp on every
	// record in a single atomic batch. Identity and contact fields are
	// never touched; records are never deleted.
	ResetAll(ctx context.Context) error

	// Put inserts or replaces a full record. Used by imports and test
	// fixtures; the evaluation workflow never calls it.
	Put(ctx context.Context, c domain.Contestant) error
}
