package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"

	"github.com/connectcc/auditions/internal/domain"
	"github.com/connectcc/auditions/internal/ports"
)

var evaluationsSaved = promauto.NewCounter(prometheus.CounterOpts{
	Name: "evaluations_saved_total",
	Help: "Total number of contestant evaluations persisted.",
})

// Scorecard source labels reported alongside a built scorecard so panels
// can see where the criteria came from.
const (
	// ScorecardSourceSaved means the contestant already had a saved
	// scorecard and it was reused as-is.
	ScorecardSourceSaved = "saved"

	// ScorecardSourceSuggested means the criteria came from a fixed role
	// schema or the suggestion service.
	ScorecardSourceSuggested = "suggested"

	// ScorecardSourceDefault means neither source produced criteria and
	// the single default criterion was substituted.
	ScorecardSourceDefault = "default"
)

// Scorecard is everything a panel needs to evaluate one contestant: the
// record itself, a criteria list ready for scoring, and interview
// questions. QuestionsUnavailable flags a suggestion failure; it never
// blocks scoring or submission.
type Scorecard struct {
	Contestant           domain.Contestant
	Criteria             []domain.MarkingCriterion
	Source               string
	Questions            []string
	QuestionsUnavailable bool
}

// EvaluationService implements the panel workflow: look a contestant up,
// build their scorecard, and persist a submitted evaluation.
type EvaluationService struct {
	store     ports.ContestantStore
	criteria  ports.CriteriaSuggester
	questions ports.QuestionSuggester
}

// NewEvaluationService wires the workflow to its store and suggesters.
func NewEvaluationService(store ports.ContestantStore, criteria ports.CriteriaSuggester, questions ports.QuestionSuggester) (*EvaluationService, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if criteria == nil {
		return nil, fmt.Errorf("criteria suggester cannot be nil")
	}
	if questions == nil {
		return nil, fmt.Errorf("question suggester cannot be nil")
	}
	return &EvaluationService{store: store, criteria: criteria, questions: questions}, nil
}

// Lookup fetches a contestant by roll number. The key is normalized the
// same way the search box normalizes it, so "  21bce001 " and "21BCE001"
// hit the same record. Absent rolls return domain.ErrNotFound and nothing
// is created or mutated.
func (s *EvaluationService) Lookup(ctx context.Context, roll string) (domain.Contestant, error) {
	return s.store.GetByRoll(ctx, domain.NormalizeRoll(roll))
}

// BuildScorecard assembles the evaluation view for one contestant.
//
// Criteria resolution: a previously saved scorecard is reused as-is so the
// panel sees the scores already given; otherwise the criteria suggester is
// asked, and if it has nothing the single default criterion stands in.
// Fresh criteria start at the default raw score.
//
// Questions are fetched concurrently with criteria resolution and fail
// independently: a suggestion failure yields an empty list and a flag.
func (s *EvaluationService) BuildScorecard(ctx context.Context, roll string) (Scorecard, error) {
	contestant, err := s.Lookup(ctx, roll)
	if err != nil {
		return Scorecard{}, err
	}

	card := Scorecard{Contestant: contestant}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		card.Criteria, card.Source = s.resolveCriteria(gctx, contestant)
		return nil
	})
	g.Go(func() error {
		questions, qerr := s.questions.SuggestQuestions(gctx, contestant.PreferredPosition)
		if qerr != nil {
			card.QuestionsUnavailable = true
			return nil
		}
		card.Questions = questions
		return nil
	})
	if err := g.Wait(); err != nil {
		return Scorecard{}, err
	}

	return card, nil
}

func (s *EvaluationService) resolveCriteria(ctx context.Context, contestant domain.Contestant) ([]domain.MarkingCriterion, string) {
	if len(contestant.Criteria) > 0 {
		saved := append([]domain.MarkingCriterion(nil), contestant.Criteria...)
		return saved, ScorecardSourceSaved
	}

	specs, err := s.criteria.SuggestCriteria(ctx, contestant.PreferredPosition)
	if err != nil {
		return []domain.MarkingCriterion{freshCriterion(domain.DefaultCriterion())}, ScorecardSourceDefault
	}

	criteria := make([]domain.MarkingCriterion, 0, len(specs))
	for _, spec := range specs {
		criteria = append(criteria, freshCriterion(spec))
	}
	return criteria, ScorecardSourceSuggested
}

func freshCriterion(spec domain.CriterionSpec) domain.MarkingCriterion {
	return domain.MarkingCriterion{
		Criterion: spec.Criterion,
		Raw:       domain.DefaultRawScore,
		MaxScore:  spec.MaxScore,
	}
}

// Submit validates and persists an evaluation, returning the stored record
// with its server-computed total and fresh timestamp. Validation failures
// return a *domain.ValidationError and leave the record untouched; so does
// any persistence failure.
func (s *EvaluationService) Submit(ctx context.Context, roll string, criteria []domain.MarkingCriterion, feedback string) (domain.Contestant, error) {
	if err := validateSubmission(criteria, feedback); err != nil {
		return domain.Contestant{}, err
	}

	total := domain.WeightedTotal(criteria)
	saved, err := s.store.SaveEvaluation(ctx, domain.NormalizeRoll(roll), criteria, total, feedback)
	if err != nil {
		return domain.Contestant{}, err
	}

	evaluationsSaved.Inc()
	return saved, nil
}

func validateSubmission(criteria []domain.MarkingCriterion, feedback string) error {
	verr := domain.NewValidationError("evaluation")

	if n := utf8.RuneCountInString(feedback); n < domain.FeedbackMinLen || n > domain.FeedbackMaxLen {
		verr.Addf("feedback must be between %d and %d characters, got %d",
			domain.FeedbackMinLen, domain.FeedbackMaxLen, n)
	}

	if len(criteria) == 0 {
		verr.AddError("at least one marking criterion is required")
	}
	for i, c := range criteria {
		if strings.TrimSpace(c.Criterion) == "" {
			verr.Addf("criterion %d: name must not be empty", i)
		}
		if c.Raw < 0 || c.Raw > domain.RawScoreMax {
			verr.Addf("criterion %d: raw score must be in [0, %d], got %d", i, domain.RawScoreMax, c.Raw)
		}
		if c.MaxScore <= 0 {
			verr.Addf("criterion %d: max score must be positive, got %g", i, c.MaxScore)
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// IsValidationError reports whether err is a submission validation failure.
func IsValidationError(err error) bool {
	var verr *domain.ValidationError
	return errors.As(err, &verr)
}
