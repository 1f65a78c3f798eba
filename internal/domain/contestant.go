// Package domain contains pure, dependency-free domain models and types
// for the audition evaluation service.
package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Scoring constants shared by the slider UI contract and the aggregator.
const (
	// RawScoreMax is the upper bound of the raw slider value for a single
	// criterion. Raw scores are integers in [0, RawScoreMax].
	RawScoreMax = 20

	// DefaultRawScore is the slider value a criterion starts at before a
	// panel member has touched it, both for freshly suggested criteria and
	// for saved criteria whose raw score is missing.
	DefaultRawScore = 10

	// FeedbackMinLen and FeedbackMaxLen bound the panel feedback text.
	FeedbackMinLen = 10
	FeedbackMaxLen = 500

	// DefaultMaxTotal is the percentage denominator used for records that
	// carry a total score but no criteria list.
	DefaultMaxTotal = 100.0
)

// MarkingCriterion is a single named evaluation dimension on a contestant's
// scorecard. Raw is the 0-20 slider value; MaxScore is the weight the raw
// value is scaled to. A criterion is owned by exactly one contestant and is
// never shared.
type MarkingCriterion struct {
	Criterion string  `json:"criterion"`
	Raw       int     `json:"score"`
	MaxScore  float64 `json:"maxScore"`
}

// UnmarshalJSON decodes a criterion, substituting DefaultRawScore when the
// raw score field is absent. An explicit zero stays zero; only a missing
// field defaults. Stored documents predating per-criterion scores reload
// with centered sliders instead of zeroed ones.
func (m *MarkingCriterion) UnmarshalJSON(data []byte) error {
	var doc struct {
		Criterion string  `json:"criterion"`
		Raw       *int    `json:"score"`
		MaxScore  float64 `json:"maxScore"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	m.Criterion = doc.Criterion
	m.MaxScore = doc.MaxScore
	if doc.Raw != nil {
		m.Raw = *doc.Raw
	} else {
		m.Raw = DefaultRawScore
	}
	return nil
}

// CriterionSpec is a criterion template before any scoring has happened:
// a name and a maximum score. Schema providers return these.
type CriterionSpec struct {
	Criterion string  `json:"criterion"`
	MaxScore  float64 `json:"maxScore"`
}

// DefaultCriterion is the single-entry scorecard substituted when neither a
// fixed schema nor the suggestion service can produce criteria for a role.
func DefaultCriterion() CriterionSpec {
	return CriterionSpec{Criterion: "Overall Performance", MaxScore: DefaultMaxTotal}
}

// Contestant is an audition registrant keyed by roll number. Identity and
// contact fields are created by the (external) registration flow and are
// never mutated by this service; evaluation fields are written by the panel
// workflow and cleared by the admin bulk reset.
type Contestant struct {
	// Roll is the unique human-assigned identifier, also the record key.
	Roll string `json:"roll"`

	Name              string `json:"name"`
	Year              string `json:"year"`
	Branch            string `json:"branch"`
	Section           string `json:"sec"`
	PreferredPosition string `json:"preferredposition"`
	Whatsapp          string `json:"whatsapp"`
	Mail              string `json:"mail"`

	// Criteria is the ordered scorecard. Empty until the first evaluation
	// is saved, and emptied again by a bulk reset.
	Criteria []MarkingCriterion `json:"scores"`

	// Score is the persisted weighted total. It is non-nil exactly when
	// Criteria is non-empty, and always equals WeightedTotal(Criteria).
	Score *float64 `json:"score"`

	// Feedback is the free-text panel commentary saved with the scores.
	Feedback string `json:"evaluatedByText"`

	// UpdatedAt is the server-assigned timestamp of the last saved
	// evaluation, nil while the contestant is unevaluated.
	UpdatedAt *time.Time `json:"updatedAt"`
}

// Evaluated reports whether the contestant has a saved evaluation.
func (c *Contestant) Evaluated() bool { return c.Score != nil }

// NormalizeRoll canonicalizes a lookup key the way the search box does:
// surrounding whitespace is trimmed and the result is uppercased.
func NormalizeRoll(roll string) string {
	return strings.ToUpper(strings.TrimSpace(roll))
}
