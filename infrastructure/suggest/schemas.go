// Package suggest implements the criteria and interview-question providers:
// fixed, hand-authored marking schemas for the known roles, with a single
// LLM call as the fallback for everything else.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/connectcc/auditions/internal/domain"
)

// foldCaser performs Unicode case folding for role comparison.
var foldCaser = cases.Fold()

// maxRoleDistance is how many edits a role label may be away from a known
// role and still resolve to its fixed schema. Keeps "Anchr" and trailing
// whitespace deterministic without an AI round trip.
const maxRoleDistance = 2

// fixedSchemas are the hand-authored marking schemas for the closed set of
// known roles. Max scores for each role sum to 100.
var fixedSchemas = map[string][]domain.CriterionSpec{
	"anchor": {
		{Criterion: "Communication Clarity", MaxScore: 20},
		{Criterion: "Confidence & Stage Presence", MaxScore: 20},
		{Criterion: "Spontaneity", MaxScore: 20},
		{Criterion: "Audience Engagement", MaxScore: 20},
		{Criterion: "Language & Tone Control", MaxScore: 20},
	},
	"creative designer": {
		{Criterion: "Creativity & Originality", MaxScore: 25},
		{Criterion: "Design Sense", MaxScore: 25},
		{Criterion: "Tool Awareness", MaxScore: 20},
		{Criterion: "Concept Explanation", MaxScore: 15},
		{Criterion: "Adaptability to Feedback", MaxScore: 15},
	},
	"video editor": {
		{Criterion: "Storytelling Ability", MaxScore: 25},
		{Criterion: "Technical Editing Skills", MaxScore: 25},
		{Criterion: "Tool Proficiency", MaxScore: 20},
		{Criterion: "Creativity & Effects", MaxScore: 15},
		{Criterion: "Time & Workflow Awareness", MaxScore: 15},
	},
	"logistics & operations": {
		{Criterion: "Planning & Organization", MaxScore: 25},
		{Criterion: "Problem Solving", MaxScore: 25},
		{Criterion: "Responsibility & Reliability", MaxScore: 20},
		{Criterion: "Communication & Coordination", MaxScore: 15},
		{Criterion: "Availability & Commitment", MaxScore: 15},
	},
}

// questionThemes are the role-specific theme hints fed to the question
// prompt, keyed by the same canonical role labels as fixedSchemas.
var questionThemes = map[string][]string{
	"anchor": {
		"On-spot anchoring",
		"Sudden topic change",
		"Crowd control situations",
		"Live event mishaps",
	},
	"creative designer": {
		"Design a poster on the spot",
		"Redesign critique",
		"Color psychology",
		"Branding consistency",
	},
	"video editor": {
		"Editing raw footage",
		"Fixing bad audio/video",
		"Short-form vs long-form edits",
		"Content pacing",
	},
	"logistics & operations": {
		"Last-minute venue change",
		"Speaker delay",
		"Crowd overflow",
		"Budget constraint handling",
	},
}

// canonicalRole collapses whitespace and case-folds a free-text role label.
func canonicalRole(role string) string {
	return foldCaser.String(strings.Join(strings.Fields(role), " "))
}

// matchRole resolves a role label to a canonical known role, first by exact
// folded comparison and then by edit distance. The second return is false
// when the label is not recognizably one of the known roles.
func matchRole(role string) (string, bool) {
	canonical := canonicalRole(role)
	if canonical == "" {
		return "", false
	}

	if _, ok := fixedSchemas[canonical]; ok {
		return canonical, true
	}

	for known := range fixedSchemas {
		if levenshtein.ComputeDistance(canonical, known) <= maxRoleDistance {
			return known, true
		}
	}
	return "", false
}

// FixedCriteria returns the hand-authored schema for a known role label.
// The match is deterministic: case-insensitive with a small edit-distance
// tolerance, never an AI call.
func FixedCriteria(role string) ([]domain.CriterionSpec, bool) {
	known, ok := matchRole(role)
	if !ok {
		return nil, false
	}
	schema := fixedSchemas[known]
	out := make([]domain.CriterionSpec, len(schema))
	copy(out, schema)
	return out, true
}
