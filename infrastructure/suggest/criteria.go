package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/go-playground/validator/v10"

	"github.com/connectcc/auditions/internal/domain"
	"github.com/connectcc/auditions/internal/ports"
)

var _ ports.CriteriaSuggester = (*CriteriaProvider)(nil)

// Default generation parameters for the criteria fallback call.
const (
	DefaultCriteriaTemperature = 0.2
	DefaultCriteriaMaxTokens   = 600
)

// criteriaPromptText asks for a scorecard schema for an unknown role,
// constrained to the same shape as the fixed schemas. The strict JSON
// contract mirrors the question prompt.
const criteriaPromptText = `You are an expert HR manager creating a scorecard for an audition panel.
The candidate's preferred position is: {{.Role}}

Propose 4-6 marking criteria for interviewing this position. Max scores must
be positive numbers that sum to 100.

IMPORTANT: You must respond with valid JSON in exactly this format, with no
intro text or explanation:
{"criteria": [{"criterion": "<name>", "maxScore": <number>}]}`

// CriteriaConfig defines the generation parameters for the fallback call.
type CriteriaConfig struct {
	// Temperature controls randomness; low values keep schemas consistent.
	Temperature float64 `yaml:"temperature" validate:"min=0.0,max=2.0"`

	// MaxTokens limits the length of the generated schema.
	MaxTokens int `yaml:"max_tokens" validate:"required,min=100,max=4000"`
}

// DefaultCriteriaConfig returns the generation parameters used when the
// config file does not override them.
func DefaultCriteriaConfig() CriteriaConfig {
	return CriteriaConfig{
		Temperature: DefaultCriteriaTemperature,
		MaxTokens:   DefaultCriteriaMaxTokens,
	}
}

// CriteriaProvider resolves marking schemas for preferred-position labels.
// Known roles resolve from the fixed table deterministically; anything else
// triggers exactly one LLM call. When both come up empty it reports
// domain.ErrNoCriteriaAvailable so the workflow can substitute
// domain.DefaultCriterion.
type CriteriaProvider struct {
	llm            ports.LLMClient
	config         CriteriaConfig
	validate       *validator.Validate
	promptTemplate *template.Template
}

// NewCriteriaProvider creates a criteria provider backed by the given LLM
// client.
func NewCriteriaProvider(llm ports.LLMClient, config CriteriaConfig) (*CriteriaProvider, error) {
	if llm == nil {
		return nil, fmt.Errorf("LLM client cannot be nil")
	}

	v := validator.New()
	if err := v.Struct(config); err != nil {
		return nil, fmt.Errorf("criteria config validation failed: %w", err)
	}

	tmpl, err := template.New("criteriaPrompt").Parse(criteriaPromptText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse criteria prompt template: %w", err)
	}

	return &CriteriaProvider{
		llm:            llm,
		config:         config,
		validate:       v,
		promptTemplate: tmpl,
	}, nil
}

// criteriaPayload is the strict-schema JSON contract for the fallback call.
type criteriaPayload struct {
	Criteria []criterionPayload `json:"criteria" validate:"required,min=1,dive"`
}

type criterionPayload struct {
	Criterion string  `json:"criterion" validate:"required,min=1"`
	MaxScore  float64 `json:"maxScore" validate:"required,gt=0"`
}

// SuggestCriteria returns the marking schema for a role. The fallback chain
// is: fixed table, one AI call, domain.ErrNoCriteriaAvailable. There is no
// retry; a slow or failed call degrades to the caller's default criterion.
func (p *CriteriaProvider) SuggestCriteria(ctx context.Context, role string) ([]domain.CriterionSpec, error) {
	if fixed, ok := FixedCriteria(role); ok {
		return fixed, nil
	}

	var promptBuf bytes.Buffer
	if err := p.promptTemplate.Execute(&promptBuf, struct{ Role string }{Role: role}); err != nil {
		return nil, fmt.Errorf("%w: prompt template: %v", domain.ErrNoCriteriaAvailable, err)
	}

	response, err := p.llm.Complete(ctx, promptBuf.String(), map[string]any{
		"temperature":     p.config.Temperature,
		"max_tokens":      p.config.MaxTokens,
		"response_format": "json_object",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoCriteriaAvailable, err)
	}

	specs, err := p.parseResponse(response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoCriteriaAvailable, err)
	}
	return specs, nil
}

func (p *CriteriaProvider) parseResponse(response string) ([]domain.CriterionSpec, error) {
	jsonStr := extractJSON(response)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON object in response (%d chars)", len(response))
	}

	var payload criteriaPayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, fmt.Errorf("malformed criteria JSON: %v", err)
	}
	if err := p.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("criteria payload failed validation: %v", err)
	}

	specs := make([]domain.CriterionSpec, 0, len(payload.Criteria))
	for _, c := range payload.Criteria {
		specs = append(specs, domain.CriterionSpec{Criterion: c.Criterion, MaxScore: c.MaxScore})
	}
	return specs, nil
}
