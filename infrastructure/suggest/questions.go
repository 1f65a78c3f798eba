package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/go-playground/validator/v10"

	"github.com/connectcc/auditions/internal/domain"
	"github.com/connectcc/auditions/internal/ports"
)

var _ ports.QuestionSuggester = (*QuestionProvider)(nil)

// Question count contract: the prompt asks for 5-7; responses are capped at
// the upper bound, and fewer usable questions than the lower bound is a
// failed suggestion.
const (
	MinQuestions = 5
	MaxQuestions = 7

	DefaultQuestionTemperature = 0.7
	DefaultQuestionMaxTokens   = 800
)

// questionPromptText mirrors the interviewer prompt of the audition panel:
// 5-7 questions thematically tied to the role, strict JSON out.
const questionPromptText = `You are an expert interviewer. Based on the candidate's preferred position{{if .Themes}} and the corresponding question themes{{end}}, suggest {{.Min}}-{{.Max}} relevant and insightful interview questions.
{{if .Themes}}
### Question Themes for {{.Role}}
{{range .Themes}}* {{.}}
{{end}}{{end}}
**Candidate's Preferred Position:** {{.Role}}

Generate questions based on the themes for the specified position.
IMPORTANT: You must respond with valid JSON in exactly this format, with no
intro text or explanation:
{"questions": ["Question 1", "Question 2", "Question 3"]}`

// QuestionConfig defines the generation parameters for question suggestion.
type QuestionConfig struct {
	Temperature float64 `yaml:"temperature" validate:"min=0.0,max=2.0"`
	MaxTokens   int     `yaml:"max_tokens" validate:"required,min=100,max=4000"`
}

// DefaultQuestionConfig returns the generation parameters used when the
// config file does not override them.
func DefaultQuestionConfig() QuestionConfig {
	return QuestionConfig{
		Temperature: DefaultQuestionTemperature,
		MaxTokens:   DefaultQuestionMaxTokens,
	}
}

// QuestionProvider generates interview questions for a preferred-position
// label. Every request is routed through the LLM (there is no fixed table);
// any failure surfaces as domain.ErrSuggestionUnavailable, which the
// workflow downgrades to an empty list plus a notice. Question availability
// never gates evaluation submission.
type QuestionProvider struct {
	llm            ports.LLMClient
	config         QuestionConfig
	validate       *validator.Validate
	promptTemplate *template.Template
}

// NewQuestionProvider creates a question provider backed by the given LLM
// client.
func NewQuestionProvider(llm ports.LLMClient, config QuestionConfig) (*QuestionProvider, error) {
	if llm == nil {
		return nil, fmt.Errorf("LLM client cannot be nil")
	}

	v := validator.New()
	if err := v.Struct(config); err != nil {
		return nil, fmt.Errorf("question config validation failed: %w", err)
	}

	tmpl, err := template.New("questionPrompt").Parse(questionPromptText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse question prompt template: %w", err)
	}

	return &QuestionProvider{
		llm:            llm,
		config:         config,
		validate:       v,
		promptTemplate: tmpl,
	}, nil
}

// questionPayload is the strict-schema JSON contract for the question call.
type questionPayload struct {
	Questions []string `json:"questions" validate:"required,min=1,dive,min=1"`
}

// SuggestQuestions returns up to MaxQuestions interview questions for the
// role. The role label is uppercased in the prompt to match the theme
// headings; unknown roles simply get no theme block. Single call, no retry.
func (p *QuestionProvider) SuggestQuestions(ctx context.Context, role string) ([]string, error) {
	var themes []string
	if known, ok := matchRole(role); ok {
		themes = questionThemes[known]
	}

	var promptBuf bytes.Buffer
	data := struct {
		Role   string
		Themes []string
		Min    int
		Max    int
	}{
		Role:   strings.ToUpper(strings.TrimSpace(role)),
		Themes: themes,
		Min:    MinQuestions,
		Max:    MaxQuestions,
	}
	if err := p.promptTemplate.Execute(&promptBuf, data); err != nil {
		return nil, fmt.Errorf("%w: prompt template: %v", domain.ErrSuggestionUnavailable, err)
	}

	response, err := p.llm.Complete(ctx, promptBuf.String(), map[string]any{
		"temperature":     p.config.Temperature,
		"max_tokens":      p.config.MaxTokens,
		"response_format": "json_object",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSuggestionUnavailable, err)
	}

	questions, err := p.parseResponse(response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSuggestionUnavailable, err)
	}
	return questions, nil
}

func (p *QuestionProvider) parseResponse(response string) ([]string, error) {
	jsonStr := extractJSON(response)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON object in response (%d chars)", len(response))
	}

	var payload questionPayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, fmt.Errorf("malformed questions JSON: %v", err)
	}
	if err := p.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("questions payload failed validation: %v", err)
	}

	questions := make([]string, 0, MaxQuestions)
	for _, q := range payload.Questions {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		questions = append(questions, q)
		if len(questions) == MaxQuestions {
			break
		}
	}
	if len(questions) < MinQuestions {
		return nil, fmt.Errorf("expected at least %d usable questions, got %d", MinQuestions, len(questions))
	}
	return questions, nil
}
