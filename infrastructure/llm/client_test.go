package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectcc/auditions/internal/ports"
)

// fakeCore is a scriptable CoreLLM for middleware and client tests.
type fakeCore struct {
	model    string
	response string
	err      error
	delay    time.Duration
	calls    int
}

func (f *fakeCore) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return "", 0, 0, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return "", 0, 0, f.err
	}
	return f.response, 7, 11, nil
}

func (f *fakeCore) GetModel() string  { return f.model }
func (f *fakeCore) SetModel(m string) { f.model = m }

func registerFake(t *testing.T, name string, core *fakeCore) {
	t.Helper()
	RegisterProviderFactory(name, func(ClientConfig) (CoreLLM, error) {
		return core, nil
	})
}

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		config   ClientConfig
		wantErr  string
	}{
		{"missing api key", "openai", ClientConfig{Model: "gpt-4o-mini"}, "API key"},
		{"missing model", "openai", ClientConfig{APIKey: "k"}, "model is required"},
		{"unknown provider", "nope", ClientConfig{APIKey: "k", Model: "m"}, "unknown provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.provider, tt.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClientComplete(t *testing.T) {
	core := &fakeCore{model: "fake-model", response: "hello"}
	registerFake(t, "fake-complete", core)

	client, err := NewClient("fake-complete", ClientConfig{APIKey: "k", Model: "fake-model"})
	require.NoError(t, err)

	response, err := client.Complete(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", response)
	assert.Equal(t, "fake-model", client.GetModel())
}

func TestClientCompleteWrapsProviderError(t *testing.T) {
	core := &fakeCore{model: "fake-model", err: errors.New("boom")}
	registerFake(t, "fake-error", core)

	client, err := NewClient("fake-error", ClientConfig{APIKey: "k", Model: "fake-model"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "hi", nil)
	require.Error(t, err)

	var llmErr *ports.LLMError
	require.True(t, errors.As(err, &llmErr))
	assert.Equal(t, "fake-model", llmErr.Model)
	assert.Equal(t, "Complete", llmErr.Operation)
}

func TestClientMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next CoreLLM) CoreLLM {
			return &taggedCore{next: next, name: name, order: &order}
		}
	}

	core := &fakeCore{model: "fake-model", response: "ok"}
	registerFake(t, "fake-order", core)

	client, err := NewClient("fake-order", ClientConfig{
		APIKey:     "k",
		Model:      "fake-model",
		Middleware: []Middleware{tag("outer"), tag("inner")},
	})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order, "first middleware must be outermost")
}

type taggedCore struct {
	next  CoreLLM
	name  string
	order *[]string
}

func (c *taggedCore) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	*c.order = append(*c.order, c.name)
	return c.next.DoRequest(ctx, prompt, opts)
}

func (c *taggedCore) GetModel() string  { return c.next.GetModel() }
func (c *taggedCore) SetModel(m string) { c.next.SetModel(m) }

func TestSimpleTokenEstimator(t *testing.T) {
	estimator := &SimpleTokenEstimator{}
	assert.Equal(t, 0, estimator.EstimateTokens(""))
	assert.Equal(t, 1, estimator.EstimateTokens("abc"))
	assert.Equal(t, 3, estimator.EstimateTokens("twelve chars"))
}

func TestParseRequestOptions(t *testing.T) {
	tests := []struct {
		name string
		opts map[string]any
		want RequestOptions
	}{
		{"nil options use defaults", nil, RequestOptions{MaxTokens: DefaultMaxTokens, Model: "base"}},
		{"invalid max_tokens ignored", map[string]any{"max_tokens": -5}, RequestOptions{MaxTokens: DefaultMaxTokens, Model: "base"}},
		{"model override", map[string]any{"model": "other"}, RequestOptions{MaxTokens: DefaultMaxTokens, Model: "other"}},
		{"json mode", map[string]any{"response_format": "json_object"}, RequestOptions{MaxTokens: DefaultMaxTokens, Model: "base", JSONMode: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRequestOptions(tt.opts, "base"))
		})
	}

	t.Run("temperature in range", func(t *testing.T) {
		got := ParseRequestOptions(map[string]any{"temperature": 0.3}, "base")
		require.NotNil(t, got.Temperature)
		assert.Equal(t, 0.3, *got.Temperature)
	})

	t.Run("temperature out of range ignored", func(t *testing.T) {
		got := ParseRequestOptions(map[string]any{"temperature": 3.5}, "base")
		assert.Nil(t, got.Temperature)
	})
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"empty is valid", "", false},
		{"https", "https://api.example.com/v1", false},
		{"bad scheme", "ftp://api.example.com", true},
		{"missing host", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateBaseURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
