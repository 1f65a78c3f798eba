// Package llm provides a unified interface over the text-generation
// providers used by the suggestion services, with cross-cutting concerns
// (timeout, rate limiting, metrics, tracing) composed through a middleware
// chain.
//
// The package abstracts multiple providers (OpenAI, Anthropic, Google)
// behind a common interface so the application can switch providers or add
// operational features without changing caller code. Calls are deliberately
// single request/response: there is no retry or backoff layer, because every
// caller degrades to a defined fallback on failure.
//
// Basic usage:
//
//	client, err := llm.NewClient("openai", llm.ClientConfig{
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	    Model:  "gpt-4o-mini",
//	})
//	response, err := client.Complete(ctx, "Hello!", nil)
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/connectcc/auditions/internal/ports"
)

// DefaultMaxTokens limits generation length when the caller does not ask
// for a specific budget.
const DefaultMaxTokens = 1000

// CoreLLM defines the minimal interface that providers must implement.
// The middleware system can wrap any conforming implementation.
type CoreLLM interface {
	// DoRequest sends a prompt to the provider and returns the response
	// text together with input and output token counts.
	DoRequest(ctx context.Context, prompt string, opts map[string]any) (response string, tokensIn, tokensOut int, err error)

	// GetModel returns the currently configured model name.
	GetModel() string

	// SetModel updates the model used for subsequent requests.
	SetModel(model string)
}

// TokenEstimator provides pluggable token estimation strategies for cost
// accounting when the provider does not report exact counts.
type TokenEstimator interface {
	EstimateTokens(text string) int
}

// Middleware wraps a CoreLLM implementation to add cross-cutting
// functionality without modifying provider logic.
type Middleware func(CoreLLM) CoreLLM

// ClientConfig holds all configuration options for creating an LLM client.
type ClientConfig struct {
	// APIKey authenticates requests to the provider.
	APIKey string

	// Model specifies which model to use for requests.
	Model string

	// BaseURL overrides the default API endpoint. Empty uses the
	// provider's default.
	BaseURL string

	// Timeout sets the maximum duration for individual requests.
	// Zero means no client-level timeout.
	Timeout time.Duration

	// TokenEstimator provides custom token counting logic.
	// If nil, a character-based estimator is used.
	TokenEstimator TokenEstimator

	// Middleware is applied in the order specified; the first entry
	// becomes the outermost wrapper.
	Middleware []Middleware
}

// Client implements ports.LLMClient by delegating to a middleware-wrapped
// provider core.
type Client struct {
	core      CoreLLM
	estimator TokenEstimator
}

var _ ports.LLMClient = (*Client)(nil)

// NewClient creates an LLM client for the named provider, assembling the
// middleware chain and validating configuration.
func NewClient(providerType string, config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	factory, ok := providerFactories[providerType]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", providerType)
	}

	core, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	// Apply middleware in reverse order so the first middleware is the
	// outermost.
	for i := len(config.Middleware) - 1; i >= 0; i-- {
		core = config.Middleware[i](core)
	}

	estimator := config.TokenEstimator
	if estimator == nil {
		estimator = &SimpleTokenEstimator{}
	}

	return &Client{core: core, estimator: estimator}, nil
}

// Complete sends a prompt to the provider and returns the response text.
func (c *Client) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	response, _, _, err := c.core.DoRequest(ctx, prompt, options)
	if err != nil {
		return "", ports.NewLLMError(c.core.GetModel(), "Complete", err)
	}
	return response, nil
}

// EstimateTokens returns an approximate token count for the given text.
func (c *Client) EstimateTokens(text string) (int, error) {
	return c.estimator.EstimateTokens(text), nil
}

// GetModel returns the configured model name from the underlying provider.
func (c *Client) GetModel() string { return c.core.GetModel() }

// SimpleTokenEstimator provides basic character-based token estimation,
// assuming roughly 4 characters per token for English text.
type SimpleTokenEstimator struct{}

// EstimateTokens returns an approximate token count using the 4-chars-per-
// token heuristic.
func (e *SimpleTokenEstimator) EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// ProviderFactory creates a CoreLLM implementation from configuration.
type ProviderFactory func(ClientConfig) (CoreLLM, error)

var providerFactories = map[string]ProviderFactory{}

// RegisterProviderFactory registers a provider factory under a name.
// Built-in providers register themselves in init; custom providers can be
// added the same way.
func RegisterProviderFactory(providerType string, factory ProviderFactory) {
	providerFactories[providerType] = factory
}
