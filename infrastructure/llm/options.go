package llm

import (
	"fmt"
	"net/url"
	"sync"
)

// Valid ranges for common request parameters, shared across providers.
const (
	// MinTemperature and MaxTemperature bound the sampling temperature.
	// The upper bound is 2.0 to accommodate Gemini.
	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// BaseProvider provides common, thread-safe model-name handling for all
// providers.
type BaseProvider struct {
	mu    sync.RWMutex
	model string
}

// GetModel returns the model currently configured for the provider.
func (b *BaseProvider) GetModel() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.model
}

// SetModel updates the model name for the provider.
func (b *BaseProvider) SetModel(model string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.model = model
}

// RequestOptions is the standardized set of request parameters consolidated
// across providers.
type RequestOptions struct {
	// MaxTokens specifies the maximum number of tokens to generate.
	MaxTokens int
	// Model is the model to use for this request.
	Model string
	// Temperature controls output randomness; nil uses the provider default.
	Temperature *float64
	// JSONMode asks the provider for a JSON-object response where supported.
	JSONMode bool
}

// ParseRequestOptions extracts and validates request parameters from an
// options map, applying defaults for missing or invalid entries.
func ParseRequestOptions(opts map[string]any, defaultModel string) RequestOptions {
	options := RequestOptions{
		MaxTokens: extractInt(opts, "max_tokens", DefaultMaxTokens),
		Model:     extractString(opts, "model", defaultModel),
	}

	if temp, ok := opts["temperature"].(float64); ok && temp >= MinTemperature && temp <= MaxTemperature {
		options.Temperature = &temp
	}
	if mode, ok := opts["response_format"].(string); ok && mode == "json_object" {
		options.JSONMode = true
	}

	return options
}

func extractInt(opts map[string]any, key string, def int) int {
	if v, ok := opts[key].(int); ok && v > 0 {
		return v
	}
	return def
}

func extractString(opts map[string]any, key string, def string) string {
	if v, ok := opts[key].(string); ok && v != "" {
		return v
	}
	return def
}

// ValidateBaseURL validates and normalizes an endpoint override. An empty
// string is valid and selects the provider default.
func ValidateBaseURL(baseURL string) (string, error) {
	if baseURL == "" {
		return "", nil
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("URL scheme must be http or https, got: %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("URL must include a host")
	}

	return parsed.String(), nil
}

// EstimateTokens is the package-level fallback estimator used by providers
// when the API response does not report usage.
func EstimateTokens(text string) int {
	return (&SimpleTokenEstimator{}).EstimateTokens(text)
}
