// Package application contains the service layer: configuration, access
// control, the evaluation workflow and the admin dashboard. It depends on
// domain types and ports only; infrastructure is injected at wiring time.
package application

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration, loaded from a YAML file
// with ${VAR} references expanded from the environment before parsing.
type Config struct {
	// Server configures the HTTP listener.
	Server ServerConfig `yaml:"server" validate:"required"`

	// Store selects and configures the contestant record store.
	Store StoreConfig `yaml:"store" validate:"required"`

	// Auth holds the role secrets and JWT signing parameters.
	Auth AuthConfig `yaml:"auth" validate:"required"`

	// LLM configures the text-generation provider behind the suggestion
	// services.
	LLM LLMConfig `yaml:"llm" validate:"required"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address in host:port form.
	Addr string `yaml:"addr" validate:"required,hostname_port"`

	// ReadTimeoutSeconds bounds how long a request read may take.
	ReadTimeoutSeconds int `yaml:"read_timeout_seconds" validate:"omitempty,min=1,max=300"`

	// WriteTimeoutSeconds bounds how long a response write may take.
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds" validate:"omitempty,min=1,max=300"`
}

// StoreConfig selects the record store implementation. The memory driver
// exists for local development; deployments use postgres.
type StoreConfig struct {
	// Driver is "postgres" or "memory".
	Driver string `yaml:"driver" validate:"required,oneof=postgres memory"`

	// DSN is the Postgres connection string. Required for the postgres
	// driver, ignored for memory.
	DSN string `yaml:"dsn" validate:"required_if=Driver postgres"`
}

// AuthConfig holds the shared role secrets and the JWT signing material.
// Role checks happen server-side on every request; clients only ever hold
// an opaque signed token.
type AuthConfig struct {
	// JWTSecret signs issued tokens. Must be non-trivial.
	JWTSecret string `yaml:"jwt_secret" validate:"required,min=16"`

	// TokenTTLMinutes is how long an issued token stays valid.
	TokenTTLMinutes int `yaml:"token_ttl_minutes" validate:"omitempty,min=5,max=1440"`

	// AdminSecret is the shared password for the admin role.
	AdminSecret string `yaml:"admin_secret" validate:"required,min=6"`

	// PanelSecret is the shared password for the panel role.
	PanelSecret string `yaml:"panel_secret" validate:"required,min=6"`
}

// LLMConfig configures the suggestion provider chain.
type LLMConfig struct {
	// Provider selects the registered LLM provider factory.
	Provider string `yaml:"provider" validate:"required,oneof=openai anthropic google"`

	// APIKey authenticates against the provider.
	APIKey string `yaml:"api_key" validate:"required"`

	// Model overrides the provider's default model when set.
	Model string `yaml:"model"`

	// TimeoutSeconds bounds a single suggestion call.
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"omitempty,min=1,max=120"`

	// RequestsPerMinute throttles outbound calls; 0 disables the limiter.
	RequestsPerMinute int `yaml:"requests_per_minute" validate:"omitempty,min=1,max=600"`
}

// Defaults applied after parsing for fields the file may omit.
const (
	defaultReadTimeoutSeconds  = 10
	defaultWriteTimeoutSeconds = 30
	defaultTokenTTLMinutes     = 480
	defaultLLMTimeoutSeconds   = 30
)

// LoadConfig reads, expands, parses and validates a YAML configuration
// file. Environment references like ${DATABASE_URL} are expanded before
// the YAML is parsed, so secrets never need to live in the file itself.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates raw YAML configuration bytes.
func ParseConfig(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = defaultReadTimeoutSeconds
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = defaultWriteTimeoutSeconds
	}
	if c.Auth.TokenTTLMinutes == 0 {
		c.Auth.TokenTTLMinutes = defaultTokenTTLMinutes
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

// ReadTimeout returns the server read timeout as a duration.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the server write timeout as a duration.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// TokenTTL returns the token lifetime as a duration.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// Timeout returns the per-call LLM timeout as a duration.
func (l LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}
