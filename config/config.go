// Package config loads reagent settings from defaults, an optional YAML file
// and the environment, in that order, and validates the result.
//
//	model:
//	  name: gpt-4o-mini
//	  temperature: 0.5
//	search:
//	  min_results: 2
//	agent:
//	  max_iterations: 10
//	  parser: ordered
//	history:
//	  markdown_dir: file:///tmp/reagent
//	log:
//	  level: info
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/viant/afs"
	afsurl "github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultModelName     = "gpt-4o-mini"
	DefaultBaseURL       = "https://api.openai.com/v1"
	DefaultTemperature   = 0.5
	DefaultSystemPrompt  = "You are an AI assistant for the UK Government helping users navigate official government guidance and services."
	DefaultSearchURL     = "https://www.googleapis.com/customsearch/v1"
	DefaultGovUKURL      = "https://www.gov.uk"
	DefaultMinResults    = 2
	DefaultConcurrency   = 4
	DefaultTimeout       = 30
	DefaultMaxIterations = 10
)

// Environment variables read by [Load].
const (
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvModel         = "REAGENT_MODEL"
	EnvGoogleKey     = "GOOGLE_API_KEY"
	EnvGoogleCSE     = "GOOGLE_CSE_ID"
)

// Config is the full reagent configuration.
type Config struct {
	Model   ModelConfig   `yaml:"model" json:"model"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Agent   AgentConfig   `yaml:"agent" json:"agent"`
	History HistoryConfig `yaml:"history" json:"history"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// ModelConfig configures the OpenAI-compatible chat model.
type ModelConfig struct {
	Name           string  `yaml:"name" json:"name"`
	BaseURL        string  `yaml:"base_url" json:"base_url"`
	APIKey         string  `yaml:"api_key" json:"api_key"`
	Temperature    float64 `yaml:"temperature" json:"temperature"`
	SystemPrompt   string  `yaml:"system_prompt" json:"system_prompt"`
	TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// Timeout returns the request timeout.
func (m ModelConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// SearchConfig configures the GOV.UK tools.
type SearchConfig struct {
	// APIKey and EngineID are the Google Custom Search credentials.
	APIKey   string `yaml:"api_key" json:"api_key"`
	EngineID string `yaml:"engine_id" json:"engine_id"`

	BaseURL        string `yaml:"base_url" json:"base_url"`
	GovUKURL       string `yaml:"govuk_url" json:"govuk_url"`
	MinResults     int    `yaml:"min_results" json:"min_results"`
	Concurrency    int    `yaml:"concurrency" json:"concurrency"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// Timeout returns the per-request timeout.
func (s SearchConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// AgentConfig configures the loop.
type AgentConfig struct {
	MaxIterations int    `yaml:"max_iterations" json:"max_iterations"`
	Parser        string `yaml:"parser" json:"parser"`

	// PromptTemplate is an optional afs URL of a text/template prompt.
	PromptTemplate string `yaml:"prompt_template" json:"prompt_template"`
}

// HistoryConfig configures where finished sessions are kept. Empty values
// disable the corresponding store.
type HistoryConfig struct {
	MarkdownDir string `yaml:"markdown_dir" json:"markdown_dir"`
	DuckDB      string `yaml:"duckdb" json:"duckdb"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`

	// YAML additionally dumps every hook event as YAML to stderr.
	YAML bool `yaml:"yaml" json:"yaml"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Name:           DefaultModelName,
			BaseURL:        DefaultBaseURL,
			Temperature:    DefaultTemperature,
			SystemPrompt:   DefaultSystemPrompt,
			TimeoutSeconds: DefaultTimeout,
		},
		Search: SearchConfig{
			BaseURL:        DefaultSearchURL,
			GovUKURL:       DefaultGovUKURL,
			MinResults:     DefaultMinResults,
			Concurrency:    DefaultConcurrency,
			TimeoutSeconds: DefaultTimeout,
		},
		Agent: AgentConfig{
			MaxIterations: DefaultMaxIterations,
			Parser:        "ordered",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds a configuration from defaults, the YAML document at url (any
// afs URL or local path; empty means none) and the environment. The result
// is validated.
func Load(ctx context.Context, url string) (*Config, error) {
	cfg := Default()
	if url != "" {
		data, err := afs.New().DownloadWithURL(ctx, ResolveURL(url))
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", url, err)
		}
		if err := cfg.Decode(data); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", url, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveURL turns a plain path into a file:// URL. Locations that already
// carry a scheme are returned unchanged.
func ResolveURL(location string) string {
	if afsurl.Scheme(location, "") != "" {
		return location
	}
	if abs, err := filepath.Abs(location); err == nil {
		location = abs
	}
	return "file://" + filepath.ToSlash(location)
}

// Decode overlays a YAML document on cfg. Keys absent from the document keep
// their current values.
func (c *Config) Decode(data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return yaml.Unmarshal(data, c)
}

// ApplyEnv overrides credentials and endpoints from the environment. lookup
// is os.LookupEnv outside tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.Model.APIKey, EnvOpenAIKey)
	set(&c.Model.BaseURL, EnvOpenAIBaseURL)
	set(&c.Model.Name, EnvModel)
	set(&c.Search.APIKey, EnvGoogleKey)
	set(&c.Search.EngineID, EnvGoogleCSE)
}

// ErrMissingCredentials is returned by [Config.RequireModel] and
// [Config.RequireSearch].
var ErrMissingCredentials = errors.New("missing credentials")

// RequireModel reports an error when no model API key is configured.
func (c *Config) RequireModel() error {
	if c.Model.APIKey == "" {
		return fmt.Errorf("%w: set model.api_key or %s", ErrMissingCredentials, EnvOpenAIKey)
	}
	return nil
}

// RequireSearch reports an error when the Google search credentials are
// incomplete.
func (c *Config) RequireSearch() error {
	if c.Search.APIKey == "" || c.Search.EngineID == "" {
		return fmt.Errorf("%w: set search.api_key and search.engine_id or %s and %s",
			ErrMissingCredentials, EnvGoogleKey, EnvGoogleCSE)
	}
	return nil
}
