package models

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rickchristie/reagent/config"
	"github.com/tmc/langchaingo/llms/openai"
)

// GitHubModelsBaseURL is the base URL for the GitHub Models API. The
// OpenAI-compatible chat completions endpoint is at {baseURL}/chat/completions.
const GitHubModelsBaseURL = "https://models.github.ai/inference"

// ErrMissingAPIKey is returned when a constructor is given no key or token.
var ErrMissingAPIKey = errors.New("api key is required")

// NewOpenAI creates a model for any OpenAI-compatible endpoint from cfg.
// Additional openai.Option values are applied last so they can override
// the configured ones.
func NewOpenAI(cfg config.ModelConfig, opts ...openai.Option) (*LCG, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrMissingAPIKey)
	}

	baseOpts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Name),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
	}
	if cfg.BaseURL != "" {
		baseOpts = append(baseOpts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(append(baseOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return NewLCG(llm).
		WithModelName(cfg.Name).
		WithSystemPrompt(cfg.SystemPrompt).
		WithTemperature(cfg.Temperature), nil
}

// githubHeaderTransport injects the GitHub API version header into every
// request.
type githubHeaderTransport struct {
	client *http.Client
}

func (t *githubHeaderTransport) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	return t.client.Do(req)
}

// NewGitHub creates a model backed by the GitHub Models API. cfg.APIKey must
// be a fine-grained personal access token with the models:read permission and
// cfg.Name uses the publisher/model form, e.g. "openai/gpt-4o-mini".
// cfg.BaseURL is ignored.
func NewGitHub(cfg config.ModelConfig, opts ...openai.Option) (*LCG, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf(
			"github: %w: create a fine-grained PAT with models:read "+
				"at https://github.com/settings/personal-access-tokens/new",
			ErrMissingAPIKey,
		)
	}

	cfg.BaseURL = GitHubModelsBaseURL
	transport := &githubHeaderTransport{client: &http.Client{Timeout: cfg.Timeout()}}
	return NewOpenAI(cfg, append([]openai.Option{openai.WithHTTPClient(transport)}, opts...)...)
}
