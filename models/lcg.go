// Package models adapts LangChainGo chat models to [reagent.Model].
package models

import (
	"context"
	"strings"
	"sync"

	"github.com/rickchristie/reagent"
	"github.com/tmc/langchaingo/llms"
)

// LCG wraps an llms.Model so the agent can prompt it with plain text.
//
// Each Complete call sends an optional system message followed by the prompt
// as a single human message, and returns the trimmed content of the first
// choice. Token usage reported by the provider is accumulated and available
// through [LCG.Usage].
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	model := models.NewLCG(llm).WithModelName("gpt-4o-mini").WithTemperature(0.5)
type LCG struct {
	model        llms.Model
	modelName    string
	systemPrompt string
	temperature  *float64
	options      []llms.CallOption

	mu    sync.Mutex
	usage Usage
}

// Usage is the token usage accumulated across calls.
type Usage struct {
	Calls        int
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// NewLCG creates an LCG wrapping the given llms.Model.
func NewLCG(model llms.Model) *LCG {
	return &LCG{model: model}
}

// WithModelName sets the name reported to traces and hooks.
func (m *LCG) WithModelName(name string) *LCG {
	m.modelName = name
	return m
}

// WithSystemPrompt sets the system message sent before every prompt.
func (m *LCG) WithSystemPrompt(prompt string) *LCG {
	m.systemPrompt = prompt
	return m
}

// WithTemperature sets the sampling temperature.
func (m *LCG) WithTemperature(t float64) *LCG {
	m.temperature = &t
	return m
}

// WithCallOptions appends extra options passed on every call.
func (m *LCG) WithCallOptions(opts ...llms.CallOption) *LCG {
	m.options = append(m.options, opts...)
	return m
}

// Unwrap returns the underlying llms.Model.
func (m *LCG) Unwrap() llms.Model {
	return m.model
}

// ModelName implements reagent.NamedModel.
func (m *LCG) ModelName() string {
	return m.modelName
}

// Usage returns the accumulated token usage.
func (m *LCG) Usage() Usage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.usage
}

// Complete implements reagent.Model. A response without choices yields "".
func (m *LCG) Complete(ctx context.Context, prompt string) (string, error) {
	messages := make([]llms.MessageContent, 0, 2)
	if m.systemPrompt != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, m.systemPrompt))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	opts := make([]llms.CallOption, 0, len(m.options)+1)
	if m.temperature != nil {
		opts = append(opts, llms.WithTemperature(*m.temperature))
	}
	opts = append(opts, m.options...)

	resp, err := m.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", nil
	}

	m.record(resp.Choices[0].GenerationInfo)
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

func (m *LCG) record(info map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usage.Calls++
	if info == nil {
		return
	}
	input := extractInputTokens(info)
	output := extractOutputTokens(info)
	m.usage.InputTokens += input
	m.usage.OutputTokens += output
	m.usage.TotalTokens += extractTotalTokens(info, input, output)
}

// extractInputTokens reads the prompt token count. Providers disagree on the
// key name.
func extractInputTokens(info map[string]any) int {
	// OpenAI / Ollama
	if v := getIntFromMap(info, "PromptTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "InputTokens"); v > 0 {
		return v
	}
	// Google / Bedrock
	return getIntFromMap(info, "input_tokens")
}

func extractOutputTokens(info map[string]any) int {
	if v := getIntFromMap(info, "CompletionTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "OutputTokens"); v > 0 {
		return v
	}
	return getIntFromMap(info, "output_tokens")
}

func extractTotalTokens(info map[string]any, input, output int) int {
	if v := getIntFromMap(info, "TotalTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "total_tokens"); v > 0 {
		return v
	}
	return input + output
}

func getIntFromMap(m map[string]any, key string) int {
	switch n := m[key].(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	}
	return 0
}

var _ reagent.NamedModel = (*LCG)(nil)
