package config

import (
	"fmt"

	"github.com/rickchristie/reagent/schema"
)

var configSchema = schema.MustCompile(schema.Object(map[string]*schema.Property{
	"model": schema.Nested("Chat model", map[string]*schema.Property{
		"name":            schema.String("Model name").MinLength(1),
		"base_url":        schema.String("OpenAI-compatible endpoint").Pattern(`^https?://`),
		"api_key":         schema.String("API key"),
		"temperature":     schema.Number("Sampling temperature").Min(0).Max(2),
		"system_prompt":   schema.String("System message"),
		"timeout_seconds": schema.Integer("Request timeout").Min(1),
	}, "name", "base_url"),
	"search": schema.Nested("GOV.UK tools", map[string]*schema.Property{
		"api_key":         schema.String("Google API key"),
		"engine_id":       schema.String("Custom Search engine ID"),
		"base_url":        schema.String("Custom Search endpoint").Pattern(`^https?://`),
		"govuk_url":       schema.String("GOV.UK origin").Pattern(`^https?://`),
		"min_results":     schema.Integer("Results fetched per search").Min(1).Max(10),
		"concurrency":     schema.Integer("Concurrent page fetches").Min(1),
		"timeout_seconds": schema.Integer("Request timeout").Min(1),
	}),
	"agent": schema.Nested("Agent loop", map[string]*schema.Property{
		"max_iterations":  schema.Integer("Iteration budget").Min(1),
		"parser":          schema.String("Output parser").Enum("ordered", "lines"),
		"prompt_template": schema.String("Prompt template URL"),
	}),
	"history": schema.Nested("Session history", map[string]*schema.Property{
		"markdown_dir": schema.String("Markdown export location"),
		"duckdb":       schema.String("DuckDB database path"),
	}),
	"log": schema.Nested("Logging", map[string]*schema.Property{
		"level":  schema.String("Log level").Enum("debug", "info", "warn", "error"),
		"format": schema.String("Log format").Enum("text", "json"),
		"yaml":   schema.Boolean("Dump hook events as YAML"),
	}),
}, "model", "search", "agent"))

// Validate checks the configuration against its schema.
func (c *Config) Validate() error {
	if err := configSchema.Validate(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
