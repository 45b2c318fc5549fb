package toolchain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/schema"
	"gopkg.in/yaml.v3"
)

// ToolFunc is a [reagent.Tool] backed by a plain function.
type ToolFunc struct {
	name        string
	description string
	fn          func(ctx context.Context, input string) (string, error)
}

// NewToolFunc wraps fn as a tool.
func NewToolFunc(
	name, description string,
	fn func(ctx context.Context, input string) (string, error),
) *ToolFunc {
	return &ToolFunc{name: name, description: description, fn: fn}
}

func (t *ToolFunc) Name() string        { return t.name }
func (t *ToolFunc) Description() string { return t.description }

// Call invokes the wrapped function.
func (t *ToolFunc) Call(ctx context.Context, input string) (string, error) {
	return t.fn(ctx, input)
}

// StructuredTool is a tool whose Action Input is a YAML or JSON object.
//
// The input is decoded, validated against the tool's JSON Schema and then
// decoded into I. Decoding and validation failures are returned as errors, so
// the model sees them in the observation and can correct its input. An empty
// input decodes as an empty object.
type StructuredTool[I any] struct {
	name        string
	description string
	raw         map[string]any
	schema      *schema.Schema
	fn          func(ctx context.Context, input I) (string, error)
}

// NewStructuredTool creates a structured tool. Panics if rawSchema does not
// compile.
func NewStructuredTool[I any](
	name, description string,
	rawSchema map[string]any,
	fn func(ctx context.Context, input I) (string, error),
) *StructuredTool[I] {
	return &StructuredTool[I]{
		name:        name,
		description: description,
		raw:         rawSchema,
		schema:      schema.MustCompile(rawSchema),
		fn:          fn,
	}
}

func (t *StructuredTool[I]) Name() string { return t.name }

// Description appends the parameter schema, rendered as YAML, to the
// description so the model knows which keys to write.
func (t *StructuredTool[I]) Description() string {
	if t.raw == nil {
		return t.description
	}
	out, err := yaml.Marshal(t.raw["properties"])
	if err != nil {
		return t.description
	}
	var sb strings.Builder
	sb.WriteString(t.description)
	sb.WriteString(" Action Input is a YAML or JSON object with these keys:\n")
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		sb.WriteString("    ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Call decodes, validates and dispatches the input.
func (t *StructuredTool[I]) Call(ctx context.Context, input string) (string, error) {
	args := map[string]any{}
	if strings.TrimSpace(input) != "" {
		if err := yaml.Unmarshal([]byte(input), &args); err != nil {
			return "", fmt.Errorf("action input is not a YAML or JSON object: %w", err)
		}
	}
	if err := t.schema.Validate(args); err != nil {
		return "", err
	}

	b, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("encode action input: %w", err)
	}
	var typed I
	if err := json.Unmarshal(b, &typed); err != nil {
		return "", fmt.Errorf("decode action input: %w", err)
	}
	return t.fn(ctx, typed)
}

var (
	_ reagent.Tool = (*ToolFunc)(nil)
	_ reagent.Tool = (*StructuredTool[struct{}])(nil)
)
