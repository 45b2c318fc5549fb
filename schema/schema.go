// Package schema builds JSON Schemas and validates values against them.
//
// It backs two things: structured tool inputs (see toolchain.NewStructuredTool)
// and configuration validation (see config.Validate).
//
// # Quick Start
//
//	s := schema.MustCompile(schema.Object(map[string]*schema.Property{
//	    "region": schema.String("UK region").Enum("england-and-wales", "scotland"),
//	    "year":   schema.Integer("Calendar year").Min(2000),
//	}, "region"))
//
//	err := s.Validate(map[string]any{"region": "scotland", "year": 2025})
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema holds a raw schema map (for prompts and serialization) and its
// compiled validator.
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the underlying map representation.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate checks data against the schema. data may be any value that
// encodes to JSON: maps decoded from YAML, structs with json tags, etc.
// A nil schema accepts everything.
func (s *Schema) Validate(data any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	doc, err := toJSONValue(data)
	if err != nil {
		return &ValidationError{Err: err}
	}
	if err := s.compiled.Validate(doc); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// toJSONValue round-trips v through encoding/json so the validator only sees
// the types it understands (json.Number, string, bool, []any, map[string]any).
func toJSONValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(b))
}

// ValidationError wraps a JSON Schema validation error with a cleaner message.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map. A nil map compiles to a nil Schema,
// which accepts everything.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	schemaData, err := toJSONValue(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Schema{
		raw:      raw,
		compiled: compiled,
	}, nil
}

// MustCompile is like Compile but panics on error.
// Use this for schemas defined at init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// -----------------------------------------------------------------------------
// Schema Builders
// -----------------------------------------------------------------------------

// Object creates an object schema with the given properties. Names passed as
// required must be present.
//
//	schema.Object(map[string]*schema.Property{
//	    "query": schema.String("Search query"),
//	    "page":  schema.Integer("Result page").Min(1),
//	}, "query")
func Object(properties map[string]*Property, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": buildProperties(properties),
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func buildProperties(properties map[string]*Property) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}
	return props
}

// Property is one property of an object schema.
type Property struct {
	typ         string
	description string
	enum        []any
	minimum     *float64
	maximum     *float64
	minLength   *int
	pattern     string
	properties  map[string]any
	required    []string
	def         any
}

func (p *Property) build() map[string]any {
	m := map[string]any{}

	if p.typ != "" {
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}
	if len(p.enum) > 0 {
		m["enum"] = p.enum
	}
	if p.minimum != nil {
		m["minimum"] = *p.minimum
	}
	if p.maximum != nil {
		m["maximum"] = *p.maximum
	}
	if p.minLength != nil {
		m["minLength"] = *p.minLength
	}
	if p.pattern != "" {
		m["pattern"] = p.pattern
	}
	if p.properties != nil {
		m["properties"] = p.properties
	}
	if len(p.required) > 0 {
		m["required"] = p.required
	}
	if p.def != nil {
		m["default"] = p.def
	}

	return m
}

// String creates a string property.
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Integer creates an integer property.
func Integer(description string) *Property {
	return &Property{typ: "integer", description: description}
}

// Number creates a floating point property.
func Number(description string) *Property {
	return &Property{typ: "number", description: description}
}

// Boolean creates a boolean property.
func Boolean(description string) *Property {
	return &Property{typ: "boolean", description: description}
}

// Nested creates an object-typed property, for sections of a larger document:
//
//	schema.Object(map[string]*schema.Property{
//	    "agent": schema.Nested("Agent settings", map[string]*schema.Property{
//	        "max_iterations": schema.Integer("Iteration budget").Min(1),
//	    }),
//	})
func Nested(description string, properties map[string]*Property, required ...string) *Property {
	return &Property{
		typ:         "object",
		description: description,
		properties:  buildProperties(properties),
		required:    required,
	}
}

// Enum sets the allowed values.
func (p *Property) Enum(values ...any) *Property {
	p.enum = values
	return p
}

// Min sets the minimum for number and integer properties.
func (p *Property) Min(min float64) *Property {
	p.minimum = &min
	return p
}

// Max sets the maximum for number and integer properties.
func (p *Property) Max(max float64) *Property {
	p.maximum = &max
	return p
}

// MinLength sets the minimum length of a string property.
func (p *Property) MinLength(min int) *Property {
	p.minLength = &min
	return p
}

// Pattern sets a regular expression a string property must match.
//
//	schema.String("Base URL").Pattern(`^https?://`)
func (p *Property) Pattern(pattern string) *Property {
	p.pattern = pattern
	return p
}

// Default documents the default value.
func (p *Property) Default(value any) *Property {
	p.def = value
	return p
}
