package toolchain

import (
	"context"
	"fmt"
	"testing"

	"github.com/rickchristie/reagent/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type holidayQuery struct {
	Region string `json:"region"`
	Year   int    `json:"year"`
}

func newHolidayTool() *StructuredTool[holidayQuery] {
	return NewStructuredTool(
		"uk_bank_holidays",
		"Lists UK bank holidays.",
		schema.Object(map[string]*schema.Property{
			"region": schema.String("UK region").Enum("england-and-wales", "scotland"),
			"year":   schema.Integer("Calendar year").Min(2000),
		}),
		func(_ context.Context, q holidayQuery) (string, error) {
			return fmt.Sprintf("%s/%d", q.Region, q.Year), nil
		},
	)
}

func TestStructuredTool_Call(t *testing.T) {
	type input struct {
		raw string
	}

	type expected struct {
		output string
		err    bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "yaml object",
			input:    input{raw: "region: scotland\nyear: 2025"},
			expected: expected{output: "scotland/2025"},
		},
		{
			name:     "json object",
			input:    input{raw: `{"region": "england-and-wales", "year": 2024}`},
			expected: expected{output: "england-and-wales/2024"},
		},
		{
			name:     "empty input is an empty object",
			input:    input{raw: ""},
			expected: expected{output: "/0"},
		},
		{
			name:     "schema violation",
			input:    input{raw: "region: wales"},
			expected: expected{err: true},
		},
		{
			name:     "not an object",
			input:    input{raw: "just some words"},
			expected: expected{err: true},
		},
	}

	tool := newHolidayTool()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tool.Call(context.Background(), tc.input.raw)
			if tc.expected.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected.output, out)
		})
	}
}

func TestStructuredTool_Description(t *testing.T) {
	desc := newHolidayTool().Description()

	assert.Contains(t, desc, "Lists UK bank holidays. Action Input is a YAML or JSON object")
	assert.Contains(t, desc, "region:")
	assert.Contains(t, desc, "year:")
}

func TestStructuredTool_ErrorThroughRegistry(t *testing.T) {
	r := New().RegisterTool(newHolidayTool())

	obs := r.Execute(context.Background(), nil, "uk_bank_holidays", "region: wales")

	assert.Contains(t, obs, "Error occurred while executing action: schema validation failed")
}
