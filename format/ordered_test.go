package format

import (
	"testing"

	"github.com/rickchristie/reagent"
	"github.com/stretchr/testify/assert"
)

func TestOrdered_Parse(t *testing.T) {
	type input struct {
		raw string
	}

	type expected struct {
		step *reagent.Step
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "all six labels in canonical order",
			input: input{
				raw: "Thought: This is the first thought\n" +
					"Action: search_govuk\n" +
					"Action Input: VAT rate\n" +
					"Observation: Title: VAT rates\n" +
					"Eureka Thought: The rate is 20%\n" +
					"Final Answer: The standard VAT rate is 20%.",
			},
			expected: expected{
				step: &reagent.Step{
					Thought:       reagent.Str("This is the first thought"),
					Action:        reagent.Str("search_govuk"),
					ActionInput:   reagent.Str("VAT rate"),
					Observation:   reagent.Str("Title: VAT rates"),
					EurekaThought: reagent.Str("The rate is 20%"),
					FinalAnswer:   reagent.Str("The standard VAT rate is 20%."),
				},
			},
		},
		{
			name: "action step only",
			input: input{
				raw: "Thought: need to search\nAction: search_govuk\nAction Input: VAT rate",
			},
			expected: expected{
				step: &reagent.Step{
					Thought:     reagent.Str("need to search"),
					Action:      reagent.Str("search_govuk"),
					ActionInput: reagent.Str("VAT rate"),
				},
			},
		},
		{
			name: "label followed directly by another label is present and empty",
			input: input{
				raw: "Thought:\nAction: ask_user\nAction Input: Which year?",
			},
			expected: expected{
				step: &reagent.Step{
					Thought:     reagent.Str(""),
					Action:      reagent.Str("ask_user"),
					ActionInput: reagent.Str("Which year?"),
				},
			},
		},
		{
			name: "no labels yields an empty step",
			input: input{
				raw: "I am not sure what to do here.",
			},
			expected: expected{
				step: &reagent.Step{},
			},
		},
		{
			name: "numbered and spaced labels",
			input: input{
				raw: "Thought 2: keep going\nAction 2 : search_govuk\nAction Input 2: passport fees",
			},
			expected: expected{
				step: &reagent.Step{
					Thought:     reagent.Str("keep going"),
					Action:      reagent.Str("search_govuk"),
					ActionInput: reagent.Str("passport fees"),
				},
			},
		},
		{
			name: "formatter output with space before colon",
			input: input{
				raw: "Thought : T\nAction : search\nAction Input : q\nFinal Answer : A",
			},
			expected: expected{
				step: &reagent.Step{
					Thought:     reagent.Str("T"),
					Action:      reagent.Str("search"),
					ActionInput: reagent.Str("q"),
					FinalAnswer: reagent.Str("A"),
				},
			},
		},
		{
			name: "multi-line values keep their inner newlines",
			input: input{
				raw: "Thought: first line\nsecond line\nFinal Answer: one\ntwo",
			},
			expected: expected{
				step: &reagent.Step{
					Thought:     reagent.Str("first line\nsecond line"),
					FinalAnswer: reagent.Str("one\ntwo"),
				},
			},
		},
		{
			name: "repeated label does not end the value",
			input: input{
				raw: "Action: first\nAction: second",
			},
			expected: expected{
				step: &reagent.Step{
					Action: reagent.Str("first\nAction: second"),
				},
			},
		},
		{
			name: "eureka thought is not mistaken for thought",
			input: input{
				raw: "Eureka Thought: got it\nFinal Answer: done",
			},
			expected: expected{
				step: &reagent.Step{
					EurekaThought: reagent.Str("got it"),
					FinalAnswer:   reagent.Str("done"),
				},
			},
		},
		{
			name: "thought after eureka thought is still found",
			input: input{
				raw: "Eureka Thought: got it\nThought: later",
			},
			expected: expected{
				step: &reagent.Step{
					Thought:       reagent.Str("later"),
					EurekaThought: reagent.Str("got it\nThought: later"),
				},
			},
		},
		{
			name: "earlier labels do not end a later field",
			input: input{
				raw: "Observation: result\nThought: next",
			},
			expected: expected{
				step: &reagent.Step{
					Thought:     reagent.Str("next"),
					Observation: reagent.Str("result\nThought: next"),
				},
			},
		},
		{
			name: "labels are case sensitive",
			input: input{
				raw: "thought: lower\nfinal answer: nope",
			},
			expected: expected{
				step: &reagent.Step{},
			},
		},
		{
			name: "empty input",
			input: input{
				raw: "",
			},
			expected: expected{
				step: &reagent.Step{},
			},
		},
	}

	parser := NewOrdered()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected.step, parser.Parse(tc.input.raw))
		})
	}
}

func TestNewOrderedFields_RestrictsFields(t *testing.T) {
	parser := NewOrderedFields(reagent.FieldAction, reagent.FieldFinalAnswer)

	step := parser.Parse("Thought: hidden\nAction: search\nFinal Answer: yes")

	assert.Nil(t, step.Thought)
	assert.Equal(t, reagent.Str("search"), step.Action)
	assert.Equal(t, reagent.Str("yes"), step.FinalAnswer)
}
