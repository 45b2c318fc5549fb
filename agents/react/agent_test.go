package react

import (
	"context"
	"errors"
	"strings"
	"testing"
	"text/template"
	"time"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/format"
	"github.com/rickchristie/reagent/internal/tt"
	"github.com/rickchristie/reagent/toolchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTemplate = "Answer: {{.Question}}"

var fixedClock = reagent.FixedClock{T: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}

func TestRun_VATEndToEnd(t *testing.T) {
	model := tt.NewMockModel().
		AddResponse("Thought: need to search\nAction: search_govuk\nAction Input: VAT rate").
		AddResponse("Thought: found it\nFinal Answer: The standard VAT rate is 20%.")
	search := tt.NewMockTool("search_govuk", "Title: VAT rates ...")
	registry := toolchain.New().RegisterTool(search)

	result, err := Run(context.Background(), "What is the VAT rate?", model, testTemplate, registry, 10)

	require.NoError(t, err)
	assert.Equal(t, reagent.StatusAnswered, result.Status)
	assert.True(t, result.Answered())
	assert.Equal(t, "The standard VAT rate is 20%.", result.FinalAnswer)
	assert.Equal(t, 2, result.Iterations)
	require.Len(t, result.Transcript, 2)

	tt.AssertStep(t, &reagent.Step{
		Thought:     reagent.Str("need to search"),
		Action:      reagent.Str("search_govuk"),
		ActionInput: reagent.Str("VAT rate"),
		Observation: reagent.Str("Title: VAT rates ..."),
	}, result.Transcript[0])
	tt.AssertStep(t, &reagent.Step{
		Thought:     reagent.Str("found it"),
		FinalAnswer: reagent.Str("The standard VAT rate is 20%."),
	}, result.Transcript[1])

	assert.Equal(t, []string{"VAT rate"}, search.Inputs)
	require.Len(t, model.CapturedPrompts, 2)
	assert.Equal(t, "Answer: What is the VAT rate?", model.CapturedPrompts[0])
	assert.Equal(t, "Answer: What is the VAT rate?\n"+
		"Thought : need to search\n"+
		"Action : search_govuk\n"+
		"Action Input : VAT rate\n"+
		"Observation : Title: VAT rates ...", model.CapturedPrompts[1])
}

func TestAgent_Run(t *testing.T) {
	type input struct {
		responses     []string
		modelErr      error
		tools         []reagent.Tool
		maxIterations int
	}

	type expected struct {
		status      reagent.Status
		finalAnswer string
		reason      string
		iterations  int
		steps       int
		errIs       error

		// lastPromptExcludes must not appear in the final prompt sent.
		lastPromptExcludes []string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "empty first response aborts with no steps",
			input: input{
				responses: []string{""},
			},
			expected: expected{
				status:     reagent.StatusAborted,
				reason:     "no model response",
				iterations: 1,
				steps:      0,
				errIs:      reagent.ErrProviderUnavailable,
			},
		},
		{
			name: "whitespace response aborts",
			input: input{
				responses: []string{"  \n "},
			},
			expected: expected{
				status:     reagent.StatusAborted,
				reason:     "no model response",
				iterations: 1,
				errIs:      reagent.ErrProviderUnavailable,
			},
		},
		{
			name: "model error aborts",
			input: input{
				modelErr: errors.New("rate limited"),
			},
			expected: expected{
				status:     reagent.StatusAborted,
				reason:     "no model response",
				iterations: 1,
				errIs:      reagent.ErrProviderUnavailable,
			},
		},
		{
			name: "no action and no final answer aborts",
			input: input{
				responses: []string{"Thought: I am thinking out loud"},
			},
			expected: expected{
				status:     reagent.StatusAborted,
				reason:     "no valid action or final answer",
				iterations: 1,
				steps:      0,
				errIs:      reagent.ErrMalformedStep,
			},
		},
		{
			name: "empty final answer and empty action abort",
			input: input{
				responses: []string{"Action:\nFinal Answer:"},
			},
			expected: expected{
				status:     reagent.StatusAborted,
				reason:     "no valid action or final answer",
				iterations: 1,
				errIs:      reagent.ErrMalformedStep,
			},
		},
		{
			name: "always acting exhausts the budget",
			input: input{
				responses:     []string{"Action: search_govuk\nAction Input: VAT"},
				tools:         []reagent.Tool{tt.NewMockTool("search_govuk", "result")},
				maxIterations: 2,
			},
			expected: expected{
				status:     reagent.StatusExhausted,
				reason:     reagent.ReasonMaxIterations,
				iterations: 2,
				steps:      2,
			},
		},
		{
			name: "tool error does not end the session",
			input: input{
				responses: []string{
					"Action: search_govuk\nAction Input: VAT",
					"Final Answer: gave up searching",
				},
				tools: []reagent.Tool{tt.NewMockTool("search_govuk", "").WithError(errors.New("boom"))},
			},
			expected: expected{
				status:      reagent.StatusAnswered,
				finalAnswer: "gave up searching",
				iterations:  2,
				steps:       2,
			},
		},
		{
			name: "unknown action does not end the session",
			input: input{
				responses: []string{
					"Action: google\nAction Input: VAT",
					"Final Answer: done",
				},
				tools: []reagent.Tool{tt.NewMockTool("search_govuk", "x")},
			},
			expected: expected{
				status:      reagent.StatusAnswered,
				finalAnswer: "done",
				iterations:  2,
				steps:       2,
			},
		},
		{
			name: "blank final answer next to an action is not replayed",
			input: input{
				responses: []string{
					"Thought: t\nAction: search_govuk\nAction Input: q\nEureka Thought: maybe\nFinal Answer:",
					"Final Answer: done",
				},
				tools: []reagent.Tool{tt.NewMockTool("search_govuk", "obs")},
			},
			expected: expected{
				status:             reagent.StatusAnswered,
				finalAnswer:        "done",
				iterations:         2,
				steps:              2,
				lastPromptExcludes: []string{"Eureka Thought :", "Final Answer :"},
			},
		},
		{
			name: "final answer wins over action in the same reply",
			input: input{
				responses: []string{"Action: search_govuk\nAction Input: VAT\nFinal Answer: 20%"},
				tools:     []reagent.Tool{tt.NewMockTool("search_govuk", "x")},
			},
			expected: expected{
				status:      reagent.StatusAnswered,
				finalAnswer: "20%",
				iterations:  1,
				steps:       1,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			model := tt.NewMockModel()
			if tc.input.modelErr != nil {
				model.AddError(tc.input.modelErr)
			}
			for i, r := range tc.input.responses {
				if i == len(tc.input.responses)-1 {
					model.Always(r)
				} else {
					model.AddResponse(r)
				}
			}
			agent := NewAgent(model).WithMaxIterations(tc.input.maxIterations)
			for _, tool := range tc.input.tools {
				agent.RegisterTool(tool)
			}

			result, err := agent.Run(context.Background(), "What is the VAT rate?")

			require.NoError(t, err)
			assert.Equal(t, tc.expected.status, result.Status)
			assert.Equal(t, tc.expected.finalAnswer, result.FinalAnswer)
			assert.Equal(t, tc.expected.reason, result.Reason)
			assert.Equal(t, tc.expected.iterations, result.Iterations)
			assert.Len(t, result.Transcript, tc.expected.steps)
			if tc.expected.errIs != nil {
				assert.ErrorIs(t, result.Err, tc.expected.errIs)
			} else {
				assert.NoError(t, result.Err)
			}
			if len(tc.expected.lastPromptExcludes) > 0 {
				last := model.CapturedPrompts[len(model.CapturedPrompts)-1]
				assert.Contains(t, last, "Observation : obs")
				for _, s := range tc.expected.lastPromptExcludes {
					assert.NotContains(t, last, s)
				}
			}
		})
	}
}

func TestAgent_ToolErrorReachesTheNextPrompt(t *testing.T) {
	model := tt.NewMockModel().
		AddResponse("Thought: search\nAction: search_govuk\nAction Input: \"VAT\"").
		AddResponse("Final Answer: sorry")
	agent := NewAgent(model).
		WithPromptTemplate(mustTemplate(t, testTemplate)).
		RegisterTool(tt.NewMockTool("search_govuk", "").WithError(errors.New("boom")))

	result, err := agent.Run(context.Background(), "q")

	require.NoError(t, err)
	require.Len(t, result.Transcript, 2)
	assert.Equal(t, "Error occurred while executing action: boom", *result.Transcript[0].Observation)
	assert.Contains(t, model.CapturedPrompts[1], "boom")
}

func TestAgent_ObservationWrittenByModelIsReplaced(t *testing.T) {
	model := tt.NewMockModel().
		AddResponse("Action: search_govuk\nAction Input: VAT\nObservation: I made this up").
		AddResponse("Final Answer: 20%")
	agent := NewAgent(model).RegisterTool(tt.NewMockTool("search_govuk", "real result"))

	result, err := agent.Run(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, "real result", *result.Transcript[0].Observation)
}

func TestAgent_PromptIsRebuiltFromTranscript(t *testing.T) {
	model := tt.NewMockModel().
		AddResponse("Action: echo\nAction Input: one").
		AddResponse("Action: echo\nAction Input: two").
		AddResponse("Final Answer: done")
	agent := NewAgent(model).
		WithPromptTemplate(mustTemplate(t, testTemplate)).
		RegisterTool(toolchain.NewToolFunc("echo", "Echo", func(_ context.Context, in string) (string, error) {
			return strings.ToUpper(in), nil
		}))

	result, err := agent.Run(context.Background(), "q")

	require.NoError(t, err)
	require.Len(t, model.CapturedPrompts, 3)
	for i, prompt := range model.CapturedPrompts {
		expected := "Answer: q"
		if i > 0 {
			expected += "\n" + format.FormatAll(result.Transcript[:i])
		}
		assert.Equal(t, expected, prompt, "prompt %d", i+1)
	}
}

func TestAgent_HooksAndStats(t *testing.T) {
	model := tt.NewMockModel().
		AddResponse("Action: search_govuk\nAction Input: VAT").
		AddResponse("Final Answer: 20%")
	rec := tt.NewRecordingHook()
	agent := NewAgent(model).RegisterTool(tt.NewMockTool("search_govuk", "x"))

	result, err := agent.Run(context.Background(), "q", rec)

	require.NoError(t, err)
	assert.True(t, result.Answered())
	assert.Equal(t, []string{
		"before_execution",
		"before_iteration:1",
		"before_model",
		"after_model",
		"before_tool:search_govuk",
		"after_tool:search_govuk",
		"after_iteration:1",
		"before_iteration:2",
		"before_model",
		"after_model",
		"after_iteration:2",
		"after_execution:answered",
	}, rec.Events())
}

func TestAgent_MalformedStepIsTraced(t *testing.T) {
	model := tt.NewMockModel().AddResponse("just chatting")
	agent := NewAgent(model)
	session := reagent.NewSession("q", 3)

	res, err := agent.Next(context.Background(), session)

	require.NoError(t, err)
	assert.Equal(t, reagent.LATerminate, res.Action)
	assert.Equal(t, reagent.StatusAborted, res.Status)
	assert.Equal(t, int64(1), session.Stats().GetCounter(reagent.KeyParseErrors))
	assert.Equal(t, int64(1), session.Stats().GetCounter(reagent.KeyModelCalls))
	assert.Equal(t, int64(1), session.Stats().GetCounter(reagent.KeyModelCallsFor+"test-model"))
	assert.Equal(t, 0, session.Len())
}

func TestAgent_BuildPrompt_DefaultTemplate(t *testing.T) {
	agent := NewAgent(tt.NewMockModel()).
		WithClock(fixedClock).
		RegisterTool(tt.NewMockTool("search_govuk", "")).
		RegisterTool(tt.NewMockTool("ask_user", ""))
	session := reagent.NewSession("How do I renew my passport?", 0)

	prompt, err := agent.BuildPrompt(session)

	require.NoError(t, err)
	assert.Contains(t, prompt, "Today is 2026-03-02.")
	assert.Contains(t, prompt, "1. search_govuk: Mock tool search_govuk\n2. ask_user: Mock tool ask_user")
	assert.Contains(t, prompt, "should be one of [search_govuk, ask_user]")
	assert.True(t, strings.HasSuffix(prompt, "Question: How do I renew my passport?\nThought:"))
}

func TestAgent_Run_NilModel(t *testing.T) {
	_, err := NewAgent(nil).Run(context.Background(), "q")

	assert.ErrorIs(t, err, reagent.ErrNilModel)
}

func TestRun_InvalidTemplate(t *testing.T) {
	_, err := Run(context.Background(), "q", tt.NewMockModel(), "no placeholder", nil, 0)

	assert.ErrorIs(t, err, ErrTemplateMissingQuestion)
}

func TestRun_DefaultsBudget(t *testing.T) {
	model := tt.NewMockModel().Always("Action: nothing\nAction Input: x")

	result, err := Run(context.Background(), "q", model, "", nil, 0)

	require.NoError(t, err)
	assert.Equal(t, reagent.StatusExhausted, result.Status)
	assert.Equal(t, reagent.DefaultMaxIterations, result.Iterations)
	assert.Equal(t, "Error: Invalid action 'nothing'. Must be one of []", *result.Transcript[0].Observation)
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	model := tt.NewMockModel().Always("Final Answer: never")

	result, err := Run(ctx, "q", model, testTemplate, nil, 3)

	require.NoError(t, err)
	assert.Equal(t, reagent.StatusAborted, result.Status)
	assert.Equal(t, 0, model.CallCount())
}

func TestNewPromptTemplate(t *testing.T) {
	tmpl, err := NewPromptTemplate("Q: {{.Question}} ({{.Time.Weekday}})")
	require.NoError(t, err)

	out, err := ExecuteTemplate(tmpl, PromptData{Question: "why?", Time: fixedClock})
	require.NoError(t, err)
	assert.Equal(t, "Q: why? (Monday)", out)

	_, err = NewPromptTemplate("Q: {{.Question")
	assert.Error(t, err)
}

func mustTemplate(t *testing.T, text string) *template.Template {
	t.Helper()
	tmpl, err := NewPromptTemplate(text)
	require.NoError(t, err)
	return tmpl
}
