package history

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rickchristie/reagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vatResult() *reagent.Result {
	start := time.Date(2026, 3, 2, 9, 30, 15, 0, time.UTC)
	return &reagent.Result{
		SessionID:   "3f2a9c1e-7b4d-4e8a-9f1c-2d3e4f5a6b7c",
		Question:    "What is the VAT rate?",
		Status:      reagent.StatusAnswered,
		FinalAnswer: "The standard VAT rate is 20%.",
		Iterations:  2,
		StartTime:   start,
		EndTime:     start.Add(3 * time.Second),
		Transcript: reagent.Transcript{
			{
				Thought:       reagent.Str("I should search GOV.UK"),
				Action:        reagent.Str("search_govuk"),
				ActionInput:   reagent.Str("VAT rate"),
				Observation:   reagent.Str("Title: VAT rates ..."),
				EurekaThought: reagent.Str("hidden on a non-terminal step"),
			},
			{
				Thought:       reagent.Str("found it"),
				EurekaThought: reagent.Str("I now know the final answer"),
				FinalAnswer:   reagent.Str("The standard VAT rate is 20%."),
			},
		},
	}
}

func TestMarkdown(t *testing.T) {
	expected := strings.Join([]string{
		"# What is the VAT rate?",
		"",
		"_Status: answered, 2 iterations_",
		"",
		"**Thought:** I should search GOV.UK",
		"**Action:** search_govuk",
		"**Action Input:** VAT rate",
		"**Observation:** Title: VAT rates ...",
		"",
		"**Thought:** found it",
		"",
		"**Eureka Thought:** I now know the final answer",
		"",
		"**Final Answer:** The standard VAT rate is 20%.",
		"",
	}, "\n")

	assert.Equal(t, expected, Markdown(vatResult()))
}

func TestMarkdown_Aborted(t *testing.T) {
	result := &reagent.Result{
		Question:   "q",
		Status:     reagent.StatusAborted,
		Reason:     "no model response",
		Iterations: 1,
	}

	assert.Equal(t, "# q\n\n_Status: aborted, 1 iterations_\n_Reason: no model response_\n", Markdown(result))
}

func TestMarkdown_BlankFinalAnswerIsNotClosing(t *testing.T) {
	result := &reagent.Result{
		Question:   "q",
		Status:     reagent.StatusExhausted,
		Iterations: 1,
		Transcript: reagent.Transcript{
			{
				Action:        reagent.Str("search_govuk"),
				Observation:   reagent.Str("obs"),
				EurekaThought: reagent.Str("maybe"),
				FinalAnswer:   reagent.Str(""),
			},
		},
	}

	md := Markdown(result)

	assert.Contains(t, md, "**Observation:** obs\n")
	assert.NotContains(t, md, "Eureka Thought")
	assert.NotContains(t, md, "Final Answer")
}

func TestMarkdownWriter(t *testing.T) {
	dir := t.TempDir()
	result := vatResult()

	url, err := NewMarkdownWriter(dir).Write(context.Background(), result)

	require.NoError(t, err)
	assert.Equal(t, "20260302-093015-3f2a9c1e.md", FileName(result))
	assert.True(t, strings.HasSuffix(url, "/20260302-093015-3f2a9c1e.md"), url)

	data, err := os.ReadFile(dir + "/" + FileName(result))
	require.NoError(t, err)
	assert.Equal(t, Markdown(result), string(data))
}
