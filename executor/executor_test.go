package executor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/executor"
	"github.com/rickchristie/reagent/hooks"
	"github.com/rickchristie/reagent/internal/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLoop returns its results in order, then keeps continuing.
type scriptedLoop struct {
	results []*reagent.AgentLoopResult
	errs    []error
	calls   int
	onNext  func(calls int)
}

func (l *scriptedLoop) Next(_ context.Context, s *reagent.Session) (*reagent.AgentLoopResult, error) {
	idx := l.calls
	l.calls++
	if l.onNext != nil {
		l.onNext(l.calls)
	}
	if idx < len(l.errs) && l.errs[idx] != nil {
		return nil, l.errs[idx]
	}
	if idx < len(l.results) {
		if r := l.results[idx]; r.Step != nil {
			s.AppendStep(r.Step)
		}
		return l.results[idx], nil
	}
	s.AppendStep(&reagent.Step{Action: reagent.Str("search")})
	return &reagent.AgentLoopResult{Action: reagent.LAContinue}, nil
}

func TestExecutor_Execute(t *testing.T) {
	type input struct {
		maxIterations int
		results       []*reagent.AgentLoopResult
		errs          []error
	}

	type expected struct {
		status      reagent.Status
		finalAnswer string
		reason      string
		iterations  int
		calls       int
		errIs       error
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "answered on first iteration",
			input: input{
				maxIterations: 3,
				results: []*reagent.AgentLoopResult{{
					Action:      reagent.LATerminate,
					Status:      reagent.StatusAnswered,
					FinalAnswer: "20%",
				}},
			},
			expected: expected{
				status:      reagent.StatusAnswered,
				finalAnswer: "20%",
				iterations:  1,
				calls:       1,
			},
		},
		{
			name:  "exhausted after exactly max iterations",
			input: input{maxIterations: 2},
			expected: expected{
				status:     reagent.StatusExhausted,
				reason:     reagent.ReasonMaxIterations,
				iterations: 2,
				calls:      2,
			},
		},
		{
			name: "aborted by loop",
			input: input{
				maxIterations: 5,
				results: []*reagent.AgentLoopResult{{
					Action: reagent.LATerminate,
					Status: reagent.StatusAborted,
					Reason: reagent.ReasonNoModelResponse,
					Err:    reagent.ErrProviderUnavailable,
				}},
			},
			expected: expected{
				status:     reagent.StatusAborted,
				reason:     reagent.ReasonNoModelResponse,
				iterations: 1,
				calls:      1,
				errIs:      reagent.ErrProviderUnavailable,
			},
		},
		{
			name: "loop error aborts",
			input: input{
				maxIterations: 5,
				errs:          []error{nil, errors.New("template broke")},
			},
			expected: expected{
				status:     reagent.StatusAborted,
				reason:     "AgentLoop.Next (iteration 2): template broke",
				iterations: 2,
				calls:      2,
			},
		},
		{
			name: "terminate without a terminal status aborts",
			input: input{
				maxIterations: 5,
				results:       []*reagent.AgentLoopResult{{Action: reagent.LATerminate}},
			},
			expected: expected{
				status:     reagent.StatusAborted,
				iterations: 1,
				calls:      1,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			loop := &scriptedLoop{results: tc.input.results, errs: tc.input.errs}
			session := reagent.NewSession("What is the VAT rate?", tc.input.maxIterations)

			executor.New(loop).Execute(context.Background(), session)

			result := session.Result()
			assert.Equal(t, tc.expected.status, result.Status)
			assert.Equal(t, tc.expected.finalAnswer, result.FinalAnswer)
			assert.Equal(t, tc.expected.reason, result.Reason)
			assert.Equal(t, tc.expected.iterations, result.Iterations)
			assert.Equal(t, tc.expected.calls, loop.calls)
			assert.Equal(t, int64(tc.expected.iterations), session.Stats().GetIterations())
			assert.False(t, result.EndTime.IsZero())
			if tc.expected.errIs != nil {
				assert.ErrorIs(t, result.Err, tc.expected.errIs)
			}
		})
	}
}

func TestExecutor_ContextCanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loop := &scriptedLoop{}
	session := reagent.NewSession("q", 3)

	executor.New(loop).Execute(ctx, session)

	assert.Equal(t, 0, loop.calls)
	assert.Equal(t, reagent.StatusAborted, session.Status())
	assert.Equal(t, context.Canceled.Error(), session.Reason())
	assert.ErrorIs(t, session.Err(), context.Canceled)
}

func TestExecutor_ContextCanceledBetweenIterations(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop := &scriptedLoop{onNext: func(calls int) {
		if calls == 2 {
			cancel()
		}
	}}
	session := reagent.NewSession("q", 10)

	executor.New(loop).Execute(ctx, session)

	assert.Equal(t, 2, loop.calls)
	assert.Equal(t, reagent.StatusAborted, session.Status())
	assert.Equal(t, 2, session.Len())
}

func TestExecutor_HookOrder(t *testing.T) {
	rec := tt.NewRecordingHook()
	loop := &scriptedLoop{results: []*reagent.AgentLoopResult{
		{Action: reagent.LAContinue, Step: &reagent.Step{Action: reagent.Str("search")}},
		{Action: reagent.LATerminate, Status: reagent.StatusAnswered, FinalAnswer: "done"},
	}}
	session := reagent.NewSession("q", 5)

	executor.New(loop).WithHooks(hooks.NewRegistry().Register(rec)).Execute(context.Background(), session)

	assert.Equal(t, []string{
		"before_execution",
		"before_iteration:1",
		"after_iteration:1",
		"before_iteration:2",
		"after_iteration:2",
		"after_execution:answered",
	}, rec.Events())
	require.NotNil(t, rec.AfterExecution)
	assert.Equal(t, "done", rec.AfterExecution.FinalAnswer)
	assert.Equal(t, 2, rec.AfterExecution.Iterations)

	counts := tt.CountTraceTypes(session.Events())
	assert.Equal(t, 2, counts["iteration_start"])
	assert.Equal(t, 2, counts["iteration_end"])
}

func TestExecutor_LoopErrorFiresErrorHook(t *testing.T) {
	rec := tt.NewRecordingHook()
	boom := errors.New("boom")
	loop := &scriptedLoop{errs: []error{boom}}
	session := reagent.NewSession("q", 5)

	executor.New(loop).RegisterHook(rec).Execute(context.Background(), session)

	require.Len(t, rec.Errors, 1)
	assert.ErrorIs(t, rec.Errors[0], boom)
	assert.ErrorIs(t, session.Err(), boom)
}
