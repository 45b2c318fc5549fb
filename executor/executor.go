// Package executor drives an AgentLoop over a session: it enforces the
// iteration budget, stops on context cancellation and fires lifecycle hooks.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/hooks"
)

// Executor orchestrates the execution of an AgentLoop, managing the lifecycle,
// hooks, and trace collection via the Session.
//
// The Executor is responsible for:
//   - Running the AgentLoop repeatedly until it returns [reagent.LATerminate]
//   - Ending the session as exhausted once the iteration budget is used up
//   - Ending the session as aborted when the context is canceled
//   - Invoking lifecycle hooks at appropriate points
type Executor struct {
	loop  reagent.AgentLoop
	hooks *hooks.Registry
}

// New creates a new Executor for loop.
func New(loop reagent.AgentLoop) *Executor {
	return &Executor{
		loop:  loop,
		hooks: hooks.NewRegistry(),
	}
}

// WithHooks replaces the executor's hook registry with the provided one.
// Use this when you need to share a registry across multiple executors.
// Returns the executor for chaining.
func (e *Executor) WithHooks(h *hooks.Registry) *Executor {
	e.hooks = h
	return e
}

// RegisterHook adds a hook to the executor's existing hook registry.
// Returns the executor for chaining.
//
//	exec := executor.New(agent).
//	    RegisterHook(loggers.NewSlogHook(logger)).
//	    RegisterHook(&MetricsHook{})
func (e *Executor) RegisterHook(hook any) *Executor {
	e.hooks.Register(hook)
	return e
}

// Execute runs the AgentLoop until the session terminates.
//
// The execution flow:
//  1. Fire BeforeExecution
//  2. Before each iteration, stop if the context is canceled (aborted) or
//     the budget is spent (exhausted)
//  3. Call AgentLoop.Next and stop when it returns LATerminate
//  4. Fire AfterExecution, always, once BeforeExecution has fired
//
// The outcome is read from session.Result() afterwards.
func (e *Executor) Execute(ctx context.Context, session *reagent.Session) {
	if e.hooks != nil {
		session.SetHookFirer(e.hooks)
	}

	beforeExecutionCalled := false
	defer func() {
		if beforeExecutionCalled && e.hooks != nil {
			e.hooks.FireAfterExecution(ctx, session, reagent.AfterExecutionEvent{
				Status:      session.Status(),
				FinalAnswer: session.FinalAnswer(),
				Reason:      session.Reason(),
				Iterations:  session.Iteration(),
				Duration:    session.Duration(),
				Err:         session.Err(),
			})
		}
	}()

	if e.hooks != nil {
		e.hooks.FireBeforeExecution(ctx, session, reagent.BeforeExecutionEvent{
			SessionID:     session.ID(),
			Question:      session.Question(),
			MaxIterations: session.MaxIterations(),
		})
	}
	beforeExecutionCalled = true

	for {
		if err := ctx.Err(); err != nil {
			session.SetTermination(reagent.StatusAborted, "", err.Error(), err)
			return
		}
		if session.Iteration() >= session.MaxIterations() {
			session.SetTermination(reagent.StatusExhausted, "", reagent.ReasonMaxIterations, nil)
			return
		}

		// Start iteration (increments counter and records IterationStartTrace)
		session.StartIteration()
		iterStart := time.Now()

		if e.hooks != nil {
			e.hooks.FireBeforeIteration(ctx, session, reagent.BeforeIterationEvent{
				Iteration: session.Iteration(),
			})
		}

		loopResult, loopErr := e.loop.Next(ctx, session)
		iterDuration := time.Since(iterStart)

		if loopErr != nil {
			session.EndIteration(reagent.LATerminate, iterDuration)
			execErr := fmt.Errorf("AgentLoop.Next (iteration %d): %w", session.Iteration(), loopErr)
			session.FireError(ctx, execErr)
			session.SetTermination(reagent.StatusAborted, "", execErr.Error(), execErr)
			return
		}

		session.EndIteration(loopResult.Action, iterDuration)

		if e.hooks != nil {
			e.hooks.FireAfterIteration(ctx, session, reagent.AfterIterationEvent{
				Iteration: session.Iteration(),
				Result:    loopResult,
				Duration:  iterDuration,
			})
		}

		if loopResult.Action == reagent.LATerminate {
			status := loopResult.Status
			if !status.IsTerminal() {
				status = reagent.StatusAborted
			}
			session.SetTermination(
				status,
				loopResult.FinalAnswer,
				loopResult.Reason,
				loopResult.Err,
			)
			return
		}
	}
}
