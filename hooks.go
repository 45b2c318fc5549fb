package reagent

import "context"

// -----------------------------------------------------------------------------
// Hook Interfaces
// -----------------------------------------------------------------------------
//
// Hooks observe a session as it runs. Implement any subset of the interfaces
// below and register the value with hooks.Registry:
//
//	type PrintHook struct{}
//
//	func (PrintHook) OnAfterToolCall(
//	    ctx context.Context, s *reagent.Session, e reagent.AfterToolCallEvent,
//	) {
//	    fmt.Printf("%s(%q) -> %q\n", e.ToolName, e.Input, e.Output)
//	}
//
//	exec := executor.New(agent).RegisterHook(PrintHook{})
//
// Hooks are called in registration order and must not block for long. For
// paired hooks, the After hook is always called if the Before hook was.
// -----------------------------------------------------------------------------

// BeforeExecutionHook is notified once before the first iteration.
type BeforeExecutionHook interface {
	OnBeforeExecution(ctx context.Context, session *Session, event BeforeExecutionEvent)
}

// AfterExecutionHook is notified once after the session terminates, whatever
// the status.
type AfterExecutionHook interface {
	OnAfterExecution(ctx context.Context, session *Session, event AfterExecutionEvent)
}

// BeforeIterationHook is notified before each iteration.
type BeforeIterationHook interface {
	OnBeforeIteration(ctx context.Context, session *Session, event BeforeIterationEvent)
}

// AfterIterationHook is notified after each iteration.
type AfterIterationHook interface {
	OnAfterIteration(ctx context.Context, session *Session, event AfterIterationEvent)
}

// BeforeModelCallHook is notified before each model call.
type BeforeModelCallHook interface {
	OnBeforeModelCall(ctx context.Context, session *Session, event BeforeModelCallEvent)
}

// AfterModelCallHook is notified after each model call.
type AfterModelCallHook interface {
	OnAfterModelCall(ctx context.Context, session *Session, event AfterModelCallEvent)
}

// BeforeToolCallHook is notified before each dispatch.
// The hook can modify event.Input to change what the tool receives.
type BeforeToolCallHook interface {
	OnBeforeToolCall(ctx context.Context, session *Session, event *BeforeToolCallEvent)
}

// AfterToolCallHook is notified after each dispatch.
type AfterToolCallHook interface {
	OnAfterToolCall(ctx context.Context, session *Session, event AfterToolCallEvent)
}

// ErrorHook is notified of every error recorded during the session.
type ErrorHook interface {
	OnError(ctx context.Context, session *Session, event ErrorEvent)
}

// HookFirer dispatches the events raised from inside an iteration. The
// executor sets it on the session so agents and toolchains can fire hooks
// without knowing about the registry.
type HookFirer interface {
	FireBeforeModelCall(ctx context.Context, session *Session, event BeforeModelCallEvent)
	FireAfterModelCall(ctx context.Context, session *Session, event AfterModelCallEvent)
	FireBeforeToolCall(ctx context.Context, session *Session, event *BeforeToolCallEvent)
	FireAfterToolCall(ctx context.Context, session *Session, event AfterToolCallEvent)
	FireError(ctx context.Context, session *Session, event ErrorEvent)
}
