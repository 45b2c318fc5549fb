package hooks

import (
	"context"

	"github.com/rickchristie/reagent"
)

// Registry stores hooks in registration order and dispatches each event to
// the hooks implementing the matching interface.
//
// Registry is NOT thread-safe for registration. Register all hooks before
// the first session starts; firing is safe from concurrent sessions.
type Registry struct {
	hooks []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]any, 0),
	}
}

// Register adds a hook. Values implementing none of the hook interfaces are
// kept but never called.
func (r *Registry) Register(hook any) *Registry {
	r.hooks = append(r.hooks, hook)
	return r
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	return len(r.hooks)
}

// FireBeforeExecution dispatches to every BeforeExecutionHook.
func (r *Registry) FireBeforeExecution(
	ctx context.Context,
	session *reagent.Session,
	event reagent.BeforeExecutionEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reagent.BeforeExecutionHook); ok {
			hook.OnBeforeExecution(ctx, session, event)
		}
	}
}

// FireAfterExecution dispatches to every AfterExecutionHook.
func (r *Registry) FireAfterExecution(
	ctx context.Context,
	session *reagent.Session,
	event reagent.AfterExecutionEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reagent.AfterExecutionHook); ok {
			hook.OnAfterExecution(ctx, session, event)
		}
	}
}

// FireBeforeIteration dispatches to every BeforeIterationHook.
func (r *Registry) FireBeforeIteration(
	ctx context.Context,
	session *reagent.Session,
	event reagent.BeforeIterationEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reagent.BeforeIterationHook); ok {
			hook.OnBeforeIteration(ctx, session, event)
		}
	}
}

// FireAfterIteration dispatches to every AfterIterationHook.
func (r *Registry) FireAfterIteration(
	ctx context.Context,
	session *reagent.Session,
	event reagent.AfterIterationEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reagent.AfterIterationHook); ok {
			hook.OnAfterIteration(ctx, session, event)
		}
	}
}

// FireBeforeModelCall dispatches to every BeforeModelCallHook.
func (r *Registry) FireBeforeModelCall(
	ctx context.Context,
	session *reagent.Session,
	event reagent.BeforeModelCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reagent.BeforeModelCallHook); ok {
			hook.OnBeforeModelCall(ctx, session, event)
		}
	}
}

// FireAfterModelCall dispatches to every AfterModelCallHook.
func (r *Registry) FireAfterModelCall(
	ctx context.Context,
	session *reagent.Session,
	event reagent.AfterModelCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reagent.AfterModelCallHook); ok {
			hook.OnAfterModelCall(ctx, session, event)
		}
	}
}

// FireBeforeToolCall dispatches to every BeforeToolCallHook. Hooks see the
// same event pointer, so later hooks observe earlier rewrites.
func (r *Registry) FireBeforeToolCall(
	ctx context.Context,
	session *reagent.Session,
	event *reagent.BeforeToolCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reagent.BeforeToolCallHook); ok {
			hook.OnBeforeToolCall(ctx, session, event)
		}
	}
}

// FireAfterToolCall dispatches to every AfterToolCallHook.
func (r *Registry) FireAfterToolCall(
	ctx context.Context,
	session *reagent.Session,
	event reagent.AfterToolCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reagent.AfterToolCallHook); ok {
			hook.OnAfterToolCall(ctx, session, event)
		}
	}
}

// FireError dispatches to every ErrorHook.
func (r *Registry) FireError(
	ctx context.Context,
	session *reagent.Session,
	event reagent.ErrorEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reagent.ErrorHook); ok {
			hook.OnError(ctx, session, event)
		}
	}
}

var _ reagent.HookFirer = (*Registry)(nil)
