// Package hooks provides a registry that dispatches session events to hooks.
//
// Each hook interface in the root package corresponds to one event. A hook
// implements only the interfaces it cares about:
//
// Session lifecycle:
//   - [reagent.BeforeExecutionHook], [reagent.AfterExecutionHook]
//   - [reagent.BeforeIterationHook], [reagent.AfterIterationHook]
//   - [reagent.ErrorHook]
//
// Model and tool calls:
//   - [reagent.BeforeModelCallHook], [reagent.AfterModelCallHook]
//   - [reagent.BeforeToolCallHook] (can rewrite the input), [reagent.AfterToolCallHook]
//
// Example:
//
//	type ToolTimer struct{}
//
//	func (ToolTimer) OnAfterToolCall(
//	    ctx context.Context, s *reagent.Session, e reagent.AfterToolCallEvent,
//	) {
//	    log.Printf("%s took %v", e.ToolName, e.Duration)
//	}
//
//	registry := hooks.NewRegistry().Register(ToolTimer{})
//	exec := executor.New(agent).WithHooks(registry)
//
// The loggers package ships ready-made hooks for slog and YAML dumps.
package hooks
