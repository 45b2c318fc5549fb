package loggers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rickchristie/reagent"
)

// SlogHook logs every hook event as a structured record.
//
// Lifecycle events are logged at Info, model and tool calls at Debug and
// errors at Warn. Prompts and responses are never logged in full; use
// [YAMLHook] for that.
type SlogHook struct {
	logger *slog.Logger
}

// NewSlogHook creates a SlogHook. A nil logger means slog.Default().
func NewSlogHook(logger *slog.Logger) *SlogHook {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogHook{logger: logger}
}

func (h *SlogHook) with(session *reagent.Session) *slog.Logger {
	return h.logger.With(slog.String("session", session.ID()))
}

func (h *SlogHook) OnBeforeExecution(
	ctx context.Context,
	session *reagent.Session,
	event reagent.BeforeExecutionEvent,
) {
	h.with(session).InfoContext(ctx, "session started",
		slog.String("question", event.Question),
		slog.Int("max_iterations", event.MaxIterations),
	)
}

func (h *SlogHook) OnAfterExecution(
	ctx context.Context,
	session *reagent.Session,
	event reagent.AfterExecutionEvent,
) {
	attrs := []any{
		slog.String("status", string(event.Status)),
		slog.Int("iterations", event.Iterations),
		slog.Duration("duration", event.Duration),
		slog.Int64("model_calls", session.Stats().GetCounter(reagent.KeyModelCalls)),
		slog.Int64("tool_calls", session.Stats().GetCounter(reagent.KeyToolCalls)),
	}
	if event.Reason != "" {
		attrs = append(attrs, slog.String("reason", event.Reason))
	}
	if event.Err != nil {
		attrs = append(attrs, slog.Any("error", event.Err))
	}
	h.with(session).InfoContext(ctx, "session finished", attrs...)
}

func (h *SlogHook) OnBeforeIteration(
	ctx context.Context,
	session *reagent.Session,
	event reagent.BeforeIterationEvent,
) {
	h.with(session).DebugContext(ctx, "iteration started", slog.Int("iteration", event.Iteration))
}

func (h *SlogHook) OnAfterIteration(
	ctx context.Context,
	session *reagent.Session,
	event reagent.AfterIterationEvent,
) {
	attrs := []any{
		slog.Int("iteration", event.Iteration),
		slog.Duration("duration", event.Duration),
	}
	if event.Result != nil {
		attrs = append(attrs, slog.String("action", event.Result.Action.String()))
		if step := event.Result.Step; step != nil && step.HasAction() {
			attrs = append(attrs, slog.String("tool", *step.Action))
		}
	}
	h.with(session).DebugContext(ctx, "iteration finished", attrs...)
}

func (h *SlogHook) OnBeforeModelCall(
	ctx context.Context,
	session *reagent.Session,
	event reagent.BeforeModelCallEvent,
) {
	h.with(session).DebugContext(ctx, "model call",
		slog.String("model", event.Model),
		slog.Int("prompt_chars", len(event.Prompt)),
	)
}

func (h *SlogHook) OnAfterModelCall(
	ctx context.Context,
	session *reagent.Session,
	event reagent.AfterModelCallEvent,
) {
	attrs := []any{
		slog.String("model", event.Model),
		slog.Int("response_chars", len(event.Response)),
		slog.Duration("duration", event.Duration),
	}
	if event.Err != nil {
		attrs = append(attrs, slog.Any("error", event.Err))
	}
	h.with(session).DebugContext(ctx, "model responded", attrs...)
}

func (h *SlogHook) OnBeforeToolCall(
	ctx context.Context,
	session *reagent.Session,
	event *reagent.BeforeToolCallEvent,
) {
	h.with(session).DebugContext(ctx, "tool call",
		slog.String("tool", event.ToolName),
		slog.String("input", event.Input),
	)
}

func (h *SlogHook) OnAfterToolCall(
	ctx context.Context,
	session *reagent.Session,
	event reagent.AfterToolCallEvent,
) {
	attrs := []any{
		slog.String("tool", event.ToolName),
		slog.Int("output_chars", len(event.Output)),
		slog.Duration("duration", event.Duration),
	}
	if event.Err != nil {
		var te *reagent.ToolError
		if errors.As(event.Err, &te) {
			attrs = append(attrs, slog.String("error_kind", string(te.Kind)))
		}
		attrs = append(attrs, slog.Any("error", event.Err))
	}
	h.with(session).DebugContext(ctx, "tool returned", attrs...)
}

func (h *SlogHook) OnError(
	ctx context.Context,
	session *reagent.Session,
	event reagent.ErrorEvent,
) {
	h.with(session).WarnContext(ctx, "session error",
		slog.Int("iteration", event.Iteration),
		slog.Any("error", event.Err),
	)
}

var (
	_ reagent.BeforeExecutionHook = (*SlogHook)(nil)
	_ reagent.AfterExecutionHook  = (*SlogHook)(nil)
	_ reagent.BeforeIterationHook = (*SlogHook)(nil)
	_ reagent.AfterIterationHook  = (*SlogHook)(nil)
	_ reagent.BeforeModelCallHook = (*SlogHook)(nil)
	_ reagent.AfterModelCallHook  = (*SlogHook)(nil)
	_ reagent.BeforeToolCallHook  = (*SlogHook)(nil)
	_ reagent.AfterToolCallHook   = (*SlogHook)(nil)
	_ reagent.ErrorHook           = (*SlogHook)(nil)
)
