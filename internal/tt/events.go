package tt

import (
	"context"
	"fmt"
	"sync"

	"github.com/rickchristie/reagent"
)

// RecordingHook implements every hook interface and records a short line per
// event, e.g. "before_tool:search_govuk". Useful to assert on hook order.
type RecordingHook struct {
	mu     sync.Mutex
	events []string

	// ToolInputOverride, when set, replaces the input of every tool call.
	ToolInputOverride *string

	AfterExecution *reagent.AfterExecutionEvent
	ToolCalls      []reagent.AfterToolCallEvent
	Errors         []error
}

// NewRecordingHook creates an empty RecordingHook.
func NewRecordingHook() *RecordingHook {
	return &RecordingHook{}
}

func (h *RecordingHook) record(format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, fmt.Sprintf(format, args...))
}

// Events returns the recorded lines in order.
func (h *RecordingHook) Events() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.events))
	copy(out, h.events)
	return out
}

func (h *RecordingHook) OnBeforeExecution(
	_ context.Context, _ *reagent.Session, _ reagent.BeforeExecutionEvent,
) {
	h.record("before_execution")
}

func (h *RecordingHook) OnAfterExecution(
	_ context.Context, _ *reagent.Session, e reagent.AfterExecutionEvent,
) {
	h.record("after_execution:%s", e.Status)
	h.mu.Lock()
	h.AfterExecution = &e
	h.mu.Unlock()
}

func (h *RecordingHook) OnBeforeIteration(
	_ context.Context, _ *reagent.Session, e reagent.BeforeIterationEvent,
) {
	h.record("before_iteration:%d", e.Iteration)
}

func (h *RecordingHook) OnAfterIteration(
	_ context.Context, _ *reagent.Session, e reagent.AfterIterationEvent,
) {
	h.record("after_iteration:%d", e.Iteration)
}

func (h *RecordingHook) OnBeforeModelCall(
	_ context.Context, _ *reagent.Session, _ reagent.BeforeModelCallEvent,
) {
	h.record("before_model")
}

func (h *RecordingHook) OnAfterModelCall(
	_ context.Context, _ *reagent.Session, _ reagent.AfterModelCallEvent,
) {
	h.record("after_model")
}

func (h *RecordingHook) OnBeforeToolCall(
	_ context.Context, _ *reagent.Session, e *reagent.BeforeToolCallEvent,
) {
	h.record("before_tool:%s", e.ToolName)
	if h.ToolInputOverride != nil {
		e.Input = *h.ToolInputOverride
	}
}

func (h *RecordingHook) OnAfterToolCall(
	_ context.Context, _ *reagent.Session, e reagent.AfterToolCallEvent,
) {
	h.record("after_tool:%s", e.ToolName)
	h.mu.Lock()
	h.ToolCalls = append(h.ToolCalls, e)
	h.mu.Unlock()
}

func (h *RecordingHook) OnError(
	_ context.Context, _ *reagent.Session, e reagent.ErrorEvent,
) {
	h.record("error")
	h.mu.Lock()
	h.Errors = append(h.Errors, e.Err)
	h.mu.Unlock()
}

var (
	_ reagent.BeforeExecutionHook = (*RecordingHook)(nil)
	_ reagent.AfterExecutionHook  = (*RecordingHook)(nil)
	_ reagent.BeforeIterationHook = (*RecordingHook)(nil)
	_ reagent.AfterIterationHook  = (*RecordingHook)(nil)
	_ reagent.BeforeModelCallHook = (*RecordingHook)(nil)
	_ reagent.AfterModelCallHook  = (*RecordingHook)(nil)
	_ reagent.BeforeToolCallHook  = (*RecordingHook)(nil)
	_ reagent.AfterToolCallHook   = (*RecordingHook)(nil)
	_ reagent.ErrorHook           = (*RecordingHook)(nil)
)
