package reagent

import "time"

// TraceEvent is a record in a session's trace log. Recording an event through
// [Session.Trace] also updates the session's [Stats].
type TraceEvent interface {
	traceEvent()
}

// BaseTrace holds the fields every trace event carries. Session.Trace fills
// them in when they are left zero.
type BaseTrace struct {
	Timestamp time.Time
	Iteration int
}

func (BaseTrace) traceEvent() {}

// IterationStartTrace marks the start of an iteration.
type IterationStartTrace struct {
	BaseTrace
}

// IterationEndTrace marks the end of an iteration.
type IterationEndTrace struct {
	BaseTrace
	Duration time.Duration
	Action   LoopAction
}

// ModelCallTrace records one model completion.
type ModelCallTrace struct {
	BaseTrace
	Model         string
	PromptChars   int
	ResponseChars int
	Duration      time.Duration
	Error         error
}

// ToolCallTrace records one dispatch through the tool registry.
type ToolCallTrace struct {
	BaseTrace
	ToolName string
	Input    string
	Output   string
	Duration time.Duration

	// ErrorKind is empty when the tool succeeded.
	ErrorKind ToolErrorKind
	Error     error
}

// ParseErrorTrace records a model response that yielded neither an action
// nor a final answer.
type ParseErrorTrace struct {
	BaseTrace
	Raw string
}

// CustomTrace lets callers attach their own data to the trace log.
type CustomTrace struct {
	BaseTrace
	Name string
	Data map[string]any
}
