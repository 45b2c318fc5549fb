package reagent

import "time"

// BeforeExecutionEvent is fired once before the first iteration.
type BeforeExecutionEvent struct {
	SessionID     string
	Question      string
	MaxIterations int
}

// AfterExecutionEvent is fired once after the session terminates.
type AfterExecutionEvent struct {
	Status      Status
	FinalAnswer string
	Reason      string
	Iterations  int
	Duration    time.Duration
	Err         error
}

// BeforeIterationEvent is fired before each AgentLoop.Next call.
type BeforeIterationEvent struct {
	Iteration int
}

// AfterIterationEvent is fired after each AgentLoop.Next call.
type AfterIterationEvent struct {
	Iteration int
	Result    *AgentLoopResult
	Duration  time.Duration
}

// BeforeModelCallEvent is fired before the model is prompted.
type BeforeModelCallEvent struct {
	Model  string
	Prompt string
}

// AfterModelCallEvent is fired after the model returns.
type AfterModelCallEvent struct {
	Model    string
	Prompt   string
	Response string
	Duration time.Duration
	Err      error
}

// BeforeToolCallEvent is fired before a tool is dispatched. Hooks receive a
// pointer and may rewrite Input.
type BeforeToolCallEvent struct {
	ToolName string
	Input    string
}

// AfterToolCallEvent is fired after a dispatch, including failed ones.
type AfterToolCallEvent struct {
	ToolName string
	Input    string

	// Output is the observation text that goes into the transcript.
	Output   string
	Duration time.Duration
	Err      error
}

// ErrorEvent is fired for every error the session records: model failures,
// malformed steps and tool failures.
type ErrorEvent struct {
	Iteration int
	Err       error
}
