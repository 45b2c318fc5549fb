package reagent

import "time"

// Status is the lifecycle state of a session.
type Status string

const (
	// StatusRunning means the loop has not terminated yet.
	StatusRunning Status = "running"

	// StatusAnswered means the model produced a non-empty final answer.
	StatusAnswered Status = "answered"

	// StatusExhausted means the iteration budget ran out without an answer.
	StatusExhausted Status = "exhausted"

	// StatusAborted means the model failed the protocol, the provider returned
	// nothing, or the context was canceled.
	StatusAborted Status = "aborted"
)

// IsTerminal reports whether the status ends a session.
func (s Status) IsTerminal() bool {
	return s != StatusRunning && s != ""
}

// Reason strings used for aborted and exhausted sessions.
const (
	ReasonNoModelResponse  = "no model response"
	ReasonNoActionOrAnswer = "no valid action or final answer"
	ReasonMaxIterations    = "max iterations reached"
)

// Result is the outcome of one session.
type Result struct {
	SessionID string
	Question  string

	Status Status

	// FinalAnswer is set when Status is StatusAnswered.
	FinalAnswer string

	// Reason is set when Status is StatusAborted or StatusExhausted.
	Reason string

	// Transcript holds every completed step, including the final one.
	Transcript Transcript

	// Iterations is the number of iterations started.
	Iterations int

	// Err is the cause of an abort, if any.
	Err error

	StartTime time.Time
	EndTime   time.Time
}

// Answered reports whether the session produced a final answer.
func (r *Result) Answered() bool {
	return r != nil && r.Status == StatusAnswered
}

// Duration is the wall time of the session.
func (r *Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
