package reagent

import "context"

// LoopAction tells the executor what to do after an iteration.
type LoopAction int

const (
	// LAContinue runs another iteration, budget permitting.
	LAContinue LoopAction = iota

	// LATerminate ends the session with the status in [AgentLoopResult].
	LATerminate
)

func (a LoopAction) String() string {
	switch a {
	case LAContinue:
		return "continue"
	case LATerminate:
		return "terminate"
	}
	return "unknown"
}

// AgentLoopResult is what one iteration produced.
type AgentLoopResult struct {
	Action LoopAction

	// Step is the parsed step of this iteration. It is nil when the model
	// returned nothing.
	Step *Step

	// Status, FinalAnswer, Reason and Err are only meaningful when Action is
	// LATerminate.
	Status      Status
	FinalAnswer string
	Reason      string
	Err         error
}

// AgentLoop runs a single iteration of an agent against a session.
//
// Next reads the session's question and transcript, appends at most one step
// and reports whether the session should continue. A returned error is
// unexpected (e.g. a broken prompt template) and aborts the session.
type AgentLoop interface {
	Next(ctx context.Context, session *Session) (*AgentLoopResult, error)
}
