package reagent

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable means the model returned nothing usable: an empty
	// response or an error from the provider. The session aborts.
	ErrProviderUnavailable = errors.New("no model response")

	// ErrMalformedStep means the parsed step had neither an action nor a final
	// answer. The session aborts.
	ErrMalformedStep = errors.New("no valid action or final answer")

	// ErrUnknownAction is matched by a [ToolError] whose action is not registered.
	ErrUnknownAction = errors.New("unknown action")

	// ErrToolExecution is matched by a [ToolError] raised by a tool handler.
	ErrToolExecution = errors.New("tool execution failed")

	// ErrNilModel is returned when a loop is started without a model.
	ErrNilModel = errors.New("reagent: model is nil")
)

// ToolErrorKind classifies a tool failure for traces and logs.
type ToolErrorKind string

const (
	ToolErrorNone          ToolErrorKind = ""
	ToolErrorUnknownAction ToolErrorKind = "unknown_action"
	ToolErrorExecution     ToolErrorKind = "execution"
	ToolErrorPanic         ToolErrorKind = "panic"
)

// ToolError carries the structured detail of a failed dispatch. Only the
// rendered observation reaches the transcript; the ToolError itself goes to
// traces and hooks.
type ToolError struct {
	Kind   ToolErrorKind
	Action string
	Err    error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %q (%s): %v", e.Action, e.Kind, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a ToolError against ErrUnknownAction or
// ErrToolExecution based on its kind.
func (e *ToolError) Is(target error) bool {
	switch target {
	case ErrUnknownAction:
		return e.Kind == ToolErrorUnknownAction
	case ErrToolExecution:
		return e.Kind == ToolErrorExecution || e.Kind == ToolErrorPanic
	}
	return false
}
