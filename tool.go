package reagent

import "context"

// Tool is a named handler the model can invoke through the Action field.
//
// Input is the raw Action Input text after trimming and quote stripping.
// The returned string becomes the Observation. A returned error is rendered
// into the Observation as well, it never ends the session.
type Tool interface {
	// Name is the case-sensitive action name.
	Name() string

	// Description is shown to the model in the prompt's tool listing.
	Description() string

	Call(ctx context.Context, input string) (string, error)
}

// ToolDispatcher resolves an action name to a tool and returns the observation
// text. Dispatch never fails: every failure is rendered into the observation.
type ToolDispatcher interface {
	Execute(ctx context.Context, session *Session, action, input string) string
}
