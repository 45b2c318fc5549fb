package reagent

import "context"

// Model turns a prompt into a single text completion.
//
// An empty completion is treated by the loop the same way as an error: the
// provider is considered unavailable and the session aborts.
type Model interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ModelFunc adapts a plain function to [Model].
type ModelFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f ModelFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// NamedModel is implemented by models that can report which underlying model
// they call. The name is recorded in traces and logs.
type NamedModel interface {
	Model
	ModelName() string
}

// ModelName returns the name of m if it implements [NamedModel], otherwise "".
func ModelName(m Model) string {
	if n, ok := m.(NamedModel); ok {
		return n.ModelName()
	}
	return ""
}
