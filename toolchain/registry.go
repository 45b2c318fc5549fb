package toolchain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rickchristie/reagent"
)

// Observation texts produced by dispatch.
const (
	NoResultsObservation = "No results found."
	ToolErrorPrefix      = "Error occurred while executing action: "
	invalidActionFormat  = "Error: Invalid action '%s'. Must be one of [%s]"
)

// Registry holds the tools available to a session, in registration order.
//
// Register every tool before the first session starts. After that the
// registry is only read, so one registry may serve concurrent sessions as
// long as its tools are safe for concurrent use.
type Registry struct {
	tools  []reagent.Tool
	byName map[string]reagent.Tool
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		tools:  make([]reagent.Tool, 0),
		byName: make(map[string]reagent.Tool),
	}
}

// RegisterTool adds a tool. Panics on a nil tool, an empty name, or a name
// that is already registered: these are programming errors.
func (r *Registry) RegisterTool(tool reagent.Tool) *Registry {
	if tool == nil {
		panic("toolchain: RegisterTool called with nil tool")
	}
	name := tool.Name()
	if strings.TrimSpace(name) == "" {
		panic("toolchain: tool name is empty")
	}
	if _, exists := r.byName[name]; exists {
		panic(fmt.Sprintf("toolchain: tool %q registered twice", name))
	}
	r.tools = append(r.tools, tool)
	r.byName[name] = tool
	return r
}

// RegisterFunc registers fn as a tool.
func (r *Registry) RegisterFunc(
	name, description string,
	fn func(ctx context.Context, input string) (string, error),
) *Registry {
	return r.RegisterTool(NewToolFunc(name, description, fn))
}

// Lookup returns the tool registered under name. Names are case-sensitive.
func (r *Registry) Lookup(name string) (reagent.Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.tools))
	for i, t := range r.tools {
		names[i] = t.Name()
	}
	return names
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []reagent.Tool {
	out := make([]reagent.Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// Describe lists the tools as a numbered list for the prompt:
//
//	1. search_govuk: Searches gov.uk websites.
//	2. ask_user: Asks the user a question.
func (r *Registry) Describe() string {
	var sb strings.Builder
	for i, t := range r.tools {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s: %s", i+1, t.Name(), t.Description())
	}
	return sb.String()
}

// Execute dispatches action with input and returns the observation text.
//
// session may be nil, in which case no hooks fire and nothing is traced.
func (r *Registry) Execute(
	ctx context.Context,
	session *reagent.Session,
	action, input string,
) string {
	action = strings.TrimSpace(action)
	input = StripQuotes(strings.TrimSpace(input))

	if session != nil {
		before := &reagent.BeforeToolCallEvent{ToolName: action, Input: input}
		session.FireBeforeToolCall(ctx, before)
		input = before.Input
	}

	start := time.Now()
	output, toolErr := r.dispatch(ctx, action, input)
	duration := time.Since(start)

	if session != nil {
		trace := reagent.ToolCallTrace{
			ToolName: action,
			Input:    input,
			Output:   output,
			Duration: duration,
		}
		var err error
		if toolErr != nil {
			trace.ErrorKind = toolErr.Kind
			trace.Error = toolErr
			err = toolErr
		}
		session.Trace(trace)
		session.FireAfterToolCall(ctx, reagent.AfterToolCallEvent{
			ToolName: action,
			Input:    input,
			Output:   output,
			Duration: duration,
			Err:      err,
		})
		if toolErr != nil {
			session.FireError(ctx, toolErr)
		}
	}
	return output
}

func (r *Registry) dispatch(ctx context.Context, action, input string) (string, *reagent.ToolError) {
	tool, ok := r.byName[action]
	if !ok {
		names := r.Names()
		return fmt.Sprintf(invalidActionFormat, action, strings.Join(names, ", ")),
			&reagent.ToolError{
				Kind:   reagent.ToolErrorUnknownAction,
				Action: action,
				Err:    fmt.Errorf("%w: must be one of %v", reagent.ErrUnknownAction, names),
			}
	}

	output, kind, err := callTool(ctx, tool, input)
	if err != nil {
		return ToolErrorPrefix + err.Error(), &reagent.ToolError{
			Kind:   kind,
			Action: action,
			Err:    err,
		}
	}
	if strings.TrimSpace(output) == "" {
		return NoResultsObservation, nil
	}
	return output, nil
}

// callTool runs the tool, converting a panic into an error.
func callTool(
	ctx context.Context,
	tool reagent.Tool,
	input string,
) (output string, kind reagent.ToolErrorKind, err error) {
	defer func() {
		if p := recover(); p != nil {
			output = ""
			kind = reagent.ToolErrorPanic
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	output, err = tool.Call(ctx, input)
	if err != nil {
		return "", reagent.ToolErrorExecution, err
	}
	return output, reagent.ToolErrorNone, nil
}

// StripQuotes removes one layer of surrounding double quotes. Strings that do
// not both start and end with a quote are returned unchanged.
func StripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

var _ reagent.ToolDispatcher = (*Registry)(nil)
