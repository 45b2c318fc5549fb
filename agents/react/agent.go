package react

import (
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/executor"
	"github.com/rickchristie/reagent/format"
	"github.com/rickchristie/reagent/toolchain"
)

// Agent implements [reagent.AgentLoop] for the ReAct text protocol.
//
// Configure it once with the With methods, then call [Agent.Run] as many
// times as needed. Run creates a fresh session per question, so one agent can
// serve concurrent questions as long as its tools allow it.
type Agent struct {
	model         reagent.Model
	template      *template.Template
	toolChain     *toolchain.Registry
	parser        reagent.Parser
	clock         reagent.Clock
	maxIterations int
}

// NewAgent creates a new Agent with the given model and default settings.
// Defaults:
//   - Template: DefaultPromptTemplate
//   - ToolChain: toolchain.New() (no tools)
//   - Parser: format.NewOrdered()
//   - Clock: reagent.SystemClock{}
//   - MaxIterations: reagent.DefaultMaxIterations
func NewAgent(model reagent.Model) *Agent {
	return &Agent{
		model:         model,
		template:      DefaultPromptTemplate,
		toolChain:     toolchain.New(),
		parser:        format.NewOrdered(),
		clock:         reagent.SystemClock{},
		maxIterations: reagent.DefaultMaxIterations,
	}
}

// WithPromptTemplate sets the prompt template. See [PromptData] for the
// fields available to it.
func (a *Agent) WithPromptTemplate(tmpl *template.Template) *Agent {
	a.template = tmpl
	return a
}

// WithPromptTemplateString parses text with [NewPromptTemplate] and uses it.
// Returns error if the template string is invalid.
func (a *Agent) WithPromptTemplateString(text string) (*Agent, error) {
	tmpl, err := NewPromptTemplate(text)
	if err != nil {
		return a, err
	}
	a.template = tmpl
	return a, nil
}

// WithToolChain sets the tool registry.
func (a *Agent) WithToolChain(tc *toolchain.Registry) *Agent {
	a.toolChain = tc
	return a
}

// RegisterTool adds a tool to the agent's registry.
func (a *Agent) RegisterTool(tool reagent.Tool) *Agent {
	a.toolChain.RegisterTool(tool)
	return a
}

// WithParser sets the output parser.
func (a *Agent) WithParser(p reagent.Parser) *Agent {
	a.parser = p
	return a
}

// WithClock sets the clock exposed to templates as .Time.
// Use this to inject a fixed clock for testing.
func (a *Agent) WithClock(c reagent.Clock) *Agent {
	a.clock = c
	return a
}

// WithMaxIterations sets the iteration budget. Zero or less restores the
// default.
func (a *Agent) WithMaxIterations(n int) *Agent {
	if n <= 0 {
		n = reagent.DefaultMaxIterations
	}
	a.maxIterations = n
	return a
}

// MaxIterations returns the iteration budget.
func (a *Agent) MaxIterations() int {
	return a.maxIterations
}

// ToolChain returns the agent's tool registry.
func (a *Agent) ToolChain() *toolchain.Registry {
	return a.toolChain
}

// BuildPrompt renders the full prompt for the session's next iteration.
func (a *Agent) BuildPrompt(session *reagent.Session) (string, error) {
	prompt, err := ExecuteTemplate(a.template, PromptData{
		Question:  session.Question(),
		Tools:     a.toolChain.Describe(),
		ToolNames: strings.Join(a.toolChain.Names(), ", "),
		Time:      a.clock,
	})
	if err != nil {
		return "", fmt.Errorf("execute prompt template: %w", err)
	}
	if session.Len() > 0 {
		prompt += "\n" + format.FormatAll(session.Transcript())
	}
	return prompt, nil
}

// Next runs one iteration: prompt, parse, then answer, dispatch or abort.
func (a *Agent) Next(ctx context.Context, session *reagent.Session) (*reagent.AgentLoopResult, error) {
	prompt, err := a.BuildPrompt(session)
	if err != nil {
		return nil, err
	}

	response, err := a.complete(ctx, session, prompt)
	if err != nil || strings.TrimSpace(response) == "" {
		cause := reagent.ErrProviderUnavailable
		if err != nil {
			cause = fmt.Errorf("%w: %w", reagent.ErrProviderUnavailable, err)
		}
		session.FireError(ctx, cause)
		return &reagent.AgentLoopResult{
			Action: reagent.LATerminate,
			Status: reagent.StatusAborted,
			Reason: reagent.ReasonNoModelResponse,
			Err:    cause,
		}, nil
	}

	step := a.parser.Parse(response)

	if step.HasFinalAnswer() {
		session.AppendStep(step)
		return &reagent.AgentLoopResult{
			Action:      reagent.LATerminate,
			Step:        step,
			Status:      reagent.StatusAnswered,
			FinalAnswer: *step.FinalAnswer,
		}, nil
	}

	if step.HasAction() {
		input := ""
		if step.ActionInput != nil {
			input = *step.ActionInput
		}
		observation := a.toolChain.Execute(ctx, session, *step.Action, input)
		step.Set(reagent.FieldObservation, observation)
		session.AppendStep(step)
		return &reagent.AgentLoopResult{
			Action: reagent.LAContinue,
			Step:   step,
		}, nil
	}

	session.Trace(reagent.ParseErrorTrace{Raw: response})
	session.FireError(ctx, reagent.ErrMalformedStep)
	return &reagent.AgentLoopResult{
		Action: reagent.LATerminate,
		Step:   step,
		Status: reagent.StatusAborted,
		Reason: reagent.ReasonNoActionOrAnswer,
		Err:    reagent.ErrMalformedStep,
	}, nil
}

// complete calls the model with tracing and hooks around it.
func (a *Agent) complete(ctx context.Context, session *reagent.Session, prompt string) (string, error) {
	name := reagent.ModelName(a.model)
	session.FireBeforeModelCall(ctx, reagent.BeforeModelCallEvent{Model: name, Prompt: prompt})

	start := time.Now()
	response, err := a.model.Complete(ctx, prompt)
	duration := time.Since(start)

	session.Trace(reagent.ModelCallTrace{
		Model:         name,
		PromptChars:   len(prompt),
		ResponseChars: len(response),
		Duration:      duration,
		Error:         err,
	})
	session.FireAfterModelCall(ctx, reagent.AfterModelCallEvent{
		Model:    name,
		Prompt:   prompt,
		Response: response,
		Duration: duration,
		Err:      err,
	})
	return response, err
}

// Run answers question in a new session. Hooks may implement any of the
// reagent hook interfaces.
//
// The returned error is only for invalid configuration; every runtime outcome,
// including aborts, is reported through the result's Status.
func (a *Agent) Run(ctx context.Context, question string, hooks ...any) (*reagent.Result, error) {
	if a.model == nil {
		return nil, reagent.ErrNilModel
	}
	session := reagent.NewSession(question, a.maxIterations)
	exec := executor.New(a)
	for _, h := range hooks {
		exec.RegisterHook(h)
	}
	exec.Execute(ctx, session)
	return session.Result(), nil
}

// Run is the one-call form of the loop: it builds an agent from the given
// pieces and answers question. tmpl is parsed with [NewPromptTemplate]; an
// empty tmpl selects [DefaultPromptTemplate]. A nil registry means no tools
// and maxIterations of zero or less means the default of 10.
func Run(
	ctx context.Context,
	question string,
	model reagent.Model,
	tmpl string,
	registry *toolchain.Registry,
	maxIterations int,
) (*reagent.Result, error) {
	agent := NewAgent(model).WithMaxIterations(maxIterations)
	if tmpl != "" {
		if _, err := agent.WithPromptTemplateString(tmpl); err != nil {
			return nil, err
		}
	}
	if registry != nil {
		agent.WithToolChain(registry)
	}
	return agent.Run(ctx, question)
}

var _ reagent.AgentLoop = (*Agent)(nil)
