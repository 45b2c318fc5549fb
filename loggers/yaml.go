package loggers

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/format"
	"gopkg.in/yaml.v3"
)

// YAMLHook implements every hook interface and writes each event as a
// header line followed by a YAML document. Nothing is truncated: prompts,
// responses and tool output are logged in full.
type YAMLHook struct {
	mu    sync.Mutex
	out   io.Writer
	clock reagent.Clock
}

// NewYAMLHook creates a YAMLHook writing to w. A nil w means stdout.
func NewYAMLHook(w io.Writer) *YAMLHook {
	if w == nil {
		w = os.Stdout
	}
	return &YAMLHook{out: w, clock: reagent.SystemClock{}}
}

// WithClock sets the clock used for event timestamps.
func (h *YAMLHook) WithClock(c reagent.Clock) *YAMLHook {
	h.clock = c
	return h
}

func (h *YAMLHook) write(name string, v any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	timestamp := h.clock.Now().Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(h.out, "\n>>> [%s]: %s\n", name, timestamp)
	if v == nil {
		return
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		fmt.Fprintf(h.out, "(failed to marshal: %v)\n", err)
		return
	}
	_, _ = h.out.Write(data)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

type executionStart struct {
	Session       string `yaml:"session"`
	Question      string `yaml:"question"`
	MaxIterations int    `yaml:"max_iterations"`
}

type executionEnd struct {
	Status      string           `yaml:"status"`
	FinalAnswer string           `yaml:"final_answer,omitempty"`
	Reason      string           `yaml:"reason,omitempty"`
	Error       string           `yaml:"error,omitempty"`
	Iterations  int              `yaml:"iterations"`
	Duration    string           `yaml:"duration"`
	Counters    map[string]int64 `yaml:"counters"`
}

type iterationEnd struct {
	Duration string `yaml:"duration"`
	Action   string `yaml:"action"`
	Step     string `yaml:"step,omitempty"`
}

type modelCall struct {
	Prompt   string `yaml:"prompt,omitempty"`
	Response string `yaml:"response,omitempty"`
	Duration string `yaml:"duration,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

type toolCall struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output,omitempty"`
	Duration string `yaml:"duration,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

func (h *YAMLHook) OnBeforeExecution(
	ctx context.Context,
	session *reagent.Session,
	event reagent.BeforeExecutionEvent,
) {
	h.write("BeforeExecution", executionStart{
		Session:       event.SessionID,
		Question:      event.Question,
		MaxIterations: event.MaxIterations,
	})
}

func (h *YAMLHook) OnAfterExecution(
	ctx context.Context,
	session *reagent.Session,
	event reagent.AfterExecutionEvent,
) {
	h.write("AfterExecution", executionEnd{
		Status:      string(event.Status),
		FinalAnswer: event.FinalAnswer,
		Reason:      event.Reason,
		Error:       errString(event.Err),
		Iterations:  event.Iterations,
		Duration:    event.Duration.String(),
		Counters:    session.Stats().Counters(),
	})
}

func (h *YAMLHook) OnBeforeIteration(
	ctx context.Context,
	session *reagent.Session,
	event reagent.BeforeIterationEvent,
) {
	h.write(fmt.Sprintf("BeforeIteration %d", event.Iteration), nil)
}

func (h *YAMLHook) OnAfterIteration(
	ctx context.Context,
	session *reagent.Session,
	event reagent.AfterIterationEvent,
) {
	data := iterationEnd{Duration: event.Duration.String()}
	if event.Result != nil {
		data.Action = event.Result.Action.String()
		if event.Result.Step != nil {
			data.Step = format.FormatStep(event.Result.Step, event.Iteration)
		}
	}
	h.write(fmt.Sprintf("AfterIteration %d", event.Iteration), data)
}

func (h *YAMLHook) OnBeforeModelCall(
	ctx context.Context,
	session *reagent.Session,
	event reagent.BeforeModelCallEvent,
) {
	h.write("BeforeModelCall: "+event.Model, modelCall{Prompt: event.Prompt})
}

func (h *YAMLHook) OnAfterModelCall(
	ctx context.Context,
	session *reagent.Session,
	event reagent.AfterModelCallEvent,
) {
	h.write("AfterModelCall: "+event.Model, modelCall{
		Response: event.Response,
		Duration: event.Duration.String(),
		Error:    errString(event.Err),
	})
}

func (h *YAMLHook) OnBeforeToolCall(
	ctx context.Context,
	session *reagent.Session,
	event *reagent.BeforeToolCallEvent,
) {
	h.write("BeforeToolCall: "+event.ToolName, toolCall{Input: event.Input})
}

func (h *YAMLHook) OnAfterToolCall(
	ctx context.Context,
	session *reagent.Session,
	event reagent.AfterToolCallEvent,
) {
	h.write("AfterToolCall: "+event.ToolName, toolCall{
		Input:    event.Input,
		Output:   event.Output,
		Duration: event.Duration.String(),
		Error:    errString(event.Err),
	})
}

func (h *YAMLHook) OnError(
	ctx context.Context,
	session *reagent.Session,
	event reagent.ErrorEvent,
) {
	h.write("Error", map[string]any{
		"iteration": event.Iteration,
		"error":     errString(event.Err),
	})
}

// Compile-time checks that YAMLHook implements all hook interfaces.
var (
	_ reagent.BeforeExecutionHook = (*YAMLHook)(nil)
	_ reagent.AfterExecutionHook  = (*YAMLHook)(nil)
	_ reagent.BeforeIterationHook = (*YAMLHook)(nil)
	_ reagent.AfterIterationHook  = (*YAMLHook)(nil)
	_ reagent.BeforeModelCallHook = (*YAMLHook)(nil)
	_ reagent.AfterModelCallHook  = (*YAMLHook)(nil)
	_ reagent.BeforeToolCallHook  = (*YAMLHook)(nil)
	_ reagent.AfterToolCallHook   = (*YAMLHook)(nil)
	_ reagent.ErrorHook           = (*YAMLHook)(nil)
)

