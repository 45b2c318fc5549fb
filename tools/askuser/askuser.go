// Package askuser provides the ask_user tool, which lets the model put a
// clarifying question to the person at the terminal.
package askuser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
)

// ToolName is the action name of the tool.
const ToolName = "ask_user"

// NoResponse is the observation when the user answers with an empty line.
const NoResponse = "No response from user."

// Prompter asks the user a question and returns the answer.
type Prompter interface {
	Ask(ctx context.Context, question string) (string, error)
}

// PrompterFunc adapts a function to [Prompter].
type PrompterFunc func(ctx context.Context, question string) (string, error)

func (f PrompterFunc) Ask(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}

// Tool is the ask_user tool.
type Tool struct {
	prompter Prompter
}

// New creates the tool.
func New(p Prompter) *Tool {
	return &Tool{prompter: p}
}

func (t *Tool) Name() string { return ToolName }

func (t *Tool) Description() string {
	return "Asks the user a question when you need more information to answer. " +
		"Action Input is the question."
}

// Call asks the question and wraps the answer for the transcript.
func (t *Tool) Call(ctx context.Context, question string) (string, error) {
	answer, err := t.prompter.Ask(ctx, strings.TrimSpace(question))
	if err != nil {
		return "", fmt.Errorf("ask user: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return NoResponse, nil
	}
	return "The user responds: " + answer, nil
}

// IOPrompter prints "Agent: <question>" to w and reads one line from r.
type IOPrompter struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewIOPrompter creates a prompter over plain streams.
func NewIOPrompter(r io.Reader, w io.Writer) *IOPrompter {
	return &IOPrompter{in: bufio.NewReader(r), out: w}
}

func (p *IOPrompter) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "Agent: %s\nUser: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadlinePrompter asks through a shared readline instance, restoring its
// prompt afterwards. Ctrl-C and Ctrl-D count as no answer.
type ReadlinePrompter struct {
	rl *readline.Instance
}

// NewReadlinePrompter creates a prompter on rl.
func NewReadlinePrompter(rl *readline.Instance) *ReadlinePrompter {
	return &ReadlinePrompter{rl: rl}
}

func (p *ReadlinePrompter) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(p.rl.Stdout(), "Agent: %s\n", question)

	prev := p.rl.Config.Prompt
	p.rl.SetPrompt("User: ")
	defer p.rl.SetPrompt(prev)

	line, err := p.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", nil
	}
	return line, err
}

var (
	_ Prompter = (*IOPrompter)(nil)
	_ Prompter = (*ReadlinePrompter)(nil)
)
