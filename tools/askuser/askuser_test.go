package askuser

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTool_Call(t *testing.T) {
	type input struct {
		answer string
		err    error
	}

	type expected struct {
		output string
		err    bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "answer is wrapped",
			input:    input{answer: "  I live in Scotland \n"},
			expected: expected{output: "The user responds: I live in Scotland"},
		},
		{
			name:     "empty answer",
			input:    input{answer: "   "},
			expected: expected{output: "No response from user."},
		},
		{
			name:     "prompter error",
			input:    input{err: errors.New("terminal closed")},
			expected: expected{err: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var asked string
			tool := New(PrompterFunc(func(_ context.Context, q string) (string, error) {
				asked = q
				return tc.input.answer, tc.input.err
			}))

			out, err := tool.Call(context.Background(), " Where do you live? ")

			assert.Equal(t, "Where do you live?", asked)
			if tc.expected.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected.output, out)
		})
	}
}

func TestIOPrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewIOPrompter(strings.NewReader("England\r\nlast line without newline"), &out)

	first, err := p.Ask(context.Background(), "Which country?")
	require.NoError(t, err)
	second, err := p.Ask(context.Background(), "Anything else?")
	require.NoError(t, err)
	third, err := p.Ask(context.Background(), "Still there?")
	require.NoError(t, err)

	assert.Equal(t, "England", first)
	assert.Equal(t, "last line without newline", second)
	assert.Equal(t, "", third)
	assert.Equal(t, "Agent: Which country?\nUser: Agent: Anything else?\nUser: Agent: Still there?\nUser: ", out.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Ask(ctx, "q")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadlinePrompter(t *testing.T) {
	var out bytes.Buffer
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "You: ",
		Stdin:  io.NopCloser(strings.NewReader("Scotland\n")),
		Stdout: &out,
	})
	require.NoError(t, err)
	defer rl.Close()

	answer, err := NewReadlinePrompter(rl).Ask(context.Background(), "Which country?")

	require.NoError(t, err)
	assert.Equal(t, "Scotland", answer)
	assert.Contains(t, out.String(), "Agent: Which country?\n")
	assert.Equal(t, "You: ", rl.Config.Prompt)
}
