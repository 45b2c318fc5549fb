package tt

import (
	"context"
	"errors"
	"sync"

	"github.com/rickchristie/reagent"
)

// -----------------------------------------------------------------------------
// MockModel - implements reagent.Model with queued responses
// -----------------------------------------------------------------------------

// ErrNoMoreResponses is returned by MockModel once its queue is drained.
var ErrNoMoreResponses = errors.New("tt: no more mock responses")

// MockModel returns queued responses in order and records every prompt.
type MockModel struct {
	mu        sync.Mutex
	name      string
	responses []string
	errors    []error
	repeat    *string
	callCount int

	// CapturedPrompts stores the prompt of each Complete call.
	CapturedPrompts []string
}

// NewMockModel creates a MockModel named "test-model".
func NewMockModel() *MockModel {
	return &MockModel{name: "test-model"}
}

// WithName sets the name reported through reagent.NamedModel.
func (m *MockModel) WithName(name string) *MockModel {
	m.name = name
	return m
}

// AddResponse queues a response.
func (m *MockModel) AddResponse(content string) *MockModel {
	m.responses = append(m.responses, content)
	m.errors = append(m.errors, nil)
	return m
}

// AddError queues an error.
func (m *MockModel) AddError(err error) *MockModel {
	m.responses = append(m.responses, "")
	m.errors = append(m.errors, err)
	return m
}

// Always makes the model return content once the queue is drained.
func (m *MockModel) Always(content string) *MockModel {
	m.repeat = &content
	return m
}

// CallCount returns the number of Complete calls.
func (m *MockModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// ModelName implements reagent.NamedModel.
func (m *MockModel) ModelName() string {
	return m.name
}

// Complete implements reagent.Model.
func (m *MockModel) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.callCount
	m.callCount++
	m.CapturedPrompts = append(m.CapturedPrompts, prompt)

	if idx < len(m.responses) {
		return m.responses[idx], m.errors[idx]
	}
	if m.repeat != nil {
		return *m.repeat, nil
	}
	return "", ErrNoMoreResponses
}

// -----------------------------------------------------------------------------
// MockTool - implements reagent.Tool and records calls
// -----------------------------------------------------------------------------

// MockTool returns a fixed output or error and records every input.
type MockTool struct {
	mu          sync.Mutex
	name        string
	description string
	output      string
	err         error
	panicValue  any

	// Inputs stores the input of each Call.
	Inputs []string
}

// NewMockTool creates a MockTool that returns output.
func NewMockTool(name, output string) *MockTool {
	return &MockTool{name: name, description: "Mock tool " + name, output: output}
}

// WithError makes the tool fail with err.
func (t *MockTool) WithError(err error) *MockTool {
	t.err = err
	return t
}

// WithPanic makes the tool panic with v.
func (t *MockTool) WithPanic(v any) *MockTool {
	t.panicValue = v
	return t
}

func (t *MockTool) Name() string        { return t.name }
func (t *MockTool) Description() string { return t.description }

// Call implements reagent.Tool.
func (t *MockTool) Call(ctx context.Context, input string) (string, error) {
	t.mu.Lock()
	t.Inputs = append(t.Inputs, input)
	t.mu.Unlock()

	if t.panicValue != nil {
		panic(t.panicValue)
	}
	if t.err != nil {
		return "", t.err
	}
	return t.output, nil
}

// CallCount returns the number of calls.
func (t *MockTool) CallCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.Inputs)
}

var (
	_ reagent.NamedModel = (*MockModel)(nil)
	_ reagent.Tool       = (*MockTool)(nil)
)
