package reagent

import "strings"

// Field identifies one labeled section of a ReAct step.
//
// The identifier is the snake_case name of the field. The label the model
// reads and writes is derived from it, see [Field.Label].
type Field string

const (
	FieldThought       Field = "thought"
	FieldAction        Field = "action"
	FieldActionInput   Field = "action_input"
	FieldObservation   Field = "observation"
	FieldEurekaThought Field = "eureka_thought"
	FieldFinalAnswer   Field = "final_answer"
)

// Fields lists every field in canonical order. Parsers use this order as the
// label priority and formatters use it as the rendering order.
var Fields = []Field{
	FieldThought,
	FieldAction,
	FieldActionInput,
	FieldObservation,
	FieldEurekaThought,
	FieldFinalAnswer,
}

// ClosingFields are only shown for a step that carries a final answer.
var ClosingFields = map[Field]bool{
	FieldEurekaThought: true,
	FieldFinalAnswer:   true,
}

// Label returns the Title Case label of the field, e.g. "Action Input".
func (f Field) Label() string {
	words := strings.Split(string(f), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Step is one parsed turn of the ReAct loop.
//
// Every field is optional. A nil pointer means the model did not produce the
// label at all, while a pointer to "" means the label was present with an
// empty value.
type Step struct {
	Thought       *string
	Action        *string
	ActionInput   *string
	Observation   *string
	EurekaThought *string
	FinalAnswer   *string
}

// Str returns a pointer to s. Handy for building steps in code and tests.
func Str(s string) *string {
	return &s
}

// Get returns the value of a field and whether it is present.
func (s *Step) Get(f Field) (string, bool) {
	p := s.ptr(f)
	if p == nil || *p == nil {
		return "", false
	}
	return **p, true
}

// Set sets a field to the given value, marking it present.
func (s *Step) Set(f Field, value string) {
	if p := s.ptr(f); p != nil {
		*p = &value
	}
}

// Clear marks a field as absent.
func (s *Step) Clear(f Field) {
	if p := s.ptr(f); p != nil {
		*p = nil
	}
}

func (s *Step) ptr(f Field) **string {
	switch f {
	case FieldThought:
		return &s.Thought
	case FieldAction:
		return &s.Action
	case FieldActionInput:
		return &s.ActionInput
	case FieldObservation:
		return &s.Observation
	case FieldEurekaThought:
		return &s.EurekaThought
	case FieldFinalAnswer:
		return &s.FinalAnswer
	}
	return nil
}

// IsTerminal reports whether the step concludes the session. A blank Final
// Answer does not, matching the loop's decision.
func (s *Step) IsTerminal() bool {
	return s.HasFinalAnswer()
}

// HasAction reports whether the step names a non-blank action.
func (s *Step) HasAction() bool {
	return s.Action != nil && strings.TrimSpace(*s.Action) != ""
}

// HasFinalAnswer reports whether the step carries a non-blank final answer.
func (s *Step) HasFinalAnswer() bool {
	return s.FinalAnswer != nil && strings.TrimSpace(*s.FinalAnswer) != ""
}

// IsEmpty reports whether no field is present.
func (s *Step) IsEmpty() bool {
	for _, f := range Fields {
		if _, ok := s.Get(f); ok {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the step.
func (s *Step) Clone() *Step {
	c := &Step{}
	for _, f := range Fields {
		if v, ok := s.Get(f); ok {
			c.Set(f, v)
		}
	}
	return c
}

// Transcript is the ordered history of steps in a session.
// Insertion order is chronological order.
type Transcript []*Step

// Clone returns a deep copy of the transcript.
func (t Transcript) Clone() Transcript {
	out := make(Transcript, len(t))
	for i, s := range t {
		out[i] = s.Clone()
	}
	return out
}
