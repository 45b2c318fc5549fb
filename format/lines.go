package format

import (
	"strings"

	"github.com/rickchristie/reagent"
)

// Line prefixes recognized by [Lines].
const (
	linePrefixAction      = "Action:"
	linePrefixActionInput = "Action Input:"
	linePrefixFinalAnswer = "Final Answer:"
	linePrefixThought     = "Thought:"
)

// Lines parses one label per line.
//
// Lines starting with "Action:", "Action Input:" or "Final Answer:" set the
// matching field to the rest of the line. Any other non-blank line seen before
// the first label is part of the thought; those lines are trimmed and joined
// with single spaces, with a leading "Thought:" removed. Lines after the first
// label that carry no label are ignored.
//
// Lines never extracts Observation or Eureka Thought.
type Lines struct{}

// NewLines creates a line-oriented parser.
func NewLines() *Lines {
	return &Lines{}
}

// Parse implements [reagent.Parser].
func (p *Lines) Parse(raw string) *reagent.Step {
	step := &reagent.Step{}
	var thought []string
	labeled := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, linePrefixActionInput):
			step.Set(reagent.FieldActionInput, strings.TrimSpace(line[len(linePrefixActionInput):]))
			labeled = true
		case strings.HasPrefix(line, linePrefixAction):
			step.Set(reagent.FieldAction, strings.TrimSpace(line[len(linePrefixAction):]))
			labeled = true
		case strings.HasPrefix(line, linePrefixFinalAnswer):
			step.Set(reagent.FieldFinalAnswer, strings.TrimSpace(line[len(linePrefixFinalAnswer):]))
			labeled = true
		case !labeled && line != "":
			line = strings.TrimSpace(strings.TrimPrefix(line, linePrefixThought))
			if line != "" {
				thought = append(thought, line)
			}
		}
	}

	if len(thought) > 0 {
		step.Set(reagent.FieldThought, strings.Join(thought, " "))
	}
	return step
}

var _ reagent.Parser = (*Lines)(nil)
