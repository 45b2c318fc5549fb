package format

import (
	"fmt"
	"strings"

	"github.com/rickchristie/reagent"
)

// FormatStep renders one step as "<Label> : <value>" lines in canonical field
// order. Absent fields are skipped, present-but-empty ones are not.
//
// A step without a non-blank final answer only shows Thought, Action, Action
// Input and Observation, even when closing fields were set on it.
//
// The second argument is the step's position; labels are never numbered.
func FormatStep(step *reagent.Step, _ int) string {
	if step == nil {
		return ""
	}

	terminal := step.IsTerminal()
	lines := make([]string, 0, len(reagent.Fields))
	for _, f := range reagent.Fields {
		if !terminal && reagent.ClosingFields[f] {
			continue
		}
		if v, ok := step.Get(f); ok {
			lines = append(lines, fmt.Sprintf("%s : %s", f.Label(), v))
		}
	}
	return strings.Join(lines, "\n")
}

// FormatAll renders every step of the transcript, separated by blank lines.
func FormatAll(transcript reagent.Transcript) string {
	parts := make([]string, 0, len(transcript))
	for i, step := range transcript {
		parts = append(parts, FormatStep(step, i+1))
	}
	return strings.Join(parts, "\n\n")
}
