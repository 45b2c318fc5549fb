package tt

import (
	"testing"

	"github.com/rickchristie/reagent"
	"github.com/stretchr/testify/assert"
)

// ToolCallTraces returns the ToolCallTrace events of a session, in order.
func ToolCallTraces(s *reagent.Session) []reagent.ToolCallTrace {
	var out []reagent.ToolCallTrace
	for _, e := range s.Events() {
		if tc, ok := e.(reagent.ToolCallTrace); ok {
			out = append(out, tc)
		}
	}
	return out
}

// CountTraceTypes counts trace events by their Go type name.
func CountTraceTypes(events []reagent.TraceEvent) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		switch e.(type) {
		case reagent.IterationStartTrace:
			counts["iteration_start"]++
		case reagent.IterationEndTrace:
			counts["iteration_end"]++
		case reagent.ModelCallTrace:
			counts["model_call"]++
		case reagent.ToolCallTrace:
			counts["tool_call"]++
		case reagent.ParseErrorTrace:
			counts["parse_error"]++
		case reagent.CustomTrace:
			counts["custom"]++
		}
	}
	return counts
}

// AssertStep compares two steps field by field, so failures name the field.
func AssertStep(t *testing.T, expected, actual *reagent.Step) {
	t.Helper()
	for _, f := range reagent.Fields {
		ev, eok := expected.Get(f)
		av, aok := actual.Get(f)
		assert.Equal(t, eok, aok, "presence of %s", f)
		assert.Equal(t, ev, av, "value of %s", f)
	}
}
