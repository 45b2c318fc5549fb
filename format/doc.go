// Package format parses model output into [reagent.Step] values and renders
// transcripts back into prompt text.
//
// # Parsers
//
//   - [Ordered]: one regular expression per field, evaluated over the whole
//     response. Recommended.
//   - [Lines]: a forgiving line-prefix parser for models that keep each label
//     on its own line.
//
// Both implement [reagent.Parser] and never fail: unparseable text yields a
// step with fewer fields.
//
// # Formatting
//
// [FormatStep] renders one step as "<Label> : <value>" lines in canonical
// field order and [FormatAll] joins steps with blank lines. Steps without a
// final answer never show Eureka Thought or Final Answer, so a model reading
// its own transcript only ever sees closing fields on the closing step.
//
//	agent := react.NewAgent(model).WithParser(format.NewLines())
package format
