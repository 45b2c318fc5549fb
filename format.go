package reagent

// Parser extracts a [Step] from raw model output.
//
// Parsers never fail. Text they cannot make sense of simply yields a step with
// fewer (or no) fields present.
type Parser interface {
	Parse(raw string) *Step
}

// ParserFunc adapts a plain function to [Parser].
type ParserFunc func(raw string) *Step

// Parse calls f.
func (f ParserFunc) Parse(raw string) *Step {
	return f(raw)
}
