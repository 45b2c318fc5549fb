package format

import (
	"regexp"
	"strings"

	"github.com/rickchristie/reagent"
)

// labelSuffix matches what follows a label: optional whitespace, an optional
// step number, then a colon. "Action:", "Action 2:" and "Action :" all match.
const labelSuffix = `\s*(?:\d+\s*)?:`

// fieldPattern is one (field, pattern) pair of the ordered parser.
type fieldPattern struct {
	field reagent.Field
	re    *regexp.Regexp

	// shadowedBy lists the words that, written right before this field's
	// label, turn it into another label ("Eureka" before "Thought").
	shadowedBy []string
}

// Ordered extracts fields with one pattern per field, evaluated in canonical
// order over the whole response.
//
// Each field's value runs from its label to the next label of a later field,
// or to the end of the text. Earlier labels do not end a value, so a model
// that writes "Observation: ... Thought: ..." keeps the trailing thought in
// the observation. The first occurrence of each label wins.
//
// Example input:
//
//	Thought: I need the VAT rate.
//	Action: search_govuk
//	Action Input: VAT rate
type Ordered struct {
	patterns []fieldPattern
}

// NewOrdered creates an Ordered parser over the standard fields.
func NewOrdered() *Ordered {
	return NewOrderedFields(reagent.Fields...)
}

// NewOrderedFields creates an Ordered parser for the given fields, listed in
// priority order. Fields not listed are never extracted.
func NewOrderedFields(fields ...reagent.Field) *Ordered {
	p := &Ordered{patterns: make([]fieldPattern, 0, len(fields))}
	for i, f := range fields {
		var stops []string
		for _, later := range fields[i+1:] {
			stops = append(stops, regexp.QuoteMeta(later.Label())+labelSuffix)
		}
		stops = append(stops, "$")

		expr := `(?s)` + regexp.QuoteMeta(f.Label()) + labelSuffix +
			`\s*(.*?)\s*(?:` + strings.Join(stops, "|") + `)`

		p.patterns = append(p.patterns, fieldPattern{
			field:      f,
			re:         regexp.MustCompile(expr),
			shadowedBy: shadowingWords(f, fields),
		})
	}
	return p
}

// shadowingWords returns the leading words of every other label that ends with
// f's label.
func shadowingWords(f reagent.Field, fields []reagent.Field) []string {
	var words []string
	label := f.Label()
	for _, other := range fields {
		ol := other.Label()
		if other == f || !strings.HasSuffix(ol, " "+label) {
			continue
		}
		words = append(words, strings.TrimSpace(strings.TrimSuffix(ol, label)))
	}
	return words
}

// Parse implements [reagent.Parser].
func (p *Ordered) Parse(raw string) *reagent.Step {
	step := &reagent.Step{}
	for _, fp := range p.patterns {
		if value, ok := fp.find(raw); ok {
			step.Set(fp.field, value)
		}
	}
	return step
}

func (fp fieldPattern) find(text string) (string, bool) {
	offset := 0
	for offset <= len(text) {
		loc := fp.re.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			return "", false
		}
		start := offset + loc[0]
		if !fp.shadowed(text[:start]) {
			return strings.TrimSpace(text[offset+loc[2] : offset+loc[3]]), true
		}
		// Skip past this label and look again.
		offset = start + len(fp.field.Label())
	}
	return "", false
}

func (fp fieldPattern) shadowed(before string) bool {
	before = strings.TrimRight(before, " \t")
	for _, w := range fp.shadowedBy {
		if strings.HasSuffix(before, w) {
			return true
		}
	}
	return false
}

var _ reagent.Parser = (*Ordered)(nil)
