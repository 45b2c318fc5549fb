package react

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/rickchristie/reagent"
)

//go:embed react.tmpl
var reactTemplateContent string

// ErrTemplateMissingQuestion is returned for templates that never reference
// {{.Question}}.
var ErrTemplateMissingQuestion = errors.New("react: prompt template does not reference {{.Question}}")

// PromptData is the data passed to prompt templates.
type PromptData struct {
	// Question is the user's question.
	Question string

	// Tools is the numbered tool listing, one "N. name: description" per line.
	Tools string

	// ToolNames is the comma separated list of action names.
	ToolNames string

	// Time gives templates the current date: {{.Time.Today}}, {{.Time.Weekday}}.
	Time reagent.Clock
}

// DefaultPromptTemplate is the GOV.UK assistant prompt. It lists the
// registered tools and ends with "Thought:" so the model starts reasoning.
//
// The template file is located at agents/react/react.tmpl.
var DefaultPromptTemplate = template.Must(
	template.New("react").Parse(reactTemplateContent),
)

// NewPromptTemplate parses a prompt template. The template must reference
// {{.Question}}; it may also use any other [PromptData] field. The transcript
// is appended by the agent and must not be part of the template.
func NewPromptTemplate(text string) (*template.Template, error) {
	if !strings.Contains(text, ".Question") {
		return nil, ErrTemplateMissingQuestion
	}
	tmpl, err := template.New("react").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return tmpl, nil
}

// ExecuteTemplate executes a template with the given data and returns the result.
func ExecuteTemplate(tmpl *template.Template, data PromptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
