// Package reagent implements a text-protocol ReAct agent loop.
//
// The model is prompted with a question and the transcript so far, and
// answers in labeled plain text:
//
//	Thought: I should look this up.
//	Action: search_govuk
//	Action Input: VAT rate
//
// The response is parsed into a [Step]. A step with an Action is dispatched to
// the named [Tool] and the tool output becomes the step's Observation. The
// transcript is then rendered back into the prompt and the loop repeats until
// the model writes a Final Answer, breaks the protocol, or the iteration
// budget runs out.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "os"
//
//	    "github.com/rickchristie/reagent/agents/react"
//	    "github.com/rickchristie/reagent/config"
//	    "github.com/rickchristie/reagent/models"
//	    "github.com/rickchristie/reagent/toolchain"
//	)
//
//	func main() {
//	    // 1. Create a model
//	    cfg := config.Default()
//	    cfg.Model.APIKey = os.Getenv("OPENAI_API_KEY")
//	    model, err := models.NewOpenAI(cfg.Model)
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    // 2. Register tools
//	    tc := toolchain.New().
//	        RegisterFunc("echo", "Repeats the input.", func(ctx context.Context, in string) (string, error) {
//	            return in, nil
//	        })
//
//	    // 3. Build the agent and run it
//	    agent := react.NewAgent(model).WithToolChain(tc).WithMaxIterations(5)
//	    result, err := agent.Run(context.Background(), "What is the VAT rate?")
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    // 4. Check results
//	    if result.Answered() {
//	        fmt.Println(result.FinalAnswer)
//	    }
//	}
//
// # Packages
//
//   - format: output parsers and the transcript formatter
//   - toolchain: the tool registry and dispatch rules
//   - agents/react: one iteration of the ReAct loop and the prompt template
//   - executor: drives iterations, budget, cancellation and hooks
//   - hooks: hook registry; loggers: slog and YAML hooks
//   - models: langchaingo-backed [Model] implementations
//   - tools/govuk, tools/askuser: the GOV.UK assistant's tools
//   - history: Markdown export and DuckDB storage of finished sessions
//   - config: YAML configuration validated against a JSON Schema
//   - cmd/reagent: the command line assistant (ask, chat, history)
//
// # Outcomes
//
// A session ends in exactly one [Status]: [StatusAnswered] with the final
// answer, [StatusExhausted] after the iteration budget, or [StatusAborted] when
// the model returns nothing, returns text with neither an action nor a final
// answer, or the context is canceled. Tool failures never end a session; they
// are rendered into the observation and the model gets to react to them.
package reagent
