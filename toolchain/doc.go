// Package toolchain maps action names to tools and turns every dispatch into
// observation text.
//
// # Dispatch Rules
//
// [Registry.Execute] never fails. The action name is trimmed and matched
// case-sensitively; the input is trimmed and one layer of surrounding double
// quotes is removed. Then:
//
//   - unknown action: "Error: Invalid action '<action>'. Must be one of [a, b]"
//   - tool error or panic: "Error occurred while executing action: <message>"
//   - empty output: "No results found."
//   - otherwise the tool output as-is
//
// Failures are also recorded as [reagent.ToolCallTrace] events with an error
// kind, so hooks and logs see more than the observation text.
//
// # Example Usage
//
//	tc := toolchain.New().
//	    RegisterTool(govuk.NewSearchTool(cfg.Search, client)).
//	    RegisterFunc("echo", "Repeats the input.", func(ctx context.Context, in string) (string, error) {
//	        return in, nil
//	    })
//
//	obs := tc.Execute(ctx, session, "echo", `"hi"`) // hi
//
// # Structured Tools
//
// [NewStructuredTool] accepts an Action Input written as a YAML or JSON object,
// validates it against a JSON Schema and decodes it into a Go struct:
//
//	tool := toolchain.NewStructuredTool(
//	    "uk_bank_holidays",
//	    "Lists UK bank holidays.",
//	    schema.Object(map[string]*schema.Property{
//	        "region": schema.String("Region").Enum("england-and-wales", "scotland", "northern-ireland"),
//	        "year":   schema.Integer("Year"),
//	    }),
//	    func(ctx context.Context, in HolidayQuery) (string, error) { ... },
//	)
package toolchain
