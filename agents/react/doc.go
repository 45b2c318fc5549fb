// Package react implements one iteration of the ReAct (Reasoning and Acting)
// loop over the labeled text protocol.
//
// # Iteration
//
// Every iteration rebuilds the prompt from scratch: the template filled with
// the question, then, once there is history, a newline and the formatted
// transcript. The model's reply is parsed and handled in this order:
//
//  1. A non-empty Final Answer ends the session as answered. Any Action in the
//     same reply is ignored, and the closing step is kept in the transcript.
//  2. Otherwise a non-empty Action is dispatched through the toolchain and the
//     resulting observation replaces whatever Observation the model wrote.
//  3. Otherwise the session aborts with "no valid action or final answer".
//     Retrying would resend the same prompt, so the loop does not.
//
// An empty reply or a model error aborts with "no model response". Tool
// failures never abort; they reach the model as observation text.
//
// # Example Usage
//
//	agent := react.NewAgent(model).
//	    RegisterTool(govuk.NewSearchTool(cfg.Search, client)).
//	    RegisterTool(askuser.New(askuser.NewReadlinePrompter(rl))).
//	    WithMaxIterations(8)
//
//	result, err := agent.Run(ctx, "How do I register for Self Assessment?")
//
// The iteration budget, hooks and cancellation are handled by the executor
// package; [Agent.Run] wires the two together.
package react
