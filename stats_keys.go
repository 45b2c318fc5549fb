package reagent

// KeyPrefix prefixes every stat recorded by this module. Use your own prefix
// for custom stats.
const KeyPrefix = "reagent:"

// KeyIterations is only incremented by the session itself.
const KeyIterations = "reagent:iterations"

const (
	KeyModelCalls     = "reagent:model_calls"
	KeyModelErrors    = "reagent:model_errors"
	KeyPromptChars    = "reagent:prompt_chars"
	KeyResponseChars  = "reagent:response_chars"
	KeyModelCallsFor  = "reagent:model_calls:" // + model name
	KeyParseErrors    = "reagent:parse_errors"
	KeyToolCalls      = "reagent:tool_calls"
	KeyToolCallsFor   = "reagent:tool_calls:" // + tool name
	KeyToolErrors     = "reagent:tool_errors"
	KeyToolErrorsFor  = "reagent:tool_errors:" // + tool name
	KeyUnknownActions = "reagent:unknown_actions"
)

var protectedKeys = map[string]bool{
	KeyIterations: true,
}
