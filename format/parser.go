package format

import (
	"fmt"

	"github.com/rickchristie/reagent"
)

// Parser names accepted by [ParserByName].
const (
	ParserOrdered = "ordered"
	ParserLines   = "lines"
)

// ParserByName returns the parser registered under name. An empty name
// selects the ordered parser.
func ParserByName(name string) (reagent.Parser, error) {
	switch name {
	case "", ParserOrdered:
		return NewOrdered(), nil
	case ParserLines:
		return NewLines(), nil
	}
	return nil, fmt.Errorf("format: unknown parser %q", name)
}
