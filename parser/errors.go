package parser

import (
	"fmt"

	"github.com/onyxlang/onyxc/ast"
)

// SyntaxError is a position-tagged parse failure (spec.md §7's Lex/Parse
// error kind). The driver's Load Expander maps a SyntaxError onto the
// failing entity's state transition to Failed.
type SyntaxError struct {
	Pos     ast.Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (e *SyntaxError) GetPosition() ast.Position { return e.Pos }
func (e *SyntaxError) Unwrap() error             { return fmt.Errorf("%s", e.Message) }
