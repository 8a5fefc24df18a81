package reporter

import (
	"fmt"

	"github.com/onyxlang/onyxc/ast"
)

// Custom error types carrying structured information beyond a plain
// message, in the same spirit as the teacher's AlreadyDefinedError:
// callers that care can type-assert, while Error() still renders a
// sensible default message.

// AlreadyDefinedError reports a duplicate symbol introduction.
type AlreadyDefinedError struct {
	Name               string
	PreviousDefinition ast.Position
}

func (e AlreadyDefinedError) Error() string {
	return fmt.Sprintf("%q already defined at %s", e.Name, e.PreviousDefinition)
}

// UnresolvedIdentError reports an identifier that never resolved, even
// after the cycle detector forced a definitive pass.
type UnresolvedIdentError struct {
	Name string
}

func (e UnresolvedIdentError) Error() string {
	return fmt.Sprintf("unresolved identifier %q", e.Name)
}

// FileNotFoundError reports a load entity whose target does not exist.
// Per spec.md §7, this is only surfaced once cycle_detected is true;
// before that it is treated as "not available yet".
type FileNotFoundError struct {
	Path string
}

func (e FileNotFoundError) Error() string {
	return fmt.Sprintf("Failed to open file %s", e.Path)
}

// ImportCycleError reports a confirmed dependency cycle, with the chain
// of entity names that make it up.
type ImportCycleError struct {
	Chain []string
}

func (e ImportCycleError) Error() string {
	msg := "cycle found in declarations: "
	for i, name := range e.Chain {
		if i > 0 {
			msg += " -> "
		}
		msg += name
	}
	return msg
}
