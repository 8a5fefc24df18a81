// Package parser turns tokenized Onyx source into declaration and load
// nodes. Per spec.md §1 the parser's internals are an external
// collaborator to the driver; this package implements just enough of a
// real recursive-descent parser to produce the entity payloads the
// driver schedules, without attempting full expression-grammar fidelity
// (statement bodies are retained as opaque text for the type checker /
// code generator stubs to consume).
package parser

import "github.com/onyxlang/onyxc/ast"

// Result is everything the Load Expander needs out of parsing one file:
// the flat list of top-level declarations and load directives found in
// it, in source order, plus the line count needed for the Loaded-File
// Registry's bookkeeping (spec.md §3.3).
type Result struct {
	Filename  string
	Decls     []ast.Node
	LineCount int
}
