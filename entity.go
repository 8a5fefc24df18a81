// Package onyxc is the driver core of the Onyx-to-WebAssembly compiler:
// the entity-based work scheduler that advances every declaration
// independently through its own state machine, detects and resolves
// cross-declaration dependency cycles, and orchestrates the compilation
// phases from file loading through code emission (spec.md §1-§2).
package onyxc

import "github.com/onyxlang/onyxc/ast"

// State is an entity's position in the compilation pipeline (spec.md
// §3.1, glossary "Phase / state"). State only ever moves forward in this
// order; a Finalized or Failed entity is never re-inserted into the
// heap.
type State int

const (
	StateParseBuiltin State = iota
	StateParse
	StateIntroduceSymbols
	StateResolveSymbols
	StateCheckTypes
	StateCodeGen
	StateFinalized
	StateFailed
	StateError
	stateCount
)

func (s State) String() string {
	if int(s) < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

var stateNames = [...]string{
	"ParseBuiltin", "Parse", "IntroduceSymbols", "ResolveSymbols",
	"CheckTypes", "CodeGen", "Finalized", "Failed", "Error",
}

// IsTerminal reports whether state is a terminal state: an entity that
// reaches Finalized or Failed leaves the heap for good (spec.md §3.1
// invariant).
func (s State) IsTerminal() bool { return s == StateFinalized || s == StateFailed }

// Entity is the unit of scheduled work (spec.md §3.1): one declaration,
// directive, or load request.
type Entity struct {
	// id is assigned on first insertion and never changes, even across
	// re-insertions (spec.md §3.1 invariant).
	id int

	Kind    ast.Kind
	State   State
	Package string // owning package name, "" for global built-ins
	Scope   any    // *symtab.Scope; typed as any to avoid an import cycle with symtab

	Payload ast.Node

	// MacroAttempts counts how many times this entity has been popped
	// from the heap and dispatched; the cycle detector watermarks on
	// this value.
	MacroAttempts int
	// MicroAttempts counts "no progress" signals from a single
	// collaborator inspecting this entity; it resets whenever State
	// advances.
	MicroAttempts int

	// err, if set, is the diagnostic that moved this entity to
	// StateFailed.
	err error
}

// ID returns the entity's stable identifier.
func (e *Entity) ID() int { return e.id }

// Err returns the error that failed this entity, if any.
func (e *Entity) Err() error { return e.err }

// Fail moves the entity to StateFailed and records err. Per spec.md
// §3.1, this is a one-way transition — Fail must not be called on an
// already-terminal entity.
func (e *Entity) Fail(err error) {
	e.State = StateFailed
	e.err = err
}

// Advance moves the entity to the given state and resets MicroAttempts,
// per spec.md §3.1 ("reset whenever state advances").
func (e *Entity) Advance(next State) {
	e.State = next
	e.MicroAttempts = 0
}

// Template is the caller-facing shape used to insert a new Entity; it
// carries everything except the id, which Heap.Insert assigns.
type Template struct {
	Kind    ast.Kind
	State   State
	Package string
	Scope   any
	Payload ast.Node
}
