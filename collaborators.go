package onyxc

// Result is what a collaborator returns after inspecting one entity
// (spec.md §4.2, §6.1): either it advanced the entity ("changed"), or it
// left the entity untouched because a dependency has not yet reached a
// sufficient state ("not changed"). On Changed the dispatcher moves the
// entity to the next state, unless the collaborator has already failed
// it. A collaborator must never cause visible side effects on other
// entities when it reports no progress.
type Result struct {
	Changed bool
}

// Changed is shorthand for Result{Changed: true}.
func Changed() Result { return Result{Changed: true} }

// NotChanged is shorthand for Result{Changed: false}; the entity yields
// and the driver re-inserts it for a later dispatch.
func NotChanged() Result { return Result{Changed: false} }

// SymbolIntroducer is the IntroduceSymbols-phase collaborator: it adds
// the entity's name (if any) to its owning scope and advances it to
// ResolveSymbols.
type SymbolIntroducer interface {
	IntroduceSymbols(ctx *Context, e *Entity) Result
}

// SymbolResolver is the ResolveSymbols-phase collaborator: it resolves
// every identifier the entity references against visible scopes and
// advances it to CheckTypes once all references resolve.
type SymbolResolver interface {
	ResolveSymbols(ctx *Context, e *Entity) Result
}

// TypeChecker is the CheckTypes-phase collaborator.
type TypeChecker interface {
	CheckTypes(ctx *Context, e *Entity) Result
}

// CodeEmitter is the CodeGen-phase collaborator. It is skipped entirely
// when the driver's action is check-only (spec.md §4.2).
type CodeEmitter interface {
	EmitCode(ctx *Context, e *Entity) Result
}

// collaboratorSet bundles the four pluggable phase collaborators; the
// Load Expander and Error Reporter are driver-owned and not pluggable,
// since their contracts are tightly coupled to the Loaded-File Registry
// and shared error queue respectively.
type collaboratorSet struct {
	introducer SymbolIntroducer
	resolver   SymbolResolver
	checker    TypeChecker
	emitter    CodeEmitter
}
