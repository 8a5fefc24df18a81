package onyxc

import (
	"fmt"
	"os"

	"github.com/onyxlang/onyxc/options"
)

// SetCollaborators installs the pluggable phase collaborators. Compile
// panics if called before this, since an entity reaching
// IntroduceSymbols with no introducer wired would otherwise nil-deref
// deep inside the dispatch loop instead of failing clearly at startup.
func (ctx *Context) SetCollaborators(introducer SymbolIntroducer, resolver SymbolResolver, checker TypeChecker, emitter CodeEmitter) {
	ctx.collaborators = collaboratorSet{
		introducer: introducer,
		resolver:   resolver,
		checker:    checker,
		emitter:    emitter,
	}
}

// Run is the main driver loop (spec.md §2's Flow, §4 overview): Boot has
// already seeded the heap; Run repeatedly pops the highest-priority
// entity, dispatches it, runs the cycle detector, and either re-inserts
// the entity or lets it retire, until the heap empties or a cycle is
// confirmed. It returns the accumulated error, if any.
func (ctx *Context) Run() error {
	if ctx.collaborators.introducer == nil || ctx.collaborators.resolver == nil ||
		ctx.collaborators.checker == nil || ctx.collaborators.emitter == nil {
		panic("onyxc: Run called before SetCollaborators")
	}

	var detector cycleDetector

	for ctx.Heap.Len() > 0 {
		ctx.Errors.Enable()

		e := ctx.Heap.RemoveTop()

		if e.State == StateParse || e.State == StateParseBuiltin {
			ctx.maybeLazyInit()
		}

		changed := ctx.dispatch(e)

		if e.State == StateFinalized {
			ctx.maybeInitializeSpecialGlobals(e)
		}

		if !e.State.IsTerminal() {
			ctx.Heap.InsertExisting(e)
		}

		if detector.observe(e, changed) {
			ctx.dumpCycles()
			break
		}
	}

	ctx.Errors.FlushWarnings(os.Stderr)

	if ctx.Errors.HasErrors() {
		return ctx.Errors.Error()
	}

	if ctx.Options.Action == options.ActionCheck {
		return nil
	}
	if ctx.emitter == nil {
		panic("onyxc: finalize called before SetEmitter")
	}
	return ctx.finalize()
}

// Compile runs Boot followed by Run, the full entry point a CLI front
// end calls once options and collaborators are ready.
func (ctx *Context) Compile() error {
	ctx.Boot()
	return ctx.Run()
}

func (ctx *Context) debugf(format string, args ...any) {
	if ctx.Options.Debug {
		fmt.Printf(format+"\n", args...)
	}
}
