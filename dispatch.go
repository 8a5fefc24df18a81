package onyxc

import (
	"time"

	"github.com/onyxlang/onyxc/ast"
	"github.com/onyxlang/onyxc/options"
	"github.com/onyxlang/onyxc/reporter"
)

// dispatch is the Phase Dispatcher (spec.md §4.2): given the
// highest-priority entity, it calls the collaborator for its current
// state and applies the resulting transition. It returns whether the
// dispatch changed the entity's state, for the cycle detector.
func (ctx *Context) dispatch(e *Entity) bool {
	start := time.Now()

	e.MacroAttempts++
	changed := ctx.dispatchOnce(e)

	if ctx.perf != nil {
		ctx.perf.Record(e.State, e.Kind, time.Since(start))
	}
	return changed
}

func (ctx *Context) dispatchOnce(e *Entity) bool {
	switch e.State {
	case StateParseBuiltin:
		// ParseBuiltin never yields (spec.md §4.2): the boot sequencer
		// only ever seeds it with files that must exist.
		res := ctx.Loader.DispatchParse(e)
		return res.Changed

	case StateParse:
		res := ctx.Loader.DispatchParse(e)
		return res.Changed

	case StateIntroduceSymbols:
		res := ctx.collaborators.introducer.IntroduceSymbols(ctx, e)
		if res.Changed && !e.State.IsTerminal() {
			e.Advance(StateResolveSymbols)
		}
		return res.Changed

	case StateResolveSymbols:
		res := ctx.collaborators.resolver.ResolveSymbols(ctx, e)
		if res.Changed && !e.State.IsTerminal() {
			e.Advance(StateCheckTypes)
		}
		return res.Changed

	case StateCheckTypes:
		res := ctx.collaborators.checker.CheckTypes(ctx, e)
		if res.Changed && !e.State.IsTerminal() {
			e.Advance(StateCodeGen)
		}
		return res.Changed

	case StateCodeGen:
		if ctx.Options.Action == options.ActionCheck {
			e.Advance(StateFinalized)
			return true
		}
		res := ctx.collaborators.emitter.EmitCode(ctx, e)
		if res.Changed && !e.State.IsTerminal() {
			e.Advance(StateFinalized)
		}
		return res.Changed

	case StateError:
		// An entity only reaches this state carrying an ast.Error or
		// ast.Note payload (spec.md §4.2's "Error Reporter" row); a
		// #note is reported as an informational warning and finalizes
		// without failing, while a #error always fails the entity.
		switch n := e.Payload.(type) {
		case *ast.Note:
			ctx.Errors.HandleWarning(n.Pos, reporter.KindCommandLine, "%s", n.Message)
			e.Advance(StateFinalized)
		case *ast.Error:
			e.Fail(ctx.Errors.HandleErrorf(e.ID(), reporter.KindCommandLine, n.Pos, "%s", n.Message))
		default:
			e.Fail(ctx.Errors.HandleErrorf(e.ID(), reporter.KindCommandLine, e.Payload.Span().Start, "declaration %q failed", e.Payload.Name()))
		}
		return true

	default:
		return false
	}
}
