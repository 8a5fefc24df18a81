package onyxc

import (
	"github.com/onyxlang/onyxc/ast"
	"github.com/onyxlang/onyxc/reporter"
	"github.com/onyxlang/onyxc/symtab"
)

// Introducer is the default Symbol Introducer collaborator (spec.md
// §4.2 IntroduceSymbols row): it binds the entity's own name, if it has
// one, into its owning scope, then advances. A name clash is reported
// immediately rather than yielded on, since two declarations of the
// same name in the same scope can never become resolvable by waiting.
type Introducer struct{}

func (Introducer) IntroduceSymbols(ctx *Context, e *Entity) Result {
	scope, _ := e.Scope.(*symtab.Scope)
	if scope == nil {
		return Changed()
	}

	switch n := e.Payload.(type) {
	case *ast.Use:
		// A `use` has no name of its own to introduce; it only makes
		// another package's scope visible, handled at resolution time.
		return Changed()
	case *ast.StaticIf, *ast.ForeignBlock, *ast.Expression, *ast.ProcessDirective, *ast.Memory:
		return Changed()
	default:
		if err := scope.Introduce(symtab.Symbol{Name: n.Name(), Pos: n.Span().Start, EntityID: e.ID()}); err != nil {
			e.Fail(ctx.Errors.HandleError(e.ID(), reporter.Diagnostic{
				Kind:    reporter.KindResolve,
				Pos:     n.Span().Start,
				Message: err.Error(),
			}))
			return Changed()
		}
		return Changed()
	}
}

// Resolver is the default Symbol Resolver collaborator (spec.md §4.2
// ResolveSymbols row): it walks the identifiers an entity references and
// confirms each one resolves to a symbol already visible in scope. A
// symbol only becomes visible once its declaring entity has passed
// IntroduceSymbols (Scope.Introduce is called from that phase), so
// scope visibility alone is sufficient to confirm "declaring entity has
// reached a sufficient state" without separately consulting the heap.
// Entities with no references of their own (most declarations, whose
// bodies are opaque per spec.md §1) resolve trivially.
type Resolver struct{}

func (r Resolver) ResolveSymbols(ctx *Context, e *Entity) Result {
	switch n := e.Payload.(type) {
	case *ast.Use:
		pkg, ok := ctx.Packages.Lookup(n.PackagePath)
		if !ok {
			if !ctx.CycleDetected() {
				return NotChanged()
			}
			suggestion := symtab.Suggest(n.PackagePath, ctx.Packages.Names())
			diagErr := ctx.Errors.HandleError(e.ID(), reporter.Diagnostic{
				Kind:    reporter.KindResolve,
				Pos:     n.Pos,
				Message: (&reporter.UnresolvedIdentError{Name: n.PackagePath}).Error(),
			})
			ctx.Errors.AttachSuggestion(suggestion)
			e.Fail(diagErr)
			return Changed()
		}
		// A selective `use pkg { a, b }` additionally requires each
		// named member to already be visible in the target package's
		// scope.
		for _, name := range n.Only {
			res := r.resolveRef(ctx, e, pkg.Scope, name, n.Pos)
			if !res.Changed {
				return res
			}
			if e.State.IsTerminal() {
				return res
			}
		}
		return Changed()

	default:
		// Structs, enums, functions and the rest do not reference
		// identifiers at the entity granularity the driver tracks;
		// their bodies are opaque per spec.md §1, resolved internally
		// by the (out-of-scope) type checker instead.
		return Changed()
	}
}

// resolveRef checks whether name is visible from scope and whether its
// declaring entity has reached at least IntroduceSymbols; until then, it
// yields so the driver retries once more of the heap has advanced.
func (r Resolver) resolveRef(ctx *Context, e *Entity, scope *symtab.Scope, name string, pos ast.Position) Result {
	if scope == nil {
		return Changed()
	}
	sym, ok := scope.Lookup(name)
	if !ok {
		if !ctx.CycleDetected() {
			return NotChanged()
		}
		suggestion := symtab.Suggest(name, scope.AllVisibleNames())
		diagErr := ctx.Errors.HandleError(e.ID(), reporter.Diagnostic{
			Kind:    reporter.KindResolve,
			Pos:     pos,
			Message: (&reporter.UnresolvedIdentError{Name: name}).Error(),
		})
		ctx.Errors.AttachSuggestion(suggestion)
		e.Fail(diagErr)
		return Changed()
	}
	_ = sym
	return Changed()
}
