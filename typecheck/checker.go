// Package typecheck is the Type Checker collaborator (spec.md §4.2
// CheckTypes row). The inference and constraint-satisfaction rules
// themselves are out of scope (spec.md §1's "type inference/checking
// rules" exclusion); this package implements the contract shape a real
// checker must honor: it may only report a *Type*-kind diagnostic, it
// never yields on anything but an explicit dependency, and it advances
// every entity whose declared type references are all resolvable.
package typecheck

import (
	onyxc "github.com/onyxlang/onyxc"
	"github.com/onyxlang/onyxc/ast"
	"github.com/onyxlang/onyxc/reporter"
)

// builtinTypes are recognized without needing a struct/enum declaration
// to back them.
var builtinTypes = map[string]bool{
	"": true, "i32": true, "i64": true, "f32": true, "f64": true,
	"bool": true, "rawptr": true, "cstring": true, "void": true,
}

// Checker is the default Type Checker collaborator. It tracks which
// struct/enum names have been introduced so a field or parameter
// referencing a not-yet-seen type can yield rather than fail outright.
type Checker struct {
	knownTypes map[string]bool
}

// New creates a Checker with the builtin type set pre-registered.
func New() *Checker {
	return &Checker{knownTypes: map[string]bool{}}
}

// Register makes name available as a satisfied type reference; called
// whenever a Struct or Enum entity reaches CheckTypes.
func (c *Checker) Register(name string) {
	c.knownTypes[name] = true
}

func (c *Checker) known(name string) bool {
	return builtinTypes[name] || c.knownTypes[name]
}

// CheckTypes implements onyxc.TypeChecker.
func (c *Checker) CheckTypes(ctx *onyxc.Context, e *onyxc.Entity) onyxc.Result {
	switch n := e.Payload.(type) {
	case *ast.Struct:
		for _, f := range n.Fields {
			if !c.known(f.TypeRef) {
				if !ctx.CycleDetected() {
					return onyxc.NotChanged()
				}
				e.Fail(ctx.Errors.HandleErrorf(e.ID(), reporter.KindType, f.Ident.Span().Start,
					"field %q of struct %q has unknown type %q", f.Ident.Text, n.Name(), f.TypeRef))
				return onyxc.Changed()
			}
		}
		c.Register(n.Name())
		return onyxc.Changed()

	case *ast.Enum:
		if n.BackingTy != "" && !c.known(n.BackingTy) {
			if !ctx.CycleDetected() {
				return onyxc.NotChanged()
			}
			e.Fail(ctx.Errors.HandleErrorf(e.ID(), reporter.KindType, n.Span().Start,
				"enum %q has unknown backing type %q", n.Name(), n.BackingTy))
			return onyxc.Changed()
		}
		c.Register(n.Name())
		return onyxc.Changed()

	case *ast.Global:
		if !c.known(n.TypeRef) {
			if !ctx.CycleDetected() {
				return onyxc.NotChanged()
			}
			e.Fail(ctx.Errors.HandleErrorf(e.ID(), reporter.KindType, n.Span().Start,
				"global %q has unknown type %q", n.Name(), n.TypeRef))
			return onyxc.Changed()
		}
		return onyxc.Changed()

	case *ast.Function:
		for _, p := range n.Params {
			if !c.known(p.TypeRef) {
				if !ctx.CycleDetected() {
					return onyxc.NotChanged()
				}
				e.Fail(ctx.Errors.HandleErrorf(e.ID(), reporter.KindType, p.Ident.Span().Start,
					"parameter %q of %q has unknown type %q", p.Ident.Text, n.Name(), p.TypeRef))
				return onyxc.Changed()
			}
		}
		if !c.known(n.ReturnType) {
			if !ctx.CycleDetected() {
				return onyxc.NotChanged()
			}
			e.Fail(ctx.Errors.HandleErrorf(e.ID(), reporter.KindType, n.Span().Start,
				"%q has unknown return type %q", n.Name(), n.ReturnType))
			return onyxc.Changed()
		}
		return onyxc.Changed()

	default:
		return onyxc.Changed()
	}
}
