// Package symtab implements the Package Registry and lexical Scope of
// spec.md §3.4: a name-to-package mapping, where each package owns a
// single scope that declarations are introduced into during the
// Symbol-Introduction phase.
package symtab

import (
	"github.com/onyxlang/onyxc/ast"
	"github.com/onyxlang/onyxc/reporter"
)

// Symbol is one name bound in a Scope, pointing back at the entity that
// introduced it (by id) so the resolver can ask whether that entity has
// reached a sufficient state.
type Symbol struct {
	Name     string
	Pos      ast.Position
	EntityID int
}

// Scope is a lexical namespace for identifier lookup. Scopes nest: a
// lookup that misses in the local scope falls back to its parent, all
// the way up to a package's top-level scope.
type Scope struct {
	parent *Scope
	names  map[string]Symbol
}

// NewScope creates a Scope nested inside parent. parent may be nil for a
// package's top-level scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, names: map[string]Symbol{}}
}

// Parent returns the enclosing scope, or nil for a top-level scope.
func (s *Scope) Parent() *Scope { return s.parent }

// Introduce binds name in this scope. It returns an
// AlreadyDefinedError, non-fatally, if name is already bound in this
// exact scope (shadowing an outer scope's binding is allowed).
func (s *Scope) Introduce(sym Symbol) error {
	if existing, ok := s.names[sym.Name]; ok {
		return reporter.AlreadyDefinedError{Name: sym.Name, PreviousDefinition: existing.Pos}
	}
	s.names[sym.Name] = sym
	return nil
}

// Lookup searches this scope and its ancestors for name.
func (s *Scope) Lookup(name string) (Symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.names[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// LookupLocal searches only this scope, without consulting ancestors.
func (s *Scope) LookupLocal(name string) (Symbol, bool) {
	sym, ok := s.names[name]
	return sym, ok
}

// Names returns every name bound directly in this scope.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.names))
	for n := range s.names {
		names = append(names, n)
	}
	return names
}

// AllVisibleNames collects every name visible from this scope, walking
// up through parents, nearest-scope-wins on name collision.
func (s *Scope) AllVisibleNames() []string {
	seen := map[string]bool{}
	var out []string
	for cur := s; cur != nil; cur = cur.parent {
		for n := range cur.names {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}
