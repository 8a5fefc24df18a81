package symtab

import (
	art "github.com/plar/go-adaptive-radix-tree"
)

// Package is a named lexical container (spec.md §3.4): a package has a
// name and a single top-level Scope that declarations from every file
// contributing to it are introduced into.
type Package struct {
	Name  string
	Scope *Scope
}

// Registry is the process-wide name-to-package mapping. Packages are
// created by name on first use (the boot sequencer's "core", "main" and
// "runtime_vars", and the package of each load entity), so lookups and
// insertions happen throughout the whole compilation, not just at boot.
// A parsed `#package name` directive does not create or select a
// package. A radix tree keyed
// by package name gives prefix-sharing packages (a very common shape for
// hierarchical package paths like "core.runtime.info") cheap storage,
// the same data structure the teacher uses for its descriptor registry.
type Registry struct {
	tree art.Tree
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tree: art.New()}
}

// GetOrCreate returns the named package, creating it (with a fresh
// top-level scope) if it does not yet exist.
func (r *Registry) GetOrCreate(name string) *Package {
	if v, found := r.tree.Search(art.Key(name)); found {
		return v.(*Package)
	}
	pkg := &Package{Name: name, Scope: NewScope(nil)}
	r.tree.Insert(art.Key(name), pkg)
	return pkg
}

// Lookup returns the named package without creating it.
func (r *Registry) Lookup(name string) (*Package, bool) {
	v, found := r.tree.Search(art.Key(name))
	if !found {
		return nil, false
	}
	return v.(*Package), true
}

// Names returns every registered package name, used for "did you mean"
// suggestions on an unresolved `use`.
func (r *Registry) Names() []string {
	var names []string
	r.tree.ForEach(func(node art.Node) bool {
		names = append(names, string(node.Key()))
		return true
	})
	return names
}

// Len reports how many packages are registered.
func (r *Registry) Len() int { return r.tree.Size() }
