package onyxc

import (
	"github.com/onyxlang/onyxc/ast"
	"github.com/onyxlang/onyxc/options"
	"github.com/onyxlang/onyxc/symtab"
)

// corePackage and runtimeVarsPackage name the two implicit packages the
// boot sequencer seeds into, mirroring how user packages default to
// "main" (spec.md §3.4).
const (
	corePackage        = "core"
	runtimeVarsPackage = "runtime_vars"
)

// runtimeInfoModules are the five runtime-info modules tracked by
// special_global_entities_remaining (spec.md §4.4 step 2): type info,
// foreign-block info, procedure tags, global tags, and stack-trace info.
var runtimeInfoModules = []string{
	"runtime/type_info",
	"runtime/foreign_info",
	"runtime/proc_tags",
	"runtime/global_tags",
	"runtime/stack_trace",
}

// builtinGlobalNames are the built-in global symbols added to the global
// scope at boot step 3 (spec.md §4.4): heap start, stack top, TLS
// base/size, closure base, and the stack-trace pointer.
var builtinGlobalNames = []string{
	"__heap_start", "__stack_top", "__tls_base", "__tls_size",
	"__closure_base", "__stack_trace_ptr",
}

// Boot seeds the heap with the entities spec.md §4.4 names, in order.
// It must run exactly once, before the first call to Run.
func (ctx *Context) Boot() {
	globalScope := ctx.Packages.GetOrCreate(corePackage).Scope

	// Step 1: two ParseBuiltin entities for the core built-ins and
	// runtime build-options modules.
	ctx.Heap.Insert(Template{
		Kind:    ast.KindLoadFile,
		State:   StateParseBuiltin,
		Package: corePackage,
		Scope:   globalScope,
		Payload: &ast.LoadFile{Path: "core/builtin", Pos: ast.InternalPosition},
	})
	ctx.Heap.Insert(Template{
		Kind:    ast.KindLoadFile,
		State:   StateParseBuiltin,
		Package: corePackage,
		Scope:   globalScope,
		Payload: &ast.LoadFile{Path: "core/build_options", Pos: ast.InternalPosition},
	})

	// Step 2: for every runtime except "custom", five Parse entities for
	// the runtime-info modules, tracked by specialGlobalsRemaining.
	if ctx.Options.Runtime != options.RuntimeCustom {
		for _, mod := range runtimeInfoModules {
			ctx.Heap.Insert(Template{
				Kind:    ast.KindLoadFile,
				State:   StateParse,
				Package: runtimeVarsPackage,
				Scope:   globalScope,
				Payload: &ast.LoadFile{Path: mod, Pos: ast.InternalPosition},
			})
		}
	} else {
		// No runtime-info modules will ever finalize to decrement the
		// counter, so the one-shot initializer must not wait for them.
		ctx.specialGlobalsRemaining = 0
	}

	// Step 3: built-in global symbols added directly to the global
	// scope (not modeled as entities: they have no body to compile).
	for _, name := range builtinGlobalNames {
		_ = globalScope.Introduce(symbolFor(name))
	}

	// Step 4: one LoadFile entity per user-supplied source file.
	for _, f := range ctx.Options.Files {
		ctx.Heap.Insert(Template{
			Kind:    ast.KindLoadFile,
			State:   StateParse,
			Package: "main",
			Scope:   ctx.Packages.GetOrCreate("main").Scope,
			Payload: &ast.LoadFile{Path: f, Pos: ast.InternalPosition},
		})
	}

	// Step 5: unless suppressed, one LoadFile entity for the core
	// module.
	if !ctx.Options.NoCore {
		ctx.Heap.Insert(Template{
			Kind:    ast.KindLoadFile,
			State:   StateParse,
			Package: corePackage,
			Scope:   globalScope,
			Payload: &ast.LoadFile{Path: "core/module", Pos: ast.InternalPosition},
		})
	}

	// Step 6 (the lazy one-time initialization) fires from
	// maybeLazyInit, called the first time any entity enters Parse,
	// per spec.md §4.4 step 6 — not here, since nothing has been
	// dispatched yet.
}

// symbolFor builds a builtin symbol; builtin globals have no declaring
// entity, so EntityID is left at -1, a value no real entity id ever
// takes (ids start at 0).
func symbolFor(name string) symtab.Symbol {
	return symtab.Symbol{Name: name, Pos: ast.InternalPosition, EntityID: -1}
}

// maybeLazyInit runs the lazy initialization exactly once, the first
// time it is called after an entity has entered the Parse state
// (spec.md §4.4 step 6): it inserts one runtime_vars binding entity per
// user-defined -D variable. Builtin entities and build options are not
// introduced here.
func (ctx *Context) maybeLazyInit() {
	if ctx.lazyInitDone {
		return
	}
	ctx.lazyInitDone = true

	runtimeVars := ctx.Packages.GetOrCreate(runtimeVarsPackage)
	for _, dv := range ctx.Options.DefinedVariables {
		ctx.Heap.Insert(Template{
			Kind:    ast.KindBinding,
			State:   StateIntroduceSymbols,
			Package: runtimeVarsPackage,
			Scope:   runtimeVars.Scope,
			Payload: &ast.Binding{
				Ident: &ast.Ident{Text: dv.Key, Pos: ast.InternalPosition},
				Value: &ast.StringLiteral{Value: dv.Value, Pos: ast.InternalPosition},
				Pos:   ast.InternalPosition,
			},
		})
	}
}

// maybeInitializeSpecialGlobals decrements specialGlobalsRemaining when
// a runtime-info entity finalizes, and fires the one-shot "initialize
// special globals" callback exactly once when the counter reaches zero
// (spec.md §4.4 step 2, §9 Open Question: the original's sentinel was a
// counter that could in principle be driven negative by a bug; this
// version gates on specialGlobalsDone so the callback can never fire
// twice regardless of how many additional entities finalize).
func (ctx *Context) maybeInitializeSpecialGlobals(finalized *Entity) {
	if finalized.Package != runtimeVarsPackage || ctx.specialGlobalsDone {
		return
	}
	if ctx.specialGlobalsRemaining <= 0 {
		return
	}
	ctx.specialGlobalsRemaining--
	if ctx.specialGlobalsRemaining == 0 {
		ctx.specialGlobalsDone = true
		ctx.initializeSpecialGlobals()
	}
}

// initializeSpecialGlobals introduces the built-in global symbols that
// depend on the runtime-info types now being available.
func (ctx *Context) initializeSpecialGlobals() {
	globalScope := ctx.Packages.GetOrCreate(corePackage).Scope
	for _, name := range []string{"__type_table", "__tag_table"} {
		_ = globalScope.Introduce(symbolFor(name))
	}
}
