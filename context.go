package onyxc

import (
	"github.com/onyxlang/onyxc/arena"
	"github.com/onyxlang/onyxc/linker"
	"github.com/onyxlang/onyxc/options"
	"github.com/onyxlang/onyxc/reporter"
	"github.com/onyxlang/onyxc/symtab"
)

// Context is the single process-wide driver state, bundled as one
// explicitly-passed value rather than split across singletons (spec.md
// §9's design note): collaborators legitimately need a coherent
// snapshot of options, packages, entities, arenas, and errors all at
// once, and passing them as four or five separate globals invites them
// to drift out of sync with each other.
type Context struct {
	Options  options.Options
	Packages *symtab.Registry
	Heap     *Heap
	Loader   *Loader

	AST     *arena.Arena
	Scratch *arena.Arena

	Errors *reporter.Handler

	collaborators collaboratorSet

	// cycleDetected gates two behaviors described in spec.md §7: a
	// missing file is silently "not available yet" until this is true,
	// and identifier-resolution errors are suppressed until this is
	// true, at which point the Cycle Detector's drain pass asks every
	// stuck entity to report its own concrete unmet dependency.
	cycleDetected bool

	// specialGlobalsRemaining gates the boot sequencer's one-shot
	// "initialize special globals" callback (spec.md §4.4 step 2).
	specialGlobalsRemaining int
	specialGlobalsDone      bool

	// lazyInitDone guards the one-time lazy initialization that fires
	// after the first entity enters the Parse state (spec.md §4.4
	// step 6).
	lazyInitDone bool

	// perf accumulates per-state, per-kind dispatch timing when
	// options.Perf is set (SPEC_FULL.md domain-stack addition).
	perf *PerfTotals

	// emitter is the Code Emitter's accumulated output, consumed by
	// finalize. It is set only via SetEmitter; SetCollaborators neither
	// sets nor checks it, and Run panics before finalize if it is unset.
	emitter linker.Emitter

	// jsPartials accumulates foreign-interface JavaScript partials
	// emitted while compiling ForeignBlock entities, written alongside
	// the module as `<target>.js` if non-empty (spec.md §4.6 step 4).
	jsPartials []string
}

// AddJSPartial records one generated JavaScript partial, to be written
// as the `.js` companion at finalize time.
func (ctx *Context) AddJSPartial(src string) {
	ctx.jsPartials = append(ctx.jsPartials, src)
}

// SetEmitter installs the Code Emitter's output accumulator, which must
// also satisfy linker.Emitter for Finalization to assemble its output.
func (ctx *Context) SetEmitter(em linker.Emitter) { ctx.emitter = em }

// NewContext creates a Context ready for the Boot Sequencer to seed.
func NewContext(opts options.Options) *Context {
	ctx := &Context{
		Options:                 opts,
		Packages:                symtab.NewRegistry(),
		Heap:                    NewHeap(),
		AST:                     arena.New(arena.ASTSlabSize),
		Scratch:                 arena.New(arena.ScratchSlabSize),
		Errors:                  reporter.NewHandler(),
		specialGlobalsRemaining: 5,
	}
	ctx.Errors.SetShowAllErrors(opts.ShowAllErrors)
	ctx.Loader = NewLoader(ctx)
	if opts.Perf {
		ctx.perf = NewPerfTotals()
	}
	return ctx
}

// CycleDetected reports whether the Cycle Detector has given up on
// finding further live progress and is now draining the heap with
// errors enabled.
func (ctx *Context) CycleDetected() bool { return ctx.cycleDetected }

// PerfTotals returns the context's performance accumulator, or nil if
// --perf was not requested.
func (ctx *Context) PerfTotals() *PerfTotals { return ctx.perf }
