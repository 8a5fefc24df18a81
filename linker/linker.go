// Package linker is the post-pipeline link step Finalization invokes
// once the heap has emptied without errors (spec.md §4.6 step 1): it
// checks that the `link_options` symbol is declared in the runtime-vars
// package, and assembles the accumulated function, global, and
// data-segment output into one WebAssembly module. The value bound to
// `link_options` is not read; the link Options are built from the
// compile options. Unlike
// the Code Emitter, whose instruction-selection internals are out of
// scope, assembling the already-generated pieces into sections is
// squarely the driver's own responsibility, so it is fully implemented
// here.
package linker

import (
	"fmt"

	"github.com/onyxlang/onyxc/wasm"
)

// Options carries the handful of link-time decisions spec.md §4.6
// names: whether multithreading is active (controls the `.data`
// companion split) and whether post-MVP features are enabled.
type Options struct {
	MultiThreaded bool
	PostMVP       bool
}

// LinkOptionsSymbolName is the well-known symbol Finalization resolves
// in the runtime-vars package (spec.md §4.6 step 1).
const LinkOptionsSymbolName = "link_options"

// ErrMissingLinkOptions is returned when the runtime-vars package never
// declared a `link_options` binding; every runtime except "custom" is
// expected to provide one via its runtime-info modules.
var ErrMissingLinkOptions = fmt.Errorf("runtime_vars.%s is undeclared", LinkOptionsSymbolName)

// Emitter is the subset of codegen.Emitter's surface the linker needs;
// declared here (rather than importing codegen directly) so the linker
// has no dependency on the code generation backend's internal types.
type Emitter interface {
	Funcs() int
	FuncBodies() [][]byte
	Globals() int
	DataSegments() []wasm.DataSegment
}

// Link assembles em's accumulated output into a complete module,
// honoring opts for the data-segment split described in spec.md §4.6
// step 3.
func Link(em Emitter, opts Options) (module []byte, dataCompanion []byte) {
	m := wasm.New()

	if n := em.Funcs(); n > 0 {
		m.AddSection(wasm.SectionFunction, wasm.AppendULEB128(nil, uint64(n)))

		var code []byte
		code = wasm.AppendULEB128(code, uint64(n))
		for _, body := range em.FuncBodies() {
			code = wasm.AppendULEB128(code, uint64(len(body)))
			code = append(code, body...)
		}
		m.AddSection(wasm.SectionCode, code)
	}

	if n := em.Globals(); n > 0 {
		m.AddSection(wasm.SectionGlobal, wasm.AppendULEB128(nil, uint64(n)))
	}

	segments := em.DataSegments()
	switch {
	case len(segments) == 0:
		// nothing to do
	case opts.MultiThreaded && !opts.PostMVP:
		// The MVP threading proposal re-copies the data segment on every
		// instance, wiping mutable globals on thread spawn; split the
		// data out into a standalone companion module instead of the
		// ordinary Data section (spec.md §4.6 step 3).
		dataCompanion = companionModule(segments)
	default:
		m.AddSection(wasm.SectionData, wasm.EncodeDataSection(segments))
	}

	return m.Bytes(), dataCompanion
}

// companionModule builds the standalone `.data` module: a single
// Memory import-free module whose only content is the data segments, so
// it can be instantiated once and its memory shared across thread
// spawns without re-copying.
func companionModule(segments []wasm.DataSegment) []byte {
	m := wasm.New()
	m.AddSection(wasm.SectionData, wasm.EncodeDataSection(segments))
	return m.Bytes()
}

// ResolveLinkOptions reports whether the runtime-vars package declared
// `link_options`, per spec.md §4.6 step 1. have is the set of names
// visible in that package's top-level scope.
func ResolveLinkOptions(have func(name string) bool) error {
	if have == nil || !have(LinkOptionsSymbolName) {
		return ErrMissingLinkOptions
	}
	return nil
}
