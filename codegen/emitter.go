// Package codegen is the Code Emitter collaborator (spec.md §4.2
// CodeGen row): given an entity that has passed type checking, it
// produces the WebAssembly bytes that represent it and advances the
// entity to Finalized. The actual instruction-selection and
// optimization rules are out of scope (spec.md §1's "WebAssembly
// emission backend" exclusion); what is implemented here is the
// contract shape every real backend must satisfy: accumulate into one
// shared module builder, never emit twice for the same entity, and
// expose the accumulated module to Finalization.
package codegen

import (
	onyxc "github.com/onyxlang/onyxc"
	"github.com/onyxlang/onyxc/ast"
	"github.com/onyxlang/onyxc/wasm"
)

// funcEntry is one compiled function awaiting assembly into the
// Function/Code sections.
type funcEntry struct {
	name string
	body []byte
}

// Emitter accumulates every entity's generated code into one module
// under construction. A single Emitter is shared by every entity that
// reaches CodeGen during one compilation.
type Emitter struct {
	funcs   []funcEntry
	globals int
	data    []wasm.DataSegment
	dataOff int32
}

// New creates an Emitter with an empty module under construction.
func New() *Emitter { return &Emitter{} }

// EmitCode implements onyxc.CodeEmitter.
func (em *Emitter) EmitCode(ctx *onyxc.Context, e *onyxc.Entity) onyxc.Result {
	switch n := e.Payload.(type) {
	case *ast.Function:
		em.funcs = append(em.funcs, funcEntry{name: n.Name(), body: trivialBody()})
	case *ast.OverloadedFunction:
		for range n.Overloads {
			em.funcs = append(em.funcs, funcEntry{name: n.Name(), body: trivialBody()})
		}
	case *ast.Global:
		em.globals++
	case *ast.StringLiteral:
		em.data = append(em.data, wasm.DataSegment{Offset: em.dataOff, Bytes: []byte(n.Value)})
		em.dataOff += int32(len(n.Value))
	case *ast.ForeignBlock:
		// Foreign imports are resolved by the linker, not emitted here;
		// nothing to generate for the block itself.
	default:
		// Struct, Enum, Binding, StaticIf and the rest contribute only
		// type and symbol information, already consumed earlier in the
		// pipeline; they carry no runtime code of their own.
	}
	return onyxc.Changed()
}

// trivialBody is a placeholder function body: an empty local-declaration
// vector followed by `end`. A real backend replaces this with actual
// instruction selection; the shape (a self-terminating body) is what
// Finalization's Code section assembly depends on.
func trivialBody() []byte {
	return []byte{0x00, 0x0b} // locals-count=0, end
}

// Funcs returns the number of functions emitted so far, for
// Finalization's Function/Code section assembly.
func (em *Emitter) Funcs() int { return len(em.funcs) }

// Globals returns the number of globals emitted so far.
func (em *Emitter) Globals() int { return em.globals }

// DataSegments returns the accumulated string-literal data segments.
func (em *Emitter) DataSegments() []wasm.DataSegment { return em.data }

// FuncBodies returns each function's encoded body, in emission order.
func (em *Emitter) FuncBodies() [][]byte {
	bodies := make([][]byte, len(em.funcs))
	for i, f := range em.funcs {
		bodies[i] = f.body
	}
	return bodies
}
