package onyxc

import (
	"fmt"
	"io"
	"time"

	"github.com/onyxlang/onyxc/ast"
)

// PerfTotals accumulates per-state and per-(state, kind) dispatch
// timing when the driver is run with --perf (SPEC_FULL.md §9,
// supplemented from original_source/compiler/src/onyx.c's
// context.microseconds_per_state / context.microseconds_per_type
// tables). It exists purely for the `--perf` report; the driver runs
// identically whether or not it is present.
type PerfTotals struct {
	perState map[State]time.Duration
	perKind  map[State]map[ast.Kind]time.Duration
}

// NewPerfTotals creates an empty PerfTotals accumulator.
func NewPerfTotals() *PerfTotals {
	return &PerfTotals{
		perState: map[State]time.Duration{},
		perKind:  map[State]map[ast.Kind]time.Duration{},
	}
}

// Record adds one dispatch's elapsed time to the (state, kind) bucket.
func (p *PerfTotals) Record(s State, k ast.Kind, elapsed time.Duration) {
	if p == nil {
		return
	}
	p.perState[s] += elapsed
	kinds := p.perKind[s]
	if kinds == nil {
		kinds = map[ast.Kind]time.Duration{}
		p.perKind[s] = kinds
	}
	kinds[k] += elapsed
}

// Report writes a microsecond-accounting table to w, one line per
// state and, beneath it, one line per (state, kind) pair observed.
func (p *PerfTotals) Report(w io.Writer) {
	if p == nil {
		return
	}
	for s := State(0); s < stateCount; s++ {
		total, ok := p.perState[s]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%-18s %10dus\n", s, total.Microseconds())
		for k, d := range p.perKind[s] {
			fmt.Fprintf(w, "  %-16s %10dus\n", k, d.Microseconds())
		}
	}
}
