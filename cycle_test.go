package onyxc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onyxlang/onyxc/ast"
)

func TestCycleDetectorResetsOnChange(t *testing.T) {
	d := &cycleDetector{}
	e := &Entity{id: 1, MacroAttempts: 1}

	require.False(t, d.observe(e, true))
	require.Nil(t, d.watermarkedNode)
	require.Equal(t, 0, d.almostDetected)
}

func TestCycleDetectorConfirmsAfterThreeLaps(t *testing.T) {
	d := &cycleDetector{}
	stuck := &Entity{id: 1}
	other := &Entity{id: 2}

	// First no-progress observation watermarks stuck.
	require.False(t, d.observe(stuck, false))
	require.Same(t, stuck, d.watermarkedNode)

	// Observing a different entity that also made no progress, but whose
	// MacroAttempts hasn't exceeded the watermark, changes nothing yet.
	require.False(t, d.observe(other, false))

	// The scheduler laps back to stuck three times, each time with a
	// strictly higher MacroAttempts, before a cycle is confirmed.
	stuck.MacroAttempts = 1
	require.False(t, d.observe(stuck, false))
	stuck.MacroAttempts = 2
	require.False(t, d.observe(stuck, false))
	stuck.MacroAttempts = 3
	require.True(t, d.observe(stuck, false))
}

func TestDumpCyclesFailsEveryNonTerminalEntity(t *testing.T) {
	ctx := newTestContext(t)
	e := ctx.Heap.Insert(Template{
		Kind:    ast.KindGlobal,
		State:   StateResolveSymbols,
		Package: "main",
		Payload: &ast.Global{Ident: &ast.Ident{Text: "orphan"}, Pos: ast.Position{Filename: "a.onyx", Line: 1}},
	})

	ctx.dumpCycles()

	require.True(t, ctx.CycleDetected())
	require.Equal(t, StateFailed, e.State)
	require.Error(t, e.Err())
}
