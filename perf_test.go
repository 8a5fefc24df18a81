package onyxc

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/onyxlang/onyxc/ast"
)

func TestPerfTotalsRecordAccumulates(t *testing.T) {
	p := NewPerfTotals()
	p.Record(StateResolveSymbols, ast.KindGlobal, 2*time.Millisecond)
	p.Record(StateResolveSymbols, ast.KindGlobal, 3*time.Millisecond)

	var buf bytes.Buffer
	p.Report(&buf)
	require.Contains(t, buf.String(), "ResolveSymbols")
	require.Contains(t, buf.String(), "5000us")
}

func TestPerfTotalsNilIsSafe(t *testing.T) {
	var p *PerfTotals
	require.NotPanics(t, func() {
		p.Record(StateParse, ast.KindLoadFile, time.Second)
		p.Report(&bytes.Buffer{})
	})
}
