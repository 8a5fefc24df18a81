package onyxc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onyxlang/onyxc/options"
)

func TestBootSeedsParseBuiltinsAndUserFiles(t *testing.T) {
	opts := options.Default()
	opts.Files = []string{"main.onyx"}
	ctx := NewContext(opts)
	ctx.Boot()

	require.Equal(t, 2, ctx.Heap.StateCount(StateParseBuiltin))
	// 5 runtime-info modules + 1 user file + 1 core module.
	require.Equal(t, 7, ctx.Heap.StateCount(StateParse))
	require.Equal(t, 5, ctx.specialGlobalsRemaining)
}

func TestBootWithCustomRuntimeSkipsRuntimeInfoModules(t *testing.T) {
	opts := options.Default()
	opts.Files = []string{"main.onyx"}
	opts.Runtime = options.RuntimeCustom
	ctx := NewContext(opts)
	ctx.Boot()

	// Only the user file + core module remain in Parse.
	require.Equal(t, 2, ctx.Heap.StateCount(StateParse))
	require.Equal(t, 0, ctx.specialGlobalsRemaining)
}

func TestBootNoCoreSkipsCoreModuleLoad(t *testing.T) {
	opts := options.Default()
	opts.Files = []string{"main.onyx"}
	opts.NoCore = true
	ctx := NewContext(opts)
	ctx.Boot()

	require.Equal(t, 6, ctx.Heap.StateCount(StateParse))
}

func TestMaybeInitializeSpecialGlobalsFiresOnceAtZero(t *testing.T) {
	ctx := newTestContext(t)
	ctx.specialGlobalsRemaining = 2

	finalized := &Entity{Package: runtimeVarsPackage, State: StateFinalized}

	ctx.maybeInitializeSpecialGlobals(finalized)
	require.False(t, ctx.specialGlobalsDone)

	ctx.maybeInitializeSpecialGlobals(finalized)
	require.True(t, ctx.specialGlobalsDone)

	core := ctx.Packages.GetOrCreate(corePackage)
	_, ok := core.Scope.Lookup("__type_table")
	require.True(t, ok)

	// A further finalization must not fire the callback again or panic.
	ctx.maybeInitializeSpecialGlobals(finalized)
}

func TestMaybeLazyInitRunsOnlyOnce(t *testing.T) {
	opts := options.Default()
	opts.DefinedVariables = []options.DefinedVariable{{Key: "debug", Value: "1"}}
	ctx := NewContext(opts)

	ctx.maybeLazyInit()
	require.Equal(t, 1, ctx.Heap.StateCount(StateIntroduceSymbols))

	ctx.maybeLazyInit()
	require.Equal(t, 1, ctx.Heap.StateCount(StateIntroduceSymbols), "second call must be a no-op")
}
