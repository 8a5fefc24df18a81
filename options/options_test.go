package options

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	o := Default()
	require.Equal(t, ActionCompile, o.Action)
	require.Equal(t, "out.wasm", o.Output)
	require.Equal(t, RuntimeA, o.Runtime)
}

func TestParseRuntimeKnownNames(t *testing.T) {
	for name, want := range map[string]Runtime{"A": RuntimeA, "B": RuntimeB, "C": RuntimeC, "D": RuntimeD, "custom": RuntimeCustom} {
		got, ok := ParseRuntime(name)
		require.True(t, ok, name)
		require.Equal(t, want, got)
	}
}

func TestParseRuntimeUnknownFallsBackToA(t *testing.T) {
	got, ok := ParseRuntime("Z")
	require.False(t, ok)
	require.Equal(t, RuntimeA, got)
}

func TestApplyRuntimeFlagWarnsOnUnknown(t *testing.T) {
	o := Default()
	warning := o.ApplyRuntimeFlag("Z")
	require.NotEmpty(t, warning)
	require.Equal(t, RuntimeA, o.Runtime)
	require.True(t, o.MultiThreaded, "runtime A forces multithreading on")
}

func TestApplyRuntimeFlagKnownNameNoWarning(t *testing.T) {
	o := Default()
	warning := o.ApplyRuntimeFlag("B")
	require.Empty(t, warning)
	require.Equal(t, RuntimeB, o.Runtime)
	require.False(t, o.MultiThreaded)
}

func TestPostMVPEnabled(t *testing.T) {
	o := Default()
	require.True(t, o.PostMVPEnabled())
	o.WasmMVP = true
	require.False(t, o.PostMVPEnabled())
}
