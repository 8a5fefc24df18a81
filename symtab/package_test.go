package symtab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryGetOrCreateIsIdempotent(t *testing.T) {
	r := NewRegistry()
	a := r.GetOrCreate("core")
	b := r.GetOrCreate("core")
	require.Same(t, a, b)
	require.Equal(t, 1, r.Len())
}

func TestRegistryLookupMissingPackage(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Lookup("nonexistent")
	require.False(t, ok)
}

func TestRegistryNamesListsEveryPackage(t *testing.T) {
	r := NewRegistry()
	r.GetOrCreate("core")
	r.GetOrCreate("main")
	require.ElementsMatch(t, []string{"core", "main"}, r.Names())
}
