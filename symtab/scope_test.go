package symtab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopeIntroduceAndLookup(t *testing.T) {
	s := NewScope(nil)
	require.NoError(t, s.Introduce(Symbol{Name: "foo", EntityID: 1}))

	sym, ok := s.Lookup("foo")
	require.True(t, ok)
	require.Equal(t, 1, sym.EntityID)
}

func TestScopeIntroduceClashReturnsAlreadyDefinedError(t *testing.T) {
	s := NewScope(nil)
	require.NoError(t, s.Introduce(Symbol{Name: "foo", EntityID: 1}))

	err := s.Introduce(Symbol{Name: "foo", EntityID: 2})
	require.Error(t, err)
	require.Contains(t, err.Error(), "already defined")
}

func TestScopeLookupFallsBackToParent(t *testing.T) {
	parent := NewScope(nil)
	require.NoError(t, parent.Introduce(Symbol{Name: "outer", EntityID: 1}))
	child := NewScope(parent)

	sym, ok := child.Lookup("outer")
	require.True(t, ok)
	require.Equal(t, 1, sym.EntityID)

	_, ok = child.LookupLocal("outer")
	require.False(t, ok, "LookupLocal must not consult ancestors")
}

func TestScopeNamesOnlyLocal(t *testing.T) {
	parent := NewScope(nil)
	require.NoError(t, parent.Introduce(Symbol{Name: "outer", EntityID: 1}))
	child := NewScope(parent)
	require.NoError(t, child.Introduce(Symbol{Name: "inner", EntityID: 2}))

	require.Equal(t, []string{"inner"}, child.Names())
}

func TestScopeAllVisibleNamesNearestWins(t *testing.T) {
	parent := NewScope(nil)
	require.NoError(t, parent.Introduce(Symbol{Name: "x", EntityID: 1}))
	child := NewScope(parent)
	require.NoError(t, child.Introduce(Symbol{Name: "y", EntityID: 2}))

	names := child.AllVisibleNames()
	require.ElementsMatch(t, []string{"x", "y"}, names)
}
