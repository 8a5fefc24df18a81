package onyxc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onyxlang/onyxc/ast"
	"github.com/onyxlang/onyxc/symtab"
)

func TestIntroducerBindsNameIntoScope(t *testing.T) {
	ctx := newTestContext(t)
	scope := symtab.NewScope(nil)
	e := &Entity{
		id:      1,
		Scope:   scope,
		Payload: &ast.Global{Ident: &ast.Ident{Text: "count"}, Pos: ast.Position{Filename: "a.onyx", Line: 1}},
	}

	res := Introducer{}.IntroduceSymbols(ctx, e)
	require.True(t, res.Changed)

	sym, ok := scope.Lookup("count")
	require.True(t, ok)
	require.Equal(t, 1, sym.EntityID)
}

func TestIntroducerFailsOnNameClash(t *testing.T) {
	ctx := newTestContext(t)
	scope := symtab.NewScope(nil)
	require.NoError(t, scope.Introduce(symtab.Symbol{Name: "count", EntityID: 0}))

	e := &Entity{
		id:      2,
		Scope:   scope,
		Payload: &ast.Global{Ident: &ast.Ident{Text: "count"}, Pos: ast.Position{Filename: "a.onyx", Line: 2}},
	}

	res := Introducer{}.IntroduceSymbols(ctx, e)
	require.True(t, res.Changed)
	require.Equal(t, StateFailed, e.State)
	require.Error(t, e.Err())
}

func TestIntroducerSkipsBodylessPayloads(t *testing.T) {
	ctx := newTestContext(t)
	scope := symtab.NewScope(nil)
	e := &Entity{Scope: scope, Payload: &ast.StaticIf{Cond: "x", Pos: ast.InternalPosition}}

	res := Introducer{}.IntroduceSymbols(ctx, e)
	require.True(t, res.Changed)
	require.Empty(t, scope.Names())
}

func TestResolverUseYieldsUntilPackageExists(t *testing.T) {
	ctx := newTestContext(t)
	e := &Entity{Payload: &ast.Use{PackagePath: "not_yet", Pos: ast.InternalPosition}}

	res := Resolver{}.ResolveSymbols(ctx, e)
	require.False(t, res.Changed)
	require.False(t, e.State.IsTerminal())
}

func TestResolverUseResolvesOnceSelectiveMembersVisible(t *testing.T) {
	ctx := newTestContext(t)
	pkg := ctx.Packages.GetOrCreate("util")
	require.NoError(t, pkg.Scope.Introduce(symtab.Symbol{Name: "helper", EntityID: 7}))

	e := &Entity{Payload: &ast.Use{PackagePath: "util", Only: []string{"helper"}, Pos: ast.InternalPosition}}
	res := Resolver{}.ResolveSymbols(ctx, e)
	require.True(t, res.Changed)
}

func TestResolverUseFailsUnknownMemberAfterCycleDetected(t *testing.T) {
	ctx := newTestContext(t)
	ctx.cycleDetected = true
	ctx.Packages.GetOrCreate("util")

	e := &Entity{id: 9, Payload: &ast.Use{PackagePath: "util", Only: []string{"missing"}, Pos: ast.InternalPosition}}
	res := Resolver{}.ResolveSymbols(ctx, e)
	require.True(t, res.Changed)
	require.Equal(t, StateFailed, e.State)
}

func TestResolverNonUsePayloadsResolveTrivially(t *testing.T) {
	ctx := newTestContext(t)
	e := &Entity{Payload: &ast.Function{Ident: &ast.Ident{Text: "f"}, Pos: ast.InternalPosition}}
	res := Resolver{}.ResolveSymbols(ctx, e)
	require.True(t, res.Changed)
}
