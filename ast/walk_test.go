package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalkDescendsIntoForeignBlock(t *testing.T) {
	inner := &Function{Ident: &Ident{Text: "host_log"}}
	root := &ForeignBlock{ModuleName: "env", Decls: []Node{inner}}

	var visited []string
	Walk(root, func(n Node) bool {
		visited = append(visited, n.Name())
		return true
	})

	require.Equal(t, []string{"env", "host_log"}, visited)
}

func TestWalkDescendsIntoStaticIfBranches(t *testing.T) {
	then := &Global{Ident: &Ident{Text: "a"}}
	els := &Global{Ident: &Ident{Text: "b"}}
	root := &StaticIf{Cond: "debug", Then: []Node{then}, Else: []Node{els}}

	var visited []string
	Walk(root, func(n Node) bool {
		visited = append(visited, n.Name())
		return true
	})

	require.Equal(t, []string{"<static if>", "a", "b"}, visited)
}

func TestWalkStopsDescentWhenVisitorReturnsFalse(t *testing.T) {
	inner := &Function{Ident: &Ident{Text: "inner"}}
	root := &ForeignBlock{ModuleName: "env", Decls: []Node{inner}}

	var visited []string
	Walk(root, func(n Node) bool {
		visited = append(visited, n.Name())
		return false
	})

	require.Equal(t, []string{"env"}, visited)
}

func TestWalkNilNodeIsNoOp(t *testing.T) {
	require.NotPanics(t, func() {
		Walk(nil, func(n Node) bool { return true })
	})
}

func TestWalkOverloadedFunctionVisitsEachOverload(t *testing.T) {
	a := &Function{Ident: &Ident{Text: "f"}, ReturnType: "i32"}
	b := &Function{Ident: &Ident{Text: "f"}, ReturnType: "f64"}
	root := &OverloadedFunction{Ident: &Ident{Text: "f"}, Overloads: []*Function{a, b}}

	count := 0
	Walk(root, func(n Node) bool {
		count++
		return true
	})
	require.Equal(t, 3, count)
}
