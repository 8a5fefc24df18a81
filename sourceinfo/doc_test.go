package sourceinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onyxlang/onyxc/ast"
)

func TestWriteDocGroupsByKindAndSortsByName(t *testing.T) {
	roots := []ast.Node{
		&ast.Function{Ident: &ast.Ident{Text: "zeta"}, Pos: ast.Position{Filename: "a.onyx", Line: 3}},
		&ast.Function{Ident: &ast.Ident{Text: "alpha"}, Pos: ast.Position{Filename: "a.onyx", Line: 1}},
		&ast.Struct{Ident: &ast.Ident{Text: "Widget"}, Pos: ast.Position{Filename: "b.onyx", Line: 5}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDoc(&buf, roots))

	out := buf.String()
	alphaIdx := bytes.Index([]byte(out), []byte("alpha"))
	zetaIdx := bytes.Index([]byte(out), []byte("zeta"))
	require.True(t, alphaIdx >= 0 && zetaIdx >= 0 && alphaIdx < zetaIdx)
	require.Contains(t, out, "## Function")
	require.Contains(t, out, "## Struct")
	require.Contains(t, out, "a.onyx:1")
}

func TestWriteDocSkipsUndocumentableKinds(t *testing.T) {
	roots := []ast.Node{
		&ast.Binding{Ident: &ast.Ident{Text: "tmp"}, Value: &ast.Expression{Text: "1"}, Pos: ast.InternalPosition},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDoc(&buf, roots))
	require.Empty(t, buf.String())
}

func TestWriteDocEmptyRootsProducesEmptyOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDoc(&buf, nil))
	require.Empty(t, buf.String())
}
