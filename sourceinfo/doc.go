package sourceinfo

import (
	"fmt"
	"io"
	"sort"

	"github.com/onyxlang/onyxc/ast"
)

// docKinds are the entity kinds worth documenting; load/path directives
// and internal plumbing (bindings, expressions) are excluded.
var docKinds = map[ast.Kind]bool{
	ast.KindFunction:           true,
	ast.KindOverloadedFunction: true,
	ast.KindStruct:             true,
	ast.KindEnum:               true,
	ast.KindGlobal:             true,
}

// WriteDoc renders a Markdown documentation file listing every
// documentable declaration across roots, grouped by kind and sorted by
// name within each group.
func WriteDoc(w io.Writer, roots []ast.Node) error {
	byKind := map[ast.Kind][]ast.Node{}
	for _, root := range roots {
		ast.Walk(root, func(n ast.Node) bool {
			if docKinds[n.Kind()] {
				byKind[n.Kind()] = append(byKind[n.Kind()], n)
			}
			return true
		})
	}

	order := []ast.Kind{ast.KindFunction, ast.KindOverloadedFunction, ast.KindStruct, ast.KindEnum, ast.KindGlobal}
	for _, k := range order {
		nodes := byKind[k]
		if len(nodes) == 0 {
			continue
		}
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name() < nodes[j].Name() })
		if _, err := fmt.Fprintf(w, "## %s\n\n", k); err != nil {
			return err
		}
		for _, n := range nodes {
			pos := n.Span().Start
			if _, err := fmt.Fprintf(w, "- `%s` — %s:%d\n", n.Name(), pos.Filename, pos.Line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
