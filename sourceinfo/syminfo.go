package sourceinfo

import (
	"encoding/json"
	"io"

	"github.com/onyxlang/onyxc/ast"
)

// SymbolInfo is one entry in the combined symbol-info / LSP-info
// artifact: enough for an editor to jump to a definition or render a
// completion without re-parsing the source.
type SymbolInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

// CollectSymbols walks every root node and returns one SymbolInfo per
// named declaration, in traversal order (unlike tags, editors generally
// want file order, not alphabetical).
func CollectSymbols(roots []ast.Node) []SymbolInfo {
	var out []SymbolInfo
	for _, root := range roots {
		ast.Walk(root, func(n ast.Node) bool {
			name := n.Name()
			if name == "" || name[0] == '<' {
				return true
			}
			pos := n.Span().Start
			out = append(out, SymbolInfo{
				Name: name,
				Kind: n.Kind().String(),
				File: pos.Filename,
				Line: pos.Line,
				Col:  pos.Column,
			})
			return true
		})
	}
	return out
}

// WriteSymbolInfo writes syms as indented JSON, the format both the
// `--syminfo` and `--lspinfo` flags share (spec.md §6.3 documents them
// as two separate output paths for the same underlying data).
func WriteSymbolInfo(w io.Writer, syms []SymbolInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(syms)
}
