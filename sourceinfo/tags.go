// Package sourceinfo produces the optional side artifacts Finalization
// may emit (spec.md §4.6 step 5): a ctags-style tags file, a combined
// symbol-info/LSP-info file, and a documentation file. None of these
// affect compilation; they are generated from the final AST forest
// purely by walking it with ast.Walk.
package sourceinfo

import (
	"fmt"
	"io"
	"sort"

	"github.com/onyxlang/onyxc/ast"
)

// TagEntry is one ctags-compatible line: name, defining file, and the
// line number locating it.
type TagEntry struct {
	Name    string
	File    string
	Line    int
	Kind    ast.Kind
}

// CollectTags walks every root node and returns one TagEntry per
// declaration with a real name, sorted alphabetically as ctags expects.
func CollectTags(roots []ast.Node) []TagEntry {
	var tags []TagEntry
	for _, root := range roots {
		ast.Walk(root, func(n ast.Node) bool {
			name := n.Name()
			if name != "" && name[0] != '<' {
				pos := n.Span().Start
				tags = append(tags, TagEntry{Name: name, File: pos.Filename, Line: pos.Line, Kind: n.Kind()})
			}
			return true
		})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags
}

// WriteTags renders tags in the traditional tab-separated ctags format:
// `name<TAB>file<TAB>line`.
func WriteTags(w io.Writer, tags []TagEntry) error {
	for _, t := range tags {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\n", t.Name, t.File, t.Line); err != nil {
			return err
		}
	}
	return nil
}
