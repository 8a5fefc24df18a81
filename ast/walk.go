package ast

// VisitFunc is called once per node reached by Walk. Returning false
// stops descent into that node's children.
type VisitFunc func(Node) bool

// Walk performs a depth-first traversal of node and its children,
// calling fn for each node visited. It is used by the documentation and
// symbol-info emitters (sourceinfo package) to enumerate every
// declaration inside composite entities such as ForeignBlock and
// StaticIf without duplicating traversal logic in each emitter.
func Walk(node Node, fn VisitFunc) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *ForeignBlock:
		for _, d := range n.Decls {
			Walk(d, fn)
		}
	case *StaticIf:
		for _, d := range n.Then {
			Walk(d, fn)
		}
		for _, d := range n.Else {
			Walk(d, fn)
		}
	case *OverloadedFunction:
		for _, f := range n.Overloads {
			Walk(f, fn)
		}
	case *Function:
		for _, d := range n.Body {
			Walk(d, fn)
		}
	case *Polymorphic:
		if n.Underlying != nil {
			Walk(n.Underlying, fn)
		}
	}
}
