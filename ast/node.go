package ast

// Kind tags the variant of a Node, and by extension the variant of the
// Entity that wraps it. The dispatcher and every collaborator switch on
// Kind internally; it never changes once a node is created.
type Kind int

const (
	KindLoadFile Kind = iota
	KindLoadAll
	KindLoadPath
	KindLibraryPath
	KindBinding
	KindExpression
	KindFunction
	KindOverloadedFunction
	KindPolymorphic
	KindStaticIf
	KindStringLiteral
	KindStruct
	KindEnum
	KindGlobal
	KindForeignBlock
	KindMemory
	KindUse
	KindProcessDirective
	KindError
	KindNote
)

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

var kindNames = [...]string{
	"LoadFile", "LoadAll", "LoadPath", "LibraryPath",
	"Binding", "Expression", "Function", "OverloadedFunction",
	"Polymorphic", "StaticIf", "StringLiteral", "Struct", "Enum",
	"Global", "ForeignBlock", "Memory", "Use", "ProcessDirective",
	"Error", "Note",
}

// Node is implemented by every payload type that an entity can carry.
type Node interface {
	Spanner
	Kind() Kind
	Name() string
}

// Ident is a bare identifier, the unit of symbol introduction and
// resolution.
type Ident struct {
	Text string
	Pos  Position
}

func (i *Ident) Span() Span { return Span{Start: i.Pos, End: i.Pos} }
