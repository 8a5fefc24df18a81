package ast

// LoadFile is a `#load "path"` or `use "path"` directive that absorbs a
// single file as additional source.
type LoadFile struct {
	Path string
	Pos  Position
}

func (n *LoadFile) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *LoadFile) Kind() Kind   { return KindLoadFile }
func (n *LoadFile) Name() string { return n.Path }

// LoadAll is a `#load_all "dir"` (optionally `recursive`) directory load.
type LoadAll struct {
	Path      string
	Recursive bool
	Pos       Position
}

func (n *LoadAll) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *LoadAll) Kind() Kind   { return KindLoadAll }
func (n *LoadAll) Name() string { return n.Path }

// LoadPath is a `#load_path "dir"` directive; it only affects future
// LoadFile resolution.
type LoadPath struct {
	Path string
	Pos  Position
}

func (n *LoadPath) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *LoadPath) Kind() Kind   { return KindLoadPath }
func (n *LoadPath) Name() string { return n.Path }

// LibraryPath is a `#library_path "dir"` directive consumed by the
// linker, not the loader.
type LibraryPath struct {
	Path string
	Pos  Position
}

func (n *LibraryPath) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *LibraryPath) Kind() Kind   { return KindLibraryPath }
func (n *LibraryPath) Name() string { return n.Path }

// Binding names a single value, e.g. `x :: 10` or `y := f()`.
type Binding struct {
	Ident *Ident
	Value Node
	Pos   Position
}

func (n *Binding) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *Binding) Kind() Kind   { return KindBinding }
func (n *Binding) Name() string { return n.Ident.Text }

// Expression wraps a free-standing expression entity, such as a global
// initializer still being resolved.
type Expression struct {
	Text string
	Pos  Position
}

func (n *Expression) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *Expression) Kind() Kind   { return KindExpression }
func (n *Expression) Name() string { return "<expr>" }

// Param is a single function parameter.
type Param struct {
	Ident   *Ident
	TypeRef string
}

// Function is a single, non-overloaded procedure declaration.
type Function struct {
	Ident      *Ident
	Params     []Param
	ReturnType string
	Body       []Node
	Pos        Position
}

func (n *Function) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *Function) Kind() Kind   { return KindFunction }
func (n *Function) Name() string { return n.Ident.Text }

// OverloadedFunction groups several Functions under one name; each
// concrete overload is a distinct entity once separated, but the group
// itself is scheduled until all overloads are known.
type OverloadedFunction struct {
	Ident     *Ident
	Overloads []*Function
	Pos       Position
}

func (n *OverloadedFunction) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *OverloadedFunction) Kind() Kind   { return KindOverloadedFunction }
func (n *OverloadedFunction) Name() string { return n.Ident.Text }

// Polymorphic is a function or struct declaration with unresolved type
// parameters; instantiation happens lazily as call sites are checked.
type Polymorphic struct {
	Ident     *Ident
	TypeParam []string
	Underlying Node
	Pos       Position
}

func (n *Polymorphic) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *Polymorphic) Kind() Kind   { return KindPolymorphic }
func (n *Polymorphic) Name() string { return n.Ident.Text }

// StaticIf is a `#if` compile-time conditional; its branch is selected
// during symbol resolution once the guard expression is known.
type StaticIf struct {
	Cond    string
	Then    []Node
	Else    []Node
	Pos     Position
}

func (n *StaticIf) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *StaticIf) Kind() Kind   { return KindStaticIf }
func (n *StaticIf) Name() string { return "<static if>" }

// StringLiteral is a standalone string-literal entity, used for the
// value half of a generated binding (e.g. a `#load_path`'s argument).
type StringLiteral struct {
	Value string
	Pos   Position
}

func (n *StringLiteral) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *StringLiteral) Kind() Kind   { return KindStringLiteral }
func (n *StringLiteral) Name() string { return "<string>" }

// Field is a single struct member.
type Field struct {
	Ident   *Ident
	TypeRef string
}

// Struct is a struct type declaration.
type Struct struct {
	Ident  *Ident
	Fields []Field
	Pos    Position
}

func (n *Struct) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *Struct) Kind() Kind   { return KindStruct }
func (n *Struct) Name() string { return n.Ident.Text }

// EnumValue is a single enum member, optionally with an explicit value
// expression.
type EnumValue struct {
	Ident *Ident
	Value string
}

// Enum is an enum type declaration.
type Enum struct {
	Ident     *Ident
	BackingTy string
	Values    []EnumValue
	Pos       Position
}

func (n *Enum) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *Enum) Kind() Kind   { return KindEnum }
func (n *Enum) Name() string { return n.Ident.Text }

// Global is a global variable declaration.
type Global struct {
	Ident     *Ident
	TypeRef   string
	Initial   Node
	ThreadLoc bool
	Pos       Position
}

func (n *Global) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *Global) Kind() Kind   { return KindGlobal }
func (n *Global) Name() string { return n.Ident.Text }

// ForeignBlock groups declarations imported from a named foreign module
// (e.g. a JavaScript host import).
type ForeignBlock struct {
	ModuleName string
	Decls      []Node
	Pos        Position
}

func (n *ForeignBlock) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *ForeignBlock) Kind() Kind   { return KindForeignBlock }
func (n *ForeignBlock) Name() string { return n.ModuleName }

// Memory describes a `#memory` directive sizing the module's linear
// memory.
type Memory struct {
	InitialPages int
	MaxPages     int
	Pos          Position
}

func (n *Memory) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *Memory) Kind() Kind   { return KindMemory }
func (n *Memory) Name() string { return "<memory>" }

// Use declares that the enclosing scope depends on a package or a
// specific binding from one (`use core.runtime { foo }`).
type Use struct {
	PackagePath string
	Only        []string
	Pos         Position
}

func (n *Use) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *Use) Kind() Kind   { return KindUse }
func (n *Use) Name() string { return n.PackagePath }

// ProcessDirective is a compiler directive evaluated at the process
// level (`#package name` is the only one the parser accepts).
type ProcessDirective struct {
	Directive string
	Arg       string
	Pos       Position
}

func (n *ProcessDirective) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *ProcessDirective) Kind() Kind   { return KindProcessDirective }
func (n *ProcessDirective) Name() string { return n.Directive }

// Error is a `#error "message"` static assertion; the loader schedules it
// in the Error state, and dispatching it always fails the entity.
type Error struct {
	Message string
	Pos     Position
}

func (n *Error) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *Error) Kind() Kind   { return KindError }
func (n *Error) Name() string { return "<error>" }

// Note is a `#note "message"` that is reported as informational output
// once reached, without failing the entity.
type Note struct {
	Message string
	Pos     Position
}

func (n *Note) Span() Span   { return Span{Start: n.Pos, End: n.Pos} }
func (n *Note) Kind() Kind   { return KindNote }
func (n *Note) Name() string { return "<note>" }
