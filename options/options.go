// Package options holds the compile-time configuration consumed by the
// driver (spec.md §3.5): search paths, defined variables, runtime
// selection, output path, feature toggles, verbosity and error-format.
// An Options value is read-only for the entire compilation.
package options

import "fmt"

// Runtime selects the WebAssembly host environment the emitted module
// targets.
type Runtime int

const (
	RuntimeA Runtime = iota
	RuntimeB
	RuntimeC
	RuntimeD
	RuntimeCustom
)

func (r Runtime) String() string {
	switch r {
	case RuntimeA:
		return "A"
	case RuntimeB:
		return "B"
	case RuntimeC:
		return "C"
	case RuntimeD:
		return "D"
	case RuntimeCustom:
		return "custom"
	}
	return "unknown"
}

// ParseRuntime maps a runtime name to its Runtime value. Per spec.md
// §6.3, an unknown name is not an error at this layer: the caller is
// expected to warn and fall back to RuntimeA.
func ParseRuntime(name string) (Runtime, bool) {
	switch name {
	case "A":
		return RuntimeA, true
	case "B":
		return RuntimeB, true
	case "C":
		return RuntimeC, true
	case "D":
		return RuntimeD, true
	case "custom":
		return RuntimeCustom, true
	default:
		return RuntimeA, false
	}
}

// Action selects what the driver does once compilation succeeds.
type Action int

const (
	ActionCompile Action = iota
	ActionCheck
	ActionRun
)

// ErrorFormat selects the diagnostic rendering style (ONYX_ERROR_FORMAT,
// spec.md §6.2, or --error-format).
type ErrorFormat int

const (
	ErrorFormatV1 ErrorFormat = iota
	ErrorFormatV2
)

// DefinedVariable is one `-D key=value` binding injected into the
// runtime-vars package during boot (spec.md §4.4 step 6).
type DefinedVariable struct {
	Key   string
	Value string
}

// Options is the full, read-only configuration for one compilation.
type Options struct {
	Action Action

	Files        []string
	SearchPaths  []string
	LibraryPaths []string
	Output       string

	Runtime Runtime

	MultiThreaded      bool
	GenerateTypeInfo   bool
	GenerateMethodInfo bool
	GenerateForeignInfo bool
	GenerateStackTrace bool
	NoCore             bool
	NoStaleCode        bool
	WasmMVP            bool // when true, post-MVP features are disabled
	OptionalSemicolons bool // --feature optional-semicolons

	Verbosity int // 0-3

	ErrorFormat     ErrorFormat
	ShowAllErrors   bool
	NoColors        bool
	NoFileContents  bool

	DocFile      string
	TagFile      bool
	SymInfoFile  string
	LSPInfoFile  string

	DefinedVariables []DefinedVariable

	Debug     bool
	DebugInfo bool
	Perf      bool

	PassthroughArgs []string
}

// Default returns an Options with the documented defaults (spec.md
// §6.3): output "out.wasm", runtime A, verbosity 0, error format v1.
func Default() Options {
	return Options{
		Action:  ActionCompile,
		Output:  "out.wasm",
		Runtime: RuntimeA,
	}
}

// PostMVPEnabled reports whether post-MVP WebAssembly features are
// active, i.e. --wasm-mvp was not given.
func (o Options) PostMVPEnabled() bool { return !o.WasmMVP }

// Validate applies the cross-field defaulting rule from spec.md §6.3
// that runtime A forces multithreading on. It always returns "": the
// unknown-runtime fallback and its warning are handled by
// ApplyRuntimeFlag.
func (o *Options) Validate() string {
	if o.Runtime == RuntimeA {
		o.MultiThreaded = true
	}
	return ""
}

// ApplyRuntimeFlag parses and applies a --runtime/-r flag value,
// returning a warning string if the name was unrecognized.
func (o *Options) ApplyRuntimeFlag(name string) string {
	rt, ok := ParseRuntime(name)
	o.Runtime = rt
	if !ok {
		warning := fmt.Sprintf("unknown runtime %q, defaulting to A", name)
		o.Validate()
		return warning
	}
	o.Validate()
	return ""
}
