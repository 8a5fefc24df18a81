package onyxc

import (
	"testing"

	"github.com/onyxlang/onyxc/options"
)

// stubIntroducer, stubResolver, stubChecker, and stubEmitter are minimal
// collaborator stand-ins used where a test needs SetCollaborators
// satisfied but never exercises the collaborator itself (e.g. cycle
// detection tests, which only drive entities through ResolveSymbols).
// They always yield, since a test-local entity has nothing to resolve
// against.
type stubIntroducer struct{}

func (stubIntroducer) IntroduceSymbols(ctx *Context, e *Entity) Result { return NotChanged() }

type stubResolver struct{}

func (stubResolver) ResolveSymbols(ctx *Context, e *Entity) Result { return NotChanged() }

type stubChecker struct{}

func (stubChecker) CheckTypes(ctx *Context, e *Entity) Result { return NotChanged() }

type stubEmitter struct{}

func (stubEmitter) EmitCode(ctx *Context, e *Entity) Result { return NotChanged() }

// newTestContext builds a Context wired with stub collaborators, enough
// to exercise the heap, dispatcher, and cycle detector without needing
// the real typecheck/codegen packages (which import this package and
// would create an import cycle from an internal test file).
func newTestContext(t *testing.T) *Context {
	t.Helper()
	ctx := NewContext(options.Default())
	ctx.SetCollaborators(stubIntroducer{}, stubResolver{}, stubChecker{}, stubEmitter{})
	return ctx
}
