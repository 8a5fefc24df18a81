package onyxc

import "github.com/onyxlang/onyxc/reporter"

// cycleDetector implements spec.md §4.5's watermark algorithm: it
// distinguishes live progress (some entity somewhere is still advancing)
// from a true deadlock (every entity is yielding and none will ever
// advance again) without needing to compare a single entity across
// dispatches, which is defeated by collaborators that make partial
// progress while still yielding overall.
type cycleDetector struct {
	watermarkedNode  *Entity
	highestWatermark int
	almostDetected   int // 2-bit counter, 0..3
}

// observe runs the algorithm for one dispatch: e is the entity just
// dispatched, changed reports whether the dispatch advanced its state.
// It returns true when a cycle has just been confirmed and the caller
// should run dumpCycles.
func (d *cycleDetector) observe(e *Entity, changed bool) bool {
	if changed {
		d.watermarkedNode = nil
		d.almostDetected = 0
		return false
	}

	switch {
	case d.watermarkedNode == nil:
		d.watermarkedNode = e
		if e.MacroAttempts > d.highestWatermark {
			d.highestWatermark = e.MacroAttempts
		}
	case d.watermarkedNode == e:
		// The scheduler has lapped the whole heap back to the node we
		// were watching without anything else budging it off the
		// watermark.
		if e.MacroAttempts > d.highestWatermark {
			d.highestWatermark = e.MacroAttempts
			d.almostDetected++
			if d.almostDetected >= 3 {
				return true
			}
		}
	case e.MacroAttempts > d.highestWatermark:
		d.watermarkedNode = e
		d.highestWatermark = e.MacroAttempts
	}
	return false
}

// dumpCycles drains every entity with state strictly less than
// CodeGen through one more dispatch pass with errors forcibly enabled,
// so each emits its own concrete unmet-dependency diagnostic, then
// reports that cycle detection has fired (spec.md §4.5).
func (ctx *Context) dumpCycles() {
	ctx.cycleDetected = true
	ctx.Errors.Enable()

	var stuck []*Entity
	for ctx.Heap.Len() > 0 {
		e := ctx.Heap.RemoveTop()
		if e.State < StateCodeGen {
			stuck = append(stuck, e)
		}
	}
	for _, e := range stuck {
		ctx.dispatch(e)
		if !e.State.IsTerminal() {
			// The collaborator still didn't fail it outright (e.g. a
			// dependency simply never existed); report a generic cycle
			// diagnostic so the entity still terminates visibly.
			e.Fail(ctx.Errors.HandleErrorf(e.ID(), reporter.KindCycle,
				e.Payload.Span().Start, "declaration %q never resolved its dependencies", e.Payload.Name()))
		}
	}
}
