// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cexp

// Erased represents a type-erased value in the defunctionalized frame chain.
// Frame types use Erased parameters to process heterogeneous value types
// through a homogeneous evaluation pipeline. Concrete types are recovered
// via type assertions at frame boundaries.
type Erased = any

// frame is the interface for defunctionalized continuation frames.
// Implementations carry the data needed to continue computation.
// Dispatch uses type switches, not tags — frame is a pure marker interface.
type frame interface {
	frame() // unexported marker method
}

// doneFrame signals computation completion.
// The evaluator returns the current value as the final result.
type doneFrame struct{}

func (doneFrame) frame() {}

// suspendFrame is the suspension point of a step-resumable computation.
// work produces the next computation state and is invoked exactly once,
// by the Step call that consumes this frame.
type suspendFrame struct {
	work func() Eventually[Erased]
}

func (*suspendFrame) frame() {}

// bindFrame represents monadic bind: Bind(m, f).
type bindFrame struct {
	// f is the continuation function to apply to the input value.
	f func(Erased) Eventually[Erased]

	// next is the continuation frame after f completes.
	next frame
}

func (*bindFrame) frame() {}

// mapFrame represents functor mapping: Map(m, f).
type mapFrame struct {
	// f is the transformation function.
	f func(Erased) Erased

	// next is the continuation frame after transformation.
	next frame
}

func (*mapFrame) frame() {}

// chainedFrame represents a frame followed by more frames.
// This enables composing frame chains without mutation.
type chainedFrame struct {
	first frame
	rest  frame
}

func (*chainedFrame) frame() {}

// chainFrames links two frame chains together.
// Returns the other operand when either side is doneFrame (the identity
// element for frame composition), avoiding unnecessary chainedFrame
// allocation.
//
// Construction is O(1) in all cases: returns the other operand or creates
// one chainedFrame node.
func chainFrames(first, second frame) frame {
	if _, ok := first.(doneFrame); ok {
		return second
	}
	if _, ok := second.(doneFrame); ok {
		return first
	}
	return &chainedFrame{first: first, rest: second}
}
