// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cexp

// Eventually is a step-resumable computation producing a value of type A.
//
// A computation is in one of two states: completed (Done reports true and
// Value holds the final result) or suspended on a pending continuation.
// Transitions occur only through [Step], which consumes exactly one
// suspension per call. The external driver loops Step until Done, or uses
// [Run] to drain non-interactively.
//
// The continuation chain is carried as defunctionalized frames rather than
// nested closures, so stepping a computation built from arbitrarily deep
// Bind compositions folds iteratively without growing the call stack.
type Eventually[A any] struct {
	value A
	frame frame
}

// Result creates a completed computation holding v.
func Result[A any](v A) Eventually[A] {
	return Eventually[A]{value: v, frame: doneFrame{}}
}

// Delay creates a suspended computation.
// work is not invoked until the first Step; each Delay boundary costs the
// driver exactly one step.
func Delay[A any](work func() Eventually[A]) Eventually[A] {
	var zero A
	return Eventually[A]{value: zero, frame: &suspendFrame{
		work: func() Eventually[Erased] { return erase(work()) },
	}}
}

// Fail creates a computation that raises err when first stepped.
// The error propagates out of the driving Step call unless a [Catch],
// [TryWith], or [TryFinally] wraps the computation.
func Fail[A any](err error) Eventually[A] {
	return Delay(func() Eventually[A] { panic(err) })
}

// Done reports whether the computation has reached its terminal state.
// The zero value counts as completed with the zero result.
func (e Eventually[A]) Done() bool {
	if e.frame == nil {
		return true
	}
	_, ok := e.frame.(doneFrame)
	return ok
}

// Value returns the final result.
// Meaningful only once Done reports true; before that it returns the zero
// value of A.
func (e Eventually[A]) Value() A { return e.value }

// erase rewraps a typed computation as Eventually[Erased] for the
// homogeneous frame pipeline.
func erase[A any](m Eventually[A]) Eventually[Erased] {
	return Eventually[Erased]{value: Erased(m.value), frame: m.frame}
}

// Bind sequences two computations (monadic bind).
//
// When m is already completed, f applies immediately — no new suspension
// is introduced. Otherwise construction only appends a frame; f runs
// during the Step call that completes m, never at construction.
func Bind[A, B any](m Eventually[A], f func(A) Eventually[B]) Eventually[B] {
	if m.Done() {
		return f(m.value)
	}
	bf := &bindFrame{
		f:    func(v Erased) Eventually[Erased] { return erase(f(v.(A))) },
		next: doneFrame{},
	}
	var zero B
	return Eventually[B]{value: zero, frame: chainFrames(m.frame, bf)}
}

// Map applies a pure function to the result of a computation.
//
// Allocation note: Map is equivalent to Bind(m, compose(Result, f)) but
// avoids the intermediate Result wrapping, making it the preferred choice
// when the transformation is pure.
func Map[A, B any](m Eventually[A], f func(A) B) Eventually[B] {
	if m.Done() {
		return Result(f(m.value))
	}
	mf := &mapFrame{
		f:    func(v Erased) Erased { return f(v.(A)) },
		next: doneFrame{},
	}
	var zero B
	return Eventually[B]{value: zero, frame: chainFrames(m.frame, mf)}
}

// Then sequences two computations, discarding the first result.
func Then[A, B any](m Eventually[A], n Eventually[B]) Eventually[B] {
	return Bind(m, func(A) Eventually[B] { return n })
}

// Step advances the computation by exactly one step.
//
// Stepping a completed computation is a no-op returning it unchanged.
// Otherwise Step invokes the pending suspension thunk exactly once, then
// iteratively folds the pure bind/map frames that follow until the next
// suspension or completion. Errors raised by user code during the step
// propagate out of Step as panics.
func Step[A any](m Eventually[A]) Eventually[A] {
	if m.Done() {
		return m
	}
	work, rest := splitSuspension(m.frame)
	sub := work()
	return settle[A](sub.value, chainFrames(sub.frame, rest))
}

// Run drives the computation to completion and returns the final value.
// Convenience for non-interactive callers that do not need cooperative
// pacing; interactive drivers loop [Step] themselves.
func Run[A any](m Eventually[A]) A {
	for !m.Done() {
		m = Step(m)
	}
	return m.value
}

// splitSuspension peels the leading suspension thunk off a frame chain,
// returning it together with the remaining frames.
//
// Non-done chains always start with a suspension: Delay is the sole
// constructor of the suspended state and Bind/Map only append frames.
func splitSuspension(f frame) (func() Eventually[Erased], frame) {
	rest := frame(doneFrame{})
	for {
		cf, ok := f.(*chainedFrame)
		if !ok {
			break
		}
		rest = chainFrames(cf.rest, rest)
		f = cf.first
	}
	s, ok := f.(*suspendFrame)
	if !ok {
		panic("cexp: malformed continuation chain")
	}
	return s.work, rest
}

// settle is the iterative frame evaluator.
// It folds pure frames until reaching the next suspension or completion,
// avoiding stack growth from recursive calls regardless of how deeply the
// computation was composed before stepping.
func settle[A any](current Erased, fr frame) Eventually[A] {
	for {
		switch f := fr.(type) {
		case doneFrame:
			if current == nil {
				var zero A
				return Eventually[A]{value: zero, frame: doneFrame{}}
			}
			return Eventually[A]{value: current.(A), frame: doneFrame{}}
		case *suspendFrame:
			var zero A
			return Eventually[A]{value: zero, frame: fr}
		case *bindFrame:
			next := f.f(current)
			current = next.value
			fr = chainFrames(next.frame, f.next)
		case *mapFrame:
			current = f.f(current)
			fr = f.next
		case *chainedFrame:
			if nested, ok := f.first.(*chainedFrame); ok {
				fr = &chainedFrame{
					first: nested.first,
					rest:  chainFrames(nested.rest, f.rest),
				}
				continue
			}
			switch head := f.first.(type) {
			case doneFrame:
				fr = f.rest
			case *suspendFrame:
				var zero A
				return Eventually[A]{value: zero, frame: fr}
			case *bindFrame:
				next := head.f(current)
				current = next.value
				fr = chainFrames(chainFrames(next.frame, head.next), f.rest)
			case *mapFrame:
				current = head.f(current)
				fr = chainFrames(head.next, f.rest)
			default:
				panic("cexp: unknown frame type in chain")
			}
		default:
			panic("cexp: unknown frame type")
		}
	}
}
