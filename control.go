// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cexp

import (
	"io"
	"iter"
)

// Exception handling, loop constructs, and scoped-resource cleanup for
// step-resumable computations.
//
// A single logical try/finally here spans multiple discrete Step calls, so
// compensation is carried as data in the continuation chain (via Catch),
// not as host stack unwinding: the relevant "stack" is the chain of stored
// frames, not the call stack.

// Unit is the result type of computations run for their effects only.
type Unit = struct{}

// TryWith wraps a computation with an error handler.
// A step failure inside m is handed to handler, whose result replaces the
// remainder of the computation. Without a failure, the result passes
// through unchanged.
func TryWith[A any](m Eventually[A], handler func(error) Eventually[A]) Eventually[A] {
	return Bind(Catch(m), func(o Outcome[A]) Eventually[A] {
		v, err := o.Get()
		if err != nil {
			return handler(err)
		}
		return Result(v)
	})
}

// TryFinally guarantees compensation once m finishes stepping.
//
// compensation runs exactly once, after m completes or fails, before the
// result or error surfaces. A failure is re-raised to the enclosing
// handler or driver after compensation; an error raised by compensation
// itself dominates any in-flight result, per try/finally semantics.
func TryFinally[A any](m Eventually[A], compensation func()) Eventually[A] {
	return Bind(Catch(m), func(o Outcome[A]) Eventually[A] {
		compensation()
		v, err := o.Get()
		if err != nil {
			panic(err)
		}
		return Result(v)
	})
}

// While binds body as long as pred holds.
// pred is re-evaluated fresh before each iteration's body runs; the loop
// completes with Unit once pred reports false. Each iteration costs the
// driver at least one step.
func While(pred func() bool, body func() Eventually[Unit]) Eventually[Unit] {
	return Delay(func() Eventually[Unit] {
		if !pred() {
			return Result(Unit{})
		}
		return Bind(body(), func(Unit) Eventually[Unit] {
			return While(pred, body)
		})
	})
}

// For binds body once per element of seq, in order.
//
// The sequence is pulled lazily: nothing is consumed until the first step.
// The pull iterator's stop hook runs exactly once when the loop finishes,
// normally or through a body failure.
func For[T any](seq iter.Seq[T], body func(T) Eventually[Unit]) Eventually[Unit] {
	return Delay(func() Eventually[Unit] {
		next, stop := iter.Pull(seq)
		var cur T
		pred := func() bool {
			var ok bool
			cur, ok = next()
			return ok
		}
		loop := While(pred, func() Eventually[Unit] { return body(cur) })
		return TryFinally(loop, stop)
	})
}

// Using scopes resource to the computation produced by f.
//
// The resource is closed exactly once, after f's computation finishes
// stepping — also when it fails, before the error surfaces. A non-nil
// Close error is not suppressed; it is raised and dominates the in-flight
// result.
//
// Disposal is guaranteed only for computations driven until the scope
// completes: a driver that abandons stepping drops the pending
// compensation with the continuation.
func Using[R io.Closer, A any](resource R, f func(R) Eventually[A]) Eventually[A] {
	body := Delay(func() Eventually[A] { return f(resource) })
	return TryFinally(body, func() {
		if err := resource.Close(); err != nil {
			panic(err)
		}
	})
}
