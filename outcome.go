// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cexp

import "fmt"

// Outcome represents a step result that is either Ok (success) or
// Failure (a captured step error).
//
// Outcome values are produced transiently by [Catch] and consumed
// immediately by [TryWith] and [TryFinally]; they are never stored
// long-term inside a computation.
type Outcome[A any] struct {
	value A
	err   error
}

// Ok creates a successful outcome.
func Ok[A any](v A) Outcome[A] {
	return Outcome[A]{value: v}
}

// Failure creates a failed outcome carrying err.
func Failure[A any](err error) Outcome[A] {
	return Outcome[A]{err: err}
}

// IsOk reports whether this outcome is a success.
func (o Outcome[A]) IsOk() bool { return o.err == nil }

// IsFailure reports whether this outcome carries an error.
func (o Outcome[A]) IsFailure() bool { return o.err != nil }

// Get returns the value and the captured error.
// The value is meaningful only when the error is nil.
func (o Outcome[A]) Get() (A, error) { return o.value, o.err }

// MatchOutcome pattern matches on the outcome, calling onOk or onFailure.
func MatchOutcome[A, T any](o Outcome[A], onOk func(A) T, onFailure func(error) T) T {
	if o.err != nil {
		return onFailure(o.err)
	}
	return onOk(o.value)
}

// PanicError wraps a recovered panic value that is not itself an error.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("cexp: panic: %v", e.Value)
}

// asError normalizes a recovered panic value to an error.
func asError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &PanicError{Value: r}
}

// Catch lifts step failures into data.
//
// Each step of the returned computation advances m by exactly one step.
// An error raised during that step is captured as Failure instead of
// propagating out of Step; completion is reported as Ok. Capture is
// per-step, preserving the one-suspension-per-Step structure — there is
// no single recover wrapped around the whole chain.
func Catch[A any](m Eventually[A]) Eventually[Outcome[A]] {
	if m.Done() {
		return Result(Ok(m.value))
	}
	return Delay(func() (out Eventually[Outcome[A]]) {
		defer func() {
			if r := recover(); r != nil {
				out = Result(Failure[A](asError(r)))
			}
		}()
		next := Step(m)
		if next.Done() {
			return Result(Ok(next.value))
		}
		return Catch(next)
	})
}
