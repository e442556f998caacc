// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cexp

// Delayed wraps an Option computation behind a suspension thunk.
//
// Constructing a Delayed computation has zero observable side effects;
// every effect inside it runs when [RunDelayed] forces the thunk, in
// left-to-right declaration order, exactly once per run. Results are not
// memoized: forcing twice re-runs the effects.
type Delayed[A any] func() Option[A]

// ReturnDelayed lifts a value into a delayed computation.
func ReturnDelayed[A any](v A) Delayed[A] {
	return func() Option[A] { return Some(v) }
}

// ZeroDelayed is the delayed absent computation.
func ZeroDelayed[A any]() Delayed[A] {
	return func() Option[A] { return None[A]() }
}

// DelayOption stores f without invoking it.
// f itself runs only when the result is forced.
func DelayOption[A any](f func() Delayed[A]) Delayed[A] {
	return func() Option[A] { return f()() }
}

// BindDelayed sequences two delayed computations inside the thunk.
// Nothing runs until the outer computation is forced; absence of the
// first computation short-circuits without invoking f.
func BindDelayed[A, B any](d Delayed[A], f func(A) Delayed[B]) Delayed[B] {
	return func() Option[B] {
		v, ok := d().Get()
		if !ok {
			return None[B]()
		}
		return f(v)()
	}
}

// ThenDelayed sequences d before next, discarding d's value.
// Absence of d short-circuits without forcing next.
func ThenDelayed[A, B any](d Delayed[A], next Delayed[B]) Delayed[B] {
	return func() Option[B] {
		if d().IsNone() {
			return None[B]()
		}
		return next()
	}
}

// RunDelayed forces the computation now and returns its Option result.
// Each call re-invokes the thunk.
func RunDelayed[A any](d Delayed[A]) Option[A] {
	return d()
}

// DelayedBuilder is the delayed Option builder for [Build].
//
// Unlike [OptionBuilder] it is a Delayer, so Build wraps the whole block
// body in a thunk: declaration produces no effects, and every effect runs
// on each RunDelayed of the built value. There is no Run hook — the built
// computation stays cold until the caller forces it.
type DelayedBuilder struct{}

// Bind implements Builder.
func (DelayedBuilder) Bind(m Delayed[Erased], f func(Erased) Delayed[Erased]) Delayed[Erased] {
	return BindDelayed(m, f)
}

// Return implements Builder.
func (DelayedBuilder) Return(v Erased) Delayed[Erased] {
	return ReturnDelayed(v)
}

// ReturnFrom implements Builder.
func (DelayedBuilder) ReturnFrom(m Delayed[Erased]) Delayed[Erased] {
	return m
}

// Delay implements Delayer.
func (DelayedBuilder) Delay(f func() Delayed[Erased]) Delayed[Erased] {
	return DelayOption(f)
}

// Zero implements Zeroer.
func (DelayedBuilder) Zero() Delayed[Erased] {
	return ZeroDelayed[Erased]()
}

// Combine implements Combiner, inside the thunk.
func (DelayedBuilder) Combine(first Delayed[Erased], rest func() Delayed[Erased]) Delayed[Erased] {
	return func() Option[Erased] {
		if first().IsNone() {
			return None[Erased]()
		}
		return rest()()
	}
}
