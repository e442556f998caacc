// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cexp

// Option represents presence or absence of a value of type A.
// Absence is a first-class result, never an error.
type Option[A any] struct {
	value A
	some  bool
}

// Some creates an Option holding v.
func Some[A any](v A) Option[A] {
	return Option[A]{value: v, some: true}
}

// None creates an absent Option.
func None[A any]() Option[A] {
	return Option[A]{}
}

// IsSome reports whether the Option holds a value.
func (o Option[A]) IsSome() bool { return o.some }

// IsNone reports whether the Option is absent.
func (o Option[A]) IsNone() bool { return !o.some }

// Get returns the value and true, or zero and false.
func (o Option[A]) Get() (A, bool) {
	return o.value, o.some
}

// OrElse returns the contained value, or fallback when absent.
func (o Option[A]) OrElse(fallback A) A {
	if !o.some {
		return fallback
	}
	return o.value
}

// MatchOption pattern matches on the Option, calling onSome or onNone.
func MatchOption[A, T any](o Option[A], onSome func(A) T, onNone func() T) T {
	if o.some {
		return onSome(o.value)
	}
	return onNone()
}

// BindOption sequences two optional computations.
// Absence short-circuits: f is not invoked when o is None. All evaluation
// is eager, in call order — this monad is the ordering baseline the
// delayed variant is contrasted against.
func BindOption[A, B any](o Option[A], f func(A) Option[B]) Option[B] {
	if !o.some {
		return None[B]()
	}
	return f(o.value)
}

// ThenOption sequences o before next, discarding o's value.
func ThenOption[A, B any](o Option[A], next Option[B]) Option[B] {
	if !o.some {
		return None[B]()
	}
	return next
}

// MapOption applies a pure function to the contained value.
func MapOption[A, B any](o Option[A], f func(A) B) Option[B] {
	if !o.some {
		return None[B]()
	}
	return Some(f(o.value))
}

// OptionBuilder is the eager Option builder for [Build].
//
// It carries no Delay capability: block statements execute immediately in
// declaration order. Zero is None, and Combine short-circuits on None so
// an if-without-else yields absence.
type OptionBuilder struct{}

// Bind implements Builder.
func (OptionBuilder) Bind(m Option[Erased], f func(Erased) Option[Erased]) Option[Erased] {
	return BindOption(m, f)
}

// Return implements Builder.
func (OptionBuilder) Return(v Erased) Option[Erased] {
	return Some(v)
}

// ReturnFrom implements Builder.
func (OptionBuilder) ReturnFrom(m Option[Erased]) Option[Erased] {
	return m
}

// Zero implements Zeroer.
func (OptionBuilder) Zero() Option[Erased] {
	return None[Erased]()
}

// Combine implements Combiner. Absence annihilates: rest is not evaluated
// when first is None.
func (OptionBuilder) Combine(first Option[Erased], rest func() Option[Erased]) Option[Erased] {
	if first.IsNone() {
		return None[Erased]()
	}
	return rest()
}
