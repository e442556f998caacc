// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cexp_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/cexp"
)

func TestResultIsDone(t *testing.T) {
	m := cexp.Result(42)
	if !m.Done() {
		t.Fatal("expected Done")
	}
	if m.Value() != 42 {
		t.Fatalf("got %d, want 42", m.Value())
	}
}

func TestStepIdempotentAtDone(t *testing.T) {
	m := cexp.Result(7)
	s := cexp.Step(m)
	if !s.Done() || s.Value() != 7 {
		t.Fatalf("stepping Done changed state: done=%v value=%d", s.Done(), s.Value())
	}
}

func TestDelayDefersWork(t *testing.T) {
	calls := 0
	m := cexp.Delay(func() cexp.Eventually[int] {
		calls++
		return cexp.Result(1)
	})
	if m.Done() {
		t.Fatal("expected suspended state")
	}
	if calls != 0 {
		t.Fatal("thunk ran at construction")
	}

	m = cexp.Step(m)
	if calls != 1 {
		t.Fatalf("thunk ran %d times, want 1", calls)
	}
	if !m.Done() || m.Value() != 1 {
		t.Fatalf("got done=%v value=%d, want Done(1)", m.Done(), m.Value())
	}
}

func TestBindOnDoneAppliesImmediately(t *testing.T) {
	m := cexp.Bind(cexp.Result(2), func(x int) cexp.Eventually[int] {
		return cexp.Result(x * 3)
	})
	if !m.Done() || m.Value() != 6 {
		t.Fatalf("got done=%v value=%d, want Done(6)", m.Done(), m.Value())
	}
}

func TestBindOnSuspendedDefersFunction(t *testing.T) {
	called := false
	m := cexp.Bind(
		cexp.Delay(func() cexp.Eventually[int] { return cexp.Result(10) }),
		func(x int) cexp.Eventually[int] {
			called = true
			return cexp.Result(x + 1)
		},
	)
	if called {
		t.Fatal("bind function ran at construction")
	}
	if m.Done() {
		t.Fatal("expected suspended state")
	}

	m = cexp.Step(m)
	if !called {
		t.Fatal("bind function did not run during the step")
	}
	if !m.Done() || m.Value() != 11 {
		t.Fatalf("got done=%v value=%d, want Done(11)", m.Done(), m.Value())
	}
}

func TestMapTransformsResult(t *testing.T) {
	m := cexp.Map(
		cexp.Delay(func() cexp.Eventually[int] { return cexp.Result(21) }),
		func(x int) int { return x * 2 },
	)
	if got := cexp.Run(m); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestThenDiscardsFirstResult(t *testing.T) {
	m := cexp.Then(
		cexp.Delay(func() cexp.Eventually[int] { return cexp.Result(1) }),
		cexp.Result("second"),
	)
	if got := cexp.Run(m); got != "second" {
		t.Fatalf("got %q, want %q", got, "second")
	}
}

// Composing many binds before any stepping occurs must not grow the call
// stack when the chain finally runs.
func TestDeepBindChain(t *testing.T) {
	const depth = 100000
	m := cexp.Delay(func() cexp.Eventually[int] { return cexp.Result(0) })
	for i := 0; i < depth; i++ {
		m = cexp.Bind(m, func(x int) cexp.Eventually[int] {
			return cexp.Result(x + 1)
		})
	}
	if got := cexp.Run(m); got != depth {
		t.Fatalf("got %d, want %d", got, depth)
	}
}

func TestStepConsumesOneSuspensionPerCall(t *testing.T) {
	m := cexp.Delay(func() cexp.Eventually[int] {
		return cexp.Delay(func() cexp.Eventually[int] {
			return cexp.Delay(func() cexp.Eventually[int] {
				return cexp.Result(3)
			})
		})
	})
	steps := 0
	for !m.Done() {
		m = cexp.Step(m)
		steps++
	}
	if steps != 3 {
		t.Fatalf("took %d steps, want 3", steps)
	}
	if m.Value() != 3 {
		t.Fatalf("got %d, want 3", m.Value())
	}
}

func TestUncaughtErrorEscapesStep(t *testing.T) {
	boom := errors.New("boom")
	m := cexp.Bind(
		cexp.Delay(func() cexp.Eventually[int] { return cexp.Result(1) }),
		func(int) cexp.Eventually[int] { return cexp.Fail[int](boom) },
	)

	// First step succeeds: it runs the delay thunk and the bind, leaving
	// the failing suspension pending.
	m = cexp.Step(m)
	if m.Done() {
		t.Fatal("expected suspended state before the failing step")
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected the error to escape Step")
		}
		if r != boom {
			t.Fatalf("got %v, want %v", r, boom)
		}
	}()
	cexp.Step(m)
}

func TestEventuallyMonadLaws(t *testing.T) {
	f := func(x int) cexp.Eventually[int] {
		return cexp.Delay(func() cexp.Eventually[int] { return cexp.Result(x + 1) })
	}
	g := func(x int) cexp.Eventually[int] {
		return cexp.Delay(func() cexp.Eventually[int] { return cexp.Result(x * 2) })
	}

	// Left identity: Bind(Result(x), f) == f(x)
	if got := cexp.Run(cexp.Bind(cexp.Result(4), f)); got != cexp.Run(f(4)) {
		t.Fatal("left identity violated")
	}
	// Right identity: Bind(m, Result) == m
	m := f(10)
	if got := cexp.Run(cexp.Bind(m, cexp.Result[int])); got != cexp.Run(m) {
		t.Fatal("right identity violated")
	}
	// Associativity.
	lhs := cexp.Run(cexp.Bind(cexp.Bind(f(1), f), g))
	rhs := cexp.Run(cexp.Bind(f(1), func(v int) cexp.Eventually[int] {
		return cexp.Bind(f(v), g)
	}))
	if lhs != rhs {
		t.Fatalf("associativity violated: %d != %d", lhs, rhs)
	}
}
