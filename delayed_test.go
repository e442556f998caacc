// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cexp_test

import (
	"slices"
	"testing"

	"code.hybscloud.com/cexp"
)

func TestDelayOptionDefersThunk(t *testing.T) {
	runs := 0
	d := cexp.DelayOption(func() cexp.Delayed[int] {
		runs++
		return cexp.ReturnDelayed(5)
	})
	if runs != 0 {
		t.Fatal("thunk ran at construction")
	}

	got := cexp.RunDelayed(d)
	if v, ok := got.Get(); !ok || v != 5 {
		t.Fatalf("got %v, want Some(5)", got)
	}
	if runs != 1 {
		t.Fatalf("thunk ran %d times, want 1", runs)
	}

	// No memoization: a second run re-invokes the thunk.
	cexp.RunDelayed(d)
	if runs != 2 {
		t.Fatalf("thunk ran %d times after second run, want 2", runs)
	}
}

func TestBindDelayedEffectOrder(t *testing.T) {
	var log []string
	source := func(name string, v int) cexp.Delayed[int] {
		return func() cexp.Option[int] {
			log = append(log, name)
			return cexp.Some(v)
		}
	}

	d := cexp.BindDelayed(source("a", 1), func(a int) cexp.Delayed[int] {
		return cexp.BindDelayed(source("b", 2), func(b int) cexp.Delayed[int] {
			return cexp.ReturnDelayed(a + b)
		})
	})
	if len(log) != 0 {
		t.Fatalf("construction produced effects: %v", log)
	}

	got := cexp.RunDelayed(d)
	if v, ok := got.Get(); !ok || v != 3 {
		t.Fatalf("got %v, want Some(3)", got)
	}
	if !slices.Equal(log, []string{"a", "b"}) {
		t.Fatalf("unexpected effect order: %v", log)
	}

	cexp.RunDelayed(d)
	if !slices.Equal(log, []string{"a", "b", "a", "b"}) {
		t.Fatalf("second run did not replay effects in order: %v", log)
	}
}

func TestBindDelayedShortCircuits(t *testing.T) {
	called := false
	d := cexp.BindDelayed(cexp.ZeroDelayed[int](), func(int) cexp.Delayed[int] {
		called = true
		return cexp.ReturnDelayed(1)
	})
	if !cexp.RunDelayed(d).IsNone() {
		t.Fatal("expected None")
	}
	if called {
		t.Fatal("continuation invoked on absent source")
	}
}

func TestThenDelayedShortCircuits(t *testing.T) {
	forced := false
	next := cexp.Delayed[int](func() cexp.Option[int] {
		forced = true
		return cexp.Some(1)
	})
	if !cexp.RunDelayed(cexp.ThenDelayed(cexp.ZeroDelayed[string](), next)).IsNone() {
		t.Fatal("expected None")
	}
	if forced {
		t.Fatal("second computation forced after absence")
	}
	if v, _ := cexp.RunDelayed(cexp.ThenDelayed(cexp.ReturnDelayed("x"), next)).Get(); v != 1 {
		t.Fatalf("got %d, want 1", v)
	}
}
