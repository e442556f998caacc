// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cexp_test

import (
	"testing"

	"code.hybscloud.com/cexp"
)

// BenchmarkStepDelay measures the cost of driving a single suspension.
func BenchmarkStepDelay(b *testing.B) {
	for b.Loop() {
		m := cexp.Delay(func() cexp.Eventually[int] { return cexp.Result(1) })
		_ = cexp.Run(m)
	}
}

// BenchmarkBindChainRun measures composition plus evaluation of a bind chain.
func BenchmarkBindChainRun(b *testing.B) {
	inc := func(x int) cexp.Eventually[int] { return cexp.Result(x + 1) }

	for b.Loop() {
		m := cexp.Delay(func() cexp.Eventually[int] { return cexp.Result(0) })
		for i := 0; i < 10; i++ {
			m = cexp.Bind(m, inc)
		}
		_ = cexp.Run(m)
	}
}

// BenchmarkCatchSuccessPath measures per-step capture on the non-failing path.
func BenchmarkCatchSuccessPath(b *testing.B) {
	for b.Loop() {
		m := cexp.Catch(cexp.Delay(func() cexp.Eventually[int] { return cexp.Result(1) }))
		_ = cexp.Run(m)
	}
}

// BenchmarkSchedulerTick measures spawn-tick-drain of a short task.
func BenchmarkSchedulerTick(b *testing.B) {
	s := cexp.NewScheduler()
	for b.Loop() {
		h := cexp.Spawn(s, cexp.TaskFrom(cexp.Delay(func() cexp.Eventually[int] {
			return cexp.Result(1)
		})))
		s.Run()
		_, _ = h.Result()
	}
}

// BenchmarkOptionBind measures the eager short-circuit path.
func BenchmarkOptionBind(b *testing.B) {
	for b.Loop() {
		_ = cexp.BindOption(cexp.Some(1), func(x int) cexp.Option[int] {
			return cexp.Some(x + 1)
		})
	}
}
