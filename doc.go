// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cexp provides monadic computation builders with a uniform
// dispatch protocol in Go.
//
// The core type [Eventually] represents a computation as an explicit
// resumable state machine: either completed, or suspended on a stored
// continuation that an external driver advances one discrete step at a
// time. Around it, the package defines four reference monads — eager
// [Option], thunk-delayed [Delayed], step-resumable [Eventually], and the
// cold [Task] monad driven by a cooperative [Scheduler] — all pluggable
// into the same block-building dispatch layer.
//
// # Design Philosophy
//
// cexp provides:
//   - A minimal but complete operation set {bind, return, returnFrom,
//     delay, run, zero, combine, tryWith, tryFinally, while, for, using}
//     that a monad may implement partially or fully
//   - Defunctionalized continuation chains with an iterative evaluation
//     loop, so deep compositions step without stack growth
//   - Externally paced execution: the monad never drains itself; the
//     driver decides when each step runs
//
// # Step-Resumable Computations
//
// Construction and observation:
//
//   - [Result]: Completed computation holding a final value
//   - [Delay]: Suspended computation; the thunk runs on the first step
//   - [Fail]: Computation that raises an error when stepped
//   - [Eventually.Done], [Eventually.Value]: Terminal-state observation
//
// Composition:
//
//   - [Bind]: Sequence two computations
//   - [Map]: Apply a pure function to the result
//   - [Then]: Sequence, discarding first result
//
// Driving:
//
//   - [Step]: Advance by exactly one suspension; idempotent at Done
//   - [Run]: Loop Step to completion for non-interactive callers
//
// Stepping a computation that raises without an enclosing handler
// propagates the error out of the driving Step call — at the exact step
// where it occurred, not before and not deferred.
//
// # Exceptions And Cleanup Across Suspension Points
//
// A logical try/finally here can span many Step calls, so cleanup is
// threaded through the continuation chain as data instead of relying on
// host stack unwinding:
//
//   - [Catch]: Capture per-step failures as [Outcome] values
//   - [TryWith]: Replace a failing computation via a handler
//   - [TryFinally]: Compensation exactly once, after stepping completes;
//     failures re-raise after compensation, compensation errors dominate
//   - [While], [For]: Loop constructs; For pulls an [iter.Seq] lazily and
//     runs its stop hook exactly once, also on failure
//   - [Using]: Scope an [io.Closer] to a computation; Close runs exactly
//     once after the scope finishes stepping
//
// Abandonment caveat: a computation the driver stops stepping is simply
// garbage. Pending compensations of an abandoned computation never run.
//
// # Option And Delayed Option
//
// [Option] is the eager short-circuiting baseline: [BindOption] runs in
// call order and absence skips the continuation. [Delayed] wraps the same
// monad behind a thunk: construction has zero observable effects, and
// every effect runs once per [RunDelayed], left to right.
//
// # Builder Dispatch
//
// Blocks are authored once with [Let], [Ret], [RetFrom], [Seq], [If],
// [Loop], [Each], [Attempt], [Ensure], and [Scoped], then materialized
// against a builder via [Build]. [Builder] carries the mandatory
// operations; [Delayer], [Runner], [Zeroer], [Combiner], [Excepter],
// [Looper], and [Scoper] are optional capabilities discovered by
// structural type assertion at dispatch time. Build wraps a Delayer's
// whole body in Delay before any effect runs; builders without Delay
// execute in declaration order.
//
// Reference builders: [OptionBuilder], [DelayedBuilder],
// [EventuallyBuilder], [TaskBuilder].
//
// # Cooperative Scheduling
//
// [Task] is a cold computation; [Spawn] enqueues it on a [Scheduler] and
// returns a [Handle]. Each [Scheduler.Tick] advances every pending task
// by one step, round-robin in spawn order; [Scheduler.Run] drains. Spawned
// computations are catch-wrapped, so a failing task completes its handle
// with the error instead of panicking out of Tick. [Handle.Cancel] is
// one-shot and drops the task without running pending compensations.
//
// # Example
//
//	comp := cexp.Bind(
//		cexp.Delay(func() cexp.Eventually[int] { return cexp.Result(21) }),
//		func(x int) cexp.Eventually[int] {
//			return cexp.Result(x * 2)
//		},
//	)
//
//	for !comp.Done() {
//		comp = cexp.Step(comp) // one suspension per call
//	}
//	// comp.Value() == 42
package cexp
