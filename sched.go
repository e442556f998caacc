// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cexp

import (
	"io"
	"iter"
	"sync"
	"sync/atomic"
)

// Cooperative task scheduling over step-resumable computations.
//
// A Task is a cold computation: composing tasks runs nothing, and a
// spawned task advances only when its scheduler ticks. The scheduler is
// single-threaded by construction — suspension points are the boundaries
// between continuation frames, not OS-level yields, and one Tick advances
// every pending task by one step in spawn order.

// Task is a cold, composable computation producing a value of type A.
type Task[A any] struct {
	comp Eventually[A]
}

// TaskOf lifts a pure value into a completed task.
func TaskOf[A any](v A) Task[A] {
	return Task[A]{comp: Result(v)}
}

// TaskFrom wraps an existing step-resumable computation as a task.
func TaskFrom[A any](m Eventually[A]) Task[A] {
	return Task[A]{comp: m}
}

// DelayTask defers construction of a task until it is first stepped.
func DelayTask[A any](f func() Task[A]) Task[A] {
	return Task[A]{comp: Delay(func() Eventually[A] { return f().comp })}
}

// BindTask sequences two tasks.
func BindTask[A, B any](t Task[A], f func(A) Task[B]) Task[B] {
	return Task[B]{comp: Bind(t.comp, func(v A) Eventually[B] { return f(v).comp })}
}

// MapTask applies a pure function to the task result.
func MapTask[A, B any](t Task[A], f func(A) B) Task[B] {
	return Task[B]{comp: Map(t.comp, f)}
}

// Eventually returns the underlying step-resumable computation.
func (t Task[A]) Eventually() Eventually[A] {
	return t.comp
}

// Handle is the one-shot observation handle of a spawned task.
type Handle[A any] struct {
	cancelled atomic.Uintptr
	finished  bool
	value     A
	err       error
}

// Done reports whether the task has finished.
func (h *Handle[A]) Done() bool { return h.finished }

// Result returns the task result, or the error captured from a failing
// step. Meaningful only once Done reports true.
func (h *Handle[A]) Result() (A, error) { return h.value, h.err }

// Cancel drops the task from its scheduler before its next step.
// Cancellation is one-shot; the return value reports whether this call
// performed it. A cancelled task's pending compensations never run — the
// continuation is simply dropped.
func (h *Handle[A]) Cancel() bool {
	if h.finished {
		return false
	}
	return h.cancelled.Add(1) == 1
}

// taskRecord is the scheduler-side state of a spawned task.
// Type-erased so records can be pooled across result types.
type taskRecord struct {
	comp    Eventually[Outcome[Erased]]
	finish  func(Outcome[Erased])
	dropped func() bool
}

var taskRecordPool = sync.Pool{
	New: func() any { return new(taskRecord) },
}

func acquireTaskRecord() *taskRecord {
	return taskRecordPool.Get().(*taskRecord)
}

func releaseTaskRecord(r *taskRecord) {
	r.comp = Eventually[Outcome[Erased]]{}
	r.finish = nil
	r.dropped = nil
	taskRecordPool.Put(r)
}

// Scheduler drives spawned tasks cooperatively, one step per task per
// tick, round-robin in spawn order. Not safe for concurrent use.
type Scheduler struct {
	pending []*taskRecord
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Spawn enqueues a task and returns its observation handle.
// The computation is catch-wrapped: a failing step completes the task
// with the captured error in its handle instead of escaping Tick.
func Spawn[A any](s *Scheduler, t Task[A]) *Handle[A] {
	h := &Handle[A]{}
	r := acquireTaskRecord()
	r.comp = Catch(erase(t.comp))
	r.finish = func(o Outcome[Erased]) {
		v, err := o.Get()
		h.err = err
		if err == nil && v != nil {
			h.value = v.(A)
		}
		h.finished = true
	}
	r.dropped = func() bool { return h.cancelled.Load() != 0 }
	s.pending = append(s.pending, r)
	return h
}

// Tick advances every pending task by exactly one step.
// Finished and cancelled tasks are removed; their records return to the
// pool. Reports whether pending tasks remain.
func (s *Scheduler) Tick() bool {
	if len(s.pending) == 0 {
		return false
	}
	live := s.pending[:0]
	for _, r := range s.pending {
		if r.dropped() {
			releaseTaskRecord(r)
			continue
		}
		r.comp = Step(r.comp)
		if r.comp.Done() {
			r.finish(r.comp.Value())
			releaseTaskRecord(r)
			continue
		}
		live = append(live, r)
	}
	for i := len(live); i < len(s.pending); i++ {
		s.pending[i] = nil
	}
	s.pending = live
	return len(s.pending) > 0
}

// Run ticks until no pending tasks remain.
func (s *Scheduler) Run() {
	for s.Tick() {
	}
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.pending)
}

// TaskBuilder is the full-capability builder over cold tasks.
// It delegates to the step-resumable combinators, so a built block is a
// cold task that runs only under a scheduler (or an explicit Run).
type TaskBuilder struct{}

// Bind implements Builder.
func (TaskBuilder) Bind(m Task[Erased], f func(Erased) Task[Erased]) Task[Erased] {
	return BindTask(m, f)
}

// Return implements Builder.
func (TaskBuilder) Return(v Erased) Task[Erased] {
	return TaskOf(v)
}

// ReturnFrom implements Builder.
func (TaskBuilder) ReturnFrom(m Task[Erased]) Task[Erased] {
	return m
}

// Delay implements Delayer.
func (TaskBuilder) Delay(f func() Task[Erased]) Task[Erased] {
	return DelayTask(f)
}

// Zero implements Zeroer.
func (TaskBuilder) Zero() Task[Erased] {
	return TaskOf[Erased](Unit{})
}

// Combine implements Combiner.
func (TaskBuilder) Combine(first Task[Erased], rest func() Task[Erased]) Task[Erased] {
	return BindTask(first, func(Erased) Task[Erased] { return rest() })
}

// TryWith implements Excepter.
func (TaskBuilder) TryWith(body func() Task[Erased], handler func(error) Task[Erased]) Task[Erased] {
	return TaskFrom(TryWith(
		Delay(func() Eventually[Erased] { return body().comp }),
		func(err error) Eventually[Erased] { return handler(err).comp },
	))
}

// TryFinally implements Excepter.
func (TaskBuilder) TryFinally(body func() Task[Erased], compensation func()) Task[Erased] {
	return TaskFrom(TryFinally(
		Delay(func() Eventually[Erased] { return body().comp }),
		compensation,
	))
}

// While implements Looper.
func (TaskBuilder) While(pred func() bool, body func() Task[Erased]) Task[Erased] {
	return TaskFrom(liftUnit(While(pred, func() Eventually[Unit] {
		return discardResult(body().comp)
	})))
}

// For implements Looper.
func (TaskBuilder) For(seq iter.Seq[Erased], body func(Erased) Task[Erased]) Task[Erased] {
	return TaskFrom(liftUnit(For(seq, func(v Erased) Eventually[Unit] {
		return discardResult(body(v).comp)
	})))
}

// Using implements Scoper.
func (TaskBuilder) Using(resource io.Closer, body func(io.Closer) Task[Erased]) Task[Erased] {
	return TaskFrom(Using(resource, func(r io.Closer) Eventually[Erased] {
		return body(r).comp
	}))
}
