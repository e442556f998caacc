// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cexp

import (
	"io"
	"iter"
)

// Builder dispatch: structural rewriting of block descriptions into
// combinator calls on a target monad.
//
// A block is authored once against the node constructors below and
// materialized against any builder via [Build]. [Builder] is the minimal
// capability every monad must provide; the remaining operations are
// optional capabilities discovered by structural type assertion at
// dispatch time, mirroring how handler dispatch discovers operation
// support. A block using an operation its builder lacks panics with
// "cexp: builder does not support <op>".
//
// Values crossing statement boundaries are type-erased; blocks recover
// concrete types via assertions, like the frame pipeline does.

// Builder is the minimal monad capability: bind and the two returns.
type Builder[M any] interface {
	Bind(m M, f func(Erased) M) M
	Return(v Erased) M
	ReturnFrom(m M) M
}

// Delayer is the capability of suspending a block body behind a thunk.
// Build wraps the entire rewritten body in Delay before any of its
// effects run, so for Delayer monads declaration order is not execution
// order. Builders without Delay execute eagerly in declaration order.
type Delayer[M any] interface {
	Delay(f func() M) M
}

// Runner is the capability of post-processing the built computation.
// When present, Build applies Run to its result last.
type Runner[M any] interface {
	Run(m M) M
}

// Zeroer is the capability of producing an empty block result.
type Zeroer[M any] interface {
	Zero() M
}

// Combiner is the capability of sequencing a statement before the rest of
// a block. rest is passed unevaluated; eager builders may force it
// immediately, short-circuiting builders may skip it.
type Combiner[M any] interface {
	Combine(first M, rest func() M) M
}

// Excepter is the capability of exception handling. Bodies are passed as
// thunks so protection covers their construction as well.
type Excepter[M any] interface {
	TryWith(body func() M, handler func(error) M) M
	TryFinally(body func() M, compensation func()) M
}

// Looper is the capability of while and for loops.
type Looper[M any] interface {
	While(pred func() bool, body func() M) M
	For(seq iter.Seq[Erased], body func(Erased) M) M
}

// Scoper is the capability of scoped-resource binding.
type Scoper[M any] interface {
	Using(resource io.Closer, body func(io.Closer) M) M
}

// Node is a statement of a block description.
// Nodes carry structure only; they hold no runtime state and run nothing
// until dispatched against a builder.
type Node[M any] interface {
	node() // unexported marker method
}

type letNode[M any] struct {
	src  func() M
	then func(Erased) Node[M]
}

func (*letNode[M]) node() {}

type returnNode[M any] struct {
	value Erased
}

func (*returnNode[M]) node() {}

type returnFromNode[M any] struct {
	src func() M
}

func (*returnFromNode[M]) node() {}

type zeroNode[M any] struct{}

func (*zeroNode[M]) node() {}

type seqNode[M any] struct {
	first Node[M]
	rest  Node[M]
}

func (*seqNode[M]) node() {}

type ifNode[M any] struct {
	cond func() bool
	then Node[M]
	els  Node[M] // nil means Zero
}

func (*ifNode[M]) node() {}

type whileNode[M any] struct {
	pred func() bool
	body Node[M]
}

func (*whileNode[M]) node() {}

type forNode[M any] struct {
	seq  iter.Seq[Erased]
	body func(Erased) Node[M]
}

func (*forNode[M]) node() {}

type tryWithNode[M any] struct {
	body    Node[M]
	handler func(error) Node[M]
}

func (*tryWithNode[M]) node() {}

type tryFinallyNode[M any] struct {
	body         Node[M]
	compensation func()
}

func (*tryFinallyNode[M]) node() {}

type useNode[M any] struct {
	acquire func() io.Closer
	then    func(io.Closer) Node[M]
}

func (*useNode[M]) node() {}

// Let sequences src and binds its result into the rest of the block.
// src is a thunk so the source expression is not computed before dispatch
// reaches this statement.
func Let[M any](src func() M, then func(Erased) Node[M]) Node[M] {
	return &letNode[M]{src: src, then: then}
}

// Ret completes the block with the given value.
func Ret[M any](v Erased) Node[M] {
	return &returnNode[M]{value: v}
}

// RetFrom completes the block with an existing computation.
func RetFrom[M any](src func() M) Node[M] {
	return &returnFromNode[M]{src: src}
}

// Empty is the vacuous block, dispatched to the builder's Zero.
func Empty[M any]() Node[M] {
	return &zeroNode[M]{}
}

// Seq runs first for its effect, then continues with rest.
func Seq[M any](first, rest Node[M]) Node[M] {
	return &seqNode[M]{first: first, rest: rest}
}

// If branches on cond. A nil els dispatches to the builder's Zero.
func If[M any](cond func() bool, then, els Node[M]) Node[M] {
	return &ifNode[M]{cond: cond, then: then, els: els}
}

// Loop repeats body while pred holds.
func Loop[M any](pred func() bool, body Node[M]) Node[M] {
	return &whileNode[M]{pred: pred, body: body}
}

// Each runs body once per element of seq.
func Each[M any](seq iter.Seq[Erased], body func(Erased) Node[M]) Node[M] {
	return &forNode[M]{seq: seq, body: body}
}

// Attempt protects body with an error handler.
func Attempt[M any](body Node[M], handler func(error) Node[M]) Node[M] {
	return &tryWithNode[M]{body: body, handler: handler}
}

// Ensure guarantees compensation after body.
func Ensure[M any](body Node[M], compensation func()) Node[M] {
	return &tryFinallyNode[M]{body: body, compensation: compensation}
}

// Scoped acquires a resource and scopes it to the rest of the block.
func Scoped[M any](acquire func() io.Closer, then func(io.Closer) Node[M]) Node[M] {
	return &useNode[M]{acquire: acquire, then: then}
}

// Build materializes a block description in the builder's monad.
//
// When the builder is a Delayer the entire rewritten body is wrapped in
// Delay first, so none of the block's effects run before the computation
// is explicitly driven. When it is a Runner, Run applies last.
func Build[M any](b Builder[M], body Node[M]) M {
	var m M
	if d, ok := b.(Delayer[M]); ok {
		m = d.Delay(func() M { return rewrite(b, body) })
	} else {
		m = rewrite(b, body)
	}
	if r, ok := b.(Runner[M]); ok {
		m = r.Run(m)
	}
	return m
}

// rewrite is the structural desugaring of block nodes into combinator
// calls. It is purely syntax-directed and carries no state of its own.
func rewrite[M any](b Builder[M], n Node[M]) M {
	switch node := n.(type) {
	case *letNode[M]:
		return b.Bind(node.src(), func(v Erased) M {
			return rewrite(b, node.then(v))
		})
	case *returnNode[M]:
		return b.Return(node.value)
	case *returnFromNode[M]:
		return b.ReturnFrom(node.src())
	case *zeroNode[M]:
		return zeroOf(b)
	case *seqNode[M]:
		c, ok := b.(Combiner[M])
		if !ok {
			unsupportedOp("combine")
		}
		return c.Combine(rewrite(b, node.first), func() M {
			return rewrite(b, node.rest)
		})
	case *ifNode[M]:
		if node.cond() {
			return rewrite(b, node.then)
		}
		if node.els != nil {
			return rewrite(b, node.els)
		}
		return zeroOf(b)
	case *whileNode[M]:
		l, ok := b.(Looper[M])
		if !ok {
			unsupportedOp("while")
		}
		return l.While(node.pred, func() M { return rewrite(b, node.body) })
	case *forNode[M]:
		l, ok := b.(Looper[M])
		if !ok {
			unsupportedOp("for")
		}
		return l.For(node.seq, func(v Erased) M { return rewrite(b, node.body(v)) })
	case *tryWithNode[M]:
		e, ok := b.(Excepter[M])
		if !ok {
			unsupportedOp("try/with")
		}
		return e.TryWith(
			func() M { return rewrite(b, node.body) },
			func(err error) M { return rewrite(b, node.handler(err)) },
		)
	case *tryFinallyNode[M]:
		e, ok := b.(Excepter[M])
		if !ok {
			unsupportedOp("try/finally")
		}
		return e.TryFinally(func() M { return rewrite(b, node.body) }, node.compensation)
	case *useNode[M]:
		s, ok := b.(Scoper[M])
		if !ok {
			unsupportedOp("use")
		}
		return s.Using(node.acquire(), func(r io.Closer) M {
			return rewrite(b, node.then(r))
		})
	default:
		panic("cexp: unknown block node")
	}
}

func zeroOf[M any](b Builder[M]) M {
	z, ok := b.(Zeroer[M])
	if !ok {
		unsupportedOp("zero")
	}
	return z.Zero()
}

// unsupportedOp panics with a descriptive message for missing builder
// capabilities. Extracted as a noinline function so that rewrite remains
// inlineable.
//
//go:noinline
func unsupportedOp(op string) {
	panic("cexp: builder does not support " + op)
}

// EventuallyBuilder is the full-capability builder over step-resumable
// computations. Every block effect lands behind a suspension frame, so a
// built block runs nothing until driven by [Step].
type EventuallyBuilder struct{}

// Bind implements Builder.
func (EventuallyBuilder) Bind(m Eventually[Erased], f func(Erased) Eventually[Erased]) Eventually[Erased] {
	return Bind(m, f)
}

// Return implements Builder.
func (EventuallyBuilder) Return(v Erased) Eventually[Erased] {
	return Result(v)
}

// ReturnFrom implements Builder.
func (EventuallyBuilder) ReturnFrom(m Eventually[Erased]) Eventually[Erased] {
	return m
}

// Delay implements Delayer.
func (EventuallyBuilder) Delay(f func() Eventually[Erased]) Eventually[Erased] {
	return Delay(f)
}

// Zero implements Zeroer.
func (EventuallyBuilder) Zero() Eventually[Erased] {
	return Result[Erased](Unit{})
}

// Combine implements Combiner.
func (EventuallyBuilder) Combine(first Eventually[Erased], rest func() Eventually[Erased]) Eventually[Erased] {
	return Bind(first, func(Erased) Eventually[Erased] { return rest() })
}

// TryWith implements Excepter. The body thunk is delayed so errors raised
// while constructing it are captured too.
func (EventuallyBuilder) TryWith(body func() Eventually[Erased], handler func(error) Eventually[Erased]) Eventually[Erased] {
	return TryWith(Delay(body), handler)
}

// TryFinally implements Excepter.
func (EventuallyBuilder) TryFinally(body func() Eventually[Erased], compensation func()) Eventually[Erased] {
	return TryFinally(Delay(body), compensation)
}

// While implements Looper.
func (EventuallyBuilder) While(pred func() bool, body func() Eventually[Erased]) Eventually[Erased] {
	return liftUnit(While(pred, func() Eventually[Unit] { return discardResult(body()) }))
}

// For implements Looper.
func (EventuallyBuilder) For(seq iter.Seq[Erased], body func(Erased) Eventually[Erased]) Eventually[Erased] {
	return liftUnit(For(seq, func(v Erased) Eventually[Unit] { return discardResult(body(v)) }))
}

// Using implements Scoper.
func (EventuallyBuilder) Using(resource io.Closer, body func(io.Closer) Eventually[Erased]) Eventually[Erased] {
	return Using(resource, body)
}

// discardResult adapts an erased statement computation to Unit.
func discardResult(m Eventually[Erased]) Eventually[Unit] {
	return Map(m, func(Erased) Unit { return Unit{} })
}

// liftUnit re-erases a Unit computation for the block pipeline.
func liftUnit(m Eventually[Unit]) Eventually[Erased] {
	return Map(m, func(u Unit) Erased { return u })
}
