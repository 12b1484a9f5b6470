// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package feed provides an incremental, effect-polymorphic push-stream protocol:
// enumerators push typed signals to iteratees one at a time, iteratees may
// terminate early and return unconsumed input, and the whole exchange is
// parameterized over an ambient effect so it runs under synchronous, deferred,
// or stepped execution without protocol changes.
//
// # Architecture
//
//   - Signals: [Input] is a closed four-variant algebra — Empty (no data right
//     now), Element (one value), Chunk (ordered batch), End (exhausted, absorbing).
//     [FoldWith] is the single dispatch primitive; Empty and End construction
//     never allocates.
//   - Consumers: [Iteratee] is a two-state machine — Done (result + leftover
//     Input) or suspended on a continuation fed the next signal inside the
//     effect. [BindIteratee] hands a finished consumer's leftover to its
//     successor before any new producer input.
//   - Producers: [Enumerator] is a capability that drives any consumer to
//     completion inside the effect, feeding End exactly once at exhaustion.
//     Producers form a monoid ([Zero], [Concat]) and a monad over the element
//     type ([FlatMap]); all combinators are lazy and stop at the first Done.
//   - Effects: the ambient effect is an opaque type parameter F with a
//     [Monad] witness supplying Pure and Bind over [Erased] payloads.
//
// # Combinators
//
//   - Construction: [Zero], [Elements], [Chunked], [Repeat], [Iterate],
//     [LiftEnum], [PerformEnum].
//   - Transformation: [Map], [FlatMap], [Filter], [Collect], [Uniq],
//     [ZipWithIndex], [Grouped], [SplitOn], [Cross], [Reduced], [Concat].
//   - Termination: [Process], [Drain], [DrainTo] with the canonical consumers
//     [CollectAll], [Take], [FoldAll].
//
// # Effect Bindings
//
//   - [Sync]: synchronous identity — effects are the values themselves.
//   - [Lazy]: deferred thunks, forced with [Force].
//   - [Kont]: closure-based [code.hybscloud.com/kont] Cont-world, run with [RunEff].
//   - [KontExpr]: defunctionalized Expr-world frame chains, run with [RunExpr].
//
// The protocol defines no error channel of its own: a failed ambient effect
// (for example a kont error effect raised inside [LiftEnum]) propagates
// outward through the drive loop untouched.
//
// # Sources
//
// [Source] bridges a producing goroutine into the protocol over a bounded
// lock-free SPSC queue ([code.hybscloud.com/lfq]). Push returns
// [code.hybscloud.com/iox.ErrWouldBlock] on backpressure; Poll maps
// "queue momentarily empty" to the Empty signal and "closed and drained" to
// End; [SourceEnum] converts a Source into a blocking enumerator using
// adaptive backoff.
//
// # Example
//
//	src := feed.Map(feed.Elements[feed.Erased](1, 2, 3, 4), func(n int) int { return n * n })
//	out := feed.Drain(feed.Sync{}, src).([]int)
//	// out == []int{1, 4, 9, 16}
package feed
