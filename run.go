// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package feed

// Process drives a consumer to completion against a producer and yields the
// held result inside the effect, discarding leftover. The producer delivers
// End exactly once at exhaustion, so the final state must be Done; a consumer
// still suspended after End violates the protocol and panics. An already-Done
// consumer yields its result without running any producer effect.
func Process[F, E, A any](m Monad[F], it Iteratee[F, E, A], src Enumerator[F, E]) F {
	if it.done {
		return m.Pure(it.result)
	}
	return m.Bind(src(m, it), func(v Erased) F {
		fin, ok := v.(Iteratee[F, E, A])
		if !ok || !fin.done {
			panic("feed: diverging iteratee after End")
		}
		return m.Pure(fin.result)
	})
}

// CollectAll returns the canonical consumer accumulating every element into
// a slice, finishing when End arrives.
func CollectAll[F, E any](m Monad[F]) Iteratee[F, E, []E] {
	return collectInto[F, E](m, nil)
}

func collectInto[F, E any](m Monad[F], acc []E) Iteratee[F, E, []E] {
	return Suspend[F, E, []E](func(in Input[E]) F {
		switch {
		case in.IsEnd():
			return m.Pure(Done[F, E](acc, End[E]()))
		case in.IsEmpty():
			return m.Pure(collectInto(m, acc))
		}
		next := acc
		in.Foreach(func(e E) { next = append(next, e) })
		return m.Pure(collectInto(m, next))
	})
}

// Take returns a consumer collecting at most k elements, finishing early
// once it has them. The unconsumed tail of the last Chunk is copied and
// surfaced as leftover, never aliasing a producer buffer. k < 1 finishes
// immediately.
func Take[F, E any](m Monad[F], k int) Iteratee[F, E, []E] {
	if k < 1 {
		return Done[F, E]([]E{}, Empty[E]())
	}
	return takeInto(m, make([]E, 0, k), k)
}

func takeInto[F, E any](m Monad[F], acc []E, k int) Iteratee[F, E, []E] {
	return Suspend[F, E, []E](func(in Input[E]) F {
		switch {
		case in.IsEnd():
			return m.Pure(Done[F, E](acc, End[E]()))
		case in.IsEmpty():
			return m.Pure(takeInto(m, acc, k))
		}
		var rest []E
		in.Foreach(func(e E) {
			if len(acc) < k {
				acc = append(acc, e)
			} else {
				rest = append(rest, e)
			}
		})
		if len(acc) < k {
			return m.Pure(takeInto(m, acc, k))
		}
		return m.Pure(Done[F, E](acc, Chunk(rest).Normalize()))
	})
}

// FoldAll returns a consumer folding every element into seed with f in
// emission order, finishing with the aggregate when End arrives.
func FoldAll[F, E, X any](m Monad[F], seed X, f func(X, E) X) Iteratee[F, E, X] {
	return Suspend[F, E, X](func(in Input[E]) F {
		switch {
		case in.IsEnd():
			return m.Pure(Done[F, E](seed, End[E]()))
		case in.IsEmpty():
			return m.Pure(FoldAll(m, seed, f))
		}
		acc := seed
		in.Foreach(func(e E) { acc = f(acc, e) })
		return m.Pure(FoldAll(m, acc, f))
	})
}

// Drain attaches the canonical collect-all consumer and runs the producer to
// completion, yielding the accumulated slice inside the effect.
func Drain[F, E any](m Monad[F], src Enumerator[F, E]) F {
	return Process(m, CollectAll[F, E](m), src)
}

// DrainTo is Drain accumulating into an existing slice, appending in
// emission order.
func DrainTo[F, E any](m Monad[F], src Enumerator[F, E], buf []E) F {
	return Process(m, collectInto[F](m, buf), src)
}
