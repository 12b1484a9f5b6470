// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package feed

// Enumerator is the producer capability of the push protocol: applied to a
// consumer it produces, inside the effect, the consumer state after full
// consumption of this producer's elements — or an earlier Done state if the
// consumer finished first. An enumerator feeds End exactly once at its own
// exhaustion; composition ([Concat], [FlatMap]) interposes an end guard so a
// composite still delivers a single End overall.
//
// Enumerators never materialize elements up front, so infinite producers
// ([Repeat], [Iterate]) compose with bounded consumers. Producers observe
// Done after every unit of work and perform no further effectful work once
// the consumer is Done.
type Enumerator[F, E any] func(m Monad[F], s Stepper[F, E]) F

// Zero returns the empty producer, the identity of [Concat]: it feeds
// nothing but End immediately.
func Zero[F, E any]() Enumerator[F, E] {
	return func(m Monad[F], s Stepper[F, E]) F {
		if s.IsDone() {
			return m.Pure(s)
		}
		return s.Feed(End[E]())
	}
}

// Elements returns a producer feeding the given values as one Element
// signal each, in order, then End.
func Elements[F, E any](es ...E) Enumerator[F, E] {
	return func(m Monad[F], s Stepper[F, E]) F {
		return feedElements(m, s, es)
	}
}

func feedElements[F, E any](m Monad[F], s Stepper[F, E], es []E) F {
	if s.IsDone() {
		return m.Pure(s)
	}
	if len(es) == 0 {
		return s.Feed(End[E]())
	}
	return m.Bind(s.Feed(El(es[0])), func(v Erased) F {
		return feedElements(m, v.(Stepper[F, E]), es[1:])
	})
}

// Chunked returns a producer feeding the given values as Chunk signals of at
// most size elements, in order, then End. Chunks are subslices of es; the
// caller must not mutate es while the producer is live.
// size < 1 is a contract violation.
func Chunked[F, E any](es []E, size int) Enumerator[F, E] {
	if size < 1 {
		panic("feed: chunked requires size > 0")
	}
	return func(m Monad[F], s Stepper[F, E]) F {
		return feedChunks(m, s, es, size)
	}
}

func feedChunks[F, E any](m Monad[F], s Stepper[F, E], es []E, size int) F {
	if s.IsDone() {
		return m.Pure(s)
	}
	if len(es) == 0 {
		return s.Feed(End[E]())
	}
	n := min(size, len(es))
	return m.Bind(s.Feed(Chunk(es[:n])), func(v Erased) F {
		return feedChunks(m, v.(Stepper[F, E]), es[n:], size)
	})
}

// endGuard wraps a consumer to swallow one End signal, so the left operand
// of a concatenation terminates without ending the composite stream.
// Like all adapters it dissolves on Done: a Done state surfacing from the
// guard is the inner consumer itself.
type endGuard[F, E any] struct {
	m     Monad[F]
	inner Stepper[F, E]
}

func (g endGuard[F, E]) IsDone() bool { return g.inner.IsDone() }

func (g endGuard[F, E]) Feed(in Input[E]) F {
	if in.IsEnd() {
		return g.m.Pure(g)
	}
	return g.m.Bind(g.inner.Feed(in), func(v Erased) F {
		next := v.(Stepper[F, E])
		if next.IsDone() {
			return g.m.Pure(next)
		}
		return g.m.Pure(endGuard[F, E]{m: g.m, inner: next})
	})
}

// Concat is the associative monoid operation on producers: it feeds all of
// a's elements and — only if a's run did not finish the consumer — continues
// with all of b's elements, then End.
func Concat[F, E any](a, b Enumerator[F, E]) Enumerator[F, E] {
	return func(m Monad[F], s Stepper[F, E]) F {
		if s.IsDone() {
			return m.Pure(s)
		}
		return m.Bind(a(m, endGuard[F, E]{m: m, inner: s}), func(v Erased) F {
			st := v.(Stepper[F, E])
			if st.IsDone() {
				return m.Pure(st)
			}
			return b(m, st.(endGuard[F, E]).inner)
		})
	}
}

// Repeat returns the infinite producer re-emitting the same value. It never
// feeds End; termination comes solely from the consumer becoming Done.
func Repeat[F, E any](e E) Enumerator[F, E] {
	return func(m Monad[F], s Stepper[F, E]) F {
		return repeatStep(m, s, e)
	}
}

func repeatStep[F, E any](m Monad[F], s Stepper[F, E], e E) F {
	if s.IsDone() {
		return m.Pure(s)
	}
	return m.Bind(s.Feed(El(e)), func(v Erased) F {
		return repeatStep(m, v.(Stepper[F, E]), e)
	})
}

// Iterate returns the infinite producer emitting seed, f(seed), f(f(seed)),
// and so on. Each successor is computed on demand, never ahead of the
// consumer.
func Iterate[F, E any](seed E, f func(E) E) Enumerator[F, E] {
	return func(m Monad[F], s Stepper[F, E]) F {
		return iterateStep(m, s, seed, f)
	}
}

func iterateStep[F, E any](m Monad[F], s Stepper[F, E], e E, f func(E) E) F {
	if s.IsDone() {
		return m.Pure(s)
	}
	return m.Bind(s.Feed(El(e)), func(v Erased) F {
		return iterateStep(m, v.(Stepper[F, E]), f(e), f)
	})
}

// LiftEnum lifts an effectful value into a one-element producer: driving it
// runs the effect once and feeds its payload as a single Element, then End.
// The effect is not run when the consumer is already Done.
func LiftEnum[F, E any](fv F) Enumerator[F, E] {
	return func(m Monad[F], s Stepper[F, E]) F {
		if s.IsDone() {
			return m.Pure(s)
		}
		return m.Bind(fv, func(v Erased) F {
			return m.Bind(s.Feed(El(v.(E))), func(w Erased) F {
				next := w.(Stepper[F, E])
				if next.IsDone() {
					return m.Pure(next)
				}
				return next.Feed(End[E]())
			})
		})
	}
}

// PerformEnum lifts an effectful action into a zero-element producer: driving
// it runs the effect once for its side effect, then feeds End. Concatenate it
// between producers to sequence effects within a stream. The effect is not
// run when the consumer is already Done.
func PerformEnum[F, E any](fv F) Enumerator[F, E] {
	return func(m Monad[F], s Stepper[F, E]) F {
		if s.IsDone() {
			return m.Pure(s)
		}
		return m.Bind(fv, func(Erased) F {
			return s.Feed(End[E]())
		})
	}
}
