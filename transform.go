// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package feed

import "code.hybscloud.com/kont"

// Transform combinators wrap the consumer in an adapter stepper that rewrites
// the signals flowing through. Adapters obey two rules: a Done state
// surfacing from an adapter is always the unwrapped inner consumer (adapters
// dissolve on Done),
// and End flushes any buffered state before passing inward. Adapter states
// are fed at most once (affine use), so slice accumulators may be extended
// in place.

// rewrap re-establishes an adapter around the inner consumer's next state,
// or dissolves when the inner consumer finished.
func rewrap[F, X, E any](m Monad[F], fv F, wrap func(Stepper[F, X]) Stepper[F, E]) F {
	return m.Bind(fv, func(v Erased) F {
		next := v.(Stepper[F, X])
		if next.IsDone() {
			return m.Pure(next)
		}
		return m.Pure(wrap(next))
	})
}

// mapStepper rewrites each signal elementwise before feeding inward.
type mapStepper[F, E, X any] struct {
	m     Monad[F]
	f     func(E) X
	inner Stepper[F, X]
}

func (g mapStepper[F, E, X]) IsDone() bool { return g.inner.IsDone() }

func (g mapStepper[F, E, X]) Feed(in Input[E]) F {
	switch {
	case in.IsEnd():
		return g.inner.Feed(End[X]())
	case in.IsEmpty():
		return g.m.Pure(g)
	}
	return rewrap(g.m, g.inner.Feed(MapInput(in, g.f)), func(next Stepper[F, X]) Stepper[F, E] {
		return mapStepper[F, E, X]{m: g.m, f: g.f, inner: next}
	})
}

// Map transforms the producer elementwise, order preserved, without forcing
// any more of the source than the consumer demands.
func Map[F, E, X any](src Enumerator[F, E], f func(E) X) Enumerator[F, X] {
	return func(m Monad[F], s Stepper[F, X]) F {
		if s.IsDone() {
			return m.Pure(s)
		}
		return src(m, mapStepper[F, E, X]{m: m, f: f, inner: s})
	}
}

// filterStepper suppresses elements failing the predicate.
type filterStepper[F, E any] struct {
	m     Monad[F]
	p     func(E) bool
	inner Stepper[F, E]
}

func (g filterStepper[F, E]) IsDone() bool { return g.inner.IsDone() }

func (g filterStepper[F, E]) Feed(in Input[E]) F {
	if in.IsEnd() {
		return g.inner.Feed(in)
	}
	kept := in.Filter(g.p).Normalize()
	if kept.IsEmpty() {
		return g.m.Pure(g)
	}
	return rewrap(g.m, g.inner.Feed(kept), func(next Stepper[F, E]) Stepper[F, E] {
		return filterStepper[F, E]{m: g.m, p: g.p, inner: next}
	})
}

// Filter suppresses elements failing p without altering relative order or
// End timing.
func Filter[F, E any](src Enumerator[F, E], p func(E) bool) Enumerator[F, E] {
	return func(m Monad[F], s Stepper[F, E]) F {
		if s.IsDone() {
			return m.Pure(s)
		}
		return src(m, filterStepper[F, E]{m: m, p: p, inner: s})
	}
}

// collectStepper fuses filter and map through a partial transform.
type collectStepper[F, E, X any] struct {
	m     Monad[F]
	pf    func(E) (X, bool)
	inner Stepper[F, X]
}

func (g collectStepper[F, E, X]) IsDone() bool { return g.inner.IsDone() }

func (g collectStepper[F, E, X]) Feed(in Input[E]) F {
	if in.IsEnd() {
		return g.inner.Feed(End[X]())
	}
	var out []X
	in.Foreach(func(e E) {
		if x, ok := g.pf(e); ok {
			out = append(out, x)
		}
	})
	if len(out) == 0 {
		return g.m.Pure(g)
	}
	return rewrap(g.m, g.inner.Feed(Chunk(out).Normalize()), func(next Stepper[F, X]) Stepper[F, E] {
		return collectStepper[F, E, X]{m: g.m, pf: g.pf, inner: next}
	})
}

// Collect applies a partial transform, skipping elements for which pf
// reports no value. Equivalent to Filter followed by Map, fused.
func Collect[F, E, X any](src Enumerator[F, E], pf func(E) (X, bool)) Enumerator[F, X] {
	return func(m Monad[F], s Stepper[F, X]) F {
		if s.IsDone() {
			return m.Pure(s)
		}
		return src(m, collectStepper[F, E, X]{m: m, pf: pf, inner: s})
	}
}

// uniqStepper suppresses elements equal to their immediate predecessor.
type uniqStepper[F any, E comparable] struct {
	m     Monad[F]
	seen  bool
	last  E
	inner Stepper[F, E]
}

func (g uniqStepper[F, E]) IsDone() bool { return g.inner.IsDone() }

func (g uniqStepper[F, E]) Feed(in Input[E]) F {
	if in.IsEnd() {
		return g.inner.Feed(in)
	}
	seen, last := g.seen, g.last
	var out []E
	in.Foreach(func(e E) {
		if seen && last == e {
			return
		}
		seen, last = true, e
		out = append(out, e)
	})
	if len(out) == 0 {
		return g.m.Pure(g)
	}
	return rewrap(g.m, g.inner.Feed(Chunk(out).Normalize()), func(next Stepper[F, E]) Stepper[F, E] {
		return uniqStepper[F, E]{m: g.m, seen: true, last: last, inner: next}
	})
}

// Uniq removes consecutive duplicate elements only; non-adjacent duplicates
// are retained.
func Uniq[F any, E comparable](src Enumerator[F, E]) Enumerator[F, E] {
	return func(m Monad[F], s Stepper[F, E]) F {
		if s.IsDone() {
			return m.Pure(s)
		}
		return src(m, uniqStepper[F, E]{m: m, inner: s})
	}
}

// indexStepper pairs each element with its 0-based emission index.
type indexStepper[F, E any] struct {
	m     Monad[F]
	next  int
	inner Stepper[F, kont.Pair[E, int]]
}

func (g indexStepper[F, E]) IsDone() bool { return g.inner.IsDone() }

func (g indexStepper[F, E]) Feed(in Input[E]) F {
	if in.IsEnd() {
		return g.inner.Feed(End[kont.Pair[E, int]]())
	}
	if in.IsEmpty() {
		return g.m.Pure(g)
	}
	i := g.next
	out := MapInput(in, func(e E) kont.Pair[E, int] {
		p := kont.Pair[E, int]{Fst: e, Snd: i}
		i++
		return p
	})
	return rewrap(g.m, g.inner.Feed(out), func(next Stepper[F, kont.Pair[E, int]]) Stepper[F, E] {
		return indexStepper[F, E]{m: g.m, next: i, inner: next}
	})
}

// ZipWithIndex pairs each element with a 0-based sequential index reflecting
// emission order.
func ZipWithIndex[F, E any](src Enumerator[F, E]) Enumerator[F, kont.Pair[E, int]] {
	return func(m Monad[F], s Stepper[F, kont.Pair[E, int]]) F {
		if s.IsDone() {
			return m.Pure(s)
		}
		return src(m, indexStepper[F, E]{m: m, inner: s})
	}
}

// groupStepper re-chunks the stream into fixed-size groups.
type groupStepper[F, E any] struct {
	m     Monad[F]
	n     int
	buf   []E
	inner Stepper[F, []E]
}

func (g groupStepper[F, E]) IsDone() bool { return g.inner.IsDone() }

func (g groupStepper[F, E]) Feed(in Input[E]) F {
	if in.IsEnd() {
		if len(g.buf) == 0 {
			return g.inner.Feed(End[[]E]())
		}
		return g.m.Bind(g.inner.Feed(El(g.buf)), func(v Erased) F {
			next := v.(Stepper[F, []E])
			if next.IsDone() {
				return g.m.Pure(next)
			}
			return next.Feed(End[[]E]())
		})
	}
	if in.IsEmpty() {
		return g.m.Pure(g)
	}
	buf := g.buf
	in.Foreach(func(e E) { buf = append(buf, e) })
	return g.flush(buf)
}

// flush emits full groups from buf, keeping the short remainder buffered.
func (g groupStepper[F, E]) flush(buf []E) F {
	if len(buf) < g.n {
		return g.m.Pure(groupStepper[F, E]{m: g.m, n: g.n, buf: buf, inner: g.inner})
	}
	group := append([]E(nil), buf[:g.n]...)
	rest := buf[g.n:]
	return g.m.Bind(g.inner.Feed(El(group)), func(v Erased) F {
		next := v.(Stepper[F, []E])
		if next.IsDone() {
			return g.m.Pure(next)
		}
		ng := groupStepper[F, E]{m: g.m, n: g.n, inner: next}
		return ng.flush(rest)
	})
}

// Grouped re-chunks the stream into groups of exactly n elements in emission
// order; the final group is shorter when the source ends early.
// n < 1 is a contract violation.
func Grouped[F, E any](src Enumerator[F, E], n int) Enumerator[F, []E] {
	if n < 1 {
		panic("feed: grouped requires n > 0")
	}
	return func(m Monad[F], s Stepper[F, []E]) F {
		if s.IsDone() {
			return m.Pure(s)
		}
		return src(m, groupStepper[F, E]{m: m, n: n, inner: s})
	}
}

// splitStepper groups elements between separator elements.
type splitStepper[F, E any] struct {
	m     Monad[F]
	pred  func(E) bool
	buf   []E
	inner Stepper[F, []E]
}

func (g splitStepper[F, E]) IsDone() bool { return g.inner.IsDone() }

func (g splitStepper[F, E]) Feed(in Input[E]) F {
	if in.IsEnd() {
		if len(g.buf) == 0 {
			return g.inner.Feed(End[[]E]())
		}
		return g.m.Bind(g.inner.Feed(El(g.buf)), func(v Erased) F {
			next := v.(Stepper[F, []E])
			if next.IsDone() {
				return g.m.Pure(next)
			}
			return next.Feed(End[[]E]())
		})
	}
	if in.IsEmpty() {
		return g.m.Pure(g)
	}
	var es []E
	in.Foreach(func(e E) { es = append(es, e) })
	return g.consume(g.buf, es)
}

// consume walks pending elements: a separator closes and emits the current
// accumulator (possibly empty) and is itself discarded.
func (g splitStepper[F, E]) consume(buf, es []E) F {
	for i, e := range es {
		if !g.pred(e) {
			buf = append(buf, e)
			continue
		}
		rest := es[i+1:]
		group := buf
		if group == nil {
			group = []E{}
		}
		return g.m.Bind(g.inner.Feed(El(group)), func(v Erased) F {
			next := v.(Stepper[F, []E])
			if next.IsDone() {
				return g.m.Pure(next)
			}
			ng := splitStepper[F, E]{m: g.m, pred: g.pred, inner: next}
			return ng.consume(nil, rest)
		})
	}
	return g.m.Pure(splitStepper[F, E]{m: g.m, pred: g.pred, buf: buf, inner: g.inner})
}

// SplitOn splits the stream into groups at each element satisfying pred.
// The separator element is consumed as a boundary marker: it closes the
// current accumulator (emitting it, even when empty) and is excluded from
// the groups. A non-empty trailing accumulator is emitted at End.
func SplitOn[F, E any](src Enumerator[F, E], pred func(E) bool) Enumerator[F, []E] {
	return func(m Monad[F], s Stepper[F, []E]) F {
		if s.IsDone() {
			return m.Pure(s)
		}
		return src(m, splitStepper[F, E]{m: m, pred: pred, inner: s})
	}
}

// flatStepper drains one sub-producer per element, depth first.
type flatStepper[F, E, X any] struct {
	m     Monad[F]
	f     func(E) Enumerator[F, X]
	inner Stepper[F, X]
}

func (g flatStepper[F, E, X]) IsDone() bool { return g.inner.IsDone() }

func (g flatStepper[F, E, X]) Feed(in Input[E]) F {
	if in.IsEnd() {
		return g.inner.Feed(End[X]())
	}
	if in.IsEmpty() {
		return g.m.Pure(g)
	}
	var es []E
	in.Foreach(func(e E) { es = append(es, e) })
	return g.drain(g.inner, es)
}

// drain fully exhausts f(e) into the consumer before advancing to the next
// element, stopping at the first Done.
func (g flatStepper[F, E, X]) drain(inner Stepper[F, X], es []E) F {
	if len(es) == 0 {
		return g.m.Pure(flatStepper[F, E, X]{m: g.m, f: g.f, inner: inner})
	}
	sub := g.f(es[0])
	return g.m.Bind(sub(g.m, endGuard[F, X]{m: g.m, inner: inner}), func(v Erased) F {
		st := v.(Stepper[F, X])
		if st.IsDone() {
			return g.m.Pure(st)
		}
		return g.drain(st.(endGuard[F, X]).inner, es[1:])
	})
}

// FlatMap substitutes a whole producer for each element, draining it depth
// first before advancing, and stopping immediately when the consumer is
// Done. Together with a one-element producer it makes Enumerator a monad
// over the element type.
func FlatMap[F, E, X any](src Enumerator[F, E], f func(E) Enumerator[F, X]) Enumerator[F, X] {
	return func(m Monad[F], s Stepper[F, X]) F {
		if s.IsDone() {
			return m.Pure(s)
		}
		return src(m, flatStepper[F, E, X]{m: m, f: f, inner: s})
	}
}

// Cross is the Cartesian product preserving nested order: for each element
// of src in order, every element of other in order. The left source varies
// slower.
func Cross[F, A, B any](src Enumerator[F, A], other Enumerator[F, B]) Enumerator[F, kont.Pair[A, B]] {
	return FlatMap(src, func(a A) Enumerator[F, kont.Pair[A, B]] {
		return Map(other, func(b B) kont.Pair[A, B] {
			return kont.Pair[A, B]{Fst: a, Snd: b}
		})
	})
}

// reduceStepper folds the whole stream into one aggregate.
type reduceStepper[F, E, X any] struct {
	m     Monad[F]
	acc   X
	f     func(X, E) X
	inner Stepper[F, X]
}

func (g reduceStepper[F, E, X]) IsDone() bool { return g.inner.IsDone() }

func (g reduceStepper[F, E, X]) Feed(in Input[E]) F {
	if in.IsEnd() {
		return g.m.Bind(g.inner.Feed(El(g.acc)), func(v Erased) F {
			next := v.(Stepper[F, X])
			if next.IsDone() {
				return g.m.Pure(next)
			}
			return next.Feed(End[X]())
		})
	}
	acc := g.acc
	in.Foreach(func(e E) { acc = g.f(acc, e) })
	return g.m.Pure(reduceStepper[F, E, X]{m: g.m, acc: acc, f: g.f, inner: g.inner})
}

// Reduced folds the entire stream into a single aggregate, combining in
// emission order from seed, and emits exactly that one aggregate as a
// one-element stream when the source ends.
func Reduced[F, E, X any](src Enumerator[F, E], seed X, f func(X, E) X) Enumerator[F, X] {
	return func(m Monad[F], s Stepper[F, X]) F {
		if s.IsDone() {
			return m.Pure(s)
		}
		return src(m, reduceStepper[F, E, X]{m: m, acc: seed, f: f, inner: s})
	}
}
