// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package feed

import "code.hybscloud.com/kont"

// Iteratee is the consumer state machine of the push protocol.
// It is either Done — holding a result and the leftover portion of the last
// Input it did not consume — or suspended on a step continuation that accepts
// the next Input and yields, inside the effect F, the next state.
//
// Transitions are suspended → {suspended, Done}; Done is absorbing.
// States are immutable values and each suspended state is fed at most once
// (affine use, like kont suspensions).
type Iteratee[F, E, A any] struct {
	done     bool
	result   A
	leftover Input[E]
	step     func(Input[E]) F
}

// Done constructs a terminal consumer state holding a result and the
// unconsumed leftover Input. The leftover is owned by whichever consumer
// receives it next; constructors must not retain aliases into buffers a
// producer may reuse.
func Done[F, E, A any](a A, leftover Input[E]) Iteratee[F, E, A] {
	return Iteratee[F, E, A]{done: true, result: a, leftover: leftover}
}

// Suspend constructs a suspended consumer state from a step continuation.
// The continuation must treat Empty as a no-op, must yield a Done state when
// fed End, and never observes another signal after End.
func Suspend[F, E, A any](step func(Input[E]) F) Iteratee[F, E, A] {
	return Iteratee[F, E, A]{step: step}
}

// IsDone reports whether the consumer is in its terminal state.
func (it Iteratee[F, E, A]) IsDone() bool { return it.done }

// Result returns the held result. Valid only for a Done consumer.
func (it Iteratee[F, E, A]) Result() A { return it.result }

// Leftover returns the unconsumed portion of the last Input observed.
// Valid only for a Done consumer.
func (it Iteratee[F, E, A]) Leftover() Input[E] { return it.leftover }

// Feed advances a suspended consumer with the next signal, producing the
// next state inside the effect. Callers must check IsDone first: feeding a
// Done consumer is a protocol violation and panics.
func (it Iteratee[F, E, A]) Feed(in Input[E]) F {
	if it.done {
		panic("feed: iteratee already done")
	}
	return it.step(in)
}

// Stepper is the erased view of a consumer that an [Enumerator] drives:
// the producer only ever checks for termination and feeds signals. Effect
// payloads produced by Feed resolve to the consumer's next state, again as
// a Stepper. A Done stepper observed anywhere in an adapter chain is always
// the original concrete [Iteratee]; transform adapters dissolve on Done.
type Stepper[F, E any] interface {
	IsDone() bool
	Feed(in Input[E]) F
}

// MapIteratee transforms the result of a consumer, preserving its leftover
// and consumption behavior.
func MapIteratee[F, E, A, B any](m Monad[F], it Iteratee[F, E, A], f func(A) B) Iteratee[F, E, B] {
	if it.done {
		return Done[F, E](f(it.result), it.leftover)
	}
	step := it.step
	return Suspend[F, E, B](func(in Input[E]) F {
		return m.Bind(step(in), func(v Erased) F {
			return m.Pure(MapIteratee(m, v.(Iteratee[F, E, A]), f))
		})
	})
}

// BindIteratee sequences one consumer's result into the start of the next.
// When the first consumer finishes with leftover L, the successor receives L
// before any further input from the driving producer; dropping or reordering
// that hand-off is the classic protocol bug this combinator exists to avoid.
// The hand-off happens inside the effect at the moment the first consumer
// transitions to Done, so an End leftover finishes the successor on the same
// signal and no later producer input is ever swallowed.
func BindIteratee[F, E, A, B any](m Monad[F], it Iteratee[F, E, A], f func(A) Iteratee[F, E, B]) Iteratee[F, E, B] {
	if !it.done {
		step := it.step
		return Suspend[F, E, B](func(in Input[E]) F {
			return m.Bind(step(in), func(v Erased) F {
				na := v.(Iteratee[F, E, A])
				if !na.done {
					return m.Pure(BindIteratee(m, na, f))
				}
				return bindHandoff(m, na.leftover, f(na.result))
			})
		})
	}
	next := f(it.result)
	if next.done {
		// The successor consumed nothing: the first consumer's leftover
		// remains the residue of the composite.
		return Done[F, E](next.result, it.leftover)
	}
	l := it.leftover
	if l.IsEmpty() {
		return next
	}
	// Already-Done first consumer: no effect context yet, so the leftover is
	// replayed on the composite's first signal. A successor finishing inside
	// the replay keeps both residues, concatenated.
	step := next.step
	return Suspend[F, E, B](func(in Input[E]) F {
		return m.Bind(step(l), func(v Erased) F {
			nb := v.(Iteratee[F, E, B])
			switch {
			case !nb.done:
				if in.IsEmpty() {
					return m.Pure(nb)
				}
				return nb.step(in)
			case in.IsEmpty():
				return m.Pure(nb)
			default:
				return m.Pure(Done[F, E](nb.result, appendInput(nb.leftover, in)))
			}
		})
	})
}

// bindHandoff delivers a finished consumer's leftover to its successor inside
// the effect. The successor's next state replaces the composite from here on;
// an End leftover finishes it immediately.
func bindHandoff[F, E, B any](m Monad[F], l Input[E], next Iteratee[F, E, B]) F {
	if next.done {
		return m.Pure(Done[F, E](next.result, l))
	}
	if l.IsEmpty() {
		return m.Pure(next)
	}
	return next.step(l)
}

// Zip advances two consumers over the same signals, finishing when both are
// Done with the pair of results. The composite leftover is the shorter of
// the two leftovers: End dominates, then Empty, then fewer buffered elements.
func Zip[F, E, A, B any](m Monad[F], a Iteratee[F, E, A], b Iteratee[F, E, B]) Iteratee[F, E, kont.Pair[A, B]] {
	if a.done && b.done {
		return Done[F, E](
			kont.Pair[A, B]{Fst: a.result, Snd: b.result},
			Shorter(a.leftover, b.leftover),
		)
	}
	return Suspend[F, E, kont.Pair[A, B]](func(in Input[E]) F {
		return m.Bind(feedOrHold(m, a, in), func(va Erased) F {
			return m.Bind(feedOrHold(m, b, in), func(vb Erased) F {
				return m.Pure(Zip(m, va.(Iteratee[F, E, A]), vb.(Iteratee[F, E, B])))
			})
		})
	})
}

// feedOrHold feeds a suspended consumer and leaves a Done consumer untouched,
// so Zip never violates the no-input-after-Done guarantee.
func feedOrHold[F, E, A any](m Monad[F], it Iteratee[F, E, A], in Input[E]) F {
	if it.done {
		return m.Pure(it)
	}
	return it.step(in)
}

// LiftIteratee lifts an effectful value into a one-result consumer: on its
// first feed it runs the effect once, finishing with the effect's payload as
// result and the fed signal, untouched, as leftover.
func LiftIteratee[F, E, A any](m Monad[F], fv F) Iteratee[F, E, A] {
	return Suspend[F, E, A](func(in Input[E]) F {
		return m.Bind(fv, func(v Erased) F {
			return m.Pure(Done[F, E](v.(A), in))
		})
	})
}
