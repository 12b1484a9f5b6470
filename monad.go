// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package feed

// Effect abstraction for the push protocol.
//
// Go has no higher-kinded generics, so the ambient effect is an opaque type
// parameter F threaded through the protocol together with a Monad[F] witness
// injected at the call sites that sequence effects. Payloads inside F are
// type-erased; concrete types are recovered via assertions at bind
// boundaries, following kont's Erased convention.

// Erased is a type-erased payload flowing through an effect value.
// Concrete types are recovered by assertion at bind boundaries.
type Erased = any

// Monad supplies the two capabilities the protocol requires from the
// ambient effect: lifting a pure value and sequencing two computations.
// Minimal definition — everything else in the protocol derives from these.
type Monad[F any] interface {
	// Pure lifts a value into the effect with no computation.
	Pure(v Erased) F
	// Bind sequences m, passing its payload to f to obtain the next effect.
	Bind(m F, f func(Erased) F) F
}

// Sync is the synchronous identity binding: an effect value is the payload
// itself and Bind is plain application. The drive loop degenerates to direct
// recursive calls.
type Sync struct{}

// Pure implements Monad for the identity effect.
func (Sync) Pure(v Erased) Erased { return v }

// Bind implements Monad for the identity effect.
func (Sync) Bind(m Erased, f func(Erased) Erased) Erased { return f(m) }

// Thunk is a deferred computation producing an erased payload.
// It is the effect type of the [Lazy] binding.
type Thunk func() Erased

// Lazy is the deferred binding: effects are thunks and Bind composes
// without forcing. Nothing runs until [Force].
type Lazy struct{}

// Pure implements Monad for the deferred effect.
func (Lazy) Pure(v Erased) Thunk {
	return func() Erased { return v }
}

// Bind implements Monad for the deferred effect.
func (Lazy) Bind(m Thunk, f func(Erased) Thunk) Thunk {
	return func() Erased { return f(m())() }
}

// Force runs a deferred computation and recovers its typed result.
func Force[A any](t Thunk) A {
	return t().(A)
}
