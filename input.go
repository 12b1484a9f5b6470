// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package feed

// inputKind tags the four Input variants.
// The zero value is kindEmpty, so the zero Input is the Empty signal.
type inputKind uint8

const (
	kindEmpty inputKind = iota
	kindEl
	kindChunk
	kindEnd
)

// Input is one unit of the push protocol, a closed four-variant signal:
// Empty (no data available right now), Element (exactly one value),
// Chunk (zero or more values delivered together), End (stream exhausted,
// absorbing). Input is immutable pure data and carries no effect.
//
// Input is a tagged value type: Empty and End construction never allocates,
// and dispatch is a single tag switch.
type Input[E any] struct {
	kind  inputKind
	el    E
	chunk []E
}

// Empty returns the Empty signal: no data available right now,
// stream not finished. Feeding Empty to a consumer is a no-op.
func Empty[E any]() Input[E] {
	return Input[E]{}
}

// El returns an Element signal carrying exactly one value.
func El[E any](e E) Input[E] {
	return Input[E]{kind: kindEl, el: e}
}

// Chunk returns a Chunk signal carrying an ordered batch of values.
// The signal owns es; callers must not mutate it afterwards.
func Chunk[E any](es []E) Input[E] {
	return Input[E]{kind: kindChunk, chunk: es}
}

// End returns the End signal: the stream is exhausted and no further
// Input will ever follow. End is absorbing.
func End[E any]() Input[E] {
	return Input[E]{kind: kindEnd}
}

// Folder supplies the four reduction functions for [FoldWith],
// one per Input variant.
type Folder[E, R any] struct {
	OnEmpty func() R
	OnEl    func(E) R
	OnChunk func([]E) R
	OnEnd   func() R
}

// FoldWith reduces an Input to a value by dispatching to exactly one of the
// folder's reduction functions. It is the single required inspection
// primitive; every derived operation is expressible through it.
func FoldWith[E, R any](in Input[E], f Folder[E, R]) R {
	switch in.kind {
	case kindEl:
		return f.OnEl(in.el)
	case kindChunk:
		return f.OnChunk(in.chunk)
	case kindEnd:
		return f.OnEnd()
	default:
		return f.OnEmpty()
	}
}

// IsEmpty reports whether the signal is Empty.
func (in Input[E]) IsEmpty() bool { return in.kind == kindEmpty }

// IsEnd reports whether the signal is End.
func (in Input[E]) IsEnd() bool { return in.kind == kindEnd }

// Len returns the number of buffered elements: 1 for Element, the chunk
// length for Chunk, 0 for Empty and End.
func (in Input[E]) Len() int {
	switch in.kind {
	case kindEl:
		return 1
	case kindChunk:
		return len(in.chunk)
	default:
		return 0
	}
}

// Normalize canonicalizes a Chunk: zero elements becomes Empty, exactly one
// element becomes Element. Other variants are returned unchanged.
func (in Input[E]) Normalize() Input[E] {
	if in.kind != kindChunk {
		return in
	}
	switch len(in.chunk) {
	case 0:
		return Empty[E]()
	case 1:
		return El(in.chunk[0])
	default:
		return in
	}
}

// Filter keeps only elements satisfying p. An Element failing p becomes
// Empty; a Chunk retains matching elements in order and may become an
// empty Chunk. Empty and End are unchanged.
func (in Input[E]) Filter(p func(E) bool) Input[E] {
	switch in.kind {
	case kindEl:
		if p(in.el) {
			return in
		}
		return Empty[E]()
	case kindChunk:
		out := make([]E, 0, len(in.chunk))
		for _, e := range in.chunk {
			if p(e) {
				out = append(out, e)
			}
		}
		return Chunk(out)
	default:
		return in
	}
}

// Forall reports whether p holds for every buffered element.
// Vacuously true on Empty and End.
func (in Input[E]) Forall(p func(E) bool) bool {
	switch in.kind {
	case kindEl:
		return p(in.el)
	case kindChunk:
		for _, e := range in.chunk {
			if !p(e) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Exists reports whether p holds for at least one buffered element.
// Vacuously false on Empty and End.
func (in Input[E]) Exists(p func(E) bool) bool {
	switch in.kind {
	case kindEl:
		return p(in.el)
	case kindChunk:
		for _, e := range in.chunk {
			if p(e) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Foreach applies f to each buffered element in order.
func (in Input[E]) Foreach(f func(E)) {
	switch in.kind {
	case kindEl:
		f(in.el)
	case kindChunk:
		for _, e := range in.chunk {
			f(e)
		}
	}
}

// MapInput transforms buffered elements with f, preserving the variant and
// element order. Empty and End pass through unchanged.
func MapInput[E, X any](in Input[E], f func(E) X) Input[X] {
	switch in.kind {
	case kindEl:
		return El(f(in.el))
	case kindChunk:
		out := make([]X, len(in.chunk))
		for i, e := range in.chunk {
			out[i] = f(e)
		}
		return Chunk(out)
	case kindEnd:
		return End[X]()
	default:
		return Empty[X]()
	}
}

// FlatMapInput applies f to each buffered element in order and concatenates
// the results. If any produced Input is End the overall result is End
// immediately and remaining elements are not processed; Empty results
// contribute nothing. The concatenation is returned normalized.
func FlatMapInput[E, X any](in Input[E], f func(E) Input[X]) Input[X] {
	switch in.kind {
	case kindEl:
		return f(in.el)
	case kindChunk:
		var acc []X
		for _, e := range in.chunk {
			r := f(e)
			switch r.kind {
			case kindEnd:
				return r
			case kindEl:
				acc = append(acc, r.el)
			case kindChunk:
				acc = append(acc, r.chunk...)
			}
		}
		return Chunk(acc).Normalize()
	case kindEnd:
		return End[X]()
	default:
		return Empty[X]()
	}
}

// appendInput concatenates the buffered elements of two signals in order.
// End is absorbing; Empty is the identity.
func appendInput[E any](a, b Input[E]) Input[E] {
	switch {
	case a.IsEnd() || b.IsEnd():
		return End[E]()
	case a.IsEmpty():
		return b
	case b.IsEmpty():
		return a
	}
	es := make([]E, 0, a.Len()+b.Len())
	a.Foreach(func(e E) { es = append(es, e) })
	b.Foreach(func(e E) { es = append(es, e) })
	return Chunk(es)
}

// Shorter combines two signals to the shorter of the two: End dominates,
// then Empty dominates, then the signal with fewer buffered elements
// (a wins ties). Used when merging the leftover state of two consumers
// advancing over the same source, e.g. [Zip].
func Shorter[E any](a, b Input[E]) Input[E] {
	if a.kind == kindEnd || b.kind == kindEnd {
		return End[E]()
	}
	if a.kind == kindEmpty || b.kind == kindEmpty {
		return Empty[E]()
	}
	if b.Len() < a.Len() {
		return b
	}
	return a
}
