// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package feed

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// defaultSourceCapacity is the bounded capacity for source transport queues.
// 4 balances amortizing producer-side cached-index refresh cost while
// keeping ring buffers within a single cache line.
const defaultSourceCapacity = 4

// Serial identifies a source for correlating producer and consumer sides
// across goroutines. Serials increase monotonically per NewSource call and
// are never reused within a process.
type Serial = uint32

// sourceSerials assigns source serial numbers.
var sourceSerials atomix.Uint32

func nextSerial() Serial {
	return sourceSerials.Add(1)
}

// Source bridges one producing goroutine into the push protocol.
// Transport is a bounded lock-free SPSC queue: exactly one goroutine calls
// Push/Close and exactly one drives Poll or [SourceEnum].
//
// Push is non-blocking and returns iox.ErrWouldBlock on backpressure.
// Poll maps the transport states onto the Input algebra: a momentarily
// empty queue is the Empty signal, a closed and drained source is End.
type Source[E any] struct {
	q      lfq.SPSC[any]
	closed atomix.Uint32
	serial Serial
	// slot is the producer-side enqueue cell; reused across Push calls
	// to avoid a heap escape per element (single-producer only).
	slot any
}

// NewSource creates a source with the given queue capacity.
// capacity < 1 selects the default.
func NewSource[E any](capacity int) *Source[E] {
	if capacity < 1 {
		capacity = defaultSourceCapacity
	}
	s := &Source[E]{serial: nextSerial()}
	s.q.Init(capacity)
	return s
}

// Serial returns the serial number assigned to this source.
func (s *Source[E]) Serial() Serial { return s.serial }

// Push enqueues one element. Non-blocking: returns iox.ErrWouldBlock when
// the bounded queue is full. Must not be called after Close.
func (s *Source[E]) Push(v E) error {
	s.slot = v
	return s.q.Enqueue(&s.slot)
}

// Close signals that no further elements will be pushed. Elements already
// queued remain observable; Poll reports End once the queue drains.
func (s *Source[E]) Close() {
	s.closed.Add(1)
}

// Poll takes the next signal without blocking: Element when a value is
// queued, Empty when the producer has not caught up, End when the source is
// closed and drained. After Close the queue is re-checked once, so an
// element enqueued before Close is never lost to the close flag.
func (s *Source[E]) Poll() Input[E] {
	v, err := s.q.Dequeue()
	if err == nil {
		return El(v.(E))
	}
	if s.closed.Load() != 0 {
		if v, err = s.q.Dequeue(); err == nil {
			return El(v.(E))
		}
		return End[E]()
	}
	return Empty[E]()
}

// wait blocks until the next Element or End signal, backing off on the
// would-block boundary with iox.Backoff (I/O readiness waiting).
func (s *Source[E]) wait() Input[E] {
	var bo iox.Backoff
	for {
		in := s.Poll()
		if !in.IsEmpty() {
			return in
		}
		bo.Wait()
	}
}

// SourceEnum converts a source into a producer that blocks on an empty
// queue via adaptive backoff, without spawning goroutines or creating
// channels. The producer feeds End when the source is closed and drained,
// and stops polling as soon as the consumer is Done.
func SourceEnum[F, E any](src *Source[E]) Enumerator[F, E] {
	return func(m Monad[F], s Stepper[F, E]) F {
		return sourceStep(m, s, src)
	}
}

func sourceStep[F, E any](m Monad[F], s Stepper[F, E], src *Source[E]) F {
	if s.IsDone() {
		return m.Pure(s)
	}
	in := src.wait()
	if in.IsEnd() {
		return s.Feed(in)
	}
	return m.Bind(s.Feed(in), func(v Erased) F {
		return sourceStep(m, v.(Stepper[F, E]), src)
	})
}
