// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package feed_test

import (
	"testing"

	"code.hybscloud.com/feed"
	"code.hybscloud.com/kont"
)

func TestIterateeLifecycle(t *testing.T) {
	m := feed.Sync{}
	it := feed.CollectAll[feed.Erased, int](m)
	if it.IsDone() {
		t.Fatal("fresh collector already done")
	}

	it = feedSync(it, feed.El(1))
	it = feedSync(it, feed.Chunk([]int{2, 3}))
	if it.IsDone() {
		t.Fatal("collector done before End")
	}

	it = feedSync(it, feed.End[int]())
	if !it.IsDone() {
		t.Fatal("collector not done after End")
	}
	if got := it.Result(); !equalSlices(got, []int{1, 2, 3}) {
		t.Errorf("result = %v", got)
	}
	if !it.Leftover().IsEnd() {
		t.Error("leftover after End-finish is not End")
	}
}

func TestFeedEmptyIsNoOp(t *testing.T) {
	m := feed.Sync{}
	it := feed.CollectAll[feed.Erased, int](m)
	it = feedSync(it, feed.El(1))
	it = feedSync(it, feed.Empty[int]())
	it = feedSync(it, feed.Empty[int]())
	it = feedSync(it, feed.End[int]())
	if got := it.Result(); !equalSlices(got, []int{1}) {
		t.Errorf("Empty changed accumulated state: %v", got)
	}
}

func TestFeedOnDonePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("feeding a Done iteratee did not panic")
		}
	}()
	it := feed.Done[feed.Erased, int](42, feed.Empty[int]())
	it.Feed(feed.El(1))
}

func TestTakeEarlyTermination(t *testing.T) {
	m := feed.Sync{}
	it := feed.Take[feed.Erased, int](m, 2)
	it = feedSync(it, feed.Chunk([]int{1, 2, 3, 4, 5}))
	if !it.IsDone() {
		t.Fatal("take(2) not done after oversized chunk")
	}
	if got := it.Result(); !equalSlices(got, []int{1, 2}) {
		t.Errorf("result = %v", got)
	}
	if got := inputElems(it.Leftover()); !equalSlices(got, []int{3, 4, 5}) {
		t.Errorf("leftover = %v", got)
	}
}

func TestMapIteratee(t *testing.T) {
	m := feed.Sync{}
	counted := feed.MapIteratee(m, feed.Take[feed.Erased, int](m, 2), func(es []int) int { return len(es) })
	got := feed.Process(m, counted, feed.Elements[feed.Erased](5, 6, 7)).(int)
	if got != 2 {
		t.Errorf("mapped result = %d", got)
	}
}

// TestBindIterateeLeftover proves the central correctness property: when the
// first consumer finishes with unconsumed input, the successor observes that
// leftover before any further producer input.
func TestBindIterateeLeftover(t *testing.T) {
	m := feed.Sync{}
	chained := feed.BindIteratee(m, feed.Take[feed.Erased, int](m, 2),
		func(first []int) feed.Iteratee[feed.Erased, int, kont.Pair[[]int, []int]] {
			return feed.MapIteratee(m, feed.CollectAll[feed.Erased, int](m), func(rest []int) kont.Pair[[]int, []int] {
				return kont.Pair[[]int, []int]{Fst: first, Snd: rest}
			})
		})

	// One oversized chunk: take(2) leaves [3 4 5] as leftover mid-chunk.
	data := []int{1, 2, 3, 4, 5}
	got := feed.Process(m, chained, feed.Chunked[feed.Erased](data, 5)).(kont.Pair[[]int, []int])
	if !equalSlices(got.Fst, []int{1, 2}) {
		t.Errorf("first = %v", got.Fst)
	}
	if !equalSlices(got.Snd, []int{3, 4, 5}) {
		t.Errorf("leftover dropped or reordered: rest = %v", got.Snd)
	}
}

func TestBindIterateeDoneKeepsLeftover(t *testing.T) {
	m := feed.Sync{}
	first := feed.Done[feed.Erased, int]("a", feed.El(9))
	chained := feed.BindIteratee(m, first, func(s string) feed.Iteratee[feed.Erased, int, string] {
		return feed.Done[feed.Erased, int](s+"b", feed.Empty[int]())
	})
	if !chained.IsDone() {
		t.Fatal("composite not done")
	}
	if got := chained.Result(); got != "ab" {
		t.Errorf("result = %q", got)
	}
	if got := inputElems(chained.Leftover()); !equalSlices(got, []int{9}) {
		t.Errorf("leftover = %v", got)
	}
}

// TestBindIterateeHandoffKeepsStream proves a successor that finishes
// entirely inside the leftover hand-off does not swallow the producer input
// still to come: a third consumer chained behind it sees the rest of the
// stream intact.
func TestBindIterateeHandoffKeepsStream(t *testing.T) {
	m := feed.Sync{}
	inner := feed.BindIteratee(m, feed.Take[feed.Erased, int](m, 2),
		func(first []int) feed.Iteratee[feed.Erased, int, kont.Pair[[]int, []int]] {
			return feed.MapIteratee(m, feed.Take[feed.Erased, int](m, 2), func(second []int) kont.Pair[[]int, []int] {
				return kont.Pair[[]int, []int]{Fst: first, Snd: second}
			})
		})
	chained := feed.BindIteratee(m, inner,
		func(p kont.Pair[[]int, []int]) feed.Iteratee[feed.Erased, int, kont.Pair[kont.Pair[[]int, []int], []int]] {
			return feed.MapIteratee(m, feed.CollectAll[feed.Erased, int](m), func(rest []int) kont.Pair[kont.Pair[[]int, []int], []int] {
				return kont.Pair[kont.Pair[[]int, []int], []int]{Fst: p, Snd: rest}
			})
		})

	// First chunk [1 2 3 4]: take(2) finishes mid-chunk and the second take
	// finishes inside the hand-off of [3 4]. The second chunk [5 6 7 8] must
	// reach the collector in full.
	data := []int{1, 2, 3, 4, 5, 6, 7, 8}
	got := feed.Process(m, chained, feed.Chunked[feed.Erased](data, 4)).(kont.Pair[kont.Pair[[]int, []int], []int])
	if !equalSlices(got.Fst.Fst, []int{1, 2}) {
		t.Errorf("first = %v", got.Fst.Fst)
	}
	if !equalSlices(got.Fst.Snd, []int{3, 4}) {
		t.Errorf("second = %v", got.Fst.Snd)
	}
	if !equalSlices(got.Snd, []int{5, 6, 7, 8}) {
		t.Errorf("later producer input swallowed: rest = %v", got.Snd)
	}
}

// TestBindIterateeAfterEndFinish proves chaining behind a consumer that
// finishes on End is valid: the End leftover reaches the successor on the
// same signal, so the composite is Done when the producer is exhausted.
func TestBindIterateeAfterEndFinish(t *testing.T) {
	m := feed.Sync{}
	chained := feed.BindIteratee(m, feed.FoldAll[feed.Erased, int](m, 0, func(a, n int) int { return a + n }),
		func(sum int) feed.Iteratee[feed.Erased, int, kont.Pair[int, []int]] {
			return feed.MapIteratee(m, feed.CollectAll[feed.Erased, int](m), func(rest []int) kont.Pair[int, []int] {
				return kont.Pair[int, []int]{Fst: sum, Snd: rest}
			})
		})
	got := feed.Process(m, chained, feed.Elements[feed.Erased](1, 2, 3)).(kont.Pair[int, []int])
	if got.Fst != 6 {
		t.Errorf("sum = %d", got.Fst)
	}
	if len(got.Snd) != 0 {
		t.Errorf("collector after End-finish saw %v", got.Snd)
	}
}

// TestBindIterateeReplayMerge covers composing onto an already-Done consumer:
// the replayed leftover's residue and the first producer signal both survive
// in the composite leftover.
func TestBindIterateeReplayMerge(t *testing.T) {
	m := feed.Sync{}
	first := feed.Done[feed.Erased, int]("x", feed.Chunk([]int{7, 8, 9}))
	chained := feed.BindIteratee(m, first, func(string) feed.Iteratee[feed.Erased, int, []int] {
		return feed.Take[feed.Erased, int](m, 2)
	})
	fed := feedSync(chained, feed.El(10))
	if !fed.IsDone() {
		t.Fatal("take(2) not done after replayed leftover")
	}
	if got := fed.Result(); !equalSlices(got, []int{7, 8}) {
		t.Errorf("result = %v", got)
	}
	if got := inputElems(fed.Leftover()); !equalSlices(got, []int{9, 10}) {
		t.Errorf("leftover = %v", got)
	}
}

func TestZip(t *testing.T) {
	m := feed.Sync{}
	z := feed.Zip(m, feed.Take[feed.Erased, int](m, 1), feed.Take[feed.Erased, int](m, 3))
	z = feedSync(z, feed.Chunk([]int{1, 2, 3, 4}))
	if !z.IsDone() {
		t.Fatal("zip not done after both sides finished")
	}
	got := z.Result()
	if !equalSlices(got.Fst, []int{1}) || !equalSlices(got.Snd, []int{1, 2, 3}) {
		t.Errorf("zip result = %v / %v", got.Fst, got.Snd)
	}
	// Composite leftover is the shorter of the two sides.
	if left := inputElems(z.Leftover()); !equalSlices(left, []int{4}) {
		t.Errorf("zip leftover = %v", left)
	}
}

func TestLiftIteratee(t *testing.T) {
	m := feed.Sync{}
	it := feed.LiftIteratee[feed.Erased, int, string](m, m.Pure("r"))
	fed := feedSync(it, feed.El(9))
	if !fed.IsDone() || fed.Result() != "r" {
		t.Fatal("lifted iteratee did not finish with the effect's value")
	}
	if got := inputElems(fed.Leftover()); !equalSlices(got, []int{9}) {
		t.Errorf("lifted iteratee consumed input: leftover = %v", got)
	}
}

func TestProcessDivergingPanics(t *testing.T) {
	m := feed.Sync{}
	defer func() {
		if recover() == nil {
			t.Error("diverging iteratee did not panic")
		}
	}()
	var stubborn func(feed.Input[int]) feed.Erased
	stubborn = func(feed.Input[int]) feed.Erased {
		return m.Pure(feed.Suspend[feed.Erased, int, int](stubborn))
	}
	feed.Process(m, feed.Suspend[feed.Erased, int, int](stubborn), feed.Elements[feed.Erased](1))
}
