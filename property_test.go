// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package feed_test

import (
	"testing"
	"testing/quick"

	"code.hybscloud.com/feed"
)

// TestPropertyDrainIdentity proves that for any arbitrarily generated slice,
// pushing it through the protocol and draining recovers exactly the same
// sequence, regardless of chunking.
func TestPropertyDrainIdentity(t *testing.T) {
	property := func(payload []int, rawSize uint8) bool {
		size := int(rawSize%7) + 1
		if !equalSlices(drainSync(feed.Elements[feed.Erased](payload...)), payload) {
			return false
		}
		return equalSlices(drainSync(feed.Chunked[feed.Erased](payload, size)), payload)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyMapCommutes proves map-then-drain equals drain-then-map for
// any payload.
func TestPropertyMapCommutes(t *testing.T) {
	f := func(n int) int { return n*3 + 1 }
	property := func(payload []int) bool {
		streamed := drainSync(feed.Map(feed.Elements[feed.Erased](payload...), f))
		native := make([]int, len(payload))
		for i, n := range payload {
			native[i] = f(n)
		}
		return equalSlices(streamed, native)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyFilterCommutes proves filter-then-drain equals the native
// sequence filter for any payload.
func TestPropertyFilterCommutes(t *testing.T) {
	p := func(n int) bool { return n%3 != 0 }
	property := func(payload []int) bool {
		streamed := drainSync(feed.Filter(feed.Elements[feed.Erased](payload...), p))
		var native []int
		for _, n := range payload {
			if p(n) {
				native = append(native, n)
			}
		}
		return equalSlices(streamed, native)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyMonoidLaws proves producer concatenation has Zero as identity
// and is associative, observed by draining into a slice.
func TestPropertyMonoidLaws(t *testing.T) {
	property := func(a, b, c []int) bool {
		ea := feed.Elements[feed.Erased](a...)
		eb := feed.Elements[feed.Erased](b...)
		ec := feed.Elements[feed.Erased](c...)
		zero := feed.Zero[feed.Erased, int]()

		if !equalSlices(drainSync(feed.Concat(zero, ea)), a) {
			return false
		}
		if !equalSlices(drainSync(feed.Concat(ea, zero)), a) {
			return false
		}
		lhs := drainSync(feed.Concat(feed.Concat(ea, eb), ec))
		rhs := drainSync(feed.Concat(ea, feed.Concat(eb, ec)))
		return equalSlices(lhs, rhs)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyGrouped proves every group except the last has exactly n
// elements and regrouping loses nothing.
func TestPropertyGrouped(t *testing.T) {
	property := func(payload []int, rawN uint8) bool {
		n := int(rawN%5) + 1
		groups := drainSync(feed.Grouped(feed.Elements[feed.Erased](payload...), n))
		var flat []int
		for i, g := range groups {
			if len(g) == 0 || len(g) > n {
				return false
			}
			if len(g) < n && i != len(groups)-1 {
				return false
			}
			flat = append(flat, g...)
		}
		return equalSlices(flat, payload)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyUniq proves Uniq matches a reference adjacent-duplicate
// compression.
func TestPropertyUniq(t *testing.T) {
	property := func(payload []int8) bool {
		narrow := make([]int, len(payload))
		for i, n := range payload {
			narrow[i] = int(n % 3)
		}
		var native []int
		for i, n := range narrow {
			if i == 0 || narrow[i-1] != n {
				native = append(native, n)
			}
		}
		return equalSlices(drainSync(feed.Uniq(feed.Elements[feed.Erased](narrow...))), native)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyReduced proves the single emitted aggregate equals the whole
// source collected in order.
func TestPropertyReduced(t *testing.T) {
	property := func(payload []int) bool {
		got := drainSync(feed.Reduced(feed.Elements[feed.Erased](payload...), []int(nil),
			func(acc []int, n int) []int { return append(acc, n) }))
		return len(got) == 1 && equalSlices(got[0], payload)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}
