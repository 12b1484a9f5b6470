// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package feed_test

import (
	"code.hybscloud.com/feed"
)

// drainSync runs a producer to completion under the synchronous identity
// binding and returns the collected elements.
func drainSync[E any](src feed.Enumerator[feed.Erased, E]) []E {
	return feed.Drain(feed.Sync{}, src).([]E)
}

// inputElems flattens a signal's buffered elements for assertions.
func inputElems[E any](in feed.Input[E]) []E {
	return feed.FoldWith(in, feed.Folder[E, []E]{
		OnEmpty: func() []E { return nil },
		OnEl:    func(e E) []E { return []E{e} },
		OnChunk: func(es []E) []E { return es },
		OnEnd:   func() []E { return nil },
	})
}

// feedSync advances a suspended consumer one signal under Sync and recovers
// the next state.
func feedSync[E, A any](it feed.Iteratee[feed.Erased, E, A], in feed.Input[E]) feed.Iteratee[feed.Erased, E, A] {
	return it.Feed(in).(feed.Iteratee[feed.Erased, E, A])
}

// equalSlices compares two slices elementwise, treating nil and empty as equal.
func equalSlices[E comparable](a, b []E) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
