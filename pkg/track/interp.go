package track

import (
	"sort"

	"github.com/go-reel/reel/pkg/easing"
)

// Evaluate returns the track's value at the given clip-local time.
//
// The rules, in order:
//
//  1. An empty track has no value: ok is false and the caller supplies the
//     element's static default.
//  2. A single keyframe is constant for all query times.
//  3. Before the first keyframe the first value holds (no extrapolation).
//  4. At or after the last keyframe the last value holds.
//  5. Otherwise the bracketing pair (a, b) with a.Time <= t < b.Time is
//     eased by b's curve: the easing stored on the destination keyframe
//     governs the transition into it.
//
// Discrete tracks never blend; they hold a's value until eased progress
// reaches 1, then snap to b.
func Evaluate(tr *Track, t float64) (Value, bool) {
	keys := tr.keys
	switch len(keys) {
	case 0:
		return Value{}, false
	case 1:
		return keys[0].Value, true
	}
	if t <= keys[0].Time {
		return keys[0].Value, true
	}
	last := keys[len(keys)-1]
	if t >= last.Time {
		return last.Value, true
	}

	// First keyframe strictly after t; the bracket is (hi-1, hi).
	hi := sort.Search(len(keys), func(i int) bool { return keys[i].Time > t })
	a, b := keys[hi-1], keys[hi]
	p := (t - a.Time) / (b.Time - a.Time)
	return lerp(a.Value, b.Value, easing.Evaluate(b.Easing, p)), true
}
