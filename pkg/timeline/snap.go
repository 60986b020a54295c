package timeline

import "math"

// DefaultSnapThreshold is how close, in timeline seconds, a snap target
// must be to attract the playhead. The threshold is in time, not pixels,
// so snapping strength is independent of zoom.
const DefaultSnapThreshold = 0.2

// snapTime returns the nearest enabled snap target within the threshold,
// or t unchanged when none is close enough.
func (c *Controller) snapTime(t float64) float64 {
	threshold := c.SnapThreshold
	if threshold <= 0 {
		threshold = DefaultSnapThreshold
	}

	best := t
	bestDist := threshold
	consider := func(candidate float64) {
		if d := math.Abs(candidate - t); d <= bestDist {
			best = candidate
			bestDist = d
		}
	}

	if c.SnapToMarkers {
		for _, m := range c.store.Markers() {
			consider(m.Time)
		}
	}
	if c.SnapToKeyframes {
		for _, a := range c.store.Animations() {
			clip := a.Clip()
			for _, p := range a.TrackedProperties() {
				for _, kt := range a.Track(p).OrderedTimes() {
					// Keyframe times are clip-local; snap against their
					// master-timeline positions.
					consider(clip.Start + kt/clip.Speed)
				}
			}
		}
	}
	return best
}
