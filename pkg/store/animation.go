// Package store owns the engine's animation state: each element's clip
// placement on the master timeline, its keyframe tracks, and the timeline
// markers. All mutations go through [Store] methods, which validate first
// and apply atomically; direct writes to returned values never feed back
// into the store.
package store

import (
	"sort"

	"github.com/go-reel/reel/pkg/track"
)

// Clip is an animation's placement on the master timeline.
type Clip struct {
	// Start is the clip's offset on the master timeline, in seconds.
	Start float64
	// Duration is the clip's length on the master timeline, always positive.
	Duration float64
	// Speed maps timeline seconds to clip-local seconds. 1 plays keyframes
	// in real time, 2 plays them twice as fast.
	Speed float64
	// Locked rejects every mutation of the animation except lock/mute
	// toggles themselves.
	Locked bool
	// Muted excludes the animation from playback evaluation while
	// retaining its data.
	Muted bool
}

// End returns the clip's end position on the master timeline.
func (c Clip) End() float64 { return c.Start + c.Duration }

// LocalTime converts a master-timeline time to clip-local keyframe time.
func (c Clip) LocalTime(master float64) float64 {
	return (master - c.Start) * c.Speed
}

// ClipPatch is a partial clip update. Nil fields are left unchanged.
type ClipPatch struct {
	Start    *float64
	Duration *float64
	Speed    *float64
	Locked   *bool
	Muted    *bool
}

// touchesPlacement reports whether the patch changes fields guarded by the
// lock flag.
func (p ClipPatch) touchesPlacement() bool {
	return p.Start != nil || p.Duration != nil || p.Speed != nil
}

// Animation holds one element's presence on the timeline: its clip and its
// property tracks. Animations are created lazily by the store on first
// reference to an element id.
type Animation struct {
	elementID string
	clip      Clip
	tracks    map[track.Property]*track.Track
}

// ElementID returns the id of the externally-owned design element.
func (a *Animation) ElementID() string { return a.elementID }

// Clip returns the animation's current clip placement.
func (a *Animation) Clip() Clip { return a.clip }

// Track returns the track for p, or nil if the property has no keyframes.
// The returned track is owned by the store; treat it as read-only and issue
// mutations through Store methods.
func (a *Animation) Track(p track.Property) *track.Track {
	return a.tracks[p]
}

// TrackedProperties returns the properties with at least one keyframe,
// sorted.
func (a *Animation) TrackedProperties() []track.Property {
	props := make([]track.Property, 0, len(a.tracks))
	for p := range a.tracks {
		props = append(props, p)
	}
	sort.Slice(props, func(i, j int) bool { return props[i] < props[j] })
	return props
}

// KeyframeCount returns the total keyframe count across all tracks.
func (a *Animation) KeyframeCount() int {
	n := 0
	for _, tr := range a.tracks {
		n += tr.Len()
	}
	return n
}
