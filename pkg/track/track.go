package track

import (
	"sort"

	"github.com/go-reel/reel/pkg/errors"
)

// Keyframe anchors a property's value at a point on the clip-local timeline.
type Keyframe struct {
	// ID is unique within the owning animation and immutable once created.
	ID string
	// Time is in seconds, relative to the clip's local timeline.
	Time float64
	// Value must match the owning track's value kind.
	Value Value
	// Easing names the curve applied when animating into this keyframe
	// from the previous one.
	Easing string
}

// Patch is a partial keyframe update. Nil fields are left unchanged.
type Patch struct {
	Time   *float64
	Value  *Value
	Easing *string
}

// Track is the ordered keyframe set for one (element, property) pair.
// Keyframes are kept sorted by time and unique by time.
type Track struct {
	property Property
	keys     []Keyframe
}

// New creates an empty track for the given property.
func New(p Property) *Track {
	return &Track{property: p}
}

// Property returns the property this track animates.
func (tr *Track) Property() Property { return tr.property }

// Len returns the number of keyframes.
func (tr *Track) Len() int { return len(tr.keys) }

// Keyframes returns the keyframes in ascending time order. The returned
// slice is a copy; mutating it does not affect the track.
func (tr *Track) Keyframes() []Keyframe {
	out := make([]Keyframe, len(tr.keys))
	copy(out, tr.keys)
	return out
}

// OrderedTimes returns all keyframe times in ascending order.
func (tr *Track) OrderedTimes() []float64 {
	out := make([]float64, len(tr.keys))
	for i, k := range tr.keys {
		out[i] = k.Time
	}
	return out
}

// ByID returns the keyframe with the given id.
func (tr *Track) ByID(id string) (Keyframe, bool) {
	for _, k := range tr.keys {
		if k.ID == id {
			return k, true
		}
	}
	return Keyframe{}, false
}

// At returns the keyframe at exactly the given time.
func (tr *Track) At(time float64) (Keyframe, bool) {
	i := tr.indexAt(time)
	if i < 0 {
		return Keyframe{}, false
	}
	return tr.keys[i], true
}

// Upsert inserts k in time order. If a keyframe already exists at k.Time its
// value and easing are overwritten in place and its original id is kept, so
// inserting at an occupied time never duplicates. Returns the stored
// keyframe.
func (tr *Track) Upsert(k Keyframe) (Keyframe, error) {
	if k.Time < 0 {
		return Keyframe{}, errors.InvalidArgument("track.Upsert", "negative keyframe time %g", k.Time)
	}
	if kind, _ := tr.property.Kind(); k.Value.Kind != kind {
		return Keyframe{}, errors.InvalidArgument("track.Upsert",
			"%s value for %s track %q", k.Value.Kind, kind, tr.property)
	}
	if i := tr.indexAt(k.Time); i >= 0 {
		tr.keys[i].Value = k.Value
		tr.keys[i].Easing = k.Easing
		return tr.keys[i], nil
	}
	i := sort.Search(len(tr.keys), func(i int) bool { return tr.keys[i].Time > k.Time })
	tr.keys = append(tr.keys, Keyframe{})
	copy(tr.keys[i+1:], tr.keys[i:])
	tr.keys[i] = k
	return k, nil
}

// Remove deletes the keyframe with the given id. Removing an unknown id is
// a no-op, not an error.
func (tr *Track) Remove(id string) bool {
	for i, k := range tr.keys {
		if k.ID == id {
			tr.keys = append(tr.keys[:i], tr.keys[i+1:]...)
			return true
		}
	}
	return false
}

// Update applies a partial update to the keyframe with the given id.
// Moving a keyframe onto an occupied time overwrites the keyframe already
// there: the moved keyframe wins and the collided one is dropped, matching
// Upsert's overwrite policy.
func (tr *Track) Update(id string, patch Patch) (Keyframe, error) {
	idx := -1
	for i, k := range tr.keys {
		if k.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Keyframe{}, errors.NotFound("track.Update", "keyframe %q in %q track", id, tr.property)
	}

	updated := tr.keys[idx]
	if patch.Time != nil {
		if *patch.Time < 0 {
			return Keyframe{}, errors.InvalidArgument("track.Update", "negative keyframe time %g", *patch.Time)
		}
		updated.Time = *patch.Time
	}
	if patch.Value != nil {
		if kind, _ := tr.property.Kind(); patch.Value.Kind != kind {
			return Keyframe{}, errors.InvalidArgument("track.Update",
				"%s value for %s track %q", patch.Value.Kind, kind, tr.property)
		}
		updated.Value = *patch.Value
	}
	if patch.Easing != nil {
		updated.Easing = *patch.Easing
	}

	if collide := tr.indexAt(updated.Time); collide >= 0 && collide != idx {
		tr.keys = append(tr.keys[:collide], tr.keys[collide+1:]...)
		if collide < idx {
			idx--
		}
	}
	tr.keys = append(tr.keys[:idx], tr.keys[idx+1:]...)
	i := sort.Search(len(tr.keys), func(i int) bool { return tr.keys[i].Time > updated.Time })
	tr.keys = append(tr.keys, Keyframe{})
	copy(tr.keys[i+1:], tr.keys[i:])
	tr.keys[i] = updated
	return updated, nil
}

// Split removes every keyframe at or after the local time at and returns
// them with times re-based relative to at (tailTime = time - at). Keyframe
// ids are preserved in the returned tail.
func (tr *Track) Split(at float64) []Keyframe {
	i := sort.Search(len(tr.keys), func(i int) bool { return tr.keys[i].Time >= at })
	if i == len(tr.keys) {
		return nil
	}
	tail := make([]Keyframe, len(tr.keys)-i)
	copy(tail, tr.keys[i:])
	tr.keys = tr.keys[:i]
	for j := range tail {
		tail[j].Time -= at
	}
	return tail
}

// Clone deep-copies the track. newID supplies fresh keyframe ids; pass nil
// to keep the source ids.
func (tr *Track) Clone(newID func() string) *Track {
	out := &Track{property: tr.property, keys: make([]Keyframe, len(tr.keys))}
	copy(out.keys, tr.keys)
	if newID != nil {
		for i := range out.keys {
			out.keys[i].ID = newID()
		}
	}
	return out
}

// indexAt returns the index of the keyframe at exactly time, or -1.
func (tr *Track) indexAt(time float64) int {
	i := sort.Search(len(tr.keys), func(i int) bool { return tr.keys[i].Time >= time })
	if i < len(tr.keys) && tr.keys[i].Time == time {
		return i
	}
	return -1
}
